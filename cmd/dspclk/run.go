package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/openavs/dspfw/clock"
	"github.com/openavs/dspfw/clock/hsw"
	"github.com/openavs/dspfw/mem"
	"github.com/openavs/dspfw/monitoring"
	"github.com/openavs/dspfw/regs"
	"github.com/openavs/dspfw/timer"
	"github.com/openavs/dspfw/tracing"
)

var (
	runCPUHz       []int64
	runSSPHz       []int64
	runTrace       string
	runMonitor     bool
	runMonitorPort int
	runOpen        bool
	runHold        time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Bring up the platform model and apply frequency requests",
	Run: func(cmd *cobra.Command, args []string) {
		applyEnvDefaults(cmd)
		runModel()
	},
}

func init() {
	runCmd.Flags().Int64SliceVar(&runCPUHz, "cpu-hz", nil,
		"core frequency requests to apply, in order")
	runCmd.Flags().Int64SliceVar(&runSSPHz, "ssp-hz", nil,
		"serial frequency requests to apply, in order")
	runCmd.Flags().StringVar(&runTrace, "trace", "",
		"record transitions to this SQLite database (DSPFW_TRACE)")
	runCmd.Flags().BoolVar(&runMonitor, "monitor", false,
		"serve the domain state over HTTP")
	runCmd.Flags().IntVar(&runMonitorPort, "monitor-port", 0,
		"port for the monitoring server, 0 picks a random port "+
			"(DSPFW_MONITOR_PORT)")
	runCmd.Flags().BoolVar(&runOpen, "open", false,
		"open the monitoring server in a browser")
	runCmd.Flags().DurationVar(&runHold, "hold", 0,
		"keep the model running for this long after the requests")

	rootCmd.AddCommand(runCmd)
}

// applyEnvDefaults backfills flags the user did not set from the DSPFW_*
// environment variables. It runs after the root command loaded the optional
// .env file, so values from there are picked up as well.
func applyEnvDefaults(cmd *cobra.Command) {
	if !cmd.Flags().Changed("trace") {
		if v := os.Getenv("DSPFW_TRACE"); v != "" {
			runTrace = v
		}
	}

	if !cmd.Flags().Changed("monitor-port") {
		if v := envInt("DSPFW_MONITOR_PORT"); v != 0 {
			runMonitorPort = v
		}
	}
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return v
}

func runModel() {
	allocator := mem.NewAllocator()
	shim := regs.NewFile()

	controller := hsw.MakeBuilder().
		WithAllocator(allocator).
		WithRegisterIO(shim).
		WithCPUCounter(timer.NewHostCounter(320)).
		WithSSPCounter(timer.NewHostCounter(24)).
		Build()

	if runTrace != "" {
		backend := tracing.NewSQLiteBackend(runTrace)
		backend.Init()
		controller.AcceptHook(tracing.NewFreqTracer(backend))
	}

	if runMonitor || runOpen {
		monitor := monitoring.NewMonitor()
		if runMonitorPort != 0 {
			monitor = monitor.WithPortNumber(runMonitorPort)
		}
		monitor.RegisterClockState(controller)
		monitor.RegisterAllocator(allocator)
		url := monitor.StartServer()

		if runOpen {
			err := browser.OpenURL(url)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Cannot open browser: %v\n", err)
			}
		}
	}

	fmt.Printf("cpu: %d Hz, ssp: %d Hz\n",
		controller.Freq(clock.DomainCPU), controller.Freq(clock.DomainSSP))

	applyRequests(controller, clock.DomainCPU, runCPUHz)
	applyRequests(controller, clock.DomainSSP, runSSPHz)

	reportElapsed(controller)

	if runHold > 0 {
		time.Sleep(runHold)
	}

	atexit.Exit(0)
}

func applyRequests(c *hsw.Controller, d clock.Domain, requests []int64) {
	for _, hz := range requests {
		actual := c.SetFreq(d, clock.Hertz(hz))
		fmt.Printf("%s: requested %d Hz, running at %d Hz\n", d, hz, actual)
	}
}

func reportElapsed(c *hsw.Controller) {
	_, start := c.TimeElapsed(clock.DomainCPU, 0)
	time.Sleep(time.Millisecond)
	elapsed, _ := c.TimeElapsed(clock.DomainCPU, start)

	fmt.Printf("cpu counter measured %d us across a 1 ms sleep\n", elapsed)
}
