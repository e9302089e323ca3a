// Package monitoring turns a running clock model into a small HTTP server
// so the domain state can be inspected from outside the process. All
// handlers read lock-free snapshots; the monitor never holds up a clock
// transition.
package monitoring

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/openavs/dspfw/clock"
	"github.com/openavs/dspfw/mem"
)

// ClockState is the view of the clock controller the monitor reads.
type ClockState interface {
	Freq(d clock.Domain) clock.Hertz
	UsToTicks(d clock.Domain, us uint64) uint64
}

// Monitor serves the state of the clock model over HTTP.
type Monitor struct {
	clocks     ClockState
	allocator  *mem.Allocator
	portNumber int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterClockState registers the clock controller to be monitored.
func (m *Monitor) RegisterClockState(c ClockState) {
	m.clocks = c
}

// RegisterAllocator registers the allocator whose zone accounting the
// monitor reports.
func (m *Monitor) RegisterAllocator(a *mem.Allocator) {
	m.allocator = a
}

// StartServer starts the monitor as a web server and returns the URL it
// listens on.
func (m *Monitor) StartServer() string {
	r := m.router()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring clock model with %s\n", url)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()

	return url
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/domains", m.listDomains)
	r.HandleFunc("/api/domain/{name}", m.listDomainDetails)
	r.HandleFunc("/api/state", m.dumpState)
	r.HandleFunc("/api/mem", m.listZones)
	r.HandleFunc("/api/resource", m.listResources)

	return r
}

func (m *Monitor) listDomains(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for d := clock.DomainCPU; d < clock.NumDomains; d++ {
		if d > clock.DomainCPU {
			fmt.Fprint(w, ",")
		}

		m.writeDomain(w, d)
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) listDomainDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	for d := clock.DomainCPU; d < clock.NumDomains; d++ {
		if d.String() == name {
			m.writeDomain(w, d)
			return
		}
	}

	w.WriteHeader(http.StatusNotFound)
}

func (m *Monitor) writeDomain(w http.ResponseWriter, d clock.Domain) {
	fmt.Fprintf(w,
		"{\"domain\":\"%s\",\"freq\":%d,\"ticks_per_usec\":%d}",
		d, m.clocks.Freq(d), m.clocks.UsToTicks(d, 1))
}

func (m *Monitor) dumpState(w http.ResponseWriter, _ *http.Request) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.clocks)
	serializer.SetMaxDepth(2)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) listZones(w http.ResponseWriter, _ *http.Request) {
	if m.allocator == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	fmt.Fprintf(w,
		"[{\"zone\":\"%s\",\"used\":%d,\"budget\":%d},"+
			"{\"zone\":\"%s\",\"used\":%d,\"budget\":%d}]",
		mem.ZoneSys,
		m.allocator.Used(mem.ZoneSys),
		m.allocator.Budget(mem.ZoneSys),
		mem.ZoneRuntime,
		m.allocator.Used(mem.ZoneRuntime),
		m.allocator.Budget(mem.ZoneRuntime))
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	fmt.Fprintf(w, "{\"cpu_percent\":%f,\"rss\":%d}",
		cpuPercent, memInfo.RSS)
}

func dieOnErr(err error) {
	if err != nil {
		panic(err)
	}
}
