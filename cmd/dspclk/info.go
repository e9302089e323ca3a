package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openavs/dspfw/clock"
	"github.com/openavs/dspfw/clock/hsw"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the frequency tables of the platform",
	Run: func(cmd *cobra.Command, args []string) {
		printTable("cpu", hsw.CPUTable())
		printTable("ssp", hsw.SSPTable())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printTable(name string, table clock.Table) {
	fmt.Printf("%s steps:\n", name)
	for i, step := range table {
		fmt.Printf("  [%d] %10d Hz, %4d ticks/us, fabric %10d Hz, enc %#x\n",
			i, step.Freq, step.TicksPerUsec, step.Fabric, step.Enc)
	}
}
