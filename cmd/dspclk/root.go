package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dspclk",
	Short: "Dspclk drives the clock-frequency model of the audio DSP platform.",
	Long: `Dspclk drives the clock-frequency model of the audio DSP platform. ` +
		`It can apply frequency requests to the modeled clock domains, trace ` +
		`the resulting transitions to SQLite, and serve the domain state over HTTP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional .env file provides DSPFW_* defaults.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
