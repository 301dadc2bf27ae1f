// Package cmd implements the timesigctl CLI: inspecting station
// profiles, rendering stations to WAV files, querying the locale edit
// distance harness, and running as a long-lived daemon.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd is the main entry point. Exported so timesigctl could be
// extended without touching core functionality.
var RootCmd = &cobra.Command{
	Use:   "timesigctl",
	Short: "inspect and render low-frequency time-station signals",
}

var rootVerboseFlag bool

func init() {
	RootCmd.PersistentFlags().BoolVarP(&rootVerboseFlag, "verbose", "v", false, "verbose output")
}

// ConfigureVerbosity sets the log level from the parsed --verbose flag.
// Must be called by any subcommand's Run before logging.
func ConfigureVerbosity() {
	logrus.SetLevel(logrus.InfoLevel)
	if rootVerboseFlag {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// Execute is the main entry point for the CLI.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
