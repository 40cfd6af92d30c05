// Nutsmith keeps NUT driver configurations in sync with a device
// inventory.
//
// It probes UPS, ePDU and ATS devices with nut-scanner, selects the best
// driver candidate per device, writes per-device config snippets, rebuilds
// the aggregate ups.conf, and restarts only the driver units whose config
// actually changed.
//
// Usage:
//
//	nutsmith [command] [flags]
//
// See 'nutsmith --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/nutsmith/internal/logging"
	"github.com/muurk/nutsmith/internal/version"
)

func main() {
	if err := logging.InitializeFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nutsmith",
	Short: "NUT Driver Configuration Manager",
	Long: `Keeps Network UPS Tools driver configurations in sync with a
device inventory.

Nutsmith probes power devices (UPS, ePDU, ATS) with nut-scanner, picks
the best driver candidate for each, writes per-device config snippets,
rebuilds the aggregate ups.conf, and restarts only the driver units
whose configuration actually changed.`,
	Version: version.Version,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nutsmith %s (commit: %s)\n", version.Version, version.Commit)
	},
}
