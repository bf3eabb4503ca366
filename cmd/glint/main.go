// Glint is a LAN controller for Yeelight-compatible Wi-Fi bulbs.
//
// It discovers bulbs with a multicast search probe and controls them
// over the line-based JSON TCP protocol each bulb advertises. Bulbs
// must have "LAN Control" enabled in the vendor app.
//
// Usage:
//
//	glint [command] [flags]
//
// Running without arguments launches the interactive dashboard.
// See 'glint --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glintlab/glint/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "glint",
	Short: "LAN controller for Wi-Fi smart bulbs",
	Long: `A standalone controller for Yeelight-compatible Wi-Fi bulbs.

Provides multicast discovery, power control, and an interactive
dashboard for bulbs on the local network.

If no command is specified, the interactive dashboard will launch automatically.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the dashboard when no subcommand provided
		return runDash(cmd, args)
	},
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
		fmt.Printf("glint %s (commit: %s)\n", version.Version, version.Commit)
	},
}
