// Glint-emu emulates a Yeelight-protocol bulb for development and testing.
//
// It answers multicast search probes and serves the TCP command
// protocol (set_power, get_prop), so the glint CLI and dashboard can be
// exercised without bulb hardware.
//
// Usage:
//
//	glint-emu [flags]
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glintlab/glint/internal/emulator"
	"github.com/glintlab/glint/internal/logging"
	"github.com/glintlab/glint/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	bulbID   string
	model    string
	listen   string
	logLevel string
	noProbes bool
)

var rootCmd = &cobra.Command{
	Use:   "glint-emu",
	Short: "Emulated Wi-Fi bulb",
	Long: `Run a software bulb that speaks the Yeelight LAN protocol.

The emulator answers M-SEARCH probes on 239.255.255.250:1982 and serves
set_power / get_prop over TCP. State is in-memory only.`,
	Example: `  # Default bulb on port 55443
  glint-emu

  # Two bulbs on one machine
  glint-emu --id 0x1 --listen :55443 &
  glint-emu --id 0x2 --listen :55444`,
	Version: version.Version,
	RunE:    runEmulator,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&bulbID, "id", "0x0000000007fb9200", "Bulb id announced in discovery replies")
	rootCmd.Flags().StringVar(&model, "model", "color", "Bulb model announced in discovery replies")
	rootCmd.Flags().StringVar(&listen, "listen", ":55443", "TCP listen address for the command protocol")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&noProbes, "no-probes", false, "Do not answer discovery probes")
}

func runEmulator(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	emu := emulator.New(bulbID, model)
	if err := emu.Start(listen); err != nil {
		return err
	}
	defer func() { _ = emu.Close() }()

	if !noProbes {
		if err := emu.ServeProbes(); err != nil {
			return err
		}
	}

	fmt.Printf("Emulated bulb %s (%s) on %s\n", bulbID, model, emu.Addr())
	fmt.Println("Press Ctrl+C to stop.")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	fmt.Println("\nShutting down.")
	return nil
}
