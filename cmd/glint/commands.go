package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/glintlab/glint/internal/accessory"
	"github.com/glintlab/glint/internal/bulb"
	"github.com/glintlab/glint/internal/config"
	"github.com/glintlab/glint/internal/discovery"
	"github.com/glintlab/glint/internal/logging"
	"github.com/glintlab/glint/internal/tui"
	"github.com/glintlab/glint/internal/urls"
)

// Command flags
var (
	deviceAddr   string
	scanWindowMS int
	timeoutMS    int
	transitionMS int
)

func init() {
	// Common flags for control commands (persistent on root)
	rootCmd.PersistentFlags().StringVar(&deviceAddr, "device", "", "Bulb control address host:port (skips the cache)")
	rootCmd.PersistentFlags().IntVar(&timeoutMS, "timeout", 0, "Command reply deadline in milliseconds")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(onCmd)
	rootCmd.AddCommand(offCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(dashCmd)

	scanCmd.Flags().IntVar(&scanWindowMS, "window", 0, "Reply collection window in milliseconds")
	onCmd.Flags().IntVar(&transitionMS, "transition", 0, "Smooth transition in milliseconds")
	offCmd.Flags().IntVar(&transitionMS, "transition", 0, "Smooth transition in milliseconds")
}

// scanCmd discovers bulbs on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for bulbs on the network",
	Long: `Scan for Yeelight-compatible bulbs using a multicast search probe.

This command sends one M-SEARCH probe to 239.255.255.250:1982, collects
replies for the configured window, and reconciles them against the
cache of previously known bulbs. New bulbs are added to the cache;
known bulbs have their location refreshed.`,
	Example: `  # Scan with the default 1-second window
  glint scan

  # Longer window for sleepy networks
  glint scan --window 3000`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	scanner := discovery.NewScanner()
	scanner.Window = registry.Preferences.ScanWindow()
	if scanWindowMS > 0 {
		scanner.Window = time.Duration(scanWindowMS) * time.Millisecond
	}
	if registry.Preferences.MulticastGroup != "" {
		scanner.Group = registry.Preferences.MulticastGroup
	}

	fmt.Printf("Scanning for bulbs (window: %s)...\n\n", scanner.Window)

	records, scanErr := scanner.Scan()

	actions := accessory.Reconcile(records, knownIdentities(registry))
	identities, applyErr := accessory.Apply(actions, &cacheRegistrar{registry: registry})
	if applyErr != nil {
		return applyErr
	}

	if len(identities) == 0 {
		fmt.Println("No bulbs found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Enable 'LAN Control' for each bulb in the vendor app")
		fmt.Println("  - Check that your network allows multicast (UDP 1982)")
		fmt.Println("  - Try increasing --window for slower networks")
		fmt.Println("  - Use --device host:port to control a bulb directly")
		fmt.Printf("\nSee %s for setup help.\n", urls.GettingStarted)
		return scanErr
	}

	fmt.Printf("Found %d bulb(s):\n\n", len(identities))
	for i, action := range actions {
		record := action.Record
		label := record.ID()
		if cached := registry.GetBulb(record.ID()); cached != nil && cached.Alias != "" {
			label = cached.Alias
		}
		fmt.Printf("%d. %s [%s]\n", i+1, label, action.Type)
		fmt.Printf("   Model:    %s\n", record.Model())
		fmt.Printf("   Location: %s\n", record.Location())
		fmt.Printf("   Power:    %s\n", styledPower(record.Power()))
		fmt.Println()
	}

	fmt.Println("Use 'glint on <bulb>' / 'glint off <bulb>' to switch power")
	fmt.Println("Use 'glint dash' for the interactive dashboard")

	if err := registry.Save(); err != nil {
		return fmt.Errorf("failed to save bulb cache: %w", err)
	}

	// A socket error mid-window still printed the partial results above
	return scanErr
}

// knownIdentities builds the reconciliation input from the bulb cache
func knownIdentities(registry *config.Registry) []*accessory.Identity {
	ids := make([]string, 0, len(registry.Bulbs))
	for id := range registry.Bulbs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	known := make([]*accessory.Identity, 0, len(ids))
	for _, id := range ids {
		known = append(known, &accessory.Identity{
			Key:    accessory.KeyFor(id),
			Handle: registry.GetBulb(id),
		})
	}
	return known
}

// cacheRegistrar is the CLI's host-runtime boundary: accessories live
// in the yaml bulb cache
type cacheRegistrar struct {
	registry *config.Registry
}

// RegisterNew adds a newly discovered bulb to the cache
func (r *cacheRegistrar) RegisterNew(record *discovery.Record) (*accessory.Identity, error) {
	r.registry.UpdateBulbSeen(record.ID(), record.Location(), record.Model())
	return &accessory.Identity{
		Key:    accessory.KeyFor(record.ID()),
		Handle: r.registry.GetBulb(record.ID()),
	}, nil
}

// RestoreExisting refreshes a known bulb's cached location
func (r *cacheRegistrar) RestoreExisting(identity *accessory.Identity, record *discovery.Record) error {
	r.registry.UpdateBulbSeen(record.ID(), record.Location(), record.Model())
	return nil
}

// onCmd switches a bulb on
var onCmd = &cobra.Command{
	Use:   "on [bulb]",
	Short: "Switch a bulb on",
	Long: `Switch a bulb on with a smooth transition.

The bulb may be named by id or alias (resolved against the cache), or
addressed directly with --device host:port.`,
	Example: `  # By alias
  glint on desk

  # By id
  glint on 0x0000000007fb9200

  # Direct address, 2-second fade
  glint on --device 192.168.1.40:55443 --transition 2000`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetPower(args, true)
	},
}

// offCmd switches a bulb off
var offCmd = &cobra.Command{
	Use:   "off [bulb]",
	Short: "Switch a bulb off",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetPower(args, false)
	},
}

func runSetPower(args []string, on bool) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client, label, err := resolveClient(registry, args)
	if err != nil {
		return err
	}

	transition := registry.Preferences.Transition()
	if transitionMS > 0 {
		transition = time.Duration(transitionMS) * time.Millisecond
	}

	if err := client.SetPower(on, transition); err != nil {
		return describeFailure(label, err)
	}

	state := "off"
	if on {
		state = "on"
	}
	fmt.Printf("%s → %s\n", label, styledPower(state))
	return nil
}

// statusCmd reports a bulb's power state
var statusCmd = &cobra.Command{
	Use:   "status [bulb]",
	Short: "Show a bulb's power state",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.InitializeFromEnv(); err != nil {
			return err
		}
		defer logging.Sync()

		registry, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client, label, err := resolveClient(registry, args)
		if err != nil {
			return err
		}

		on, err := client.PowerState()
		if err != nil {
			return describeFailure(label, err)
		}

		state := "off"
		if on {
			state = "on"
		}
		fmt.Printf("%s: %s\n", label, styledPower(state))
		return nil
	},
}

// aliasCmd names a cached bulb
var aliasCmd = &cobra.Command{
	Use:   "alias <id> <name>",
	Short: "Set a friendly name for a bulb",
	Example: `  glint alias 0x0000000007fb9200 desk
  glint on desk`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		id, name := args[0], args[1]
		if registry.GetBulb(id) == nil {
			return fmt.Errorf("bulb %s is not in the cache (run 'glint scan' first)", id)
		}

		registry.SetBulbAlias(id, name)
		if err := registry.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("%s → %s\n", id, name)
		return nil
	},
}

// dashCmd launches the interactive dashboard
var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Launch the interactive dashboard",
	RunE:  runDash,
}

func runDash(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return tui.Run(registry)
}

// resolveClient builds a control client from --device, or from the
// cached location of the named bulb
func resolveClient(registry *config.Registry, args []string) (*bulb.Client, string, error) {
	location := deviceAddr
	label := deviceAddr

	if location == "" {
		if len(args) == 0 {
			return nil, "", fmt.Errorf("name a bulb (id or alias) or pass --device host:port")
		}
		id := registry.ResolveAlias(args[0])
		cached := registry.GetBulb(id)
		if cached == nil {
			return nil, "", fmt.Errorf("unknown bulb %q (run 'glint scan' first)", args[0])
		}
		location = cached.Location
		label = args[0]
	}

	client, err := bulb.NewClient(location)
	if err != nil {
		return nil, "", err
	}

	client.Timeout = registry.Preferences.CommandTimeout()
	if timeoutMS > 0 {
		client.Timeout = time.Duration(timeoutMS) * time.Millisecond
	}

	return client, label, nil
}

// describeFailure turns a typed command failure into actionable output
func describeFailure(label string, err error) error {
	switch bulb.TypeOf(err) {
	case bulb.ErrTypeTimeout:
		return fmt.Errorf("%s did not answer in time (is it powered?): %w", label, err)
	case bulb.ErrTypeConnect:
		return fmt.Errorf("%s is unreachable (rescan to refresh its address): %w", label, err)
	default:
		return err
	}
}

// styledPower colors a power state when stdout is a terminal
func styledPower(state string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return state
	}
	if state == "on" {
		return tui.PowerOnStyle.Render(state)
	}
	return tui.PowerOffStyle.Render(state)
}
