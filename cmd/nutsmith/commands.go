package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/nutsmith/internal/config"
	"github.com/muurk/nutsmith/internal/configurator"
	"github.com/muurk/nutsmith/internal/discovery"
	"github.com/muurk/nutsmith/internal/lifecycle"
	"github.com/muurk/nutsmith/internal/logging"
	"github.com/muurk/nutsmith/internal/scan"
	"github.com/muurk/nutsmith/internal/store"
	"github.com/muurk/nutsmith/internal/ui"
)

// Command flags
var (
	configPath      string
	storeDir        string
	dryRun          bool
	assumeYes       bool
	discoverTimeout int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Settings file path")
	rootCmd.PersistentFlags().StringVar(&storeDir, "store-dir", "", "Per-device config store directory (overrides settings)")

	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(eraseCmd)
	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(listCmd)
}

// engine bundles the collaborators every device command needs.
type engine struct {
	settings *config.Settings
	store    *store.Store
	conf     *configurator.Configurator
	services lifecycle.ServiceManager
	logger   *zap.Logger
}

// loadSettings reads the settings file and applies flag overrides.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if storeDir != "" {
		if settings.Paths == nil {
			settings.Paths = &config.PathSettings{}
		}
		settings.Paths.StoreDir = storeDir
	}
	logging.Debug("settings loaded",
		zap.String("path", configPath),
		zap.Int("devices", len(settings.Devices)),
	)
	return settings, nil
}

// newEngine loads settings and wires up a configurator. When dry is set,
// lifecycle operations are recorded instead of executed.
func newEngine(dry bool) (*engine, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger()
	st := store.New(settings.StoreDir(), logger)

	var services lifecycle.ServiceManager
	if dry {
		services = lifecycle.NewDryRun(logger)
	} else {
		sysCfg := lifecycle.DefaultSystemdConfig()
		sysCfg.Sudo = settings.UseSudo()
		services = lifecycle.NewSystemd(sysCfg, logger)
	}

	scanner := scan.NewNutScanner(scan.Config{
		Path:    settings.ScannerPath(),
		Timeout: time.Duration(settings.ScannerTimeout()) * time.Second,
	}, logger)

	var regen lifecycle.Regenerator
	if !dry {
		regen = lifecycle.NewAggregateRebuilder(settings.StoreDir(), settings.AggregatePath(), logger)
	}

	conf := configurator.New(configurator.Options{
		Settings: settings,
		Store:    st,
		Scanner:  scanner,
		Services: services,
		Regen:    regen,
		Logger:   logger,
	})

	return &engine{
		settings: settings,
		store:    st,
		conf:     conf,
		services: services,
		logger:   logger,
	}, nil
}

func deviceState(outcome configurator.Outcome) ui.DeviceState {
	switch outcome {
	case configurator.OutcomeConfigured:
		return ui.DeviceConfigured
	case configurator.OutcomeUnchanged:
		return ui.DeviceUnchanged
	case configurator.OutcomeSkipped:
		return ui.DeviceSkipped
	case configurator.OutcomeErased:
		return ui.DeviceErased
	default:
		return ui.DeviceFailed
	}
}

// reconcileCmd runs one full reconciliation pass
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile all devices with the inventory",
	Long: `Run one full reconciliation pass over the device inventory.

Every inventory device is probed and its driver config regenerated if
needed. Stored configs whose device left the inventory are erased. The
aggregate ups.conf is rebuilt and only affected driver units are
restarted.`,
	Example: `  # Full pass against the default settings file
  nutsmith reconcile

  # Preview without touching systemd
  nutsmith reconcile --dry-run

  # Alternate settings file
  nutsmith reconcile --config ./test-config.yaml`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Record lifecycle operations instead of executing them")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(dryRun)
	if err != nil {
		return err
	}

	params := map[string]string{
		"Config":  configPath,
		"Devices": strconv.Itoa(len(eng.settings.Devices)),
	}
	if dryRun {
		params["Mode"] = "dry-run"
	}

	runner := ui.NewPassRunner(ui.PassRunnerConfig{
		Title:        "Reconciliation Pass",
		Command:      "nutsmith reconcile",
		Params:       params,
		TotalDevices: len(eng.settings.Devices),
	})

	return runner.Run(cmd.Context(), func(onDevice ui.DeviceCallback) (map[string]string, error) {
		report := eng.conf.Reconcile(cmd.Context(), func(name string, outcome configurator.Outcome) {
			onDevice(name, deviceState(outcome), "")
		})

		details := map[string]string{
			"Configured": strconv.Itoa(len(report.Configured)),
			"Unchanged":  strconv.Itoa(len(report.Unchanged)),
			"Skipped":    strconv.Itoa(len(report.Skipped)),
			"Failed":     strconv.Itoa(len(report.Failed)),
			"Erased":     strconv.Itoa(len(report.Erased)),
		}
		if dr, ok := eng.services.(*lifecycle.DryRun); ok {
			details["Dry-run ops"] = strconv.Itoa(len(dr.Ops))
		}
		return details, nil
	})
}

// configureCmd configures a single device
var configureCmd = &cobra.Command{
	Use:   "configure <name>",
	Short: "Configure a single inventory device",
	Long: `Probe one inventory device and regenerate its driver config if
needed. The aggregate ups.conf is rebuilt and the device's driver unit
restarted when the config changed.`,
	Example: `  nutsmith configure rack-ups-1
  nutsmith configure rack-ups-1 --config ./test-config.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	name := args[0]

	eng, err := newEngine(false)
	if err != nil {
		return err
	}

	device, ok := eng.settings.Devices[name]
	if !ok {
		return fmt.Errorf("device %q is not in the inventory", name)
	}

	runner := ui.NewPassRunner(ui.PassRunnerConfig{
		Title:        "Device Configuration",
		Command:      "nutsmith configure " + name,
		Params:       map[string]string{"Config": configPath, "Device": name, "Address": device.Address},
		TotalDevices: 1,
	})

	return runner.Run(cmd.Context(), func(onDevice ui.DeviceCallback) (map[string]string, error) {
		if device.Address == "" && !device.HasOverride() {
			onDevice(name, ui.DeviceSkipped, "no address")
			return map[string]string{"Device": name, "State": "skipped, no address"}, nil
		}

		batch := lifecycle.NewBatch()
		done := eng.conf.Configure(cmd.Context(), batch, name, device)
		eng.conf.Commit(cmd.Context(), batch)

		if !done {
			onDevice(name, ui.DeviceFailed, "no usable candidates")
			return nil, fmt.Errorf("no usable driver candidates for %q; check address and SNMP communities", name)
		}
		onDevice(name, ui.DeviceConfigured, "")
		return map[string]string{"Device": name, "Store": eng.store.Path(name)}, nil
	})
}

// eraseCmd removes a device's stored config
var eraseCmd = &cobra.Command{
	Use:   "erase <name>",
	Short: "Erase a device's stored driver config",
	Long: `Remove the stored driver config for a device, stop and disable its
driver unit, and rebuild the aggregate ups.conf without it.

The device's inventory entry is not touched; the next reconcile pass
will configure it again unless it is removed from the inventory too.`,
	Example: `  nutsmith erase rack-ups-1

  # Skip the confirmation prompt
  nutsmith erase rack-ups-1 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runErase,
}

func init() {
	eraseCmd.Flags().BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt")
}

func runErase(cmd *cobra.Command, args []string) error {
	name := args[0]

	if !assumeYes && !ui.ConfirmErase(name) {
		return nil
	}

	eng, err := newEngine(false)
	if err != nil {
		return err
	}

	batch := lifecycle.NewBatch()
	eng.conf.Erase(batch, name)
	eng.conf.Commit(cmd.Context(), batch)

	printer := ui.NewPrinter(nil)
	printer.Println(fmt.Sprintf("Erased stored config for %q.", name))
	return nil
}

// rebuildCmd regenerates the aggregate config without probing
var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the aggregate ups.conf from stored configs",
	Long: `Rebuild the aggregate ups.conf by concatenating all stored
per-device configs. No devices are probed and no units are restarted.

Useful after hand-editing stored configs or restoring the store from
backup.`,
	Example: `  nutsmith rebuild`,
	RunE:    runRebuild,
}

func runRebuild(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger := logging.GetLogger()

	regen := lifecycle.NewAggregateRebuilder(settings.StoreDir(), settings.AggregatePath(), logger)
	if err := regen.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to rebuild %s: %w", settings.AggregatePath(), err)
	}

	printer := ui.NewPrinter(nil)
	printer.Println(fmt.Sprintf("Rebuilt %s from %s.", settings.AggregatePath(), settings.StoreDir()))
	return nil
}

// discoverCmd browses mDNS for power devices
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover power devices on the network",
	Long: `Browse mDNS/DNS-SD announcements for devices that look like power
hardware (UPS, ePDU, ATS, network management cards) and print them.

Discovered devices are suggestions for the inventory; nothing is added
automatically. Use --add to record them in the settings file.`,
	Example: `  # Browse for 10 seconds (default)
  nutsmith discover

  # Quick 3-second browse
  nutsmith discover --timeout 3

  # Add discovered devices to the inventory
  nutsmith discover --add`,
	RunE: runDiscover,
}

var discoverAdd bool

func init() {
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 10, "Browse timeout in seconds")
	discoverCmd.Flags().BoolVar(&discoverAdd, "add", false, "Add discovered devices to the inventory")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(nil)
	printer.Println(fmt.Sprintf("Browsing for power devices (timeout: %ds)...", discoverTimeout))
	printer.Newline()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	devices, err := discovery.Browse(ctx, time.Duration(discoverTimeout)*time.Second)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(devices) == 0 {
		printer.Println("No power devices found.")
		printer.Newline()
		printer.Println("Troubleshooting:")
		printer.Println("  - Power devices often only announce via SNMP, not mDNS")
		printer.Println("  - Try increasing --timeout for slower networks")
		printer.Println("  - Add devices to the inventory manually with their IP address")
		return nil
	}

	printer.Println(fmt.Sprintf("Found %d device(s):", len(devices)))
	printer.Newline()

	for i, device := range devices {
		printer.Println(fmt.Sprintf("%d. %s", i+1, device.Hostname))
		printer.Println(fmt.Sprintf("   IP:     %s:%d", device.IP, device.Port))
		printer.Println(fmt.Sprintf("   Marker: %s", device.Marker))
		if len(device.Metadata) > 0 {
			printer.Println(fmt.Sprintf("   Metadata: %v", device.Metadata))
		}
		printer.Newline()
	}

	if !discoverAdd {
		printer.Println("Rerun with --add to record these in the inventory,")
		printer.Println("then 'nutsmith reconcile' to configure them.")
		return nil
	}

	settings, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	added := 0
	for _, device := range devices {
		name := device.SuggestedName()
		entry := settings.EnsureDevice(name)
		if entry.Address == "" {
			entry.Address = device.IP
			added++
		}
		entry.LastSeen = device.DiscoveredAt
	}
	if err := config.Save(settings, configPath); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	logging.Info("inventory updated",
		zap.String("path", configPath),
		zap.Int("added", added),
	)
	printer.Println(fmt.Sprintf("Added %d new device(s) to %s.", added, configPath))
	return nil
}

// listCmd shows the inventory against the store
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory devices and their stored configs",
	Long: `List every inventory device alongside its stored driver config
state, plus any stored configs whose device has left the inventory.`,
	Example: `  nutsmith list`,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(true)
	if err != nil {
		return err
	}

	stored, err := eng.store.List()
	if err != nil {
		return fmt.Errorf("failed to list device store: %w", err)
	}
	storedSet := make(map[string]bool, len(stored))
	for _, name := range stored {
		storedSet[name] = true
	}

	names := make([]string, 0, len(eng.settings.Devices))
	for name := range eng.settings.Devices {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "Inventory (%d device(s)):\n\n", len(names))

	for _, name := range names {
		device := eng.settings.Devices[name]
		var state string
		switch {
		case storedSet[name]:
			state = "configured"
		case device.HasOverride() || device.Address != "":
			state = "pending"
		default:
			state = "no address"
		}

		var notes []string
		if device.Address != "" {
			notes = append(notes, device.Address)
		}
		if device.HasOverride() {
			notes = append(notes, "override")
		}
		note := ""
		if len(notes) > 0 {
			note = "  (" + strings.Join(notes, ", ") + ")"
		}
		fmt.Fprintf(&b, "  %-30s %s%s\n", name, state, note)
	}

	var stale []string
	for _, name := range stored {
		if _, known := eng.settings.Devices[name]; !known {
			stale = append(stale, name)
		}
	}
	if len(stale) > 0 {
		fmt.Fprintf(&b, "\nStale stored configs (%d, erased on next reconcile):\n", len(stale))
		for _, name := range stale {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}

	return ui.RenderOnce(b.String())
}
