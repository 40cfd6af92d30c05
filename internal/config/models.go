package config

import "time"

// Settings is the entire nutsmith configuration file: engine tuning,
// service-manager wiring, and the device inventory driving reconciliation.
type Settings struct {
	Version int                `yaml:"version"`
	Polling *PollingSettings   `yaml:"polling,omitempty"`
	SNMP    *SNMPSettings      `yaml:"snmp,omitempty"`
	Paths   *PathSettings      `yaml:"paths,omitempty"`
	Service *ServiceSettings   `yaml:"service,omitempty"`
	Scanner *ScannerSettings   `yaml:"scanner,omitempty"`
	Devices map[string]*Device `yaml:"devices,omitempty"` // Keyed by device name
}

// PollingSettings controls the polling directives rendered into every
// device config.
type PollingSettings struct {
	// Interval in seconds, kept as a string because it is passed through
	// verbatim into pollfreq/pollinterval directives.
	Interval string `yaml:"interval,omitempty"`
}

// SNMPSettings holds the community strings tried during scanning, in
// order. "public" is always tried last regardless of this list.
type SNMPSettings struct {
	Communities []string `yaml:"communities,omitempty"`
}

// PathSettings holds filesystem locations.
type PathSettings struct {
	StoreDir      string `yaml:"store_dir,omitempty"`      // Per-device config store
	AggregatePath string `yaml:"aggregate_path,omitempty"` // Generated ups.conf
}

// ServiceSettings wires the service manager.
type ServiceSettings struct {
	DriverUnitPrefix string `yaml:"driver_unit_prefix,omitempty"` // e.g. "nut-driver@"
	ServerUnit       string `yaml:"server_unit,omitempty"`        // e.g. "nut-server"
	Sudo             *bool  `yaml:"sudo,omitempty"`               // Prefix systemctl with sudo
}

// ScannerSettings configures the nut-scanner subprocess.
type ScannerSettings struct {
	Path    string `yaml:"path,omitempty"`    // nut-scanner binary
	Timeout int    `yaml:"timeout,omitempty"` // Per-probe timeout in seconds
}

// Device is one inventory entry: a physical power device nutsmith should
// keep a driver configured for.
type Device struct {
	// Address is the device's IP address. A device with no address and no
	// override block is skipped during reconciliation.
	Address string `yaml:"address,omitempty"`

	// Community overrides the global SNMP community list for this device.
	Community string `yaml:"community,omitempty"`

	// UpsconfBlock is an explicit raw override block (first character is
	// the line separator). When set, scanning is bypassed entirely.
	UpsconfBlock string `yaml:"upsconf_block,omitempty"`

	// Description is free-form operator notes, not used by the engine.
	Description string `yaml:"description,omitempty"`

	// LastSeen is when the device was last discovered or configured.
	LastSeen time.Time `yaml:"last_seen,omitempty"`
}

// HasOverride reports whether the device carries an explicit override
// block.
func (d *Device) HasOverride() bool {
	return d != nil && d.UpsconfBlock != ""
}

// Defaults for everything the file may omit.
const (
	DefaultPollingInterval  = "30"
	DefaultCommunity        = "public"
	DefaultStoreDir         = "/var/lib/nutsmith/devices"
	DefaultAggregatePath    = "/etc/nut/ups.conf"
	DefaultDriverUnitPrefix = "nut-driver@"
	DefaultServerUnit       = "nut-server"
	DefaultScannerPath      = "nut-scanner"
	DefaultScannerTimeout   = 5
)

// NewSettings creates Settings with all defaults filled in.
func NewSettings() *Settings {
	sudo := true
	return &Settings{
		Version: 1,
		Polling: &PollingSettings{Interval: DefaultPollingInterval},
		SNMP:    &SNMPSettings{},
		Paths: &PathSettings{
			StoreDir:      DefaultStoreDir,
			AggregatePath: DefaultAggregatePath,
		},
		Service: &ServiceSettings{
			DriverUnitPrefix: DefaultDriverUnitPrefix,
			ServerUnit:       DefaultServerUnit,
			Sudo:             &sudo,
		},
		Scanner: &ScannerSettings{
			Path:    DefaultScannerPath,
			Timeout: DefaultScannerTimeout,
		},
		Devices: make(map[string]*Device),
	}
}

// PollingInterval returns the configured interval, or the default when
// unset or unreadable.
func (s *Settings) PollingInterval() string {
	if s == nil || s.Polling == nil || s.Polling.Interval == "" {
		return DefaultPollingInterval
	}
	return s.Polling.Interval
}

// Communities returns the ordered SNMP community list, always terminated
// by the "public" fallback. A device-specific community, when set, is
// tried first.
func (s *Settings) Communities(device *Device) []string {
	var out []string
	if device != nil && device.Community != "" {
		out = append(out, device.Community)
	}
	if s != nil && s.SNMP != nil {
		for _, c := range s.SNMP.Communities {
			if c != "" {
				out = append(out, c)
			}
		}
	}
	return append(out, DefaultCommunity)
}

// StoreDir returns the per-device store directory.
func (s *Settings) StoreDir() string {
	if s == nil || s.Paths == nil || s.Paths.StoreDir == "" {
		return DefaultStoreDir
	}
	return s.Paths.StoreDir
}

// AggregatePath returns the generated ups.conf location.
func (s *Settings) AggregatePath() string {
	if s == nil || s.Paths == nil || s.Paths.AggregatePath == "" {
		return DefaultAggregatePath
	}
	return s.Paths.AggregatePath
}

// DriverUnit returns the service unit name for a device's driver.
func (s *Settings) DriverUnit(name string) string {
	prefix := DefaultDriverUnitPrefix
	if s != nil && s.Service != nil && s.Service.DriverUnitPrefix != "" {
		prefix = s.Service.DriverUnitPrefix
	}
	return prefix + name
}

// ServerUnit returns the aggregate server unit name.
func (s *Settings) ServerUnit() string {
	if s == nil || s.Service == nil || s.Service.ServerUnit == "" {
		return DefaultServerUnit
	}
	return s.Service.ServerUnit
}

// UseSudo reports whether systemctl invocations go through sudo.
func (s *Settings) UseSudo() bool {
	if s == nil || s.Service == nil || s.Service.Sudo == nil {
		return true
	}
	return *s.Service.Sudo
}

// ScannerPath returns the nut-scanner binary path.
func (s *Settings) ScannerPath() string {
	if s == nil || s.Scanner == nil || s.Scanner.Path == "" {
		return DefaultScannerPath
	}
	return s.Scanner.Path
}

// ScannerTimeout returns the per-probe scanner timeout in seconds.
func (s *Settings) ScannerTimeout() int {
	if s == nil || s.Scanner == nil || s.Scanner.Timeout <= 0 {
		return DefaultScannerTimeout
	}
	return s.Scanner.Timeout
}

// EnsureDevice ensures an inventory entry exists for name and returns it.
func (s *Settings) EnsureDevice(name string) *Device {
	if s.Devices == nil {
		s.Devices = make(map[string]*Device)
	}
	if device, exists := s.Devices[name]; exists {
		return device
	}
	device := &Device{}
	s.Devices[name] = device
	return device
}
