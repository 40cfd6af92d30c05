package discovery

import (
	"fmt"
	"time"
)

// Device is a power-device management card discovered on the network.
// Discovery is advisory: it suggests inventory entries, it never feeds
// the configurator directly.
type Device struct {
	// Hostname is the mDNS hostname (e.g., "nmc-rack3.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "10.130.38.9")
	IP string

	// Port is the advertised HTTP port of the management card
	Port int

	// Marker is the keyword that identified this as a power device
	// ("ups", "epdu", "pdu", ...)
	Marker string

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("%s (%s) at %s:%d", d.Hostname, d.Marker, d.IP, d.Port)
}

// SuggestedName derives an inventory-friendly device name from the mDNS
// hostname: the bare host label without the domain suffix.
func (d *Device) SuggestedName() string {
	name := d.Hostname
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}
