package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"
)

const (
	// ServiceType is the mDNS service type browsed for management cards.
	// UPS/ePDU network cards expose their web interface as _http._tcp.
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for device discovery
	DefaultScanTimeout = 10 * time.Second

	// DefaultPort is assumed when a service entry omits its port
	DefaultPort = 80
)

// powerMarkers are the hostname/TXT keywords that mark an _http._tcp
// service as a power-device management card. Matching is substring,
// case-insensitive, hostnames first.
var powerMarkers = []string{"epdu", "pdu", "ups", "ats", "nmc", "powerware"}

// Scanner browses mDNS for power-device management cards.
type Scanner struct {
	// Timeout is the maximum time to wait for device discovery
	Timeout time.Duration
}

// NewScanner creates an mDNS scanner with default settings.
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Browse discovers power devices on the local network, returning every
// matching service seen before the timeout.
func (s *Scanner) Browse(ctx context.Context) ([]*Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	devices := make([]*Device, 0)
	done := make(chan struct{})

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		defer close(done)
		for entry := range entries {
			if device := parseServiceEntry(entry); device != nil {
				devices = append(devices, device)
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	// Wait for the timeout and for the entry channel to drain.
	<-ctx.Done()
	<-done

	return devices, nil
}

// parseServiceEntry converts a zeroconf service entry to a Device.
// Returns nil when the entry doesn't look like a power device.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Device {
	if entry.HostName == "" {
		return nil
	}

	marker := matchMarker(entry.HostName)
	if marker == "" {
		for _, txt := range entry.Text {
			if marker = matchMarker(txt); marker != "" {
				break
			}
		}
	}
	if marker == "" {
		return nil
	}

	// Prefer IPv4; the scanner and NUT drivers are happiest with it.
	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}

	return &Device{
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Marker:       marker,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// matchMarker returns the first power-device keyword found in text, or
// "" when none matches.
func matchMarker(text string) string {
	lower := strings.ToLower(text)
	for _, marker := range powerMarkers {
		if strings.Contains(lower, marker) {
			return marker
		}
	}
	return ""
}

// Browse is a convenience function to scan with a custom timeout.
func Browse(ctx context.Context, timeout time.Duration) ([]*Device, error) {
	scanner := NewScanner()
	scanner.Timeout = timeout
	return scanner.Browse(ctx)
}
