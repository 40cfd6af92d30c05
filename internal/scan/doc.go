// Package scan produces candidate stanzas by probing device addresses.
//
// The package wraps the nut-scanner binary: one SNMP probe per community
// string and one XML/HTTP probe per device, each emitting zero or more
// ups.conf-style stanzas on stdout. Stanzas are retagged from the
// scanner's generic nutdev<N> names to the asset name before they enter
// selection.
//
// The Scanner interface exists so the configurator can be tested with
// canned candidates; NutScanner is the only production implementation.
package scan
