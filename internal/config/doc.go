// Package config loads and stores the nutsmith settings file.
//
// The settings file is a single YAML document holding engine tuning
// (polling interval, SNMP communities), filesystem paths (device store,
// generated ups.conf), service-manager wiring (unit names, sudo), scanner
// configuration, and the device inventory that drives reconciliation.
//
// Example:
//
//	version: 1
//	polling:
//	  interval: "30"
//	snmp:
//	  communities: [private, building-a]
//	devices:
//	  rack-pdu-3:
//	    address: 10.130.38.9
//	  lab-ups:
//	    upsconf_block: ";driver = \"dummy-ups\";port = \"auto\""
//
// Every field is optional; a missing file is equivalent to an empty one.
// Defaults are applied through the Settings accessor methods rather than
// at load time, so a Settings zero value is always safe to query.
package config
