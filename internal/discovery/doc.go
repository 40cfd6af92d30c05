// Package discovery finds candidate power devices via mDNS.
//
// Many UPS and ePDU network management cards advertise their web
// interface over mDNS as an _http._tcp service. Browsing for those and
// filtering on power-device keywords gives an operator a quick list of
// addresses worth adding to the inventory.
//
// Discovery results are suggestions only. The configurator never acts on
// them directly: a device must be added to the settings inventory before
// reconciliation will scan and configure it, because mDNS visibility says
// nothing about SNMP/XML reachability or about which driver fits.
package discovery
