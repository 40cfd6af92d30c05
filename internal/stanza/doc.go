// Package stanza models NUT driver-configuration stanzas.
//
// A stanza is one named configuration block in ups.conf format: a `[tag]`
// header line followed by tab-indented `key = "value"` lines. Stanzas enter
// the system in two ways:
//
//   - Scanning: nut-scanner emits one stanza per detected access method
//     (SNMP driver per matched MIB, XML/HTTP driver). These are candidates
//     for selection.
//   - Explicit override: an operator supplies a raw block with a custom
//     line-separator character; see ParseOverride.
//
// The package treats stanza text as opaque apart from field extraction
// (Field), header handling (Tag, Retag), and override expansion. All
// semantic interpretation of fields belongs to the classify and selector
// packages.
package stanza
