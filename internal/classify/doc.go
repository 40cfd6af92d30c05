// Package classify answers capability questions about candidate stanzas.
//
// Classification is a set of stateless predicates over candidate stanza
// text: is the device an ePDU, an ATS, or a plain UPS, and can it be
// driven over SNMP or XML/HTTP. Each predicate is "does any stanza in the
// set match rule X", where the rules are a fixed table of case-insensitive
// patterns (see rules.go).
//
// Every device is exactly one of {ePDU, ATS, UPS}: the UPS predicate is
// the negation of the other two. SNMP and XML capability are independent
// of the device class.
//
// All functions are pure and deterministic; the package holds no state.
package classify
