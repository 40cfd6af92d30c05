package classify

import "regexp"

// Capability is one classification tag a candidate stanza can carry.
type Capability string

const (
	// CapEpdu marks a stanza for an ePDU (power distribution unit).
	CapEpdu Capability = "epdu"

	// CapAts marks a stanza for an ATS (automatic transfer switch).
	CapAts Capability = "ats"

	// CapSnmp marks a stanza driven by the snmp-ups driver family.
	CapSnmp Capability = "snmp"

	// CapXML marks a stanza driven by the netxml-ups driver.
	CapXML Capability = "xml"
)

// The rule table is fixed and hand-maintained, not user-configurable.
// Patterns are ported from the ups.conf conventions nut-scanner emits:
// tab-indented `key = "value"` lines. Matching is case-insensitive.
//
// The ePDU MIB list names the static snmp-ups mappings known to identify
// power distribution units. The ATS rule keys off any MIB name containing
// "ats". The SNMP rule accepts the legacy (-old) and DMF (-dmf) driver
// variants alongside plain snmp-ups.
var rules = []struct {
	cap     Capability
	pattern *regexp.Regexp
}{
	{CapEpdu, regexp.MustCompile(`(?i)[ \t](mibs[ \t]+=[ \t]+"(eaton_epdu|aphel_genesisII|aphel_revelation|pulizzi_switched1|pulizzi_switched2|emerson_avocent_pdu)"|desc[ \t]+=[ \t]+"[^"]+ epdu [^"]+")`)},
	{CapAts, regexp.MustCompile(`(?i)[ \t]mibs[ \t]*=[ \t]*"[^"]*ats[^"]*"`)},
	{CapSnmp, regexp.MustCompile(`(?i)[ \t]driver[ \t]+=[ \t]+"snmp-ups(-old|-dmf)?"`)},
	{CapXML, regexp.MustCompile(`(?i)[ \t]driver[ \t]+=[ \t]+"netxml-ups"`)},
}

// matchAny reports whether any text in the set matches the pattern.
func matchAny(texts []string, pattern *regexp.Regexp) bool {
	for _, text := range texts {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

// hasCapability reports whether any text in the set matches the rule for
// the given capability. Unknown capabilities never match.
func hasCapability(texts []string, cap Capability) bool {
	for _, rule := range rules {
		if rule.cap == cap {
			return matchAny(texts, rule.pattern)
		}
	}
	return false
}
