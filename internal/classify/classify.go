package classify

// IsEpdu reports whether any stanza in the set identifies an ePDU, either
// by a known ePDU MIB name or by a free-text description mentioning epdu.
func IsEpdu(texts []string) bool {
	return hasCapability(texts, CapEpdu)
}

// IsAts reports whether any stanza in the set carries a MIB name
// containing "ats".
func IsAts(texts []string) bool {
	return hasCapability(texts, CapAts)
}

// IsUps reports whether the set is a plain UPS: every device is exactly
// one of ePDU, ATS or UPS, so this is the negation of the other two.
func IsUps(texts []string) bool {
	return !(IsEpdu(texts) || IsAts(texts))
}

// CanSnmp reports whether any stanza in the set uses the snmp-ups driver
// family (including the legacy and DMF variants).
func CanSnmp(texts []string) bool {
	return hasCapability(texts, CapSnmp)
}

// CanXML reports whether any stanza in the set uses the netxml-ups driver.
func CanXML(texts []string) bool {
	return hasCapability(texts, CapXML)
}

// Classification is the derived set of capability flags for a candidate
// set. It is computed on demand and never stored.
type Classification struct {
	Epdu bool
	Ats  bool
	Snmp bool
	XML  bool
}

// Ups reports whether the classified set is a plain UPS.
func (c Classification) Ups() bool {
	return !(c.Epdu || c.Ats)
}

// Classify evaluates every rule once over the candidate set.
func Classify(texts []string) Classification {
	return Classification{
		Epdu: IsEpdu(texts),
		Ats:  IsAts(texts),
		Snmp: CanSnmp(texts),
		XML:  CanXML(texts),
	}
}

// ClassifyOne classifies a single stanza. This is the common case when
// deciding tuning directives for the chosen candidate.
func ClassifyOne(text string) Classification {
	return Classify([]string{text})
}
