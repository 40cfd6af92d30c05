package selector

import (
	"regexp"

	"github.com/muurk/nutsmith/internal/classify"
	"github.com/muurk/nutsmith/internal/stanza"
)

// mibPriority is the fixed MIB preference order: vendor-primary,
// vendor-secondary, then a wildcard accepting any MIB. Each entry is a
// pattern matched against the candidate's extracted mibs value, so "pw"
// also accepts names like "pw-mib".
var mibPriority = []*regexp.Regexp{
	regexp.MustCompile(`(?i)pw`),
	regexp.MustCompile(`(?i)mge`),
	regexp.MustCompile(`.+`),
}

// SelectBest chooses exactly one candidate from a discovery-ordered set,
// or reports that selection is impossible.
//
// A set of zero or one candidates is returned unchanged: a singleton is
// accepted as-is even if it would fail every classification rule. A larger
// set is classified as a whole:
//
//   - SNMP-capable ePDU or ATS: prefer SNMP, select by MIB priority.
//   - Otherwise XML-capable: select the first netxml candidate.
//   - Otherwise: select by MIB priority.
//
// MIB-priority selection can fail even with candidates present, when none
// of them carries a mibs value matching any priority pattern. Such a set
// is ambiguous and the caller should retry after a rescan.
func SelectBest(candidates []stanza.Candidate) (stanza.Candidate, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	texts := stanza.Texts(candidates)
	c := classify.Classify(texts)

	if c.Snmp && (c.Epdu || c.Ats) {
		return bestSnmpMib(candidates)
	}
	if c.XML {
		return firstXML(candidates)
	}
	return bestSnmpMib(candidates)
}

// bestSnmpMib walks the priority patterns most-preferred first and, within
// each tier, candidates in discovery order. The first pattern that yields
// any match decides; earliest-discovered candidate wins within a tier.
func bestSnmpMib(candidates []stanza.Candidate) (stanza.Candidate, bool) {
	for _, pattern := range mibPriority {
		for _, cand := range candidates {
			mib, ok := cand.Field("mibs")
			if ok && pattern.MatchString(mib) {
				return cand, true
			}
		}
	}
	return "", false
}

// firstXML returns the earliest-discovered netxml-ups candidate.
func firstXML(candidates []stanza.Candidate) (stanza.Candidate, bool) {
	for _, cand := range candidates {
		if classify.CanXML([]string{string(cand)}) {
			return cand, true
		}
	}
	return "", false
}
