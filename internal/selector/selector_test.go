package selector

import (
	"testing"

	"github.com/muurk/nutsmith/internal/stanza"
)

func snmpStanza(tag, mib string) stanza.Candidate {
	return stanza.Candidate("[" + tag + "]\n\tdriver = \"snmp-ups\"\n\tport = \"10.0.0.5\"\n\tmibs = \"" + mib + "\"\n")
}

func xmlStanza(tag string) stanza.Candidate {
	return stanza.Candidate("[" + tag + "]\n\tdriver = \"netxml-ups\"\n\tport = \"http://10.0.0.5\"\n")
}

func TestSelectBestEmpty(t *testing.T) {
	if _, ok := SelectBest(nil); ok {
		t.Error("SelectBest(nil) ok = true, want false")
	}
}

func TestSelectBestSingleton(t *testing.T) {
	// A singleton is accepted unchanged even if it matches no rule at all.
	odd := stanza.Candidate("[weird]\n\tdriver = \"dummy-ups\"\n")
	got, ok := SelectBest([]stanza.Candidate{odd})
	if !ok {
		t.Fatal("SelectBest(singleton) ok = false, want true")
	}
	if got != odd {
		t.Errorf("SelectBest(singleton) = %q, want input unchanged", got)
	}
}

func TestSelectBestMibPriority(t *testing.T) {
	// Priority is pw, mge, wildcard. The pw candidate wins regardless of
	// discovery order, and "pw" must match inside a longer mib name.
	candidates := []stanza.Candidate{
		snmpStanza("pdu-acme", "acme-mib"),
		snmpStanza("pdu-pw", "pw-mib"),
		snmpStanza("pdu-mge", "mge-mib"),
	}
	// Make the set an SNMP-capable ePDU so the SNMP branch is taken.
	candidates = append(candidates, snmpStanza("pdu-eaton", "eaton_epdu"))

	got, ok := SelectBest(candidates)
	if !ok {
		t.Fatal("SelectBest() ok = false, want true")
	}
	if mib, _ := got.Field("mibs"); mib != "pw-mib" {
		t.Errorf("SelectBest() chose mibs %q, want pw-mib", mib)
	}
}

func TestSelectBestWildcardTier(t *testing.T) {
	// No pw or mge anywhere: wildcard tier picks the earliest discovered.
	candidates := []stanza.Candidate{
		snmpStanza("a", "acme-mib"),
		snmpStanza("b", "eaton_epdu"),
	}
	got, ok := SelectBest(candidates)
	if !ok {
		t.Fatal("SelectBest() ok = false, want true")
	}
	if mib, _ := got.Field("mibs"); mib != "acme-mib" {
		t.Errorf("SelectBest() chose mibs %q, want acme-mib (earliest)", mib)
	}
}

func TestSelectBestXMLPreferred(t *testing.T) {
	// Plain UPS that can do both SNMP and XML: XML wins.
	candidates := []stanza.Candidate{
		snmpStanza("u1", "mge"),
		xmlStanza("u2"),
	}
	got, ok := SelectBest(candidates)
	if !ok {
		t.Fatal("SelectBest() ok = false, want true")
	}
	if drv, _ := got.Field("driver"); drv != "netxml-ups" {
		t.Errorf("SelectBest() chose driver %q, want netxml-ups", drv)
	}
}

func TestSelectBestEpduPrefersSnmpOverXML(t *testing.T) {
	candidates := []stanza.Candidate{
		xmlStanza("pdu-xml"),
		snmpStanza("pdu-snmp", "eaton_epdu"),
	}
	got, ok := SelectBest(candidates)
	if !ok {
		t.Fatal("SelectBest() ok = false, want true")
	}
	if drv, _ := got.Field("driver"); drv != "snmp-ups" {
		t.Errorf("SelectBest() chose driver %q, want snmp-ups", drv)
	}
}

func TestSelectBestAmbiguousSetFails(t *testing.T) {
	// Multi-candidate set where no candidate has a mibs field and none is
	// netxml: every priority tier comes up empty, so selection fails.
	candidates := []stanza.Candidate{
		stanza.Candidate("[a]\n\tdriver = \"dummy-ups\"\n"),
		stanza.Candidate("[b]\n\tdriver = \"dummy-ups\"\n"),
	}
	if _, ok := SelectBest(candidates); ok {
		t.Error("SelectBest() ok = true for ambiguous set, want false")
	}
}
