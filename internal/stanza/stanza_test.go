package stanza

import "testing"

const sampleStanza = Candidate("[nutdev1]\n\tdriver = \"snmp-ups\"\n\tport = \"10.130.38.9\"\n\tmibs = \"mge\"\n")

func TestField(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    string
		present bool
	}{
		{"driver", "driver", "snmp-ups", true},
		{"mibs", "mibs", "mge", true},
		{"case insensitive key", "MIBS", "mge", true},
		{"absent key", "desc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sampleStanza.Field(tt.key)
			if ok != tt.present {
				t.Fatalf("Field(%q) present = %v, want %v", tt.key, ok, tt.present)
			}
			if got != tt.want {
				t.Errorf("Field(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestFieldFirstOccurrenceWins(t *testing.T) {
	c := Candidate("[x]\n\tmibs = \"pw\"\n\tmibs = \"mge\"\n")
	got, ok := c.Field("mibs")
	if !ok || got != "pw" {
		t.Errorf("Field(mibs) = %q, %v, want \"pw\", true", got, ok)
	}
}

func TestTag(t *testing.T) {
	if got := sampleStanza.Tag(); got != "nutdev1" {
		t.Errorf("Tag() = %q, want %q", got, "nutdev1")
	}
	if got := Candidate("driver = \"dummy-ups\"\n").Tag(); got != "" {
		t.Errorf("Tag() on headerless stanza = %q, want empty", got)
	}
}

func TestRetag(t *testing.T) {
	got := sampleStanza.Retag("rack-ups")
	want := "[rack-ups]\n\tdriver = \"snmp-ups\"\n\tport = \"10.130.38.9\"\n\tmibs = \"mge\"\n"
	if got.String() != want {
		t.Errorf("Retag() = %q, want %q", got, want)
	}

	// Headerless stanza gets a header prepended
	got = Candidate("\tdriver = \"dummy-ups\"\n").Retag("test")
	want = "[test]\n\tdriver = \"dummy-ups\"\n"
	if got.String() != want {
		t.Errorf("Retag() headerless = %q, want %q", got, want)
	}
}

func TestParseOverrideWithHeader(t *testing.T) {
	o := ParseOverride("|[ups1]|driver = x")
	if o.Separator != '|' {
		t.Errorf("Separator = %q, want '|'", o.Separator)
	}
	if !o.HasHeader {
		t.Error("HasHeader = false, want true")
	}
	got := o.Stanza("ignored-name")
	want := "[ups1]\ndriver = x\n"
	if got.String() != want {
		t.Errorf("Stanza() = %q, want %q", got, want)
	}
}

func TestParseOverrideWithoutHeader(t *testing.T) {
	o := ParseOverride(";driver = \"dummy-ups\";port = \"auto\"")
	if o.HasHeader {
		t.Error("HasHeader = true, want false")
	}
	got := o.Stanza("lab-ups")
	want := "[lab-ups]\ndriver = \"dummy-ups\"\nport = \"auto\"\n"
	if got.String() != want {
		t.Errorf("Stanza() = %q, want %q", got, want)
	}
}

func TestParseOverrideEmpty(t *testing.T) {
	for _, raw := range []string{"", "|"} {
		o := ParseOverride(raw)
		got := o.Stanza("bare")
		want := "[bare]\n\n"
		if got.String() != want {
			t.Errorf("ParseOverride(%q).Stanza() = %q, want %q", raw, got, want)
		}
	}
}
