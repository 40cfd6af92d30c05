package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint([]byte("[ups1]\n\tdriver = \"snmp-ups\"\n"))
	b := Fingerprint([]byte("[ups1]\n\tdriver = \"snmp-ups\"\n"))
	if a != b {
		t.Errorf("Fingerprint not stable: %q != %q", a, b)
	}

	c := Fingerprint([]byte("[ups1]\n\tdriver = \"netxml-ups\"\n"))
	if a == c {
		t.Error("Fingerprint collision for different content")
	}

	if len(a) != 64 {
		t.Errorf("Fingerprint length = %d, want 64 hex chars", len(a))
	}
}

func TestNeedsWrite(t *testing.T) {
	s := New(t.TempDir(), nil)
	content := "[ups1]\n\tdriver = \"snmp-ups\"\n\tpollfreq = 30\n"

	// No previous file: write needed.
	if !s.NeedsWrite("ups1", content) {
		t.Error("NeedsWrite() = false with no previous file, want true")
	}

	if err := s.Write("ups1", content); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	// Identical content: no write needed.
	if s.NeedsWrite("ups1", content) {
		t.Error("NeedsWrite() = true for identical content, want false")
	}

	// Changed content: write needed again.
	if !s.NeedsWrite("ups1", content+"\tsynchronous = yes\n") {
		t.Error("NeedsWrite() = false for changed content, want true")
	}
}

func TestWriteCreatesStoreDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "devices")
	s := New(dir, nil)

	if err := s.Write("ups1", "[ups1]\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ups1"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "[ups1]\n" {
		t.Errorf("stored content = %q, want %q", data, "[ups1]\n")
	}
}

func TestRemove(t *testing.T) {
	s := New(t.TempDir(), nil)

	if err := s.Write("ups1", "[ups1]\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Remove("ups1"); err != nil {
		t.Errorf("Remove() error = %v", err)
	}

	// Removing an absent file is fine.
	if err := s.Remove("ups1"); err != nil {
		t.Errorf("Remove() of absent file error = %v", err)
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir(), nil)

	names, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() on empty store = %v, want empty", names)
	}

	for _, name := range []string{"zeta", "alpha"} {
		if err := s.Write(name, "["+name+"]\n"); err != nil {
			t.Fatalf("Write(%s) error = %v", name, err)
		}
	}

	names, err = s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("List() = %v, want [alpha zeta]", names)
	}
}

func TestListMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), nil)
	names, err := s.List()
	if err != nil {
		t.Fatalf("List() on missing dir error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("List() on missing dir = %v, want empty", names)
	}
}
