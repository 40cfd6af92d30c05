package lifecycle

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestBatchMarking(t *testing.T) {
	b := NewBatch()

	b.MarkStart("nut-driver@a")
	b.MarkStop("nut-driver@b")

	if got := b.StartSet(); !reflect.DeepEqual(got, []string{"nut-driver@a"}) {
		t.Errorf("StartSet() = %v", got)
	}
	if got := b.StopSet(); !reflect.DeepEqual(got, []string{"nut-driver@b"}) {
		t.Errorf("StopSet() = %v", got)
	}
	if b.Empty() {
		t.Error("Empty() = true with pending units")
	}
}

func TestBatchLastActionWins(t *testing.T) {
	b := NewBatch()

	// Configure then erase: the unit ends up only in the stop set.
	b.MarkStart("nut-driver@a")
	b.MarkStop("nut-driver@a")
	if len(b.StartSet()) != 0 {
		t.Errorf("StartSet() = %v after MarkStop, want empty", b.StartSet())
	}
	if got := b.StopSet(); !reflect.DeepEqual(got, []string{"nut-driver@a"}) {
		t.Errorf("StopSet() = %v", got)
	}

	// And back again.
	b.MarkStart("nut-driver@a")
	if len(b.StopSet()) != 0 {
		t.Errorf("StopSet() = %v after MarkStart, want empty", b.StopSet())
	}
}

func TestBatchClear(t *testing.T) {
	b := NewBatch()
	b.MarkStart("nut-driver@a")
	b.MarkStop("nut-driver@b")
	b.Clear()
	if !b.Empty() {
		t.Error("Empty() = false after Clear()")
	}
}

func TestBatchSetsSorted(t *testing.T) {
	b := NewBatch()
	b.MarkStart("nut-driver@z")
	b.MarkStart("nut-driver@a")
	if got := b.StartSet(); !reflect.DeepEqual(got, []string{"nut-driver@a", "nut-driver@z"}) {
		t.Errorf("StartSet() = %v, want sorted", got)
	}
}

func TestSystemctlArgv(t *testing.T) {
	got := systemctlArgv(true, OpReloadOrRestart, []string{"nut-server"})
	want := []string{"sudo", "systemctl", "reload-or-restart", "nut-server"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("systemctlArgv() = %v, want %v", got, want)
	}

	got = systemctlArgv(false, OpStop, []string{"nut-driver@a", "nut-driver@b"})
	want = []string{"systemctl", "stop", "nut-driver@a", "nut-driver@b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("systemctlArgv() = %v, want %v", got, want)
	}
}

func TestSystemdEmptyUnitsNoop(t *testing.T) {
	// Must not attempt to run anything: a systemctl invocation with no
	// units would be an error, the contract says no-op.
	s := NewSystemd(SystemdConfig{Sudo: false}, nil)
	if err := s.Apply(context.Background(), OpRestart, nil); err != nil {
		t.Errorf("Apply() with no units = %v, want nil", err)
	}
}

func TestDryRunRecords(t *testing.T) {
	d := NewDryRun(nil)
	ctx := context.Background()

	_ = d.Apply(ctx, OpDisable, []string{"nut-driver@b"})
	_ = d.Apply(ctx, OpRestart, nil) // skipped, empty
	_ = d.Apply(ctx, OpRestart, []string{"nut-driver@a"})

	if len(d.Ops) != 2 {
		t.Fatalf("recorded %d ops, want 2", len(d.Ops))
	}
	if d.Ops[0].Op != OpDisable || d.Ops[1].Op != OpRestart {
		t.Errorf("recorded ops = %+v", d.Ops)
	}
}

func TestAggregateRebuilder(t *testing.T) {
	storeDir := t.TempDir()
	outPath := filepath.Join(t.TempDir(), "nut", "ups.conf")

	files := map[string]string{
		"alpha": "[alpha]\n\tdriver = \"snmp-ups\"\n\tpollfreq = 30\n",
		"beta":  "[beta]\n\tdriver = \"netxml-ups\"\n\tpollinterval = 30\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(storeDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	r := NewAggregateRebuilder(storeDir, outPath, nil)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading aggregate: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "# This file is generated by nutsmith") {
		t.Error("aggregate is missing its header")
	}
	for name, content := range files {
		if !strings.Contains(out, content) {
			t.Errorf("aggregate is missing stanza for %s", name)
		}
	}
	// Directory read order is name-sorted, so alpha precedes beta.
	if strings.Index(out, "[alpha]") > strings.Index(out, "[beta]") {
		t.Error("aggregate stanzas are not in sorted device order")
	}
}

func TestAggregateRebuilderEmptyStore(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "ups.conf")
	r := NewAggregateRebuilder(filepath.Join(t.TempDir(), "missing"), outPath, nil)

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() on missing store error = %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading aggregate: %v", err)
	}
	if !strings.HasPrefix(string(data), "#") {
		t.Error("empty aggregate should still carry the header")
	}
}
