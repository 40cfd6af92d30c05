package configurator

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/muurk/nutsmith/internal/config"
	"github.com/muurk/nutsmith/internal/lifecycle"
	"github.com/muurk/nutsmith/internal/scan"
	"github.com/muurk/nutsmith/internal/stanza"
	"github.com/muurk/nutsmith/internal/store"
)

// fakeScanner serves canned candidates keyed by community ("" for the
// XML probe) and records every probe.
type fakeScanner struct {
	snmp   map[string][]stanza.Candidate
	xml    []stanza.Candidate
	probes []string
}

func (f *fakeScanner) SNMP(_ context.Context, _, _, community string) ([]stanza.Candidate, error) {
	f.probes = append(f.probes, "snmp:"+community)
	return f.snmp[community], nil
}

func (f *fakeScanner) XMLHTTP(_ context.Context, _, _ string) ([]stanza.Candidate, error) {
	f.probes = append(f.probes, "xml")
	return f.xml, nil
}

// failingManager fails every operation but still records it.
type failingManager struct {
	ops []lifecycle.AppliedOp
}

func (f *failingManager) Apply(_ context.Context, op lifecycle.Operation, units []string) error {
	if len(units) == 0 {
		return nil
	}
	f.ops = append(f.ops, lifecycle.AppliedOp{Op: op, Units: units})
	return errors.New("unit not found")
}

type fakeRegen struct {
	runs int
	err  error
}

func (f *fakeRegen) Run(context.Context) error {
	f.runs++
	return f.err
}

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	s := config.NewSettings()
	s.Paths.StoreDir = t.TempDir()
	return s
}

func newTestConfigurator(t *testing.T, settings *config.Settings, scanner scan.Scanner, services lifecycle.ServiceManager, regen lifecycle.Regenerator) *Configurator {
	t.Helper()
	return New(Options{
		Settings: settings,
		Store:    store.New(settings.StoreDir(), nil),
		Scanner:  scanner,
		Services: services,
		Regen:    regen,
	})
}

func snmpCandidate(mib string) stanza.Candidate {
	return stanza.Candidate("[dev]\n\tdriver = \"snmp-ups\"\n\tport = \"10.0.0.5\"\n\tmibs = \"" + mib + "\"\n")
}

func TestConfigureWritesOnceForIdenticalEnvironment(t *testing.T) {
	settings := testSettings(t)
	scanner := &fakeScanner{snmp: map[string][]stanza.Candidate{
		"public": {snmpCandidate("mge")},
	}}
	c := newTestConfigurator(t, settings, scanner, nil, nil)
	device := &config.Device{Address: "10.0.0.5"}
	ctx := context.Background()

	batch := lifecycle.NewBatch()
	if !c.Configure(ctx, batch, "rack-ups", device) {
		t.Fatal("first Configure() = false, want true")
	}
	if got := batch.StartSet(); !reflect.DeepEqual(got, []string{"nut-driver@rack-ups"}) {
		t.Errorf("first pass StartSet() = %v", got)
	}

	// Same environment again: no write, no lifecycle action.
	batch = lifecycle.NewBatch()
	if !c.Configure(ctx, batch, "rack-ups", device) {
		t.Fatal("second Configure() = false, want true")
	}
	if !batch.Empty() {
		t.Errorf("second pass batch not empty: start=%v stop=%v", batch.StartSet(), batch.StopSet())
	}
}

func TestConfigureNoAddressIsBenignSkip(t *testing.T) {
	settings := testSettings(t)
	c := newTestConfigurator(t, settings, &fakeScanner{}, nil, nil)
	batch := lifecycle.NewBatch()

	if !c.Configure(context.Background(), batch, "ghost", &config.Device{}) {
		t.Error("Configure() = false for addressless device, want true")
	}
	if !batch.Empty() {
		t.Error("addressless device put units in the batch")
	}
}

func TestConfigureNoCandidatesIsTransientFailure(t *testing.T) {
	settings := testSettings(t)
	c := newTestConfigurator(t, settings, &fakeScanner{}, nil, nil)
	batch := lifecycle.NewBatch()

	if c.Configure(context.Background(), batch, "dead", &config.Device{Address: "10.0.0.9"}) {
		t.Error("Configure() = true with no candidates, want false")
	}
	if !batch.Empty() {
		t.Error("failed device put units in the batch")
	}
}

func TestConfigureCommunityOrderAndFallback(t *testing.T) {
	settings := testSettings(t)
	settings.SNMP.Communities = []string{"private"}
	scanner := &fakeScanner{snmp: map[string][]stanza.Candidate{
		"public": {snmpCandidate("pw")},
	}}
	c := newTestConfigurator(t, settings, scanner, nil, nil)
	device := &config.Device{Address: "10.0.0.5", Community: "racknet"}

	batch := lifecycle.NewBatch()
	if !c.Configure(context.Background(), batch, "u", device) {
		t.Fatal("Configure() = false, want true")
	}

	// Device community first, then configured list, then the public
	// fallback that finally yields candidates, then the XML probe.
	want := []string{"snmp:racknet", "snmp:private", "snmp:public", "xml"}
	if !reflect.DeepEqual(scanner.probes, want) {
		t.Errorf("probes = %v, want %v", scanner.probes, want)
	}
}

func TestConfigureOverrideBypassesScanning(t *testing.T) {
	settings := testSettings(t)
	scanner := &fakeScanner{}
	c := newTestConfigurator(t, settings, scanner, nil, nil)
	device := &config.Device{UpsconfBlock: ";driver = \"dummy-ups\";port = \"auto\""}

	batch := lifecycle.NewBatch()
	if !c.Configure(context.Background(), batch, "lab-ups", device) {
		t.Fatal("Configure() = false, want true")
	}
	if len(scanner.probes) != 0 {
		t.Errorf("override device was scanned: %v", scanner.probes)
	}

	st := store.New(settings.StoreDir(), nil)
	content, err := st.Read("lab-ups")
	if err != nil {
		t.Fatalf("reading stored config: %v", err)
	}
	want := "[lab-ups]\ndriver = \"dummy-ups\"\nport = \"auto\"\n\tpollinterval = 30\n"
	if content != want {
		t.Errorf("stored config = %q, want %q", content, want)
	}
}

func TestCommitOrderAndUnconditionalClear(t *testing.T) {
	settings := testSettings(t)
	services := &failingManager{}
	regen := &fakeRegen{}
	c := newTestConfigurator(t, settings, nil, services, regen)

	batch := lifecycle.NewBatch()
	batch.MarkStart("nut-driver@a")
	batch.MarkStop("nut-driver@b")

	c.Commit(context.Background(), batch)

	want := []lifecycle.AppliedOp{
		{Op: lifecycle.OpDisable, Units: []string{"nut-driver@b"}},
		{Op: lifecycle.OpStop, Units: []string{"nut-driver@b"}},
		{Op: lifecycle.OpRestart, Units: []string{"nut-driver@a"}},
		{Op: lifecycle.OpEnable, Units: []string{"nut-driver@a"}},
		{Op: lifecycle.OpReloadOrRestart, Units: []string{"nut-server"}},
	}
	if !reflect.DeepEqual(services.ops, want) {
		t.Errorf("ops = %+v, want %+v", services.ops, want)
	}
	if regen.runs != 1 {
		t.Errorf("regenerator ran %d times, want 1", regen.runs)
	}

	// Every operation failed, the batch is cleared anyway.
	if !batch.Empty() {
		t.Error("batch not cleared after commit with failures")
	}
}

func TestCommitEmptyBatchSkipsServerReload(t *testing.T) {
	settings := testSettings(t)
	services := &failingManager{}
	regen := &fakeRegen{}
	c := newTestConfigurator(t, settings, nil, services, regen)

	c.Commit(context.Background(), lifecycle.NewBatch())

	if len(services.ops) != 0 {
		t.Errorf("empty commit issued ops: %+v", services.ops)
	}
	// Regeneration still runs once per commit.
	if regen.runs != 1 {
		t.Errorf("regenerator ran %d times, want 1", regen.runs)
	}
}

func TestEraseRemovesFileAndMarksStop(t *testing.T) {
	settings := testSettings(t)
	c := newTestConfigurator(t, settings, nil, nil, nil)
	st := store.New(settings.StoreDir(), nil)
	if err := st.Write("old-ups", "[old-ups]\n"); err != nil {
		t.Fatal(err)
	}

	batch := lifecycle.NewBatch()
	c.Erase(batch, "old-ups")

	if got := batch.StopSet(); !reflect.DeepEqual(got, []string{"nut-driver@old-ups"}) {
		t.Errorf("StopSet() = %v", got)
	}
	if _, err := st.Read("old-ups"); err == nil {
		t.Error("config file still present after Erase()")
	}

	// Erasing a device with no stored file is still fine.
	c.Erase(batch, "never-existed")
	if len(batch.StopSet()) != 2 {
		t.Errorf("StopSet() = %v, want both units", batch.StopSet())
	}
}

func TestReconcile(t *testing.T) {
	settings := testSettings(t)
	settings.EnsureDevice("alive").Address = "10.0.0.5"
	settings.EnsureDevice("ghost") // no address, no override

	scanner := &fakeScanner{snmp: map[string][]stanza.Candidate{
		"public": {snmpCandidate("mge")},
	}}
	services := lifecycle.NewDryRun(nil)
	regen := &fakeRegen{}
	c := newTestConfigurator(t, settings, scanner, services, regen)

	// A stale config from a device no longer in the inventory.
	st := store.New(settings.StoreDir(), nil)
	if err := st.Write("stale", "[stale]\n"); err != nil {
		t.Fatal(err)
	}

	var steps []string
	report := c.Reconcile(context.Background(), func(name string, outcome Outcome) {
		steps = append(steps, name+":"+string(outcome))
	})

	if !reflect.DeepEqual(report.Configured, []string{"alive"}) {
		t.Errorf("Configured = %v", report.Configured)
	}
	if !reflect.DeepEqual(report.Skipped, []string{"ghost"}) {
		t.Errorf("Skipped = %v", report.Skipped)
	}
	if !reflect.DeepEqual(report.Erased, []string{"stale"}) {
		t.Errorf("Erased = %v", report.Erased)
	}
	if report.Total() != 3 {
		t.Errorf("Total() = %d, want 3", report.Total())
	}

	wantSteps := []string{"alive:configured", "ghost:skipped", "stale:erased"}
	if !reflect.DeepEqual(steps, wantSteps) {
		t.Errorf("steps = %v, want %v", steps, wantSteps)
	}

	// Commit happened: stale stopped, alive restarted, server reloaded.
	var gotOps []string
	for _, op := range services.Ops {
		gotOps = append(gotOps, string(op.Op))
	}
	wantOps := []string{"disable", "stop", "restart", "enable", "reload-or-restart"}
	if !reflect.DeepEqual(gotOps, wantOps) {
		t.Errorf("commit ops = %v, want %v", gotOps, wantOps)
	}
	if regen.runs != 1 {
		t.Errorf("regenerator ran %d times, want 1", regen.runs)
	}
}
