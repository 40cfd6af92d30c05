package configurator

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/muurk/nutsmith/internal/lifecycle"
)

// DeviceStep reports the outcome of one device during a reconciliation
// pass, for progress display.
type DeviceStep func(name string, outcome Outcome)

// Report summarizes one reconciliation pass.
type Report struct {
	Configured []string // new or changed configs written
	Unchanged  []string // already up to date
	Skipped    []string // no address and no override
	Failed     []string // no usable candidates; retry next pass
	Erased     []string // stale configs removed
}

// Total returns the number of devices touched by the pass.
func (r Report) Total() int {
	return len(r.Configured) + len(r.Unchanged) + len(r.Skipped) + len(r.Failed) + len(r.Erased)
}

// Reconcile performs one full pass: configure every inventory device,
// erase stored configs whose device left the inventory, then commit the
// accumulated lifecycle batch. Device order is name-sorted so commits are
// deterministic. onStep may be nil.
func (c *Configurator) Reconcile(ctx context.Context, onStep DeviceStep) Report {
	batch := lifecycle.NewBatch()
	report := Report{}

	step := func(name string, outcome Outcome) {
		if onStep != nil {
			onStep(name, outcome)
		}
	}

	names := make([]string, 0, len(c.settings.Devices))
	for name := range c.settings.Devices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		outcome, _ := c.configure(ctx, batch, name, c.settings.Devices[name])
		switch outcome {
		case OutcomeConfigured:
			report.Configured = append(report.Configured, name)
		case OutcomeUnchanged:
			report.Unchanged = append(report.Unchanged, name)
		case OutcomeSkipped:
			report.Skipped = append(report.Skipped, name)
		default:
			report.Failed = append(report.Failed, name)
		}
		step(name, outcome)
	}

	// Devices with a stored config but no inventory entry are stale.
	stored, err := c.store.List()
	if err != nil {
		c.logger.Error("failed to list device store", zap.Error(err))
	}
	for _, name := range stored {
		if _, known := c.settings.Devices[name]; known {
			continue
		}
		c.Erase(batch, name)
		report.Erased = append(report.Erased, name)
		step(name, OutcomeErased)
	}

	c.Commit(ctx, batch)

	c.logger.Info("reconciliation pass complete",
		zap.Int("configured", len(report.Configured)),
		zap.Int("unchanged", len(report.Unchanged)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failed", len(report.Failed)),
		zap.Int("erased", len(report.Erased)),
	)
	return report
}
