package configurator

import (
	"context"

	"go.uber.org/zap"

	"github.com/muurk/nutsmith/internal/config"
	"github.com/muurk/nutsmith/internal/lifecycle"
	"github.com/muurk/nutsmith/internal/render"
	"github.com/muurk/nutsmith/internal/scan"
	"github.com/muurk/nutsmith/internal/selector"
	"github.com/muurk/nutsmith/internal/stanza"
	"github.com/muurk/nutsmith/internal/store"
)

// Options wires a Configurator's collaborators. Settings and Store are
// required; a nil Scanner limits the configurator to override-only
// devices, and a nil Logger is replaced with a nop logger.
type Options struct {
	Settings *config.Settings
	Store    *store.Store
	Scanner  scan.Scanner
	Services lifecycle.ServiceManager
	Regen    lifecycle.Regenerator
	Logger   *zap.Logger
}

// Configurator ties selection, rendering, change detection and unit
// lifecycle together. It holds no per-pass state itself: the Batch for a
// reconciliation pass is owned by the caller and threaded through
// Configure, Erase and Commit, so independent passes cannot trample each
// other's pending sets.
type Configurator struct {
	settings *config.Settings
	store    *store.Store
	scanner  scan.Scanner
	services lifecycle.ServiceManager
	regen    lifecycle.Regenerator
	logger   *zap.Logger
}

// New creates a Configurator from options.
func New(opts Options) *Configurator {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Configurator{
		settings: opts.Settings,
		store:    opts.Store,
		scanner:  opts.Scanner,
		services: opts.Services,
		regen:    opts.Regen,
		logger:   logger,
	}
}

// Outcome describes what Configure or Erase did for one device.
type Outcome string

const (
	// OutcomeConfigured: a new or changed config was written and the
	// driver unit is pending restart.
	OutcomeConfigured Outcome = "configured"

	// OutcomeUnchanged: the rendered config matches the stored one; no
	// write, no lifecycle action.
	OutcomeUnchanged Outcome = "unchanged"

	// OutcomeSkipped: the device has no address and no override; nothing
	// to do this pass. Reported as success.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed: no usable candidate was found; the caller should
	// retry the device on a later pass.
	OutcomeFailed Outcome = "failed"

	// OutcomeErased: the device's config was removed and its driver unit
	// is pending stop.
	OutcomeErased Outcome = "erased"
)

// Configure resolves, selects, renders and persists the driver config for
// one device, recording any needed unit restart in the batch.
//
// The return value is the retry contract: true means done for this pass
// (including the no-address skip), false means a transient failure worth
// retrying later, when a rescan may yield different candidates.
func (c *Configurator) Configure(ctx context.Context, batch *lifecycle.Batch, name string, device *config.Device) bool {
	_, ok := c.configure(ctx, batch, name, device)
	return ok
}

func (c *Configurator) configure(ctx context.Context, batch *lifecycle.Batch, name string, device *config.Device) (Outcome, bool) {
	candidates, outcome, ok := c.resolveCandidates(ctx, name, device)
	if !ok || outcome == OutcomeSkipped {
		return outcome, ok
	}

	chosen, ok := selector.SelectBest(candidates)
	if !ok {
		c.logger.Error("no suitable configuration found",
			zap.String("device", name),
			zap.Int("candidates", len(candidates)),
		)
		return OutcomeFailed, false
	}
	c.logger.Debug("candidate selected",
		zap.String("device", name),
		zap.Int("candidates", len(candidates)),
	)

	content := render.Render(chosen, c.settings.PollingInterval())

	if !c.store.NeedsWrite(name, content) {
		c.logger.Debug("config unchanged", zap.String("device", name))
		return OutcomeUnchanged, true
	}

	if err := c.store.Write(name, content); err != nil {
		// The intended state still drives the lifecycle set; the next
		// pass will retry the write since the fingerprints won't match.
		c.logger.Error("failed to write device config",
			zap.String("device", name),
			zap.String("path", c.store.Path(name)),
			zap.Error(err),
		)
	} else {
		c.logger.Info("device config written",
			zap.String("device", name),
			zap.String("path", c.store.Path(name)),
			zap.Int("bytes", len(content)),
		)
	}
	batch.MarkStart(c.settings.DriverUnit(name))
	return OutcomeConfigured, true
}

// resolveCandidates produces the discovery-ordered candidate set for a
// device: the explicit override when present, otherwise scan results.
func (c *Configurator) resolveCandidates(ctx context.Context, name string, device *config.Device) ([]stanza.Candidate, Outcome, bool) {
	if device.HasOverride() {
		ov := stanza.ParseOverride(device.UpsconfBlock)
		if ov.Body == "" {
			c.logger.Info("device has an empty explicit override, writing bare stanza",
				zap.String("device", name),
			)
		} else {
			c.logger.Info("device has an explicit override, skipping scan",
				zap.String("device", name),
				zap.Bool("own_header", ov.HasHeader),
			)
		}
		return []stanza.Candidate{ov.Stanza(name)}, "", true
	}

	if device == nil || device.Address == "" {
		// Treated as permanent success for this pass. A device that gains
		// an address later is only picked up because reconciliation keeps
		// running; nothing retries it eagerly.
		c.logger.Error("device has no address and no override",
			zap.String("device", name),
		)
		return nil, OutcomeSkipped, true
	}

	if c.scanner == nil {
		c.logger.Error("no scanner available for address-based device",
			zap.String("device", name),
		)
		return nil, OutcomeFailed, false
	}

	var candidates []stanza.Candidate
	for _, community := range c.settings.Communities(device) {
		found, err := c.scanner.SNMP(ctx, name, device.Address, community)
		if err != nil {
			c.logger.Warn("snmp scan failed",
				zap.String("device", name),
				zap.String("community", community),
				zap.Error(err),
			)
			continue
		}
		if len(found) > 0 {
			candidates = found
			break
		}
	}

	xml, err := c.scanner.XMLHTTP(ctx, name, device.Address)
	if err != nil {
		c.logger.Warn("xml/http scan failed",
			zap.String("device", name),
			zap.Error(err),
		)
	} else {
		candidates = append(candidates, xml...)
	}

	return candidates, "", true
}

// Erase removes the device's stored config (best effort) and records the
// pending unit stop in the batch. A failed delete is logged, never
// propagated: the unit stop must happen regardless.
func (c *Configurator) Erase(batch *lifecycle.Batch, name string) {
	c.logger.Info("removing device config",
		zap.String("device", name),
		zap.String("path", c.store.Path(name)),
	)
	if err := c.store.Remove(name); err != nil {
		c.logger.Error("failed to remove device config",
			zap.String("device", name),
			zap.Error(err),
		)
	}
	batch.MarkStop(c.settings.DriverUnit(name))
}

// Commit turns the batch's pending sets into service-manager operations,
// in fixed order: disable and stop removed drivers, regenerate the
// aggregate config, restart and enable changed drivers, then reload the
// server unit if anything moved. Every step runs regardless of earlier
// failures, and the batch is cleared unconditionally so the next pass
// starts clean.
func (c *Configurator) Commit(ctx context.Context, batch *lifecycle.Batch) {
	stop := batch.StopSet()
	start := batch.StartSet()
	defer batch.Clear()

	c.apply(ctx, lifecycle.OpDisable, stop)
	c.apply(ctx, lifecycle.OpStop, stop)

	if c.regen != nil {
		if err := c.regen.Run(ctx); err != nil {
			c.logger.Error("aggregate config regeneration failed", zap.Error(err))
		}
	}

	c.apply(ctx, lifecycle.OpRestart, start)
	c.apply(ctx, lifecycle.OpEnable, start)

	if len(stop) > 0 || len(start) > 0 {
		c.apply(ctx, lifecycle.OpReloadOrRestart, []string{c.settings.ServerUnit()})
	}
}

func (c *Configurator) apply(ctx context.Context, op lifecycle.Operation, units []string) {
	if c.services == nil || len(units) == 0 {
		return
	}
	if err := c.services.Apply(ctx, op, units); err != nil {
		// Already logged with detail by the service manager; keep going,
		// later steps must still run.
		c.logger.Warn("lifecycle step failed",
			zap.String("operation", string(op)),
			zap.Strings("units", units),
		)
	}
}
