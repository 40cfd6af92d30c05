package lifecycle

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Regenerator rebuilds the aggregate driver configuration consumed by the
// monitoring daemon. It is invoked exactly once per commit, between
// stopping removed drivers and restarting changed ones.
type Regenerator interface {
	Run(ctx context.Context) error
}

// AggregateRebuilder is the native Regenerator: it concatenates every
// per-device config file from the store directory into one ups.conf,
// preceded by a fixed header.
type AggregateRebuilder struct {
	// StoreDir is the per-device config store to read from.
	StoreDir string

	// OutPath is the aggregate file to write, typically /etc/nut/ups.conf.
	OutPath string

	logger *zap.Logger
}

const aggregateHeader = "# This file is generated by nutsmith. Do not edit;\n" +
	"# per-device sources live in the device store directory.\n\n"

// NewAggregateRebuilder creates the native aggregate-config rebuilder.
func NewAggregateRebuilder(storeDir, outPath string, logger *zap.Logger) *AggregateRebuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AggregateRebuilder{StoreDir: storeDir, OutPath: outPath, logger: logger}
}

// Run rebuilds the aggregate file from the store. Unreadable device files
// are skipped with a warning so one bad file cannot block the rest of the
// fleet.
func (a *AggregateRebuilder) Run(ctx context.Context) error {
	entries, err := os.ReadDir(a.StoreDir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading device store %s: %w", a.StoreDir, err)
	}

	var b strings.Builder
	b.WriteString(aggregateHeader)
	devices := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(a.StoreDir, entry.Name()))
		if err != nil {
			a.logger.Warn("skipping unreadable device config",
				zap.String("device", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		b.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		devices++
	}

	if err := os.MkdirAll(filepath.Dir(a.OutPath), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(a.OutPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", a.OutPath, err)
	}

	a.logger.Info("aggregate config rebuilt",
		zap.String("path", a.OutPath),
		zap.Int("devices", devices),
	)
	return nil
}

// HelperCommand is a Regenerator that delegates to an external
// regeneration helper (a script or binary taking no arguments).
type HelperCommand struct {
	// Argv is the helper command line, e.g. {"sudo", "nut-rebuild"}.
	Argv []string

	// Timeout bounds one helper invocation. Zero means no extra bound
	// beyond the caller's context.
	Timeout time.Duration

	logger *zap.Logger
}

// NewHelperCommand creates an external-helper regenerator.
func NewHelperCommand(argv []string, timeout time.Duration, logger *zap.Logger) *HelperCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HelperCommand{Argv: argv, Timeout: timeout, logger: logger}
}

// Run executes the helper once.
func (h *HelperCommand) Run(ctx context.Context) error {
	if len(h.Argv) == 0 {
		return fmt.Errorf("regeneration helper command is empty")
	}

	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, h.Argv[0], h.Argv[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		h.logger.Error("regeneration helper failed",
			zap.Strings("argv", h.Argv),
			zap.String("output", strings.TrimSpace(string(output))),
			zap.Error(err),
		)
		return fmt.Errorf("regeneration helper %s: %w", h.Argv[0], err)
	}

	h.logger.Info("regeneration helper ok", zap.Strings("argv", h.Argv))
	return nil
}
