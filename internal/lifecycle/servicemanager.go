package lifecycle

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Operation is a service-manager lifecycle operation.
type Operation string

const (
	OpEnable          Operation = "enable"
	OpDisable         Operation = "disable"
	OpStart           Operation = "start"
	OpStop            Operation = "stop"
	OpRestart         Operation = "restart"
	OpReloadOrRestart Operation = "reload-or-restart"
)

// ServiceManager applies lifecycle operations to named service units.
// Implementations must treat an empty unit set as a no-op.
type ServiceManager interface {
	Apply(ctx context.Context, op Operation, units []string) error
}

// SystemdConfig configures the systemctl-backed service manager.
type SystemdConfig struct {
	// Sudo prefixes every systemctl invocation with sudo. Needed when the
	// process does not run as root.
	// Default: true
	Sudo bool

	// Timeout is the maximum time to wait for one systemctl invocation.
	// Default: 90 seconds (systemd's own default job timeout)
	Timeout time.Duration
}

// DefaultSystemdConfig returns a SystemdConfig with sensible defaults.
func DefaultSystemdConfig() SystemdConfig {
	return SystemdConfig{
		Sudo:    true,
		Timeout: 90 * time.Second,
	}
}

// Systemd drives service units via the systemctl binary.
type Systemd struct {
	config SystemdConfig
	logger *zap.Logger
}

// NewSystemd creates a systemctl-backed service manager.
func NewSystemd(config SystemdConfig, logger *zap.Logger) *Systemd {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Systemd{config: config, logger: logger}
}

// Apply runs one systemctl operation over the given units in a single
// invocation. An empty unit set is a no-op.
func (s *Systemd) Apply(ctx context.Context, op Operation, units []string) error {
	if len(units) == 0 {
		return nil
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	argv := systemctlArgv(s.config.Sudo, op, units)
	s.logger.Debug("running systemctl",
		zap.Strings("argv", argv),
	)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		s.logger.Error("systemctl failed",
			zap.String("operation", string(op)),
			zap.Strings("units", units),
			zap.String("output", strings.TrimSpace(string(output))),
			zap.Error(err),
		)
		return &ServiceError{Operation: op, Units: units, Output: string(output), Err: err}
	}

	s.logger.Info("systemctl ok",
		zap.String("operation", string(op)),
		zap.Strings("units", units),
	)
	return nil
}

// systemctlArgv builds the command line for one operation. Split out so
// argument construction is testable without running anything.
func systemctlArgv(sudo bool, op Operation, units []string) []string {
	argv := make([]string, 0, len(units)+3)
	if sudo {
		argv = append(argv, "sudo")
	}
	argv = append(argv, "systemctl", string(op))
	argv = append(argv, units...)
	return argv
}

// ServiceError reports a failed service-manager invocation.
type ServiceError struct {
	// Operation is the lifecycle operation that failed
	Operation Operation
	// Units are the affected unit names
	Units []string
	// Output is the combined stdout/stderr of the invocation
	Output string
	// Underlying error
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("systemctl %s failed for units %s: %v",
		e.Operation, strings.Join(e.Units, ", "), e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// DryRun is a ServiceManager that logs intended operations without
// executing anything. Used by the --dry-run CLI mode and by tests.
type DryRun struct {
	logger *zap.Logger

	// Ops records every applied operation in order.
	Ops []AppliedOp
}

// AppliedOp is one recorded ServiceManager call.
type AppliedOp struct {
	Op    Operation
	Units []string
}

// NewDryRun creates a recording, non-executing service manager.
func NewDryRun(logger *zap.Logger) *DryRun {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRun{logger: logger}
}

// Apply records the operation. Empty unit sets are skipped, matching the
// real implementation's no-op contract.
func (d *DryRun) Apply(_ context.Context, op Operation, units []string) error {
	if len(units) == 0 {
		return nil
	}
	d.logger.Info("dry-run: would run systemctl",
		zap.String("operation", string(op)),
		zap.Strings("units", units),
	)
	d.Ops = append(d.Ops, AppliedOp{Op: op, Units: units})
	return nil
}
