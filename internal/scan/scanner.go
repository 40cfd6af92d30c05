package scan

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/nutsmith/internal/stanza"
)

// Scanner probes one device address for driver-configuration candidates.
// Implementations are synchronous; the engine waits for each probe before
// moving on.
type Scanner interface {
	// SNMP probes the address with one community string and returns the
	// candidate stanzas found, retagged with the device name.
	SNMP(ctx context.Context, name, address, community string) ([]stanza.Candidate, error)

	// XMLHTTP probes the address for an XML/HTTP (netxml-ups) endpoint.
	XMLHTTP(ctx context.Context, name, address string) ([]stanza.Candidate, error)
}

// Config holds the configuration for nut-scanner execution.
type Config struct {
	// Path is the nut-scanner binary.
	// Default: "nut-scanner" (searches PATH)
	Path string

	// Timeout is the network timeout passed to nut-scanner, and doubles
	// (plus slack) as the subprocess deadline.
	// Default: 5 seconds
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Path:    "nut-scanner",
		Timeout: 5 * time.Second,
	}
}

// NutScanner runs the nut-scanner binary via os/exec.
type NutScanner struct {
	config Config
	logger *zap.Logger
}

// NewNutScanner creates a scanner backed by the nut-scanner binary.
func NewNutScanner(config Config, logger *zap.Logger) *NutScanner {
	if config.Path == "" {
		config.Path = "nut-scanner"
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NutScanner{config: config, logger: logger}
}

// SNMP probes the address over SNMP v1 with the given community.
func (n *NutScanner) SNMP(ctx context.Context, name, address, community string) ([]stanza.Candidate, error) {
	args := []string{
		"-q", "-S",
		"-s", address,
		"-e", address,
		"-c", community,
		"-t", strconv.Itoa(int(n.config.Timeout.Seconds())),
	}
	return n.run(ctx, name, args)
}

// XMLHTTP probes the address for a netxml-ups endpoint.
func (n *NutScanner) XMLHTTP(ctx context.Context, name, address string) ([]stanza.Candidate, error) {
	args := []string{
		"-q", "-M",
		"-s", address,
		"-e", address,
		"-t", strconv.Itoa(int(n.config.Timeout.Seconds())),
	}
	return n.run(ctx, name, args)
}

func (n *NutScanner) run(ctx context.Context, name string, args []string) ([]stanza.Candidate, error) {
	// Subprocess deadline: the scan timeout applies per probed protocol
	// inside nut-scanner, so leave headroom rather than cutting it exact.
	ctx, cancel := context.WithTimeout(ctx, 2*n.config.Timeout+10*time.Second)
	defer cancel()

	n.logger.Debug("running nut-scanner",
		zap.String("path", n.config.Path),
		zap.Strings("args", args),
	)

	cmd := exec.CommandContext(ctx, n.config.Path, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// nut-scanner exits non-zero when nothing was found on some
		// builds; treat output-less failure as a scan error, but parse
		// whatever it did emit.
		if stdout.Len() == 0 {
			return nil, &ScanError{
				Device: name,
				Args:   args,
				Stderr: stderr.String(),
				Err:    err,
			}
		}
		n.logger.Debug("nut-scanner exited non-zero with output",
			zap.String("device", name),
			zap.Error(err),
		)
	}

	candidates := ParseOutput(stdout.String(), name)
	n.logger.Debug("nut-scanner output parsed",
		zap.String("device", name),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// ParseOutput splits nut-scanner stdout into candidate stanzas and retags
// each with the device name. nut-scanner names stanzas nutdev1, nutdev2,
// ... which mean nothing to the monitoring daemon; the asset name is the
// device tag everywhere downstream.
func ParseOutput(output, name string) []stanza.Candidate {
	var candidates []stanza.Candidate
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			candidates = append(candidates, stanza.Candidate(current.String()).Retag(name))
			current.Reset()
		}
	}

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "[") {
			flush()
		} else if current.Len() == 0 {
			// Stray line before any header (banner noise); skip it.
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	flush()

	return candidates
}

// ScanError reports a failed nut-scanner invocation.
type ScanError struct {
	// Device is the asset being scanned
	Device string
	// Args is the nut-scanner argument list
	Args []string
	// Stderr is the scanner's stderr output
	Stderr string
	// Underlying error
	Err error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("nut-scanner failed for device %q: %v\nstderr: %s",
		e.Device, e.Err, strings.TrimSpace(e.Stderr))
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
