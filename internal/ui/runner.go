package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// PassRunnerConfig holds the display configuration for one command run
type PassRunnerConfig struct {
	Title        string            // Banner title (e.g., "Reconciliation Pass")
	Command      string            // Invoked command (e.g., "nutsmith reconcile")
	Params       map[string]string // Parameters for the banner
	TotalDevices int               // Devices in the pass (for the progress bar)
	Output       io.Writer         // Output writer (default: os.Stdout)
}

// DeviceCallback reports one device's outcome to the display.
type DeviceCallback func(name string, state DeviceState, message string)

// PassOperation is the work executed under the runner. It reports each
// device via onDevice and returns summary details for the result box.
type PassOperation func(onDevice DeviceCallback) (map[string]string, error)

// PassRunner orchestrates the banner, per-device lines, and summary box
// around a device pass.
type PassRunner struct {
	config    PassRunnerConfig
	header    *Header
	progress  *PassProgress
	output    io.Writer
	startTime time.Time
	width     int
}

// NewPassRunner creates a runner for a device pass
func NewPassRunner(config PassRunnerConfig) *PassRunner {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	width := GetTerminalWidth()
	header := NewHeader(config.Title, config.Command, config.Params)
	header.SetWidth(width)

	var prog *PassProgress
	if config.TotalDevices > 0 {
		prog = NewPassProgress("", config.TotalDevices)
		prog.SetWidth(width)
	}

	return &PassRunner{
		config:   config,
		header:   header,
		progress: prog,
		output:   config.Output,
		width:    width,
	}
}

// Run executes the operation with live display updates. Device lines are
// printed as outcomes arrive, then a summary or failure box closes the run.
func (r *PassRunner) Run(ctx context.Context, operation PassOperation) error {
	r.startTime = time.Now()

	fmt.Fprintln(r.output, r.header.Render())
	fmt.Fprintln(r.output)

	details, err := operation(func(name string, state DeviceState, message string) {
		if r.progress != nil {
			r.progress.Observe(name, state, message)
		}
		fmt.Fprintln(r.output, RenderDeviceLine(DeviceLine{Name: name, State: state, Message: message}))
	})

	duration := time.Since(r.startTime)
	fmt.Fprintln(r.output)

	if r.progress != nil {
		fmt.Fprintln(r.output, r.progress.renderBar())
		fmt.Fprintln(r.output)
	}

	if err != nil {
		fmt.Fprintln(r.output, renderFailureBox(r.width, r.config.Title, err, duration))
		return err
	}
	fmt.Fprintln(r.output, renderSummaryBox(r.width, r.config.Title, details, duration))
	return nil
}

func renderSummaryBox(width int, title string, details map[string]string, duration time.Duration) string {
	var lines []string

	lines = append(lines, SummaryTitleStyle.Render(fmt.Sprintf("%s  %s complete", MarkerConfigured, title)))
	lines = append(lines, "")

	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		lines = append(lines, SummaryKeyStyle.Render(key+":")+" "+SummaryValueStyle.Render(details[key]))
	}

	lines = append(lines, "")
	lines = append(lines, NoteStyle.Render(fmt.Sprintf("Completed in %s", duration.Round(time.Millisecond))))

	return SummaryBoxStyle(width).Render(strings.Join(lines, "\n"))
}

func renderFailureBox(width int, title string, err error, duration time.Duration) string {
	var lines []string

	lines = append(lines, ErrorTitleStyle.Render(fmt.Sprintf("%s  %s failed", MarkerFailed, title)))
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(ErrorColor).Render(err.Error()))
	lines = append(lines, "")
	lines = append(lines, NoteStyle.Render(fmt.Sprintf("Failed after %s", duration.Round(time.Millisecond))))

	return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))
}
