package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// DeviceState represents what happened to one device during a pass
type DeviceState int

const (
	DevicePending    DeviceState = iota // Not yet processed
	DeviceRunning                       // Currently being probed
	DeviceConfigured                    // New or changed config written
	DeviceUnchanged                     // Config already up to date
	DeviceSkipped                       // No address, nothing to probe
	DeviceFailed                        // No usable candidates
	DeviceErased                        // Stale config removed
)

// DeviceLine is a single device row in the pass display
type DeviceLine struct {
	Name    string      // Asset name
	State   DeviceState // Current state
	Message string      // Optional note (e.g., "no address", "2 candidates")
}

// PassProgress renders a progress bar and per-device line list for a
// reconciliation pass.
type PassProgress struct {
	Label   string       // e.g., "Reconciling 4 devices..."
	Devices []DeviceLine // Rows, one per device
	Done    int          // Devices processed so far
	Total   int          // Total devices in the pass
	Width   int          // Terminal width
	bar     progress.Model
}

// NewPassProgress creates a progress display for total devices
func NewPassProgress(label string, total int) *PassProgress {
	return &PassProgress{
		Label: label,
		Total: total,
		Width: GetTerminalWidth(),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth(GetTerminalWidth())),
		),
	}
}

func barWidth(width int) int {
	w := width - 20
	if w < 20 {
		w = 20
	}
	if w > 50 {
		w = 50
	}
	return w
}

// SetWidth sets the terminal width for responsive rendering
func (p *PassProgress) SetWidth(width int) *PassProgress {
	p.Width = width
	p.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth(width)),
	)
	return p
}

// Observe records the final state of one device and advances the bar.
func (p *PassProgress) Observe(name string, state DeviceState, message string) {
	p.Devices = append(p.Devices, DeviceLine{Name: name, State: state, Message: message})
	if state != DevicePending && state != DeviceRunning {
		p.Done++
	}
}

// Percent returns pass completion as 0.0 to 1.0
func (p *PassProgress) Percent() float64 {
	if p.Total == 0 {
		return 1
	}
	return float64(p.Done) / float64(p.Total)
}

// Render returns the full progress display
func (p *PassProgress) Render() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(TextColor).PaddingLeft(2).Render(p.Label))
		b.WriteString("\n\n")
	}

	b.WriteString(p.renderBar())
	b.WriteString("\n\n")

	for _, line := range p.Devices {
		b.WriteString(RenderDeviceLine(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (p *PassProgress) renderBar() string {
	percent := p.Percent()
	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(fmt.Sprintf("%s  %3.0f%%  [%d/%d]", p.bar.ViewAs(percent), percent*100, p.Done, p.Total))
}

// RenderDeviceLine renders one device row with its outcome marker.
func RenderDeviceLine(line DeviceLine) string {
	var marker string
	var style lipgloss.Style

	switch line.State {
	case DeviceConfigured:
		marker, style = MarkerConfigured, OutcomeConfiguredStyle
	case DeviceUnchanged:
		marker, style = MarkerUnchanged, OutcomeUnchangedStyle
	case DeviceSkipped:
		marker, style = MarkerSkipped, OutcomeSkippedStyle
	case DeviceFailed:
		marker, style = MarkerFailed, OutcomeFailedStyle
	case DeviceErased:
		marker, style = MarkerErased, OutcomeUnchangedStyle
	case DeviceRunning:
		marker, style = MarkerRunning, OutcomeSkippedStyle
	default:
		marker, style = MarkerSkipped, OutcomeUnchangedStyle
	}

	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(style.Render(marker))
	b.WriteString(" ")
	b.WriteString(DeviceNameStyle.Render(line.Name))

	nameLen := lipgloss.Width(line.Name)
	padding := 30 - nameLen
	if padding < 1 {
		padding = 1
	}
	b.WriteString(strings.Repeat(" ", padding))
	b.WriteString(style.Render(stateWord(line.State)))

	if line.Message != "" {
		b.WriteString("  ")
		b.WriteString(NoteStyle.Render("(" + line.Message + ")"))
	}

	return b.String()
}

func stateWord(state DeviceState) string {
	switch state {
	case DeviceConfigured:
		return "configured"
	case DeviceUnchanged:
		return "unchanged"
	case DeviceSkipped:
		return "skipped"
	case DeviceFailed:
		return "failed"
	case DeviceErased:
		return "erased"
	case DeviceRunning:
		return "probing"
	default:
		return "pending"
	}
}

// String implements fmt.Stringer
func (p *PassProgress) String() string {
	return p.Render()
}
