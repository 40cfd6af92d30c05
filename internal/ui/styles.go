package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for nutsmith terminal output
var (
	PrimaryColor = lipgloss.Color("#2D9CDB") // Blue - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - configured, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - failures
	WarningColor = lipgloss.Color("#FFA500") // Orange - skipped, warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - unchanged, secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles
var (
	// HeaderTitleStyle is for the banner title (e.g., "RECONCILIATION PASS")
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				PaddingLeft(2)

	// HeaderCommandStyle is for the invoked command (e.g., "nutsmith reconcile")
	HeaderCommandStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamKeyStyle is for banner parameter keys (e.g., "Config:")
	HeaderParamKeyStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamValueStyle is for banner parameter values
	HeaderParamValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// DeviceNameStyle is for device names in pass output
	DeviceNameStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// OutcomeConfiguredStyle marks a newly written config
	OutcomeConfiguredStyle = lipgloss.NewStyle().
				Foreground(SuccessColor)

	// OutcomeUnchangedStyle marks an up-to-date config
	OutcomeUnchangedStyle = lipgloss.NewStyle().
				Foreground(MutedColor)

	// OutcomeSkippedStyle marks a device without an address
	OutcomeSkippedStyle = lipgloss.NewStyle().
				Foreground(WarningColor)

	// OutcomeFailedStyle marks a device with no usable candidates
	OutcomeFailedStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	// SummaryTitleStyle is for the pass summary title
	SummaryTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	// SummaryKeyStyle is for summary detail keys
	SummaryKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(14)

	// SummaryValueStyle is for summary detail values
	SummaryValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// ErrorTitleStyle is for failure banners
	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// NoteStyle is for parenthesized notes after a device line
	NoteStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// Outcome markers used in pass output
const (
	MarkerConfigured = "✓"
	MarkerUnchanged  = "="
	MarkerSkipped    = "·"
	MarkerFailed     = "✗"
	MarkerErased     = "−"
	MarkerRunning    = "●"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}

// HeaderBorderStyle returns the border style for command banners
func HeaderBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2)
}

// SummaryBoxStyle returns the border style for pass summary boxes
func SummaryBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(SuccessColor).
		Width(width - 2).
		Padding(1, 2)
}

// ErrorBoxStyle returns the border style for failure boxes
func ErrorBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ErrorColor).
		Width(width - 2).
		Padding(1, 2)
}
