package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmDestructiveOperation displays a warning box and prompts the user
// to type the given phrase to proceed. Returns true if the user confirmed.
func ConfirmDestructiveOperation(title string, warnings []string, phrase string) bool {
	width := GetTerminalWidth()
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string

	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render(fmt.Sprintf("   ⚠  WARNING  ─  %s", title))
	lines = append(lines, "")
	lines = append(lines, titleLine)
	lines = append(lines, "")

	bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
	for _, warning := range warnings {
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))

	fmt.Println(box)
	fmt.Println()

	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	fmt.Print(promptStyle.Render(fmt.Sprintf("To proceed, type %q and press Enter: ", phrase)))

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return false
	}

	if strings.TrimSpace(input) == phrase {
		fmt.Println()
		return true
	}

	fmt.Println()
	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	fmt.Println(cancelStyle.Render("  Operation cancelled."))
	fmt.Println()
	return false
}

// ConfirmErase is a pre-configured confirmation for erasing a device's
// configuration. The user must type the device name to proceed.
func ConfirmErase(name string) bool {
	return ConfirmDestructiveOperation(
		"ERASE DEVICE CONFIGURATION",
		[]string{
			fmt.Sprintf("The stored configuration for %q will be removed", name),
			"Its driver instance will be stopped and disabled",
			"The aggregate driver config will be regenerated without it",
		},
		name,
	)
}
