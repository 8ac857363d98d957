// Package styles provides shared lipgloss styles for command output.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette using ANSI colors for broad terminal compatibility.
var (
	Primary = lipgloss.Color("4")   // Blue
	Success = lipgloss.Color("2")   // Green
	Warning = lipgloss.Color("3")   // Yellow
	Muted   = lipgloss.Color("245") // Light gray (visible on dark backgrounds)
)

// Text styles.
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Success)

	WarningText = lipgloss.NewStyle().
			Foreground(Warning)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// Rule returns a horizontal rule of the given width.
func Rule(width int) string {
	if width <= 0 {
		return ""
	}
	return MutedText.Render(strings.Repeat("=", width))
}
