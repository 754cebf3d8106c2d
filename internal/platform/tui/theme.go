package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles of the picker and results screens.
type Theme struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Cleared     lipgloss.Style
	Breached    lipgloss.Style
	Controls    lipgloss.Style
	Border      lipgloss.Style
	Empty       lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cleared:     lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		Breached:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4),
	}
}

// centerText pads text to the middle of a line of the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
