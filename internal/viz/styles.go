package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HUDWidth is the number of columns the side panel takes.
const HUDWidth = 36

type styles struct {
	panel   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	graph   lipgloss.Style
	keyHint lipgloss.Style
	status  lipgloss.Style
	warn    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 1).
			Width(HUDWidth - 1),
		title:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		graph:   lipgloss.NewStyle().Foreground(t.Accent),
		keyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		status:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		warn:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
	}
}

// ProgressBar renders a bar filled to percent of width.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Separator is a decorative rule.
func Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return strings.Repeat("─", width)
	}
	return strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3)
}
