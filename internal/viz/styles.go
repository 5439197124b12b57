package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles are derived from the active theme on every render.
type styles struct {
	title, subtle      lipgloss.Style
	tabActive, tabIdle lipgloss.Style
	panel              lipgloss.Style
	label, value       lipgloss.Style
	ledOn, ledOff      lipgloss.Style
	running, paused    lipgloss.Style
	key, hint          lipgloss.Style
	strip, arrow       lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		subtle: lipgloss.NewStyle().Foreground(t.Muted),
		tabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary).
			Background(t.Background).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(t.Primary).
			Padding(0, 2),
		tabIdle: lipgloss.NewStyle().
			Foreground(t.Muted).
			Border(lipgloss.RoundedBorder(), true, true, false, true).
			BorderForeground(t.Muted).
			Padding(0, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(1, 2),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		ledOn:   lipgloss.NewStyle().Bold(true).Foreground(t.LEDOn),
		ledOff:  lipgloss.NewStyle().Foreground(t.LEDOff),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
		key:     lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		strip:   lipgloss.NewStyle().Foreground(t.Text),
		arrow:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
	}
}

// keyHints renders "key desc" pairs separated by two spaces.
func (s styles) keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.key.Render(pairs[i]))
		b.WriteString(s.hint.Render(" " + pairs[i+1]))
	}
	return b.String()
}

// separator draws a rule with a diamond in the middle.
func (s styles) separator(width int) string {
	if width < 8 {
		return s.subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.subtle.Render(left + " ◆ " + right)
}
