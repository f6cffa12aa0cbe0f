package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used to draw lyrics and the footer.
type Theme struct {
	Name    string
	Faint   lipgloss.Style
	Matched lipgloss.Style
	Current lipgloss.Style
	Context lipgloss.Style
	Idle    lipgloss.Style
	Footer  lipgloss.Style
	Title   lipgloss.Style
}

var themes = map[string]Theme{
	"classic": classicTheme(),
	"mono":    monoTheme(),
}

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "classic"

func classicTheme() Theme {
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("#b0c4de")).Faint(true)
	return Theme{
		Name:    "classic",
		Faint:   faint,
		Matched: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		Current: faint.Copy().Underline(true),
		Context: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffeb3b")).Faint(true),
		Idle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		Footer:  lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")),
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ffeb3b")).Bold(true),
	}
}

func monoTheme() Theme {
	faint := lipgloss.NewStyle().Faint(true)
	return Theme{
		Name:    "mono",
		Faint:   faint,
		Matched: lipgloss.NewStyle().Bold(true),
		Current: faint.Copy().Underline(true),
		Context: faint.Copy(),
		Idle:    faint.Copy(),
		Footer:  faint.Copy(),
		Title:   lipgloss.NewStyle().Bold(true),
	}
}

// ThemeByName looks up a theme.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames lists the available themes in sorted order.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
