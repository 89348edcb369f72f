package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colours of the curve view and side panel.
type Theme struct {
	Name    string
	Curve   lipgloss.Color
	Tangent lipgloss.Color
	Anchor  lipgloss.Color
	Spring  lipgloss.Color
	Target  lipgloss.Color
	Grid    lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name:    "neon",
		Curve:   lipgloss.Color("#00d4ff"),
		Tangent: lipgloss.Color("#67f105"),
		Anchor:  lipgloss.Color("#00d4ff"),
		Spring:  lipgloss.Color("#ffcc00"),
		Target:  lipgloss.Color("#ff66aa"),
		Grid:    lipgloss.Color("#282832"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666688"),
		Accent:  lipgloss.Color("#ff00ff"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Curve:   lipgloss.Color("#00ff00"),
		Tangent: lipgloss.Color("#88ff88"),
		Anchor:  lipgloss.Color("#00cc00"),
		Spring:  lipgloss.Color("#ffff00"),
		Target:  lipgloss.Color("#005500"),
		Grid:    lipgloss.Color("#002200"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#88ff88"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Curve:   lipgloss.Color("#ffffff"),
		Tangent: lipgloss.Color("#888888"),
		Anchor:  lipgloss.Color("#cccccc"),
		Spring:  lipgloss.Color("#0088ff"),
		Target:  lipgloss.Color("#444444"),
		Grid:    lipgloss.Color("#222222"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Accent:  lipgloss.Color("#0088ff"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Curve:   lipgloss.Color("#ff6b6b"),
		Tangent: lipgloss.Color("#feca57"),
		Anchor:  lipgloss.Color("#ff9ff3"),
		Spring:  lipgloss.Color("#5fd068"),
		Target:  lipgloss.Color("#8b6b8c"),
		Grid:    lipgloss.Color("#2d1b2e"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Accent:  lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeNeon,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to neon.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// LayerStyles maps canvas layers to foreground styles for t.
func (t Theme) LayerStyles() map[Layer]lipgloss.Style {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return map[Layer]lipgloss.Style{
		LayerGrid:    fg(t.Grid),
		LayerTangent: fg(t.Tangent),
		LayerCurve:   fg(t.Curve).Bold(true),
		LayerTarget:  fg(t.Target),
		LayerAnchor:  fg(t.Anchor).Bold(true),
		LayerSpring:  fg(t.Spring).Bold(true),
	}
}
