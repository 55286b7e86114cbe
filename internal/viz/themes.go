package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the canvas and the side panel.
type Theme struct {
	Name   string
	Fish   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Alert  lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:   "ocean",
		Fish:   lipgloss.Color("#7fdbff"),
		Accent: lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Alert:  lipgloss.Color("#ff5f57"),
	}

	ThemeReef = Theme{
		Name:   "reef",
		Fish:   lipgloss.Color("#ffb86c"),
		Accent: lipgloss.Color("#ff79c6"),
		Text:   lipgloss.Color("#f8f8f2"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Alert:  lipgloss.Color("#ff4757"),
	}

	ThemeMono = Theme{
		Name:   "mono",
		Fish:   lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Alert:  lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{ThemeOcean, ThemeReef, ThemeMono}
)

// GetTheme returns the named theme, falling back to ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
