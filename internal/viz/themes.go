package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the chrome around the chart. Curve colors always come from the
// page palette.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Axis      lipgloss.Color
	Compare   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeMeadow = Theme{
		Name:      "meadow",
		Primary:   lipgloss.Color("#629C47"),
		Secondary: lipgloss.Color("#B9BCF9"),
		Accent:    lipgloss.Color("#14b8a6"),
		Text:      lipgloss.Color("#E7EEEB"),
		Muted:     lipgloss.Color("#7a8a80"),
		Axis:      lipgloss.Color("#4b5563"),
		Compare:   lipgloss.Color("#9ca3af"),
		Warning:   lipgloss.Color("#f59e0b"),
		Error:     lipgloss.Color("#FF7B7B"),
	}

	ThemeNight = Theme{
		Name:      "night",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#ff00ff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Axis:      lipgloss.Color("#444466"),
		Compare:   lipgloss.Color("#8888aa"),
		Warning:   lipgloss.Color("#ff8800"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Axis:      lipgloss.Color("#555555"),
		Compare:   lipgloss.Color("#aaaaaa"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Axis:      lipgloss.Color("#335577"),
		Compare:   lipgloss.Color("#88aacc"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeMeadow,
		ThemeNight,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the first theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after the named one, wrapping around.
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
