package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the TUI palette. LEDOn and LEDOff color the pin glyph; Running
// and Paused color the state readout. Background fills the active tab.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	LEDOn      lipgloss.Color
	LEDOff     lipgloss.Color
	Running    lipgloss.Color
	Paused     lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"),
		Secondary:  lipgloss.Color("#00ffff"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#1a0a1a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		LEDOn:      lipgloss.Color("#ff2050"), // red 5mm LED
		LEDOff:     lipgloss.Color("#4a1020"),
		Running:    lipgloss.Color("#00ff00"),
		Paused:     lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#002200"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		LEDOn:      lipgloss.Color("#ccffcc"),
		LEDOff:     lipgloss.Color("#003300"),
		Running:    lipgloss.Color("#88ff88"),
		Paused:     lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#222222"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		LEDOn:      lipgloss.Color("#ffffff"),
		LEDOff:     lipgloss.Color("#444444"),
		Running:    lipgloss.Color("#ffffff"),
		Paused:     lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		LEDOn:      lipgloss.Color("#40c0ff"), // blue LED
		LEDOff:     lipgloss.Color("#0a2a44"),
		Running:    lipgloss.Color("#00ff88"),
		Paused:     lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"),
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		LEDOn:      lipgloss.Color("#ffb020"), // amber LED
		LEDOff:     lipgloss.Color("#4a3020"),
		Running:    lipgloss.Color("#5fd068"),
		Paused:     lipgloss.Color("#ff4757"),
	}

	// Themes is the cycle order for the t key.
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after current, wrapping around.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
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
