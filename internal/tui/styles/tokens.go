// Package styles holds the TUI color palettes and the lipgloss styles built
// from them.
package styles

// ThemeTokens defines the semantic color roles for the TUI.
type ThemeTokens struct {
	Background string
	Panel      string
	Text       string
	TextMuted  string
	Border     string
	Accent     string
	Focus      string
	// Selected marks chosen rows such as toggled subscriptions.
	Selected string
	// OutputBorder frames generated text.
	OutputBorder string
	Success      string
	Warning      string
	Error        string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	"default":       DefaultTheme,
	"high-contrast": HighContrastTheme,
}

// ThemeByName returns the named palette, or DefaultTheme when unknown.
func ThemeByName(name string) Theme {
	if theme, ok := Themes[name]; ok {
		return theme
	}
	return DefaultTheme
}
