package styles

import "github.com/charmbracelet/lipgloss"

// Styles contains lipgloss styles derived from theme tokens.
type Styles struct {
	Theme       Theme
	Title       lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	Accent      lipgloss.Style
	Panel       lipgloss.Style
	Border      lipgloss.Style
	Focus       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Selected    lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Output      lipgloss.Style
}

// DefaultStyles builds styles from the default theme.
func DefaultStyles() Styles {
	return BuildStyles(DefaultTheme)
}

// BuildStyles converts theme tokens into lipgloss styles.
func BuildStyles(theme Theme) Styles {
	tokens := theme.Tokens

	return Styles{
		Theme:       theme,
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Panel:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Background(lipgloss.Color(tokens.Panel)).BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(tokens.Border)),
		Border:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Border)),
		Focus:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Focus)).Bold(true),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Error)),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Selected)),
		TabActive:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Background)).Background(lipgloss.Color(tokens.Accent)).Bold(true).Padding(0, 1),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)).Padding(0, 1),
		Output:      lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.OutputBorder)).Padding(0, 1),
	}
}

// ForTheme builds styles for the named theme, falling back to the default.
func ForTheme(name string) Styles {
	return BuildStyles(ThemeByName(name))
}
