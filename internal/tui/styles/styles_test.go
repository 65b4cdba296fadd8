package styles

import "testing"

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("high-contrast"); got.Name != "high-contrast" {
		t.Fatalf("expected high-contrast theme, got %q", got.Name)
	}
	if got := ThemeByName("neon"); got.Name != DefaultTheme.Name {
		t.Fatalf("expected default theme for unknown name, got %q", got.Name)
	}
}

func TestForThemeUsesPalette(t *testing.T) {
	styleSet := ForTheme("high-contrast")
	if styleSet.Theme.Tokens.Text != HighContrastTheme.Tokens.Text {
		t.Fatalf("expected high-contrast tokens, got %+v", styleSet.Theme.Tokens)
	}
}

func TestPalettesDefineEveryToken(t *testing.T) {
	for name, theme := range Themes {
		tokens := theme.Tokens
		for role, value := range map[string]string{
			"Background":   tokens.Background,
			"Text":         tokens.Text,
			"TextMuted":    tokens.TextMuted,
			"Accent":       tokens.Accent,
			"Focus":        tokens.Focus,
			"Selected":     tokens.Selected,
			"OutputBorder": tokens.OutputBorder,
			"Error":        tokens.Error,
		} {
			if value == "" {
				t.Errorf("theme %s: missing %s color", name, role)
			}
		}
	}
}
