package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/deskkit/internal/tui/styles"
)

func samplePalette() *TemplatePalette {
	palette := NewTemplatePalette()
	palette.SetItems([]PaletteItem{
		{ID: "password-reset", Name: "Password Reset", Fields: []string{"name", "ticket"}},
		{ID: "outage", Name: "Service Outage", Fields: []string{"service"}},
		{ID: "closure", Name: "Ticket Closure", Fields: []string{"name"}},
	})
	return palette
}

func TestTemplatePaletteFilter(t *testing.T) {
	palette := samplePalette()

	palette.AppendQuery("ticket")
	visible := palette.Visible()
	require.Len(t, visible, 2)
	require.Equal(t, "password-reset", visible[0].ID)
	require.Equal(t, "closure", visible[1].ID)

	palette.AppendQuery(" clos")
	require.Len(t, palette.Visible(), 1)

	palette.Backspace()
	palette.Backspace()
	palette.Backspace()
	palette.Backspace()
	palette.Backspace()
	require.Equal(t, "ticket", palette.Query)
	require.Len(t, palette.Visible(), 2)
}

func TestTemplatePaletteMoveWraps(t *testing.T) {
	palette := samplePalette()

	palette.Move(-1)
	require.Equal(t, 2, palette.Index)
	palette.Move(1)
	require.Equal(t, 0, palette.Index)
	palette.Move(1)
	require.Equal(t, "outage", palette.Current().ID)
}

func TestTemplatePaletteClampOnShrink(t *testing.T) {
	palette := samplePalette()
	palette.Index = 2

	palette.SetItems([]PaletteItem{{ID: "only", Name: "Only"}})
	require.Equal(t, 0, palette.Index)
	require.Equal(t, "only", palette.Current().ID)

	palette.SetItems(nil)
	require.Nil(t, palette.Current())
}

func TestTemplatePaletteRender(t *testing.T) {
	styleSet := styles.DefaultStyles()
	palette := samplePalette()
	palette.Selected = "outage"

	out := strings.Join(palette.Render(styleSet, true), "\n")
	require.Contains(t, out, "TEMPLATES")
	require.Contains(t, out, "Password Reset")
	require.Contains(t, out, "* Service Outage")

	palette.AppendQuery("nothing-matches")
	out = strings.Join(palette.Render(styleSet, true), "\n")
	require.Contains(t, out, "No templates match 'nothing-matches'")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	require.Equal(t, "ab", truncate("abcdef", 2))
	require.Equal(t, "héllo", truncate("héllo", 5))
}
