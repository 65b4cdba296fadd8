// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/deskkit/internal/tui/styles"
)

// PaletteItem is one template entry in the palette.
type PaletteItem struct {
	ID     string
	Name   string
	Fields []string
}

// TemplatePalette stores state for the template picker. Items keep the order
// they were given in.
type TemplatePalette struct {
	Query    string
	Index    int
	Items    []PaletteItem
	Selected string
}

// NewTemplatePalette creates an empty palette.
func NewTemplatePalette() *TemplatePalette {
	return &TemplatePalette{}
}

// SetItems replaces the entries and keeps the cursor in range.
func (p *TemplatePalette) SetItems(items []PaletteItem) {
	p.Items = clonePaletteItems(items)
	p.ClampIndex()
}

// Reset clears the query and cursor.
func (p *TemplatePalette) Reset() {
	p.Query = ""
	p.Index = 0
}

// AppendQuery adds text to the filter.
func (p *TemplatePalette) AppendQuery(text string) {
	p.Query += text
	p.Index = 0
}

// Backspace removes the last rune of the filter.
func (p *TemplatePalette) Backspace() {
	runes := []rune(p.Query)
	if len(runes) == 0 {
		return
	}
	p.Query = string(runes[:len(runes)-1])
	p.Index = 0
}

// Move shifts the cursor, wrapping at both ends.
func (p *TemplatePalette) Move(delta int) {
	items := p.Visible()
	if len(items) == 0 {
		p.Index = 0
		return
	}
	if delta == 0 {
		return
	}
	idx := p.Index
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	idx += delta
	if idx < 0 {
		idx = len(items) - 1
	} else if idx >= len(items) {
		idx = 0
	}
	p.Index = idx
}

// ClampIndex ensures the cursor stays in bounds.
func (p *TemplatePalette) ClampIndex() {
	items := p.Visible()
	if len(items) == 0 {
		p.Index = 0
		return
	}
	if p.Index < 0 {
		p.Index = 0
	}
	if p.Index >= len(items) {
		p.Index = len(items) - 1
	}
}

// Current returns the entry under the cursor.
func (p *TemplatePalette) Current() *PaletteItem {
	items := p.Visible()
	if p.Index < 0 || p.Index >= len(items) {
		return nil
	}
	current := items[p.Index]
	return &current
}

// Visible returns the entries matching the query. Every whitespace-separated
// query token must appear in the name, id or field names.
func (p *TemplatePalette) Visible() []PaletteItem {
	tokens := strings.Fields(strings.ToLower(p.Query))
	if len(tokens) == 0 {
		return p.Items
	}
	filtered := make([]PaletteItem, 0, len(p.Items))
	for _, item := range p.Items {
		haystack := strings.ToLower(strings.Join([]string{item.Name, item.ID, strings.Join(item.Fields, " ")}, " "))
		if matchesTokens(haystack, tokens) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Render renders the palette lines.
func (p *TemplatePalette) Render(styleSet styles.Styles, focused bool) []string {
	headingStyle := styleSet.Muted
	if focused {
		headingStyle = styleSet.Accent
	}
	lines := []string{headingStyle.Render("TEMPLATES")}
	if focused || p.Query != "" {
		lines = append(lines, styleSet.Text.Render(fmt.Sprintf("> %s", p.Query)))
	}

	items := p.Visible()
	if len(items) == 0 {
		lines = append(lines, EmptyTemplatesFiltered(p.Query).Inline(styleSet))
		return lines
	}

	for idx, item := range items {
		label := truncate(item.Name, 60)
		marker := "  "
		if item.ID == p.Selected {
			marker = "* "
		}
		if focused && idx == p.Index {
			lines = append(lines, styleSet.Focus.Render("> "+marker+label))
			continue
		}
		if item.ID == p.Selected {
			lines = append(lines, styleSet.Selected.Render("  "+marker+label))
			continue
		}
		lines = append(lines, styleSet.Muted.Render("  "+marker+label))
	}
	return lines
}

func matchesTokens(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen <= 0 || len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func clonePaletteItems(items []PaletteItem) []PaletteItem {
	if len(items) == 0 {
		return nil
	}
	clone := make([]PaletteItem, len(items))
	copy(clone, items)
	return clone
}
