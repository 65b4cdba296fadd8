// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/deskkit/internal/tui/styles"
)

// EmptyState is what a panel shows when it has nothing to list.
type EmptyState struct {
	Title    string
	Subtitle string
	// Hints are key bindings or CLI commands that fill the panel.
	Hints []Suggestion
}

// Suggestion pairs a key or command with what it does.
type Suggestion struct {
	Command     string
	Description string
}

// Render returns the title, the subtitle and one aligned line per hint.
func (e EmptyState) Render(styleSet styles.Styles) string {
	lines := []string{styleSet.Muted.Bold(true).Render(e.Title)}
	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}
	if len(e.Hints) == 0 {
		return strings.Join(lines, "\n")
	}

	width := 0
	for _, hint := range e.Hints {
		width = max(width, lipgloss.Width(hint.Command))
	}
	keyStyle := styleSet.Accent.Width(width + 2)
	lines = append(lines, "")
	for _, hint := range e.Hints {
		line := "  " + keyStyle.Render(hint.Command)
		if hint.Description != "" {
			line += styleSet.Muted.Render(hint.Description)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Inline fits the state on one line, keeping only the first hint.
func (e EmptyState) Inline(styleSet styles.Styles) string {
	parts := []string{e.Title}
	if len(e.Hints) > 0 {
		parts = append(parts, "("+e.Hints[0].Command+")")
	}
	return styleSet.Muted.Render(strings.Join(parts, " "))
}

// EmptyTemplates is shown when the template list has no entries.
func EmptyTemplates() EmptyState {
	return EmptyState{
		Title:    "No templates yet",
		Subtitle: "Templates are reusable email bodies with [field] placeholders.",
		Hints: []Suggestion{
			{Command: "ctrl+e", Description: "edit the template list"},
			{Command: "ctrl+r", Description: "restore the default templates"},
		},
	}
}

// EmptyTemplatesFiltered is shown when the palette query matches nothing.
func EmptyTemplatesFiltered(filter string) EmptyState {
	return EmptyState{
		Title:    fmt.Sprintf("No templates match '%s'", filter),
		Subtitle: "Press backspace to edit the filter.",
	}
}

func EmptySubscriptions() EmptyState {
	return EmptyState{
		Title: "No subscriptions configured",
		Hints: []Suggestion{
			{Command: "ctrl+e", Description: "edit the subscription list"},
			{Command: "deskkit subs reset", Description: "restore the defaults"},
		},
	}
}

func EmptyOutput() EmptyState {
	return EmptyState{
		Title: "Nothing generated yet",
		Hints: []Suggestion{{Command: "ctrl+g", Description: "generate"}},
	}
}

// EmptyTemplateFields is shown for a template without placeholders.
func EmptyTemplateFields() EmptyState {
	return EmptyState{
		Title:    "This template has no fields",
		Subtitle: "Generate to use the body as is.",
	}
}
