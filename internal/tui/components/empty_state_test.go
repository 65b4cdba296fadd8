package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/deskkit/internal/tui/styles"
)

func TestEmptyStateRenderAlignsHints(t *testing.T) {
	styleSet := styles.DefaultStyles()

	es := EmptyState{
		Title:    "No data",
		Subtitle: "Check back later",
		Hints: []Suggestion{
			{Command: "ctrl+e", Description: "edit list"},
			{Command: "deskkit subs reset", Description: "defaults"},
		},
	}
	lines := strings.Split(es.Render(styleSet), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected title, subtitle, blank and two hints, got %d lines: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "No data") || !strings.Contains(lines[1], "Check back later") {
		t.Errorf("unexpected header lines: %q", lines[:2])
	}

	first := strings.Index(lines[3], "edit list")
	second := strings.Index(lines[4], "defaults")
	if first < 0 || second < 0 {
		t.Fatalf("expected descriptions in hint lines: %q", lines[3:])
	}
	if lipgloss.Width(lines[3][:first]) != lipgloss.Width(lines[4][:second]) {
		t.Errorf("expected descriptions to start in the same column: %q", lines[3:])
	}
}

func TestEmptyStateRenderTitleOnly(t *testing.T) {
	result := EmptyState{Title: "No items found"}.Render(styles.DefaultStyles())
	if strings.Contains(result, "\n") || !strings.Contains(result, "No items found") {
		t.Errorf("expected a single title line, got: %q", result)
	}
}

func TestEmptyStateInline(t *testing.T) {
	styleSet := styles.DefaultStyles()

	if got := (EmptyState{Title: "No results"}).Inline(styleSet); !strings.Contains(got, "No results") || strings.Contains(got, "(") {
		t.Errorf("unexpected inline output: %q", got)
	}

	got := EmptyOutput().Inline(styleSet)
	if !strings.Contains(got, "Nothing generated yet (ctrl+g)") {
		t.Errorf("expected first hint in inline output, got: %q", got)
	}
}

func TestPrebuiltEmptyStates(t *testing.T) {
	styleSet := styles.DefaultStyles()

	tests := []struct {
		name     string
		es       EmptyState
		expected []string
	}{
		{"EmptyTemplates", EmptyTemplates(), []string{"No templates", "ctrl+e", "ctrl+r"}},
		{"EmptySubscriptions", EmptySubscriptions(), []string{"No subscriptions", "deskkit subs reset"}},
		{"EmptyOutput", EmptyOutput(), []string{"Nothing generated", "ctrl+g"}},
		{"EmptyTemplateFields", EmptyTemplateFields(), []string{"no fields"}},
		{"EmptyTemplatesFiltered", EmptyTemplatesFiltered("test-filter"), []string{"test-filter", "backspace"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.es.Render(styleSet)
			for _, exp := range tt.expected {
				if !strings.Contains(result, exp) {
					t.Errorf("expected %q in %s output, got: %s", exp, tt.name, result)
				}
			}
		})
	}
}
