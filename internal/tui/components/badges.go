// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/deskkit/internal/confirm"
	"github.com/opencode-ai/deskkit/internal/tui/styles"
)

// RenderResetButton renders the reset control for a confirmation state.
// subject names what is reset, e.g. "templates".
func RenderResetButton(styleSet styles.Styles, state confirm.State, subject string) string {
	label, style := resetDescriptor(styleSet, state, subject)
	return style.Render(fmt.Sprintf("[%s]", label))
}

func resetDescriptor(styleSet styles.Styles, state confirm.State, subject string) (string, lipgloss.Style) {
	switch state {
	case confirm.Confirming:
		return "Are you sure?", styleSet.Error.Bold(true)
	case confirm.Done:
		return capitalize(subject) + " reset", styleSet.Success
	default:
		return "Reset " + subject, styleSet.Muted
	}
}

// RenderValidity renders the raw editor validity indicator.
func RenderValidity(styleSet styles.Styles, err error) string {
	if err == nil {
		return styleSet.Success.Render("OK valid")
	}
	return styleSet.Error.Render("ERR " + firstLine(err.Error()))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
