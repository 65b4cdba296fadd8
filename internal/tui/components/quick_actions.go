package components

import (
	"strings"

	"github.com/opencode-ai/deskkit/internal/tui/styles"
)

// QuickAction is one key binding shown in the action line.
type QuickAction struct {
	Key     string
	Label   string
	Enabled bool
}

// RenderQuickActionBar joins the enabled actions as "key Label" pairs.
// Disabled actions are left out.
func RenderQuickActionBar(styleSet styles.Styles, actions []QuickAction) string {
	keyStyle := styleSet.Accent.Bold(true)
	var b strings.Builder
	for _, action := range actions {
		if !action.Enabled {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(styleSet.Muted.Render(" · "))
		}
		b.WriteString(keyStyle.Render(action.Key))
		b.WriteString(" ")
		b.WriteString(styleSet.Muted.Render(action.Label))
	}
	return b.String()
}

// ToolQuickActions lists the bindings of a tool view. Copy needs output;
// edit and reset only apply to tools with a persisted list.
func ToolQuickActions(hasOutput, editable, resettable bool) []QuickAction {
	return []QuickAction{
		{"ctrl+g", "Generate", true},
		{"ctrl+y", "Copy", hasOutput},
		{"ctrl+x", "Clear", true},
		{"ctrl+e", "Edit list", editable},
		{"ctrl+r", "Reset", resettable},
	}
}

// EditorQuickActions lists the raw editor bindings. Save is hidden while
// the text does not parse.
func EditorQuickActions(valid bool) []QuickAction {
	return []QuickAction{
		{"ctrl+s", "Save", valid},
		{"esc", "Cancel", true},
	}
}
