package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/deskkit/internal/subscriptions"
	"github.com/opencode-ai/deskkit/internal/tui/components"
)

var entryFields = []string{"before", "after", "note"}

// subsView lists the subscriptions grouped by category. Space toggles the
// item under the cursor; enter opens the entry inputs of a selected item.
type subsView struct {
	tool   *subscriptions.Tool
	groups []subscriptions.Group
	items  []subscriptions.Item
	cursor int

	editing   string
	inputs    []textinput.Model
	editFocus int
	width     int
}

func newSubsView(tool *subscriptions.Tool) *subsView {
	v := &subsView{tool: tool, width: 80}
	v.inputs = make([]textinput.Model, len(entryFields))
	for idx, field := range entryFields {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = field
		input.CharLimit = 0
		if field != "note" {
			input.CharLimit = 9
			input.Width = 10
		}
		v.inputs[idx] = input
	}
	v.refresh()
	return v
}

func (v *subsView) refresh() {
	v.groups = subscriptions.ByCategory(v.tool.List.Items())
	v.items = v.items[:0]
	for _, group := range v.groups {
		v.items = append(v.items, group.Items...)
	}
	if v.cursor >= len(v.items) {
		v.cursor = max(len(v.items)-1, 0)
	}
	if v.editing != "" && !v.tool.Session.IsSelected(v.editing) {
		v.closeEntry()
	}
}

func (v *subsView) resize(width int) {
	v.width = width
	if width > 40 {
		v.inputs[2].Width = width - 40
	}
}

func (v *subsView) update(m *model, msg tea.KeyMsg) tea.Cmd {
	if v.editing != "" {
		return v.updateEntry(m, msg)
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case " ":
		item, ok := v.current()
		if !ok {
			return nil
		}
		if _, err := v.tool.Toggle(m.ctx, item.Name); err != nil {
			m.setStatus(err.Error(), true)
		}
	case "enter":
		item, ok := v.current()
		if !ok {
			return nil
		}
		if !v.tool.Session.IsSelected(item.Name) {
			if _, err := v.tool.Toggle(m.ctx, item.Name); err != nil {
				m.setStatus(err.Error(), true)
				return nil
			}
		}
		v.openEntry(item.Name)
	}
	return nil
}

func (v *subsView) current() (subscriptions.Item, bool) {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return subscriptions.Item{}, false
	}
	return v.items[v.cursor], true
}

func (v *subsView) openEntry(name string) {
	entry := v.tool.Session.Entry(name)
	v.editing = name
	v.inputs[0].SetValue(entry.Before)
	v.inputs[1].SetValue(entry.After)
	v.inputs[2].SetValue(entry.Note)
	v.editFocus = 0
	v.applyFocus()
}

func (v *subsView) closeEntry() {
	v.editing = ""
	for idx := range v.inputs {
		v.inputs[idx].Blur()
	}
}

func (v *subsView) applyFocus() {
	for idx := range v.inputs {
		if idx == v.editFocus {
			v.inputs[idx].Focus()
		} else {
			v.inputs[idx].Blur()
		}
	}
}

func (v *subsView) updateEntry(m *model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter":
		v.closeEntry()
		return nil
	case "tab":
		v.editFocus = (v.editFocus + 1) % len(v.inputs)
		v.applyFocus()
		return nil
	case "shift+tab":
		v.editFocus = (v.editFocus - 1 + len(v.inputs)) % len(v.inputs)
		v.applyFocus()
		return nil
	}

	field := entryFields[v.editFocus]
	if field != "note" && msg.Type == tea.KeyRunes {
		msg.Runes = digitsOnly(msg.Runes)
		if len(msg.Runes) == 0 {
			return nil
		}
	}

	before := v.inputs[v.editFocus].Value()
	var cmd tea.Cmd
	v.inputs[v.editFocus], cmd = v.inputs[v.editFocus].Update(msg)
	if value := v.inputs[v.editFocus].Value(); value != before {
		if err := v.tool.SetEntry(m.ctx, v.editing, field, value); err != nil {
			m.setStatus(err.Error(), true)
		}
	}
	return cmd
}

func digitsOnly(runes []rune) []rune {
	out := runes[:0:0]
	for _, r := range runes {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return out
}

func (v *subsView) generate(m *model) (string, error) {
	return v.tool.Generate(m.ctx)
}

func (v *subsView) output() string {
	return v.tool.Session.Output()
}

func (v *subsView) clear(m *model) error {
	err := v.tool.Clear(m.ctx)
	v.closeEntry()
	return err
}

func (v *subsView) lines(m *model) []string {
	styleSet := m.styles
	if len(v.items) == 0 {
		lines := []string{components.EmptySubscriptions().Render(styleSet), ""}
		return append(lines, outputLines(styleSet, "CHANGE SUMMARY", v.output())...)
	}

	var lines []string
	row := 0
	for _, group := range v.groups {
		lines = append(lines, styleSet.Accent.Render(strings.ToUpper(string(group.Category))))
		for _, item := range group.Items {
			mark := "[ ]"
			if v.tool.Session.IsSelected(item.Name) {
				mark = "[x]"
			}
			label := fmt.Sprintf("%s %s", mark, item.Name)
			switch {
			case row == v.cursor && v.editing == "":
				lines = append(lines, styleSet.Focus.Render("> "+label))
			case v.tool.Session.IsSelected(item.Name):
				lines = append(lines, styleSet.Selected.Render("  "+label))
			default:
				lines = append(lines, styleSet.Muted.Render("  "+label))
			}
			row++
		}
	}

	selected := v.tool.Session.Selected()
	if len(selected) > 0 {
		lines = append(lines, "", styleSet.Accent.Render("SELECTED"))
		for _, name := range selected {
			if name == v.editing {
				lines = append(lines, v.entryEditorLine(m, name))
				continue
			}
			entry := v.tool.Session.Entry(name)
			lines = append(lines, styleSet.Text.Render(subscriptions.FormatRow(name, entry.Before, entry.After, entry.Note)))
		}
	}

	lines = append(lines, "")
	return append(lines, outputLines(styleSet, "CHANGE SUMMARY", v.output())...)
}

func (v *subsView) entryEditorLine(m *model, name string) string {
	parts := []string{m.styles.Focus.Render(name)}
	for idx, field := range entryFields {
		label := m.styles.Muted.Render(field + ":")
		if idx == v.editFocus {
			label = m.styles.Focus.Render(field + ":")
		}
		parts = append(parts, label+" "+v.inputs[idx].View())
	}
	return strings.Join(parts, "  ")
}
