package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/deskkit/internal/email"
	"github.com/opencode-ai/deskkit/internal/tui/components"
)

// emailView picks a template, fills its fields and previews the result.
// Focus 0 is the palette, 1..n the field inputs.
type emailView struct {
	tool    *email.Tool
	palette *components.TemplatePalette
	fields  []string
	inputs  []textinput.Model
	focus   int
	width   int
}

func newEmailView(tool *email.Tool) *emailView {
	v := &emailView{tool: tool, palette: components.NewTemplatePalette(), width: 80}
	v.refresh()
	return v
}

func (v *emailView) refresh() {
	items := v.tool.Templates().Templates()
	paletteItems := make([]components.PaletteItem, 0, len(items))
	for _, tmpl := range items {
		paletteItems = append(paletteItems, components.PaletteItem{ID: tmpl.ID, Name: tmpl.Name, Fields: tmpl.Fields()})
	}
	v.palette.SetItems(paletteItems)
	v.palette.Selected = v.tool.State().TemplateID
	v.rebuildInputs()
}

func (v *emailView) rebuildInputs() {
	fields, err := v.tool.Fields()
	if err != nil {
		fields = nil
	}
	v.fields = fields
	v.inputs = make([]textinput.Model, len(fields))
	for idx, field := range fields {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = field
		input.CharLimit = 0
		input.Width = v.inputWidth()
		input.SetValue(v.tool.Value(field))
		v.inputs[idx] = input
	}
	if v.focus > len(v.inputs) {
		v.focus = 0
	}
	v.applyFocus()
}

func (v *emailView) inputWidth() int {
	if v.width > 40 {
		return v.width/2 - 8
	}
	return 30
}

func (v *emailView) resize(width int) {
	v.width = width
	for idx := range v.inputs {
		v.inputs[idx].Width = v.inputWidth()
	}
}

func (v *emailView) applyFocus() {
	for idx := range v.inputs {
		if idx+1 == v.focus {
			v.inputs[idx].Focus()
		} else {
			v.inputs[idx].Blur()
		}
	}
}

func (v *emailView) cycle(delta int) {
	count := len(v.inputs) + 1
	v.focus = (v.focus + delta + count) % count
	v.applyFocus()
}

func (v *emailView) update(m *model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		v.cycle(1)
		return nil
	case "shift+tab":
		v.cycle(-1)
		return nil
	}

	if v.focus == 0 {
		v.updatePalette(m, msg)
		return nil
	}

	idx := v.focus - 1
	field := v.fields[idx]
	before := v.inputs[idx].Value()
	var cmd tea.Cmd
	v.inputs[idx], cmd = v.inputs[idx].Update(msg)
	if value := v.inputs[idx].Value(); value != before {
		if err := v.tool.SetValue(m.ctx, field, value); err != nil {
			m.setStatus(err.Error(), true)
		}
	}
	return cmd
}

func (v *emailView) updatePalette(m *model, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp:
		v.palette.Move(-1)
	case tea.KeyDown:
		v.palette.Move(1)
	case tea.KeyBackspace:
		v.palette.Backspace()
	case tea.KeyEnter:
		current := v.palette.Current()
		if current == nil {
			return
		}
		if _, err := v.tool.Select(m.ctx, current.ID); err != nil {
			m.setStatus(err.Error(), true)
			return
		}
		v.palette.Selected = current.ID
		v.rebuildInputs()
		if len(v.inputs) > 0 {
			v.focus = 1
			v.applyFocus()
		}
	case tea.KeyRunes, tea.KeySpace:
		v.palette.AppendQuery(msg.String())
	}
}

func (v *emailView) generate(m *model) (string, error) {
	return v.tool.Generate(m.ctx)
}

func (v *emailView) output() string {
	return v.tool.Output()
}

func (v *emailView) clear(m *model) error {
	err := v.tool.Clear(m.ctx)
	v.focus = 0
	v.palette.Reset()
	v.refresh()
	return err
}

func (v *emailView) lines(m *model) []string {
	styleSet := m.styles
	var left []string
	if len(v.palette.Items) == 0 {
		left = []string{components.EmptyTemplates().Render(styleSet)}
	} else {
		left = v.palette.Render(styleSet, v.focus == 0)
	}

	var right []string
	if _, err := v.tool.Selected(); err != nil {
		right = append(right, styleSet.Muted.Render("Select a template with enter."))
	} else {
		right = append(right, styleSet.Accent.Render("FIELDS"))
		if len(v.inputs) == 0 {
			right = append(right, components.EmptyTemplateFields().Inline(styleSet))
		}
		for idx, field := range v.fields {
			label := styleSet.Muted.Render(field + ": ")
			if idx+1 == v.focus {
				label = styleSet.Focus.Render(field + ": ")
			}
			right = append(right, label+v.inputs[idx].View())
		}
		if preview, err := v.tool.Preview(); err == nil {
			right = append(right, "", styleSet.Accent.Render("PREVIEW"), styleSet.Text.Render(preview))
		}
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(v.width/2).Render(joinLines(left)),
		joinLines(right),
	)
	lines := []string{columns, ""}
	return append(lines, outputLines(styleSet, "OUTPUT", v.tool.Output())...)
}
