package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/deskkit/internal/callnotes"
)

var callLabels = map[callnotes.Field]string{
	callnotes.FieldCaller:          "Caller",
	callnotes.FieldIssue:           "Issue",
	callnotes.FieldTroubleshooting: "Troubleshooting (one step per line)",
	callnotes.FieldResolution:      "Resolution",
	callnotes.FieldFollowUp:        "Follow-up",
}

// callView edits the call form. The caller is a single-line input; the other
// fields are text areas, one per entry of callnotes.Fields after the first.
type callView struct {
	tool   *callnotes.Tool
	caller textinput.Model
	areas  []textarea.Model
	focus  int
	width  int
}

func newCallView(tool *callnotes.Tool) *callView {
	v := &callView{tool: tool, width: 80}

	v.caller = textinput.New()
	v.caller.Prompt = ""
	v.caller.Placeholder = "Name of the caller"
	v.caller.CharLimit = 0

	v.areas = make([]textarea.Model, len(callnotes.Fields)-1)
	for idx := range v.areas {
		area := textarea.New()
		area.CharLimit = 0
		area.ShowLineNumbers = false
		area.SetHeight(3)
		v.areas[idx] = area
	}
	v.resize(v.width)
	v.refresh()
	return v
}

func (v *callView) refresh() {
	form := v.tool.Form()
	v.caller.SetValue(form.Caller)
	for idx := range v.areas {
		v.areas[idx].SetValue(form.Get(callnotes.Fields[idx+1]))
	}
	v.applyFocus()
}

func (v *callView) resize(width int) {
	v.width = width
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	v.caller.Width = inner
	for idx := range v.areas {
		v.areas[idx].SetWidth(inner)
	}
}

func (v *callView) applyFocus() {
	if v.focus == 0 {
		v.caller.Focus()
	} else {
		v.caller.Blur()
	}
	for idx := range v.areas {
		if idx+1 == v.focus {
			v.areas[idx].Focus()
		} else {
			v.areas[idx].Blur()
		}
	}
}

func (v *callView) update(m *model, msg tea.KeyMsg) tea.Cmd {
	count := len(callnotes.Fields)
	switch msg.String() {
	case "tab":
		v.focus = (v.focus + 1) % count
		v.applyFocus()
		return nil
	case "shift+tab":
		v.focus = (v.focus - 1 + count) % count
		v.applyFocus()
		return nil
	}

	field := callnotes.Fields[v.focus]
	var (
		cmd    tea.Cmd
		before string
		after  string
	)
	if v.focus == 0 {
		before = v.caller.Value()
		v.caller, cmd = v.caller.Update(msg)
		after = v.caller.Value()
	} else {
		idx := v.focus - 1
		before = v.areas[idx].Value()
		v.areas[idx], cmd = v.areas[idx].Update(msg)
		after = v.areas[idx].Value()
	}
	if after != before {
		if err := v.tool.Set(m.ctx, field, after); err != nil {
			m.setStatus(err.Error(), true)
		}
	}
	return cmd
}

func (v *callView) generate(m *model) (string, error) {
	return v.tool.Generate(m.ctx), nil
}

func (v *callView) output() string {
	return v.tool.Summary()
}

func (v *callView) clear(m *model) error {
	err := v.tool.Clear(m.ctx)
	v.focus = 0
	v.refresh()
	return err
}

func (v *callView) lines(m *model) []string {
	styleSet := m.styles
	var lines []string
	for idx, field := range callnotes.Fields {
		label := styleSet.Muted.Render(callLabels[field])
		if idx == v.focus {
			label = styleSet.Focus.Render(callLabels[field])
		}
		lines = append(lines, label)
		if idx == 0 {
			lines = append(lines, v.caller.View())
		} else {
			lines = append(lines, v.areas[idx-1].View())
		}
	}
	lines = append(lines, "")
	return append(lines, outputLines(styleSet, "CALL SUMMARY", v.tool.Summary())...)
}
