package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/deskkit/internal/tui/components"
	"github.com/opencode-ai/deskkit/internal/tui/styles"
)

// rawEditor edits a collection as JSON text. The text is validated on every
// change and can only be saved while valid; invalid text stays in the editor.
type rawEditor struct {
	title    string
	area     textarea.Model
	validate func(string) error
	commit   func(context.Context, string) error
	err      error
}

func newRawEditor(title, source string, validate func(string) error, commit func(context.Context, string) error) *rawEditor {
	area := textarea.New()
	area.CharLimit = 0
	area.ShowLineNumbers = true
	area.SetWidth(76)
	area.SetHeight(16)
	area.SetValue(source)
	area.Focus()

	return &rawEditor{
		title:    title,
		area:     area,
		validate: validate,
		commit:   commit,
		err:      validate(source),
	}
}

func (e *rawEditor) resize(width, height int) {
	if width > 4 {
		e.area.SetWidth(width - 4)
	}
	if height > 12 {
		e.area.SetHeight(height - 12)
	}
}

func (e *rawEditor) lines(styleSet styles.Styles) []string {
	return []string{
		styleSet.Accent.Render(e.title) + "  " + components.RenderValidity(styleSet, e.err),
		e.area.View(),
		components.RenderQuickActionBar(styleSet, components.EditorQuickActions(e.err == nil)),
	}
}

func (m *model) openEditor() {
	var editor *rawEditor
	switch m.view {
	case viewEmail:
		store := m.cfg.Email.Templates()
		source, err := store.Raw()
		if err != nil {
			m.setStatus(err.Error(), true)
			return
		}
		editor = newRawEditor("Edit templates (JSON)", source, store.ValidateRaw, func(ctx context.Context, text string) error {
			_, err := m.cfg.Email.CommitRawEdit(ctx, text)
			return err
		})
	case viewSubs:
		list := m.cfg.Subs.List
		source, err := list.Raw()
		if err != nil {
			m.setStatus(err.Error(), true)
			return
		}
		editor = newRawEditor("Edit subscriptions (JSON)", source, list.ValidateRaw, func(ctx context.Context, text string) error {
			_, err := list.CommitRawEdit(ctx, text)
			return err
		})
	default:
		m.setStatus("Call notes have no list to edit", true)
		return
	}
	if m.width > 0 {
		editor.resize(m.width, m.height)
	}
	m.editor = editor
	m.status = ""
}

func (m *model) updateEditor(msg tea.KeyMsg) tea.Cmd {
	editor := m.editor
	switch msg.String() {
	case "esc":
		m.editor = nil
		m.setStatus("Edit cancelled", false)
		return nil
	case "ctrl+s":
		if editor.err != nil {
			m.setStatus("Fix the errors before saving", true)
			return nil
		}
		if err := editor.commit(m.ctx, editor.area.Value()); err != nil {
			editor.err = err
			m.setStatus(err.Error(), true)
			return nil
		}
		m.editor = nil
		m.current().refresh()
		m.setStatus("Saved", false)
		return nil
	}

	before := editor.area.Value()
	var cmd tea.Cmd
	editor.area, cmd = editor.area.Update(msg)
	if value := editor.area.Value(); value != before {
		editor.err = editor.validate(value)
	}
	return cmd
}
