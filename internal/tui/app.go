package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/deskkit/internal/clipboard"
	"github.com/opencode-ai/deskkit/internal/confirm"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
	"github.com/opencode-ai/deskkit/internal/tui/components"
	"github.com/opencode-ai/deskkit/internal/tui/styles"
)

type viewID int

const (
	viewEmail viewID = iota
	viewCall
	viewSubs
)

func (v viewID) title() string {
	switch v {
	case viewCall:
		return "Call Notes"
	case viewSubs:
		return "Subscriptions"
	default:
		return "Email Templates"
	}
}

var viewOrder = []viewID{viewEmail, viewCall, viewSubs}

const (
	minWidth  = 60
	minHeight = 15
)

// toolView is one tab of the TUI.
type toolView interface {
	update(m *model, msg tea.KeyMsg) tea.Cmd
	lines(m *model) []string
	generate(m *model) (string, error)
	output() string
	clear(m *model) error
	refresh()
	resize(width int)
}

type model struct {
	ctx    context.Context
	cfg    Config
	styles styles.Styles
	width  int
	height int
	view   viewID

	views  map[viewID]toolView
	resets map[viewID]*confirm.Machine
	editor *rawEditor

	status    string
	statusErr bool
}

func newModel(ctx context.Context, cfg Config) model {
	m := model{
		ctx:    ctx,
		cfg:    cfg,
		styles: styles.ForTheme(cfg.Theme),
		view:   viewEmail,
	}
	views := map[viewID]toolView{
		viewEmail: newEmailView(cfg.Email),
		viewCall:  newCallView(cfg.Call),
		viewSubs:  newSubsView(cfg.Subs),
	}
	m.views = views
	m.resets = map[viewID]*confirm.Machine{
		viewEmail: confirm.New(cfg.Confirm, func(ctx context.Context) error {
			err := cfg.Email.Reset(ctx)
			views[viewEmail].refresh()
			return err
		}),
		viewSubs: confirm.New(cfg.Confirm, func(ctx context.Context) error {
			err := cfg.Subs.Reset(ctx)
			views[viewSubs].refresh()
			return err
		}),
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, view := range m.views {
			view.resize(msg.Width)
		}
		if m.editor != nil {
			m.editor.resize(msg.Width, msg.Height)
		}
		return m, nil
	case resetExpiredMsg:
		if machine, ok := m.resets[msg.view]; ok {
			machine.Expire(msg.token)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "ctrl+q" {
		return m, tea.Quit
	}

	if m.editor != nil {
		return m, m.updateEditor(msg)
	}

	switch key {
	case "f1", "alt+1":
		m.switchView(viewEmail)
		return m, nil
	case "f2", "alt+2":
		m.switchView(viewCall)
		return m, nil
	case "f3", "alt+3":
		m.switchView(viewSubs)
		return m, nil
	case "ctrl+g":
		m.generate()
		return m, nil
	case "ctrl+y":
		m.copyOutput()
		return m, nil
	case "ctrl+x":
		if err := m.current().clear(&m); err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("Cleared", false)
		}
		return m, nil
	case "ctrl+e":
		m.openEditor()
		return m, nil
	case "ctrl+r":
		return m, m.triggerReset()
	}

	return m, m.current().update(&m, msg)
}

func (m *model) current() toolView {
	return m.views[m.view]
}

func (m *model) switchView(view viewID) {
	m.view = view
	m.current().refresh()
	m.status = ""
}

func (m *model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *model) generate() {
	if _, err := m.current().generate(m); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("Generated", false)
}

func (m *model) copyOutput() {
	text := m.current().output()
	if text == "" {
		m.setStatus("Nothing to copy", true)
		return
	}
	if !clipboard.CopyText(m.cfg.Logger, m.cfg.Copier, text) {
		m.setStatus("Clipboard unavailable", true)
		return
	}
	entity, key := m.view.sessionKey()
	m.cfg.Recorder.SummaryCopied(m.ctx, entity, key)
	m.setStatus("Copied to clipboard", false)
}

func (v viewID) sessionKey() (models.EntityType, string) {
	switch v {
	case viewCall:
		return models.EntityTypeCall, kv.KeyCallSession
	case viewSubs:
		return models.EntityTypeSubscription, kv.KeySubscriptionSession
	default:
		return models.EntityTypeEmail, kv.KeyEmailSession
	}
}

func (m *model) triggerReset() tea.Cmd {
	machine, ok := m.resets[m.view]
	if !ok {
		return nil
	}
	step, err := machine.Trigger(m.ctx)
	if err != nil {
		m.setStatus(err.Error(), true)
	} else if machine.State() == confirm.Done {
		m.setStatus("Defaults restored", false)
	}
	return expireCmd(m.view, step)
}

func (m *model) resetState() (confirm.State, bool) {
	machine, ok := m.resets[m.view]
	if !ok {
		return confirm.Idle, false
	}
	return machine.State(), true
}

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("%s\n", joinLines(m.smallViewLines()))
		}
	}

	lines := []string{m.headerLine(), ""}
	if m.editor != nil {
		lines = append(lines, m.editor.lines(m.styles)...)
	} else {
		lines = append(lines, m.current().lines(&m)...)
		lines = append(lines, "", m.actionLine())
	}

	if m.status != "" {
		style := m.styles.Success
		if m.statusErr {
			style = m.styles.Error
		}
		lines = append(lines, "", style.Render(m.status))
	}
	lines = append(lines, "", m.styles.Muted.Render("F1/F2/F3 switch tool | tab next field | ctrl+q quit"))

	return fmt.Sprintf("%s\n", joinLines(lines))
}

func (m model) headerLine() string {
	tabs := make([]string, 0, len(viewOrder))
	for idx, view := range viewOrder {
		label := fmt.Sprintf(" F%d %s ", idx+1, view.title())
		if view == m.view {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Title.Render("deskkit")+"  ", strings.Join(tabs, " "))
}

func (m model) actionLine() string {
	state, resettable := m.resetState()
	bar := components.RenderQuickActionBar(m.styles, components.ToolQuickActions(m.current().output() != "", resettable, resettable))
	if !resettable {
		return bar
	}
	subject := "templates"
	if m.view == viewSubs {
		subject = "subscriptions"
	}
	return bar + "  " + components.RenderResetButton(m.styles, state, subject)
}

func (m model) smallViewLines() []string {
	message := fmt.Sprintf("Terminal too small (%dx%d).", m.width, m.height)
	hint := fmt.Sprintf("Resize to at least %dx%d.", minWidth, minHeight)

	return []string{
		m.styles.Warning.Render(message),
		m.styles.Muted.Render(hint),
		m.styles.Muted.Render("Press ctrl+q to quit."),
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// outputLines renders a generated text block, or the empty state.
func outputLines(styleSet styles.Styles, title, text string) []string {
	lines := []string{styleSet.Accent.Render(title)}
	if text == "" {
		return append(lines, components.EmptyOutput().Inline(styleSet))
	}
	return append(lines, styleSet.Output.Render(text))
}
