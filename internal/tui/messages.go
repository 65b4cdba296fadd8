package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/deskkit/internal/confirm"
)

// resetExpiredMsg delivers a scheduled confirmation step back to the view's
// reset machine.
type resetExpiredMsg struct {
	view  viewID
	token uint64
}

// expireCmd schedules delivery of a confirmation step.
func expireCmd(view viewID, step confirm.Step) tea.Cmd {
	if !step.Scheduled() {
		return nil
	}
	return tea.Tick(step.After, func(time.Time) tea.Msg {
		return resetExpiredMsg{view: view, token: step.Token}
	})
}
