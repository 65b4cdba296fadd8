// Package tui implements the deskkit terminal user interface.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/callnotes"
	"github.com/opencode-ai/deskkit/internal/clipboard"
	"github.com/opencode-ai/deskkit/internal/confirm"
	"github.com/opencode-ai/deskkit/internal/email"
	"github.com/opencode-ai/deskkit/internal/events"
	"github.com/opencode-ai/deskkit/internal/subscriptions"
)

// Config wires the loaded tools into the TUI.
type Config struct {
	Email    *email.Tool
	Call     *callnotes.Tool
	Subs     *subscriptions.Tool
	Copier   clipboard.Copier
	Recorder *events.Recorder
	Confirm  confirm.Config
	Theme    string
	Logger   zerolog.Logger
}

// Validate checks that every tool is present.
func (c Config) Validate() error {
	if c.Email == nil || c.Call == nil || c.Subs == nil {
		return errors.New("tui: email, call and subscription tools are required")
	}
	return nil
}

// Run launches the TUI program and blocks until it exits.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	program := tea.NewProgram(newModel(ctx, cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
