// Package cli provides TUI launch commands.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	confirmpkg "github.com/opencode-ai/deskkit/internal/confirm"
	"github.com/opencode-ai/deskkit/internal/logging"
	"github.com/opencode-ai/deskkit/internal/tui"
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the deskkit TUI",
	Long:  "Launch the deskkit terminal user interface with the email, call notes and subscription tools.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

func runTUI(cmd *cobra.Command) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "TUI requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use CLI subcommands",
			NextStep: "deskkit --help",
		}
	}

	appCfg := GetConfig()
	if logFile, err := openTUILog(appCfg.DatabasePath()); err == nil {
		defer logFile.Close()
		logging.InitWithWriter(logging.Config{Level: appCfg.Logging.Level, Format: "json"}, logFile)
	}

	ctx := cmd.Context()
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	emailTool, err := rt.emailTool(ctx)
	if err != nil {
		return err
	}
	subsTool, err := rt.subsTool(ctx)
	if err != nil {
		return err
	}

	tuiConfig := tui.Config{
		Email:    emailTool,
		Call:     rt.callTool(ctx),
		Subs:     subsTool,
		Copier:   rt.copier,
		Recorder: rt.recorder,
		Confirm: confirmpkg.Config{
			ConfirmTimeout: appCfg.Confirm.Timeout,
			DoneDelay:      appCfg.Confirm.DoneDelay,
		},
		Theme:  appCfg.TUI.Theme,
		Logger: logging.Component("tui"),
	}

	return tui.Run(ctx, tuiConfig)
}

// openTUILog opens the log file used while the TUI owns the terminal. It sits
// next to the state database.
func openTUILog(dbPath string) (*os.File, error) {
	path := filepath.Join(filepath.Dir(dbPath), "tui.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
