// Package cli provides helpers for interactive mode detection.
package cli

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// nonInteractiveEnv forces non-interactive mode when set to a true value.
const nonInteractiveEnv = "DESKKIT_NON_INTERACTIVE"

// IsNonInteractive reports whether prompts and the TUI must be avoided: the
// flag or environment asks for it, or stdin/stdout is not a terminal.
func IsNonInteractive() bool {
	if nonInteractive {
		return true
	}
	if envTrue(os.Getenv(nonInteractiveEnv)) {
		return true
	}
	return !hasTTY()
}

// IsInteractive reports whether the session can prompt for user input.
func IsInteractive() bool {
	return !IsNonInteractive()
}

func envTrue(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
