// Package clipboard copies generated text to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

// ErrUnavailable is returned when no clipboard utility can be used.
var ErrUnavailable = errors.New("clipboard unavailable")

// Copier writes text to a clipboard.
type Copier interface {
	Copy(text string) error
}

// System copies to the operating system clipboard.
type System struct{}

// Copy writes text to the system clipboard.
func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Disabled is a Copier that always fails, used when copying is turned off.
type Disabled struct{}

// Copy always returns ErrUnavailable.
func (Disabled) Copy(string) error {
	return ErrUnavailable
}

// New returns the system clipboard, or Disabled when enabled is false.
func New(enabled bool) Copier {
	if !enabled {
		return Disabled{}
	}
	return System{}
}

// CopyText copies text and reports whether it worked. Failures are logged and
// never returned. Empty text is not copied.
func CopyText(logger zerolog.Logger, copier Copier, text string) bool {
	if text == "" {
		return false
	}
	if copier == nil {
		copier = Disabled{}
	}
	if err := copier.Copy(text); err != nil {
		logger.Warn().Err(err).Msg("failed to copy to clipboard")
		return false
	}
	logger.Debug().Int("chars", len([]rune(text))).Msg("copied to clipboard")
	return true
}
