package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
)

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsJSONLOutput reports whether --jsonl was given.
func IsJSONLOutput() bool {
	return jsonlOutput
}

// WriteOutput writes v as indented JSON, or as one JSON value per line when
// --jsonl is set and v is a slice.
func WriteOutput(out io.Writer, v any) error {
	if IsJSONLOutput() {
		return writeJSONLines(out, v)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeJSONLines(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Slice {
		return encoder.Encode(v)
	}
	for i := 0; i < value.Len(); i++ {
		if err := encoder.Encode(value.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// PreflightError is returned when a command cannot run in the current
// environment.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	if e.NextStep != "" {
		return fmt.Sprintf("%s (try: %s)", e.Message, e.NextStep)
	}
	return e.Message
}

// SkipConfirmation reports whether prompts cannot be shown.
func SkipConfirmation() bool {
	return IsNonInteractive() || IsJSONOutput() || IsJSONLOutput()
}

var confirmInput io.Reader = os.Stdin

func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(confirmInput)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// confirmDestructive asks before a destructive action. --yes skips the prompt;
// without a terminal the action is refused.
func confirmDestructive(prompt string) (bool, error) {
	if yesFlag {
		return true, nil
	}
	if SkipConfirmation() {
		return false, &PreflightError{
			Message: "confirmation required",
			Hint:    "Re-run with --yes to confirm without a prompt",
		}
	}
	if !confirm(prompt) {
		fmt.Fprintln(os.Stderr, "Cancelled.")
		return false, nil
	}
	return true, nil
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func colorize(text, color string) string {
	if color == "" || !colorEnabled() {
		return text
	}
	return color + text + colorReset
}

func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return hasTTY()
}
