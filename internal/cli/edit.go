package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// rawEditSource selects where a raw collection edit is read from.
type rawEditSource struct {
	file   string
	stdin  bool
	editor bool
}

var stdinReader io.Reader = os.Stdin

// read returns the edited text. With no source flag it opens $EDITOR on
// current when a terminal is attached.
func (s rawEditSource) read(current string) (string, error) {
	chosen := 0
	for _, set := range []bool{s.file != "", s.stdin, s.editor} {
		if set {
			chosen++
		}
	}
	if chosen > 1 {
		return "", errors.New("use only one of --file, --stdin or --editor")
	}

	switch {
	case s.file != "":
		data, err := os.ReadFile(s.file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", s.file, err)
		}
		return string(data), nil
	case s.stdin:
		data, err := io.ReadAll(stdinReader)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case s.editor || IsInteractive():
		return editInEditor(current)
	}

	return "", &PreflightError{
		Message: "no edit source given",
		Hint:    "Pass --file, --stdin, or run in a terminal to use $EDITOR",
	}
}

func editInEditor(current string) (string, error) {
	editor := strings.TrimSpace(os.Getenv("VISUAL"))
	if editor == "" {
		editor = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if editor == "" {
		editor = "vi"
	}

	tmp, err := os.CreateTemp("", "deskkit-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(current); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", parts[0], err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(data), nil
}
