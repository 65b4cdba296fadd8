// Package config provides configuration loading for deskkit.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the root configuration.
type Config struct {
	Global    GlobalConfig    `mapstructure:"global" yaml:"global"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Clipboard ClipboardConfig `mapstructure:"clipboard" yaml:"clipboard"`
	Confirm   ConfirmConfig   `mapstructure:"confirm" yaml:"confirm"`
	TUI       TUIConfig       `mapstructure:"tui" yaml:"tui"`
}

// GlobalConfig holds storage locations.
type GlobalConfig struct {
	// DataDir holds the state database when DBPath is empty.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	// DBPath overrides the state database location.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// LoggingConfig controls log verbosity and format.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ClipboardConfig toggles system clipboard access.
type ClipboardConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// ConfirmConfig sets the reset confirmation timings.
type ConfirmConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	DoneDelay time.Duration `mapstructure:"done_delay" yaml:"done_delay"`
}

// TUIConfig holds terminal UI preferences.
type TUIConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Global: GlobalConfig{
			DataDir: DefaultDataDir(),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Clipboard: ClipboardConfig{Enabled: true},
		Confirm: ConfirmConfig{
			Timeout:   2500 * time.Millisecond,
			DoneDelay: 1500 * time.Millisecond,
		},
		TUI: TUIConfig{Theme: "default"},
	}
}

// knownThemes mirrors the palettes in internal/tui/styles.
var knownThemes = map[string]struct{}{
	"default":       {},
	"high-contrast": {},
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var problems []string

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}
	if c.Confirm.Timeout <= 0 {
		problems = append(problems, "confirm.timeout must be greater than 0")
	}
	if c.Confirm.DoneDelay <= 0 {
		problems = append(problems, "confirm.done_delay must be greater than 0")
	}
	if _, ok := knownThemes[c.TUI.Theme]; !ok {
		problems = append(problems, fmt.Sprintf("tui.theme %q is not a known theme", c.TUI.Theme))
	}
	if strings.TrimSpace(c.Global.DataDir) == "" && strings.TrimSpace(c.Global.DBPath) == "" {
		problems = append(problems, "global.data_dir or global.db_path is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DatabasePath returns the resolved state database path.
func (c *Config) DatabasePath() string {
	if path := strings.TrimSpace(c.Global.DBPath); path != "" {
		return expandHome(path)
	}
	return filepath.Join(expandHome(c.Global.DataDir), "deskkit.db")
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/deskkit or ~/.config/deskkit.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "deskkit")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "deskkit")
	}
	return ".deskkit"
}

// DefaultDataDir returns $XDG_DATA_HOME/deskkit or ~/.local/share/deskkit.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "deskkit")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "share", "deskkit")
	}
	return ".deskkit"
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
