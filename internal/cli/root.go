// Package cli implements the deskkit command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/deskkit/internal/config"
	"github.com/opencode-ai/deskkit/internal/logging"
)

var (
	cfgFile        string
	dbPathFlag     string
	jsonOutput     bool
	jsonlOutput    bool
	logLevel       string
	ephemeral      bool
	yesFlag        bool
	nonInteractive bool

	appConfig *config.Config
)

// Version information set by the entrypoint.
var (
	Version = "dev"
	Commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "deskkit",
	Short: "Helpdesk toolkit for email replies, call notes and subscription changes",
	Long: `deskkit keeps three small helpdesk tools in one binary:

  email  fill a bracket-placeholder email template and render it
  call   capture call notes and render a call summary
  subs   log subscription count changes and render a change list

Working state is kept in a local SQLite database and restored on every run.
Run 'deskkit ui' for the interactive terminal interface.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/deskkit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "state database path (overrides global.db_path)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	rootCmd.PersistentFlags().BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep state in memory only for this run")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "answer yes to confirmation prompts")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "never prompt; fail instead")
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return err
	}
	return nil
}

func initConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dbPathFlag != "" {
		cfg.Global.DBPath = dbPathFlag
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	appConfig = cfg
	return nil
}

// GetConfig returns the loaded configuration, or the defaults before
// initialization.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var preflight *PreflightError
	if errors.As(err, &preflight) && preflight.Hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", preflight.Hint)
	}
}
