package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/deskkit/internal/config"
)

var (
	configInitForce bool

	// configDirFunc is swapped in tests.
	configDirFunc = config.DefaultConfigDir
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, cfg)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(configDirFunc(), configInitForce)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				return &PreflightError{
					Message: fmt.Sprintf("config file already exists: %s", path),
					Hint:    "Use --force to overwrite it",
				}
			}
			return err
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]string{"path": path})
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration",
	Long:  "Check the configuration. Invalid values already fail every command; this reports success explicitly.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetConfig().Validate(); err != nil {
			return err
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]bool{"valid": true})
		}
		fmt.Println("Configuration is valid.")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config and database paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := map[string]string{
			"config_dir": configDirFunc(),
			"database":   GetConfig().DatabasePath(),
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, paths)
		}
		return writeTable(os.Stdout, nil, [][]string{
			{"config dir", paths["config_dir"]},
			{"database", paths["database"]},
		})
	},
}
