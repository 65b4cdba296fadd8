package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/deskkit/internal/db"
)

func init() {
	rootCmd.AddCommand(stateCmd)
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the database file and the saved tool state",
	Long:  "Show the database file and every saved key (template list, subscription list and tool sessions) with its size and last update.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ephemeral {
			return &PreflightError{
				Message: "no state is saved with --ephemeral",
				Hint:    "Run without --ephemeral",
			}
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		report, err := loadStateReport(cmd.Context(), database)
		if err != nil {
			return err
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), report)
		}
		return writeStateReport(cmd.OutOrStdout(), report)
	},
}

type stateReport struct {
	Path    string     `json:"path"`
	Entries []db.Entry `json:"entries"`
}

func loadStateReport(ctx context.Context, database *db.DB) (stateReport, error) {
	entries, err := db.NewKVRepository(database).List(ctx)
	if err != nil {
		return stateReport{}, err
	}
	if entries == nil {
		entries = []db.Entry{}
	}
	return stateReport{Path: database.Path(), Entries: entries}, nil
}

func writeStateReport(out io.Writer, report stateReport) error {
	fmt.Fprintf(out, "Database: %s\n", report.Path)
	if len(report.Entries) == 0 {
		fmt.Fprintln(out, "No saved state.")
		return nil
	}
	fmt.Fprintln(out)

	rows := make([][]string, 0, len(report.Entries))
	for _, entry := range report.Entries {
		updated := "-"
		if !entry.UpdatedAt.IsZero() {
			updated = entry.UpdatedAt.Local().Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{entry.Key, strconv.Itoa(entry.Size), updated})
	}
	return writeTable(out, []string{"KEY", "BYTES", "UPDATED"}, rows)
}
