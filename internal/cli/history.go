package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/deskkit/internal/db"
	"github.com/opencode-ai/deskkit/internal/models"
)

var (
	historyType   string
	historyTool   string
	historySince  string
	historyCursor string
	historyLimit  int

	pruneOlderThan string
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyType, "type", "", "filter by event type (e.g. templates.reset)")
	historyCmd.Flags().StringVar(&historyTool, "tool", "", "filter by tool (email, call, subscription)")
	historyCmd.Flags().StringVar(&historySince, "since", "", "only events after this time (RFC3339 or duration like 24h)")
	historyCmd.Flags().StringVar(&historyCursor, "cursor", "", "continue after this event id")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum events to show")

	historyCmd.AddCommand(historyPruneCmd)
	historyPruneCmd.Flags().StringVar(&pruneOlderThan, "older-than", "720h", "delete events older than this (RFC3339 or duration)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the audit history",
	Long:  "Show resets, raw edits, generated summaries and cleared sessions, oldest first.",
	Example: `  deskkit history --tool email
  deskkit history --type summary.generated --since 24h`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ephemeral {
			return &PreflightError{
				Message: "history is not kept with --ephemeral",
				Hint:    "Run without --ephemeral",
			}
		}

		query, err := buildHistoryQuery(time.Now())
		if err != nil {
			return err
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		repo := db.NewEventRepository(database)
		page, err := repo.Query(cmd.Context(), query)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, map[string]any{
				"events":      page.Events,
				"next_cursor": page.NextCursor,
			})
		}
		if IsJSONLOutput() {
			return WriteOutput(os.Stdout, page.Events)
		}

		if len(page.Events) == 0 {
			fmt.Println("No events found.")
			return nil
		}

		rows := make([][]string, 0, len(page.Events))
		for _, event := range page.Events {
			rows = append(rows, []string{
				event.Timestamp.Local().Format("2006-01-02 15:04:05"),
				colorize(string(event.Type), eventColor(event.Type)),
				string(event.EntityType),
				event.EntityID,
				string(event.Payload),
			})
		}
		if err := writeTable(os.Stdout, []string{"TIME", "TYPE", "TOOL", "KEY", "DETAILS"}, rows); err != nil {
			return err
		}
		if page.NextCursor != "" {
			total, err := repo.Count(cmd.Context(), query)
			if err != nil {
				return err
			}
			fmt.Printf("\nShowing %d of %d. More events: deskkit history --cursor %s\n", len(page.Events), total, page.NextCursor)
		}
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old audit events",
	Example: `  deskkit history prune --older-than 168h
  deskkit history prune --older-than 2026-01-01T00:00:00Z --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ephemeral {
			return &PreflightError{
				Message: "history is not kept with --ephemeral",
				Hint:    "Run without --ephemeral",
			}
		}

		before, err := parseSince(pruneOlderThan, time.Now())
		if err != nil {
			return err
		}
		ok, err := confirmDestructive(fmt.Sprintf("Delete events before %s?", before.Local().Format("2006-01-02 15:04")))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()

		removed, err := db.NewEventRepository(database).Prune(cmd.Context(), before)
		if err != nil {
			return err
		}
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, map[string]any{"removed": removed, "before": before})
		}
		fmt.Printf("Removed %d event(s).\n", removed)
		return nil
	},
}

func buildHistoryQuery(now time.Time) (db.EventQuery, error) {
	query := db.EventQuery{Cursor: historyCursor, Limit: historyLimit}
	if historyType != "" {
		eventType := models.EventType(historyType)
		query.Type = &eventType
	}
	if historyTool != "" {
		entity := models.EntityType(strings.ToLower(historyTool))
		switch entity {
		case models.EntityTypeEmail, models.EntityTypeCall, models.EntityTypeSubscription:
		case "subs":
			entity = models.EntityTypeSubscription
		default:
			return db.EventQuery{}, fmt.Errorf("unknown tool %q (expected email, call or subscription)", historyTool)
		}
		query.EntityType = &entity
	}
	if historySince != "" {
		since, err := parseSince(historySince, now)
		if err != nil {
			return db.EventQuery{}, err
		}
		query.Since = &since
	}
	return query, nil
}

// parseSince accepts an RFC3339 time, a Go duration, or a number of seconds.
func parseSince(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if d, err := time.ParseDuration(value); err == nil {
		return now.Add(-d), nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return now.Add(-time.Duration(seconds) * time.Second), nil
	}
	return time.Time{}, fmt.Errorf("invalid --since %q (use RFC3339 or a duration like 24h)", value)
}

func eventColor(eventType models.EventType) string {
	switch eventType {
	case models.EventTypeTemplatesReset, models.EventTypeSubscriptionsReset:
		return colorRed
	case models.EventTypeStoreRecovered:
		return colorYellow
	case models.EventTypeSummaryGenerated, models.EventTypeSummaryCopied:
		return colorGreen
	}
	return colorCyan
}
