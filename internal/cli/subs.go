package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
	"github.com/opencode-ai/deskkit/internal/subscriptions"
)

var (
	subsEntryBefore string
	subsEntryAfter  string
	subsEntryNote   string
	subsSummaryCopy bool
	subsEditSource  rawEditSource
)

func init() {
	rootCmd.AddCommand(subsCmd)
	subsCmd.AddCommand(subsListCmd)
	subsCmd.AddCommand(subsToggleCmd)
	subsCmd.AddCommand(subsEntryCmd)
	subsCmd.AddCommand(subsSummaryCmd)
	subsCmd.AddCommand(subsClearCmd)
	subsCmd.AddCommand(subsEditCmd)
	subsCmd.AddCommand(subsResetCmd)
	subsCmd.AddCommand(subsExportCmd)

	subsEntryCmd.Flags().StringVar(&subsEntryBefore, "before", "", "count before the change")
	subsEntryCmd.Flags().StringVar(&subsEntryAfter, "after", "", "count after the change")
	subsEntryCmd.Flags().StringVar(&subsEntryNote, "note", "", "optional note shown in brackets")

	subsSummaryCmd.Flags().BoolVar(&subsSummaryCopy, "copy", false, "copy the summary to the clipboard")

	subsEditCmd.Flags().StringVarP(&subsEditSource.file, "file", "f", "", "read the subscription list from a file")
	subsEditCmd.Flags().BoolVar(&subsEditSource.stdin, "stdin", false, "read the subscription list from stdin")
	subsEditCmd.Flags().BoolVar(&subsEditSource.editor, "editor", false, "edit the subscription list in $EDITOR")
}

var subsCmd = &cobra.Command{
	Use:     "subs",
	Aliases: []string{"subscriptions"},
	Short:   "Log subscription count changes",
	Long: `Log subscription count changes and render a change list.

Toggle the subscriptions that changed, record their before and after counts,
then render one "<name> was <before> now <after>" line per subscription.`,
}

var subsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscriptions by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSubsTool(func(ctx context.Context, rt *runtime, tool *subscriptions.Tool) error {
			groups := subscriptions.ByCategory(tool.List.Items())
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, subsListOutput(groups, tool.Session))
			}

			rows := make([][]string, 0)
			for _, group := range groups {
				for _, item := range group.Items {
					selected := tool.Session.IsSelected(item.Name)
					entry := ""
					if selected {
						e := tool.Session.Entry(item.Name)
						entry = subscriptions.FormatRow(item.Name, e.Before, e.After, e.Note)
					}
					rows = append(rows, []string{string(group.Category), item.Name, formatYesNo(selected), entry})
				}
			}
			return writeTable(os.Stdout, []string{"CATEGORY", "NAME", "SELECTED", "ENTRY"}, rows)
		})
	},
}

type subsListItem struct {
	Name     string                 `json:"name"`
	Category subscriptions.Category `json:"category"`
	Selected bool                   `json:"selected"`
	Entry    *subscriptions.Entry   `json:"entry,omitempty"`
}

func subsListOutput(groups []subscriptions.Group, sess *subscriptions.Session) []subsListItem {
	out := make([]subsListItem, 0)
	for _, group := range groups {
		for _, item := range group.Items {
			listed := subsListItem{Name: item.Name, Category: item.Category}
			if sess.IsSelected(item.Name) {
				entry := sess.Entry(item.Name)
				listed.Selected = true
				listed.Entry = &entry
			}
			out = append(out, listed)
		}
	}
	return out
}

var subsToggleCmd = &cobra.Command{
	Use:   "toggle <name>",
	Short: "Select or deselect a subscription",
	Long:  "Select or deselect a subscription. Deselecting drops its recorded counts.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSubsTool(func(ctx context.Context, rt *runtime, tool *subscriptions.Tool) error {
			selected, err := tool.Toggle(ctx, args[0])
			if err != nil {
				if errors.Is(err, subscriptions.ErrUnknownSubscription) {
					return fmt.Errorf("subscription '%s' not found; see 'deskkit subs list'", args[0])
				}
				return err
			}
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, map[string]any{"name": args[0], "selected": selected})
			}
			if selected {
				fmt.Printf("Selected %s\n", args[0])
			} else {
				fmt.Printf("Deselected %s\n", args[0])
			}
			return nil
		})
	},
}

var subsEntryCmd = &cobra.Command{
	Use:     "entry <name>",
	Short:   "Record counts for a selected subscription",
	Example: `  deskkit subs entry Bitwarden --before 12 --after 13 --note "new starter"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		updates := make([][2]string, 0, 3)
		for _, field := range []struct{ flag, value string }{
			{"before", subsEntryBefore},
			{"after", subsEntryAfter},
			{"note", subsEntryNote},
		} {
			if cmd.Flags().Changed(field.flag) {
				updates = append(updates, [2]string{field.flag, field.value})
			}
		}
		if len(updates) == 0 {
			return fmt.Errorf("nothing to set; pass at least one of --before, --after, --note")
		}

		return withSubsTool(func(ctx context.Context, rt *runtime, tool *subscriptions.Tool) error {
			name := args[0]
			for _, update := range updates {
				if err := tool.SetEntry(ctx, name, update[0], update[1]); err != nil {
					if errors.Is(err, subscriptions.ErrNotSelected) {
						return &PreflightError{
							Message:  fmt.Sprintf("subscription '%s' is not selected", name),
							NextStep: fmt.Sprintf("deskkit subs toggle %q", name),
						}
					}
					return err
				}
			}

			entry := tool.Session.Entry(name)
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, map[string]any{"name": name, "entry": entry})
			}
			fmt.Println(subscriptions.FormatRow(name, entry.Before, entry.After, entry.Note))
			return nil
		})
	},
}

var subsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Render the change list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSubsTool(func(ctx context.Context, rt *runtime, tool *subscriptions.Tool) error {
			output, err := tool.Generate(ctx)
			if err != nil {
				return err
			}

			copied := false
			if subsSummaryCopy {
				copied = rt.copyOutput(ctx, models.EntityTypeSubscription, kv.KeySubscriptionSession, output)
			}

			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, map[string]any{
					"summary":  output,
					"selected": tool.Session.Selected(),
					"copied":   copied,
				})
			}
			if output == "" {
				fmt.Fprintln(os.Stderr, "No subscriptions selected.")
				return nil
			}
			fmt.Println(output)
			reportCopy(subsSummaryCopy, copied)
			return nil
		})
	},
}

var subsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear selections, counts and the summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSubsTool(func(ctx context.Context, rt *runtime, tool *subscriptions.Tool) error {
			if err := tool.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Subscription session cleared.")
			return nil
		})
	},
}

var subsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Replace the subscription list",
	Long: `Replace the whole subscription list with an edited JSON array.

Each element needs a non-empty "name" and a "category" of either
"User Subscriptions" or "Device Subscriptions". An invalid list is rejected
as a whole and nothing changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSubsTool(func(ctx context.Context, rt *runtime, tool *subscriptions.Tool) error {
			current, err := tool.List.Raw()
			if err != nil {
				return err
			}
			source, err := subsEditSource.read(current)
			if err != nil {
				return err
			}
			items, err := tool.List.CommitRawEdit(ctx, source)
			if err != nil {
				return fmt.Errorf("subscription list not saved: %w", err)
			}
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, items)
			}
			fmt.Printf("Saved %d subscription(s)\n", len(items))
			return nil
		})
	},
}

var subsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default subscription list",
	Long:  "Restore the default subscription list. Selections and counts are cleared too.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirmDestructive("Reset the subscription list to defaults?")
		if err != nil || !ok {
			return err
		}
		return withSubsTool(func(ctx context.Context, rt *runtime, tool *subscriptions.Tool) error {
			if err := tool.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset subscriptions: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Restored %d default subscription(s).\n", len(tool.List.Items()))
			return nil
		})
	},
}

var subsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the subscription list as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSubsTool(func(ctx context.Context, rt *runtime, tool *subscriptions.Tool) error {
			raw, err := tool.List.Raw()
			if err != nil {
				return err
			}
			fmt.Println(raw)
			return nil
		})
	},
}

func withSubsTool(fn func(ctx context.Context, rt *runtime, tool *subscriptions.Tool) error) error {
	ctx := context.Background()

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	tool, err := rt.subsTool(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, rt, tool)
}
