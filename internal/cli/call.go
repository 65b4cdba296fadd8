package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/deskkit/internal/callnotes"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
)

var (
	callSetForm     callnotes.Form
	callSummaryCopy bool
)

// callSetFlags maps call set flags to form fields.
var callSetFlags = []struct {
	flag  string
	field callnotes.Field
}{
	{"caller", callnotes.FieldCaller},
	{"issue", callnotes.FieldIssue},
	{"steps", callnotes.FieldTroubleshooting},
	{"resolution", callnotes.FieldResolution},
	{"follow-up", callnotes.FieldFollowUp},
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.AddCommand(callSetCmd)
	callCmd.AddCommand(callSummaryCmd)
	callCmd.AddCommand(callShowCmd)
	callCmd.AddCommand(callClearCmd)

	callSetCmd.Flags().StringVar(&callSetForm.Caller, "caller", "", "caller name")
	callSetCmd.Flags().StringVar(&callSetForm.Issue, "issue", "", "issue description")
	callSetCmd.Flags().StringVar(&callSetForm.Troubleshooting, "steps", "", "troubleshooting steps, one per line")
	callSetCmd.Flags().StringVar(&callSetForm.Resolution, "resolution", "", "how the issue was resolved")
	callSetCmd.Flags().StringVar(&callSetForm.FollowUp, "follow-up", "", "next steps or reminders")

	callSummaryCmd.Flags().BoolVar(&callSummaryCopy, "copy", false, "copy the summary to the clipboard")
}

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Capture call notes and render a call summary",
}

var callSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update call note fields",
	Long:  "Update call note fields. Only the flags given are changed; pass an empty value to clear a field.",
	Example: `  deskkit call set --caller "Jane Doe" --issue "Outlook keeps crashing"
  deskkit call set --steps $'Restarted Outlook\nRebuilt profile'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		changed := 0
		for _, f := range callSetFlags {
			if cmd.Flags().Changed(f.flag) {
				changed++
			}
		}
		if changed == 0 {
			return fmt.Errorf("nothing to set; pass at least one of --caller, --issue, --steps, --resolution, --follow-up")
		}

		return withCallTool(func(ctx context.Context, rt *runtime, tool *callnotes.Tool) error {
			for _, f := range callSetFlags {
				if !cmd.Flags().Changed(f.flag) {
					continue
				}
				if err := tool.Set(ctx, f.field, callSetForm.Get(f.field)); err != nil {
					return err
				}
			}
			return printCallForm(tool.Form())
		})
	},
}

var callSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Render the call summary",
	Long:  "Render the call summary from the saved call notes. Nothing is generated or recorded while every field is empty.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCallTool(func(ctx context.Context, rt *runtime, tool *callnotes.Tool) error {
			if tool.Form().IsEmpty() {
				if IsJSONOutput() || IsJSONLOutput() {
					return WriteOutput(cmd.OutOrStdout(), map[string]any{"summary": "", "copied": false})
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Nothing to summarize; every call field is empty.")
				return nil
			}

			summary := tool.Generate(ctx)
			copied := false
			if callSummaryCopy {
				copied = rt.copyOutput(ctx, models.EntityTypeCall, kv.KeyCallSession, summary)
			}

			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(cmd.OutOrStdout(), map[string]any{
					"summary": summary,
					"copied":  copied,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), summary)
			reportCopy(callSummaryCopy, copied)
			return nil
		})
	},
}

var callShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved call notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCallTool(func(ctx context.Context, rt *runtime, tool *callnotes.Tool) error {
			return printCallForm(tool.Form())
		})
	},
}

var callClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the call notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCallTool(func(ctx context.Context, rt *runtime, tool *callnotes.Tool) error {
			if err := tool.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Call notes cleared.")
			return nil
		})
	},
}

func withCallTool(fn func(ctx context.Context, rt *runtime, tool *callnotes.Tool) error) error {
	ctx := context.Background()

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	return fn(ctx, rt, rt.callTool(ctx))
}

func printCallForm(form callnotes.Form) error {
	if IsJSONOutput() || IsJSONLOutput() {
		return WriteOutput(os.Stdout, form)
	}
	rows := make([][]string, 0, len(callSetFlags))
	for _, f := range callSetFlags {
		rows = append(rows, []string{f.flag, form.Get(f.field)})
	}
	return writeTable(os.Stdout, []string{"FIELD", "VALUE"}, rows)
}
