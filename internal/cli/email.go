package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/deskkit/internal/email"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
	"github.com/opencode-ai/deskkit/internal/templates"
)

var (
	emailRenderCopy bool
	emailEditSource rawEditSource
)

func init() {
	rootCmd.AddCommand(emailCmd)
	emailCmd.AddCommand(emailListCmd)
	emailCmd.AddCommand(emailFieldsCmd)
	emailCmd.AddCommand(emailSelectCmd)
	emailCmd.AddCommand(emailSetCmd)
	emailCmd.AddCommand(emailRenderCmd)
	emailCmd.AddCommand(emailClearCmd)
	emailCmd.AddCommand(emailEditCmd)
	emailCmd.AddCommand(emailResetCmd)
	emailCmd.AddCommand(emailExportCmd)

	emailRenderCmd.Flags().BoolVar(&emailRenderCopy, "copy", false, "copy the rendered text to the clipboard")
	emailEditCmd.Flags().StringVarP(&emailEditSource.file, "file", "f", "", "read the template list from a file")
	emailEditCmd.Flags().BoolVar(&emailEditSource.stdin, "stdin", false, "read the template list from stdin")
	emailEditCmd.Flags().BoolVar(&emailEditSource.editor, "editor", false, "edit the template list in $EDITOR")
}

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Fill and render email templates",
	Long: `Fill and render email templates.

Templates are text bodies with [Field] placeholders. Select a template, set
its fields, then render. Values for fields whose name contains "name" are
title-cased; fields left empty stay as [Field] in the output.`,
}

var emailListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmailTool(func(ctx context.Context, rt *runtime, tool *email.Tool) error {
			items := tool.Templates().Templates()
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, items)
			}

			selected := tool.State().TemplateID
			rows := make([][]string, 0, len(items))
			for _, tmpl := range items {
				mark := ""
				if tmpl.ID == selected {
					mark = "*"
				}
				rows = append(rows, []string{mark, tmpl.ID, tmpl.Name, strings.Join(tmpl.Fields(), ", ")})
			}
			return writeTable(os.Stdout, []string{"", "ID", "NAME", "FIELDS"}, rows)
		})
	},
}

var emailFieldsCmd = &cobra.Command{
	Use:   "fields [template-id]",
	Short: "Show the fields of a template",
	Long:  "Show the fields of a template and their current values. Defaults to the selected template.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmailTool(func(ctx context.Context, rt *runtime, tool *email.Tool) error {
			var (
				tmpl templates.Template
				err  error
			)
			if len(args) == 1 {
				tmpl, err = tool.Templates().Get(args[0])
			} else {
				tmpl, err = tool.Selected()
			}
			if err != nil {
				return emailError(err, args)
			}

			selected := tmpl.ID == tool.State().TemplateID
			fields := tmpl.Fields()
			if IsJSONOutput() || IsJSONLOutput() {
				values := map[string]string{}
				if selected {
					values = tool.State().Values
				}
				return WriteOutput(os.Stdout, map[string]any{
					"template_id": tmpl.ID,
					"fields":      fields,
					"values":      values,
				})
			}

			rows := make([][]string, 0, len(fields))
			for _, field := range fields {
				value := ""
				if selected {
					value = tool.Value(field)
				}
				rows = append(rows, []string{field, value})
			}
			return writeTable(os.Stdout, []string{"FIELD", "VALUE"}, rows)
		})
	},
}

var emailSelectCmd = &cobra.Command{
	Use:   "select <template-id>",
	Short: "Select a template",
	Long:  "Select a template to fill. Selecting clears any field values entered before.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmailTool(func(ctx context.Context, rt *runtime, tool *email.Tool) error {
			tmpl, err := tool.Select(ctx, args[0])
			if err != nil {
				return emailError(err, args)
			}
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, tmpl)
			}
			fmt.Printf("Selected %q (%s)\n", tmpl.Name, tmpl.ID)
			if fields := tmpl.Fields(); len(fields) > 0 {
				fmt.Printf("Fields: %s\n", strings.Join(fields, ", "))
			}
			return nil
		})
	},
}

var emailSetCmd = &cobra.Command{
	Use:   "set <field>=<value>...",
	Short: "Set field values of the selected template",
	Example: `  deskkit email select password-reset
  deskkit email set "Customer Name=jane doe" "Ticket Number=INC-1042"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assignments, err := parseFieldAssignments(args)
		if err != nil {
			return err
		}
		return withEmailTool(func(ctx context.Context, rt *runtime, tool *email.Tool) error {
			for _, assignment := range assignments {
				if err := tool.SetValue(ctx, assignment.field, assignment.value); err != nil {
					return emailError(err, nil)
				}
			}
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, tool.State())
			}
			fmt.Printf("Set %d field(s)\n", len(assignments))
			return nil
		})
	},
}

var emailRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the selected template",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmailTool(func(ctx context.Context, rt *runtime, tool *email.Tool) error {
			text, err := tool.Generate(ctx)
			if err != nil {
				return emailError(err, nil)
			}

			copied := false
			if emailRenderCopy {
				copied = rt.copyOutput(ctx, models.EntityTypeEmail, kv.KeyEmailSession, text)
			}

			if IsJSONOutput() || IsJSONLOutput() {
				state := tool.State()
				tmpl, _ := tool.Selected()
				missing := templates.MissingFields(&tmpl, state.Values)
				if missing == nil {
					missing = []string{}
				}
				return WriteOutput(os.Stdout, map[string]any{
					"template_id": state.TemplateID,
					"text":        text,
					"missing":     missing,
					"copied":      copied,
				})
			}

			fmt.Println(text)
			reportCopy(emailRenderCopy, copied)
			return nil
		})
	},
}

var emailClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the selected template and field values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmailTool(func(ctx context.Context, rt *runtime, tool *email.Tool) error {
			if err := tool.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Email session cleared.")
			return nil
		})
	},
}

var emailEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Replace the template list",
	Long: `Replace the whole template list with an edited JSON array.

Each element needs a non-empty "id", "name" and "body", and ids must be
unique. An invalid list is rejected as a whole and nothing changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmailTool(func(ctx context.Context, rt *runtime, tool *email.Tool) error {
			current, err := tool.Templates().Raw()
			if err != nil {
				return err
			}
			source, err := emailEditSource.read(current)
			if err != nil {
				return err
			}
			items, err := tool.CommitRawEdit(ctx, source)
			if err != nil {
				return fmt.Errorf("template list not saved: %w", err)
			}
			if IsJSONOutput() || IsJSONLOutput() {
				return WriteOutput(os.Stdout, items)
			}
			fmt.Printf("Saved %d template(s)\n", len(items))
			return nil
		})
	},
}

var emailResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default templates",
	Long: `Restore the default templates. Edited templates are lost and the selection is cleared.

The defaults are the built-in templates plus any YAML overrides found in
./.deskkit/templates (relative to the current directory) and
$XDG_CONFIG_HOME/deskkit/templates, so the restored set depends on where
the command runs. Overrides win over built-ins with the same id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok, err := confirmDestructive("Reset all templates to defaults?")
		if err != nil || !ok {
			return err
		}
		return withEmailTool(func(ctx context.Context, rt *runtime, tool *email.Tool) error {
			if err := tool.Reset(ctx); err != nil {
				return fmt.Errorf("failed to reset templates: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Restored %d default template(s).\n", len(tool.Templates().Templates()))
			if dirs := existingDirs(rt.templateDirs); len(dirs) > 0 {
				fmt.Fprintf(os.Stderr, "Overrides from: %s\n", strings.Join(dirs, ", "))
			}
			return nil
		})
	},
}

var emailExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the template list as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEmailTool(func(ctx context.Context, rt *runtime, tool *email.Tool) error {
			raw, err := tool.Templates().Raw()
			if err != nil {
				return err
			}
			fmt.Println(raw)
			return nil
		})
	},
}

func withEmailTool(fn func(ctx context.Context, rt *runtime, tool *email.Tool) error) error {
	ctx := context.Background()

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	tool, err := rt.emailTool(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, rt, tool)
}

func emailError(err error, args []string) error {
	switch {
	case errors.Is(err, email.ErrNoTemplateSelected):
		return &PreflightError{
			Message:  "no template selected",
			Hint:     "Pick one from 'deskkit email list'",
			NextStep: "deskkit email select <template-id>",
		}
	case errors.Is(err, templates.ErrTemplateNotFound) && len(args) > 0:
		return fmt.Errorf("template '%s' not found", args[0])
	}
	return err
}

type fieldAssignment struct {
	field string
	value string
}

// parseFieldAssignments parses field=value arguments. Values may contain '='
// and may be empty; field names are trimmed.
func parseFieldAssignments(args []string) ([]fieldAssignment, error) {
	assignments := make([]fieldAssignment, 0, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected field=value)", arg)
		}
		assignments = append(assignments, fieldAssignment{field: field, value: value})
	}
	return assignments, nil
}

func reportCopy(requested, copied bool) {
	if !requested {
		return
	}
	if copied {
		fmt.Fprintln(os.Stderr, "Copied to clipboard.")
		return
	}
	fmt.Fprintln(os.Stderr, "Clipboard unavailable; text not copied.")
}
