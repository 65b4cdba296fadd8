package templates

import (
	"fmt"

	"github.com/opencode-ai/deskkit/internal/placeholders"
)

// RenderTemplate fills the template's placeholders from vars. Fields whose
// name contains "name" are title-cased; unfilled fields keep their [token].
func RenderTemplate(tmpl *Template, vars map[string]string) (string, error) {
	if tmpl == nil {
		return "", fmt.Errorf("template is required")
	}
	return placeholders.Render(tmpl.Body, vars, placeholders.NormalizeIfNameField), nil
}

// MissingFields returns the template fields that have no value in vars.
func MissingFields(tmpl *Template, vars map[string]string) []string {
	if tmpl == nil {
		return nil
	}
	var missing []string
	for _, field := range tmpl.Fields() {
		if vars[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}
