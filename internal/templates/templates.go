// Package templates provides the email template collection: built-in
// defaults, user default overrides, validation, storage and rendering.
package templates

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/deskkit/internal/catalog"
	"github.com/opencode-ai/deskkit/internal/placeholders"
)

// Template is a named email body containing [field] placeholders.
type Template struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Body string `json:"body" yaml:"body"`
}

// ValidationError describes a shape problem with one template in a list.
type ValidationError = catalog.ItemError

// Fields returns the distinct placeholder names of the body in order.
func (t Template) Fields() []string {
	return placeholders.Extract(t.Body)
}

// Validate checks every template in the list. Each needs a non-empty id, name
// and body, and ids must be unique.
func Validate(items []Template) error {
	seen := make(map[string]int, len(items))
	for i, tmpl := range items {
		if verr := validateOne(i, tmpl); verr != nil {
			return verr
		}
		if first, exists := seen[tmpl.ID]; exists {
			return &ValidationError{
				Index:   i,
				Field:   "id",
				Message: fmt.Sprintf("duplicate id %q (first used at %d)", tmpl.ID, first),
			}
		}
		seen[tmpl.ID] = i
	}
	return nil
}

func validateOne(index int, tmpl Template) *ValidationError {
	switch {
	case strings.TrimSpace(tmpl.ID) == "":
		return &ValidationError{Index: index, Field: "id", Message: "is required"}
	case strings.TrimSpace(tmpl.Name) == "":
		return &ValidationError{Index: index, Field: "name", Message: "is required"}
	case strings.TrimSpace(tmpl.Body) == "":
		return &ValidationError{Index: index, Field: "body", Message: "is required"}
	}
	return nil
}
