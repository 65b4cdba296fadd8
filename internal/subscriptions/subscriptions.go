// Package subscriptions implements the subscription change tool: the list of
// tracked subscriptions, the per-selection count entries, and the change
// summary built from them.
package subscriptions

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/deskkit/internal/catalog"
)

// Category groups subscriptions for display.
type Category string

const (
	CategoryUser   Category = "User Subscriptions"
	CategoryDevice Category = "Device Subscriptions"
)

// Categories lists the known categories in display order.
var Categories = []Category{CategoryUser, CategoryDevice}

// IsValid reports whether c is a known category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryUser, CategoryDevice:
		return true
	}
	return false
}

var (
	// ErrUnknownSubscription is returned for names not in the list.
	ErrUnknownSubscription = errors.New("unknown subscription")
	// ErrNotSelected is returned when editing an entry that is not selected.
	ErrNotSelected = errors.New("subscription not selected")
	// ErrUnknownField is returned by SetEntry for fields other than before, after and note.
	ErrUnknownField = errors.New("unknown entry field")
	// ErrInvalidFormat is matched by errors from rejected raw edits.
	ErrInvalidFormat = catalog.ErrInvalidFormat
)

// Item is one tracked subscription.
type Item struct {
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
}

// ValidationError describes a shape problem with one item in a list.
type ValidationError = catalog.ItemError

// Validate checks every item: a non-empty name and a known category. Names
// are not required to be unique.
func Validate(items []Item) error {
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return &ValidationError{Index: i, Field: "name", Message: "is required"}
		}
		if !item.Category.IsValid() {
			return &ValidationError{
				Index:   i,
				Field:   "category",
				Message: fmt.Sprintf("must be %q or %q", CategoryUser, CategoryDevice),
			}
		}
	}
	return nil
}

//go:embed builtin/subscriptions.yaml
var builtinList []byte

// LoadBuiltin returns the default subscription list.
func LoadBuiltin() ([]Item, error) {
	var items []Item
	if err := yaml.Unmarshal(builtinList, &items); err != nil {
		return nil, fmt.Errorf("parse builtin subscriptions: %w", err)
	}
	if err := Validate(items); err != nil {
		return nil, fmt.Errorf("builtin subscriptions: %w", err)
	}
	return items, nil
}

// Group is the items of one category.
type Group struct {
	Category Category
	Items    []Item
}

// ByCategory groups items by category in display order, keeping list order
// within each group. Every category is present even when empty.
func ByCategory(items []Item) []Group {
	groups := make([]Group, 0, len(Categories))
	for _, category := range Categories {
		group := Group{Category: category, Items: []Item{}}
		for _, item := range items {
			if item.Category == category {
				group.Items = append(group.Items, item)
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// FormatRow renders one change line.
func FormatRow(name, before, after, note string) string {
	row := fmt.Sprintf("%s was %s now %s", name, before, after)
	if note != "" {
		row += " (" + note + ")"
	}
	return row
}
