// Package callnotes captures notes taken during a support call and turns
// them into a plain-text call summary.
package callnotes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField is returned for field names the form does not have.
var ErrUnknownField = errors.New("unknown call field")

// Field names a form field.
type Field string

const (
	FieldCaller          Field = "caller"
	FieldIssue           Field = "issue"
	FieldTroubleshooting Field = "troubleshooting"
	FieldResolution      Field = "resolution"
	FieldFollowUp        Field = "followUp"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldCaller, FieldIssue, FieldTroubleshooting, FieldResolution, FieldFollowUp}

// ParseField resolves a field name. Matching ignores case, and "steps" and
// "follow-up" are accepted as aliases.
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "caller":
		return FieldCaller, nil
	case "issue":
		return FieldIssue, nil
	case "troubleshooting", "steps":
		return FieldTroubleshooting, nil
	case "resolution":
		return FieldResolution, nil
	case "followup", "follow-up":
		return FieldFollowUp, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
}

// Form holds the call notes. Troubleshooting has one step per line.
type Form struct {
	Caller          string `json:"caller"`
	Issue           string `json:"issue"`
	Troubleshooting string `json:"troubleshooting"`
	Resolution      string `json:"resolution"`
	FollowUp        string `json:"followUp"`
}

// Get returns the value of field.
func (f Form) Get(field Field) string {
	switch field {
	case FieldCaller:
		return f.Caller
	case FieldIssue:
		return f.Issue
	case FieldTroubleshooting:
		return f.Troubleshooting
	case FieldResolution:
		return f.Resolution
	case FieldFollowUp:
		return f.FollowUp
	}
	return ""
}

// Set assigns value to field.
func (f *Form) Set(field Field, value string) error {
	switch field {
	case FieldCaller:
		f.Caller = value
	case FieldIssue:
		f.Issue = value
	case FieldTroubleshooting:
		f.Troubleshooting = value
	case FieldResolution:
		f.Resolution = value
	case FieldFollowUp:
		f.FollowUp = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// IsEmpty reports whether every field is empty.
func (f Form) IsEmpty() bool {
	return f == Form{}
}

// Summary renders the call summary. Empty fields are left out, sections are
// separated by a blank line and every troubleshooting line becomes a bullet.
func Summary(form Form) string {
	parts := make([]string, 0, 5)
	if form.Caller != "" {
		parts = append(parts, "Caller: "+form.Caller)
	}
	if form.Issue != "" {
		parts = append(parts, "\nIssue: "+form.Issue)
	}
	if form.Troubleshooting != "" {
		lines := strings.Split(form.Troubleshooting, "\n")
		for i, line := range lines {
			lines[i] = "- " + line
		}
		parts = append(parts, "\nActions Taken:\n"+strings.Join(lines, "\n"))
	}
	if form.Resolution != "" {
		parts = append(parts, "\nResolution: "+form.Resolution)
	}
	if form.FollowUp != "" {
		parts = append(parts, "\nFollow-up: "+form.FollowUp)
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
