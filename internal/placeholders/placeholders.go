// Package placeholders extracts and substitutes bracketed [field] tokens in
// free-text template bodies.
package placeholders

import "strings"

// NormalizeFunc maps a field key and its raw value to the text that replaces
// the field's token.
type NormalizeFunc func(key, value string) string

// Extract returns the distinct placeholder names in body, in order of first
// appearance. A token opens at '[' and closes at the first following ']';
// brackets do not nest.
func Extract(body string) []string {
	names := make([]string, 0)
	seen := make(map[string]struct{})

	for i := 0; i < len(body); {
		start := strings.IndexByte(body[i:], '[')
		if start < 0 {
			break
		}
		start += i
		end := strings.IndexByte(body[start+1:], ']')
		if end < 0 {
			break
		}
		end += start + 1

		name := body[start+1 : end]
		if _, exists := seen[name]; !exists {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		i = end + 1
	}

	return names
}

// Render substitutes every [key] token whose value is non-empty with
// normalize(key, value). Tokens with empty or missing values are kept as-is so
// unfilled fields stay visible. Substituted text is never scanned again.
func Render(body string, values map[string]string, normalize NormalizeFunc) string {
	if len(values) == 0 || !strings.Contains(body, "[") {
		return body
	}
	if normalize == nil {
		normalize = Identity
	}

	replacements := make(map[string]string, len(values))
	for key, value := range values {
		if value == "" {
			continue
		}
		replacements[key] = normalize(key, value)
	}
	if len(replacements) == 0 {
		return body
	}

	var out strings.Builder
	out.Grow(len(body))

	i := 0
	for i < len(body) {
		if body[i] != '[' {
			next := strings.IndexByte(body[i:], '[')
			if next < 0 {
				out.WriteString(body[i:])
				break
			}
			out.WriteString(body[i : i+next])
			i += next
			continue
		}

		end := strings.IndexByte(body[i+1:], ']')
		if end < 0 {
			out.WriteString(body[i:])
			break
		}
		end += i + 1

		if replacement, ok := replacements[body[i+1:end]]; ok {
			out.WriteString(replacement)
			i = end + 1
			continue
		}

		// Not a filled field. Emit the bracket alone so a token opening later
		// inside this span is still found.
		out.WriteByte('[')
		i++
	}

	return out.String()
}

// Identity returns value unchanged.
func Identity(_ string, value string) string {
	return value
}
