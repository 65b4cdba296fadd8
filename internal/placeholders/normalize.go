package placeholders

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeName title-cases each word of a person-name value. Multiple names
// may be separated by '/', e.g. "john doe/jane" becomes "John Doe/Jane".
// Runs of spaces collapse to a single space.
func NormalizeName(value string) string {
	if value == "" {
		return value
	}

	segments := strings.Split(value, "/")
	for i, segment := range segments {
		words := strings.Split(strings.TrimSpace(segment), " ")
		kept := make([]string, 0, len(words))
		for _, word := range words {
			if word == "" {
				continue
			}
			kept = append(kept, titleWord(word))
		}
		segments[i] = strings.Join(kept, " ")
	}

	return strings.Join(segments, "/")
}

// NormalizeIfNameField applies NormalizeName when key looks like a name field
// (contains "name", case-insensitive) and returns value unchanged otherwise.
func NormalizeIfNameField(key, value string) string {
	if value == "" || !IsNameField(key) {
		return value
	}
	return NormalizeName(value)
}

// IsNameField reports whether key holds a person's name.
func IsNameField(key string) bool {
	return strings.Contains(strings.ToLower(key), "name")
}

func titleWord(word string) string {
	first, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
}
