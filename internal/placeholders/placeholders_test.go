package placeholders

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"dedup keeps first order", "Hi [Name], issue [Ticket]. Thanks [Name].", []string{"Name", "Ticket"}},
		{"no tokens", "Plain text", []string{}},
		{"empty body", "", []string{}},
		{"unclosed token", "Hello [Name", []string{}},
		{"empty token", "a [] b", []string{""}},
		{"first close wins", "[a[b]c]", []string{"a[b"}},
		{"adjacent", "[A][B][A]", []string{"A", "B"}},
		{"spaces and underscores", "[Caller Name] [ticket_id]", []string{"Caller Name", "ticket_id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.body)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %#v, want %#v", tt.body, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		values map[string]string
		want   string
	}{
		{"unfilled stays", "Hi [Name]", map[string]string{"Name": ""}, "Hi [Name]"},
		{"missing stays", "Hi [Name]", nil, "Hi [Name]"},
		{"name normalized", "Hi [Name]", map[string]string{"Name": "john/jane doe"}, "Hi John/Jane Doe"},
		{"non-name field untouched", "Ticket [Ticket]", map[string]string{"Ticket": "abc DEF"}, "Ticket abc DEF"},
		{"global replace", "[Name] and [Name]", map[string]string{"Name": "bob"}, "Bob and Bob"},
		{"no rescan of substituted text", "[A] [B]", map[string]string{"A": "[B]", "B": "x"}, "[B] x"},
		{"partial fill", "[A]-[B]", map[string]string{"A": "1"}, "1-[B]"},
		{"token inside unmatched span", "[x[Ticket]", map[string]string{"Ticket": "42"}, "[x42"},
		{"unclosed tail", "[Ticket] [open", map[string]string{"Ticket": "42"}, "42 [open"},
		{"case-insensitive name key", "[first_NAME]", map[string]string{"first_NAME": "aDA"}, "Ada"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.body, tt.values, NormalizeIfNameField)
			if got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestRenderNilNormalize(t *testing.T) {
	got := Render("Hi [Name]", map[string]string{"Name": "bob"}, nil)
	if got != "Hi bob" {
		t.Fatalf("unexpected render result: %q", got)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"bob  SMITH", "Bob Smith"},
		{"john doe/jane", "John Doe/Jane"},
		{"john/jane doe", "John/Jane Doe"},
		{" mary ann / o'NEIL ", "Mary Ann/O'neil"},
		{"élodie", "Élodie"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIfNameField(t *testing.T) {
	if got := NormalizeIfNameField("Customer Name", "ada LOVELACE"); got != "Ada Lovelace" {
		t.Errorf("name field: got %q", got)
	}
	if got := NormalizeIfNameField("Issue", "ada LOVELACE"); got != "ada LOVELACE" {
		t.Errorf("other field: got %q", got)
	}
	if got := NormalizeIfNameField("Username", ""); got != "" {
		t.Errorf("empty value: got %q", got)
	}
}
