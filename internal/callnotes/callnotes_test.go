package callnotes

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/events"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
)

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want string
	}{
		{
			name: "empty",
			form: Form{},
			want: "",
		},
		{
			name: "all fields",
			form: Form{
				Caller:          "Jane Doe",
				Issue:           "Outlook crashes",
				Troubleshooting: "Restarted Outlook\nRepaired profile",
				Resolution:      "New profile created",
				FollowUp:        "Check in Friday",
			},
			want: "Caller: Jane Doe\n\nIssue: Outlook crashes\n\nActions Taken:\n- Restarted Outlook\n- Repaired profile\n\nResolution: New profile created\n\nFollow-up: Check in Friday",
		},
		{
			name: "leading parts omitted",
			form: Form{Resolution: "Fixed"},
			want: "Resolution: Fixed",
		},
		{
			name: "blank step lines kept",
			form: Form{Caller: "Bob", Troubleshooting: "a\n\nb"},
			want: "Caller: Bob\n\nActions Taken:\n- a\n- \n- b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.form); got != tt.want {
				t.Fatalf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	tests := map[string]Field{
		"caller":     FieldCaller,
		"Issue":      FieldIssue,
		"steps":      FieldTroubleshooting,
		"follow-up":  FieldFollowUp,
		"followUp":   FieldFollowUp,
		"resolution": FieldResolution,
	}
	for input, want := range tests {
		got, err := ParseField(input)
		if err != nil {
			t.Fatalf("ParseField(%q) failed: %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseField(%q) = %q, want %q", input, got, want)
		}
	}

	if _, err := ParseField("priority"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

type fakeEventRepo struct {
	types []models.EventType
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	r.types = append(r.types, event.Type)
	return nil
}

func TestToolPersistsForm(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	tool := NewTool(mem, nil, zerolog.Nop())

	if err := tool.Set(ctx, FieldCaller, "Ada"); err != nil {
		t.Fatalf("Set caller: %v", err)
	}
	if err := tool.Set(ctx, FieldTroubleshooting, "Rebooted"); err != nil {
		t.Fatalf("Set steps: %v", err)
	}

	raw, ok, err := mem.Get(ctx, kv.KeyCallSession)
	if err != nil || !ok {
		t.Fatalf("expected saved form, got ok=%v err=%v", ok, err)
	}
	want := `{"caller":"Ada","issue":"","troubleshooting":"Rebooted","resolution":"","followUp":""}`
	if raw != want {
		t.Fatalf("saved form = %s, want %s", raw, want)
	}

	restored := NewTool(mem, nil, zerolog.Nop())
	restored.Load(ctx)
	if restored.Form() != tool.Form() {
		t.Fatalf("restored form = %+v, want %+v", restored.Form(), tool.Form())
	}
	if restored.Summary() != "" {
		t.Fatalf("summary must not be restored, got %q", restored.Summary())
	}
}

func TestToolGenerateAndClear(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	repo := &fakeEventRepo{}
	tool := NewTool(mem, events.NewRecorder(repo, zerolog.Nop()), zerolog.Nop())

	if err := tool.Update(ctx, Form{Caller: "Ada", Issue: "VPN"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := tool.Generate(ctx); got != "Caller: Ada\n\nIssue: VPN" {
		t.Fatalf("Generate = %q", got)
	}

	if err := tool.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !tool.Form().IsEmpty() || tool.Summary() != "" {
		t.Fatalf("expected empty tool after clear, got %+v %q", tool.Form(), tool.Summary())
	}
	if _, ok, err := mem.Get(ctx, kv.KeyCallSession); err != nil || ok {
		t.Fatalf("expected saved form removed, got ok=%v err=%v", ok, err)
	}

	want := []models.EventType{models.EventTypeSummaryGenerated, models.EventTypeSessionCleared}
	if len(repo.types) != len(want) || repo.types[0] != want[0] || repo.types[1] != want[1] {
		t.Fatalf("recorded events = %v, want %v", repo.types, want)
	}
}

func TestToolLoadIgnoresCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	if err := mem.Set(ctx, kv.KeyCallSession, "{broken"); err != nil {
		t.Fatal(err)
	}

	tool := NewTool(mem, nil, zerolog.Nop())
	tool.Load(ctx)
	if !tool.Form().IsEmpty() {
		t.Fatalf("expected empty form, got %+v", tool.Form())
	}
}

func TestFormIsEmpty(t *testing.T) {
	if !(Form{}).IsEmpty() {
		t.Fatal("zero form must be empty")
	}
	if (Form{FollowUp: "call back"}).IsEmpty() {
		t.Fatal("form with a follow-up must not be empty")
	}
}
