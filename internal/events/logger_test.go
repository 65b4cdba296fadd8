package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/deskkit/internal/models"
)

type fakeRepo struct {
	last  *models.Event
	count int
	err   error
}

func (r *fakeRepo) Create(ctx context.Context, event *models.Event) error {
	if r.err != nil {
		return r.err
	}
	r.last = event
	r.count++
	return nil
}

func TestLogCollectionChanged(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogCollectionChanged(context.Background(), repo, models.EventTypeTemplatesReset, models.EntityTypeEmail, "emailTemplates", 4); err != nil {
		t.Fatalf("LogCollectionChanged failed: %v", err)
	}

	if repo.last == nil {
		t.Fatal("expected event to be created")
	}
	if repo.last.Type != models.EventTypeTemplatesReset {
		t.Fatalf("unexpected event type: %q", repo.last.Type)
	}
	if repo.last.EntityID != "emailTemplates" {
		t.Fatalf("unexpected entity id: %q", repo.last.EntityID)
	}

	var payload models.CollectionChangedPayload
	if err := json.Unmarshal(repo.last.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Count != 4 {
		t.Fatalf("unexpected count: %d", payload.Count)
	}
}

func TestLogSummaryGenerated(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogSummaryGenerated(context.Background(), repo, models.EntityTypeSubscription, "subscriptionChangeTool", "", "a\nb"); err != nil {
		t.Fatalf("LogSummaryGenerated failed: %v", err)
	}

	var payload models.SummaryGeneratedPayload
	if err := json.Unmarshal(repo.last.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Lines != 2 || payload.Chars != 3 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestLogRequiresRepository(t *testing.T) {
	if err := LogSessionCleared(context.Background(), nil, models.EntityTypeCall, "callTemplateForm"); err == nil {
		t.Fatal("expected error for nil repository")
	}
}

func TestRecorderSwallowsFailures(t *testing.T) {
	repo := &fakeRepo{err: errors.New("disk full")}
	recorder := NewRecorder(repo, zerolog.Nop())

	recorder.SessionCleared(context.Background(), models.EntityTypeCall, "callTemplateForm")
	if repo.count != 0 {
		t.Fatalf("expected no events stored, got %d", repo.count)
	}

	var nilRecorder *Recorder
	nilRecorder.SummaryGenerated(context.Background(), models.EntityTypeCall, "callTemplateForm", "", "x")

	NewRecorder(nil, zerolog.Nop()).StoreRecovered(context.Background(), models.EntityTypeEmail, "emailTemplates", "parse")
}

func TestRecorderSummaryCopied(t *testing.T) {
	repo := &fakeRepo{}
	NewRecorder(repo, zerolog.Nop()).SummaryCopied(context.Background(), models.EntityTypeEmail, "emailTemplateSession")

	if repo.count != 1 {
		t.Fatalf("expected one event, got %d", repo.count)
	}
	if repo.last.Type != models.EventTypeSummaryCopied {
		t.Fatalf("unexpected event type: %q", repo.last.Type)
	}
	if len(repo.last.Payload) != 0 {
		t.Fatalf("expected empty payload, got %s", repo.last.Payload)
	}
}
