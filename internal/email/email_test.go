package email

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/deskkit/internal/events"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/models"
	"github.com/opencode-ai/deskkit/internal/templates"
)

var testTemplates = []templates.Template{
	{ID: "greet", Name: "Greeting", Body: "Hi [Customer Name], ticket [Ticket] is open."},
	{ID: "bye", Name: "Goodbye", Body: "Bye [Name]"},
}

type fakeEventRepo struct {
	events []*models.Event
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	r.events = append(r.events, event)
	return nil
}

func newTestTool(t *testing.T, mem *kv.Memory) (*Tool, *fakeEventRepo) {
	t.Helper()
	repo := &fakeEventRepo{}
	recorder := events.NewRecorder(repo, zerolog.Nop())
	store := templates.NewStore(mem, testTemplates, recorder, zerolog.Nop())
	tool := NewTool(store, mem, recorder, zerolog.Nop())
	require.NoError(t, tool.Load(context.Background()))
	return tool, repo
}

func TestToolRequiresSelection(t *testing.T) {
	ctx := context.Background()
	tool, _ := newTestTool(t, kv.NewMemory())

	_, err := tool.Fields()
	require.ErrorIs(t, err, ErrNoTemplateSelected)
	_, err = tool.Generate(ctx)
	require.ErrorIs(t, err, ErrNoTemplateSelected)
	require.ErrorIs(t, tool.SetValue(ctx, "Name", "x"), ErrNoTemplateSelected)

	_, err = tool.Select(ctx, "missing")
	require.ErrorIs(t, err, templates.ErrTemplateNotFound)
}

func TestToolGenerate(t *testing.T) {
	ctx := context.Background()
	tool, repo := newTestTool(t, kv.NewMemory())

	_, err := tool.Select(ctx, "greet")
	require.NoError(t, err)

	fields, err := tool.Fields()
	require.NoError(t, err)
	require.Equal(t, []string{"Customer Name", "Ticket"}, fields)

	require.NoError(t, tool.SetValue(ctx, "Customer Name", "john/jane DOE"))
	require.ErrorIs(t, tool.SetValue(ctx, "Priority", "high"), ErrUnknownField)

	preview, err := tool.Preview()
	require.NoError(t, err)
	require.Equal(t, "Hi John/Jane Doe, ticket [Ticket] is open.", preview)
	require.Empty(t, tool.Output())

	require.NoError(t, tool.SetValue(ctx, "Ticket", "INC-42"))
	text, err := tool.Generate(ctx)
	require.NoError(t, err)
	require.Equal(t, "Hi John/Jane Doe, ticket INC-42 is open.", text)
	require.Equal(t, text, tool.Output())

	require.Len(t, repo.events, 1)
	require.Equal(t, models.EventTypeSummaryGenerated, repo.events[0].Type)
}

func TestToolSelectResetsValues(t *testing.T) {
	ctx := context.Background()
	tool, _ := newTestTool(t, kv.NewMemory())

	_, err := tool.Select(ctx, "bye")
	require.NoError(t, err)
	require.NoError(t, tool.SetValue(ctx, "Name", "ada"))

	_, err = tool.Select(ctx, "greet")
	require.NoError(t, err)
	require.Empty(t, tool.State().Values)
}

func TestToolSessionRestored(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	tool, _ := newTestTool(t, mem)

	_, err := tool.Select(ctx, "bye")
	require.NoError(t, err)
	require.NoError(t, tool.SetValue(ctx, "Name", "ada"))
	_, err = tool.Generate(ctx)
	require.NoError(t, err)

	restored, _ := newTestTool(t, mem)
	require.Equal(t, tool.State(), restored.State())
	require.Equal(t, "Bye Ada", restored.Output())
}

func TestToolDropsSelectionWhenTemplateRemoved(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	tool, _ := newTestTool(t, mem)

	_, err := tool.Select(ctx, "bye")
	require.NoError(t, err)

	_, err = tool.CommitRawEdit(ctx, `[{"id":"greet","name":"Greeting","body":"Hi [Name]"}]`)
	require.NoError(t, err)

	_, err = tool.Selected()
	require.ErrorIs(t, err, ErrNoTemplateSelected)
}

func TestToolReset(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	tool, repo := newTestTool(t, mem)

	_, err := tool.CommitRawEdit(ctx, `[{"id":"only","name":"Only","body":"[X]"}]`)
	require.NoError(t, err)
	_, err = tool.Select(ctx, "only")
	require.NoError(t, err)

	require.NoError(t, tool.Reset(ctx))
	require.Equal(t, testTemplates, tool.Templates().Templates())
	_, err = tool.Selected()
	require.ErrorIs(t, err, ErrNoTemplateSelected)

	_, ok, err := mem.Get(ctx, kv.KeyEmailSession)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, models.EventTypeTemplatesReset, repo.events[len(repo.events)-1].Type)
}

func TestToolLoadDropsStaleSelection(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, kv.KeyEmailSession, `{"templateId":"gone","values":{"A":"b"}}`))

	tool, _ := newTestTool(t, mem)
	_, err := tool.Selected()
	require.ErrorIs(t, err, ErrNoTemplateSelected)
	require.Empty(t, tool.State().Values)
}
