package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/opencode-ai/deskkit/internal/callnotes"
	"github.com/opencode-ai/deskkit/internal/clipboard"
	"github.com/opencode-ai/deskkit/internal/db"
	"github.com/opencode-ai/deskkit/internal/email"
	"github.com/opencode-ai/deskkit/internal/events"
	"github.com/opencode-ai/deskkit/internal/kv"
	"github.com/opencode-ai/deskkit/internal/logging"
	"github.com/opencode-ai/deskkit/internal/models"
	"github.com/opencode-ai/deskkit/internal/subscriptions"
	"github.com/opencode-ai/deskkit/internal/templates"
)

// openDatabase opens and migrates the state database.
func openDatabase() (*db.DB, error) {
	path := GetConfig().DatabasePath()
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	applied, err := database.MigrateUp(context.Background())
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if applied > 0 {
		dbLogger := logging.Component("db")
		dbLogger.Debug().Int("applied", applied).Str("path", path).Msg("applied migrations")
	}
	return database, nil
}

// runtime holds the storage and collaborators shared by the tools.
type runtime struct {
	database *db.DB
	store    kv.Store
	events   *db.EventRepository
	recorder *events.Recorder
	copier   clipboard.Copier

	// templateDirs are the override directories the email defaults came from.
	templateDirs []string
}

// openRuntime opens the database, or an in-memory store with --ephemeral.
func openRuntime() (*runtime, error) {
	cfg := GetConfig()
	rt := &runtime{copier: clipboard.New(cfg.Clipboard.Enabled)}

	if ephemeral {
		rt.store = kv.NewMemory()
		rt.recorder = events.NewRecorder(nil, logging.Component("events"))
		return rt, nil
	}

	database, err := openDatabase()
	if err != nil {
		return nil, err
	}
	rt.database = database
	rt.store = db.NewKVRepository(database)
	rt.events = db.NewEventRepository(database)
	rt.recorder = events.NewRecorder(rt.events, logging.Component("events"))
	return rt, nil
}

func (r *runtime) Close() error {
	if r.database == nil {
		return nil
	}
	return r.database.Close()
}

func (r *runtime) emailTool(ctx context.Context) (*email.Tool, error) {
	projectDir, _ := os.Getwd()
	r.templateDirs = templates.TemplateSearchPaths(projectDir)
	defaults, err := templates.LoadDefaultTemplates(projectDir, logging.Component("templates"))
	if err != nil {
		return nil, fmt.Errorf("failed to load default templates: %w", err)
	}

	store := templates.NewStore(r.store, defaults, r.recorder, logging.Component("templates"))
	tool := email.NewTool(store, r.store, r.recorder, logging.Component("email"))
	if err := tool.Load(ctx); err != nil {
		return nil, err
	}
	return tool, nil
}

// existingDirs keeps the paths that exist as directories.
func existingDirs(paths []string) []string {
	dirs := make([]string, 0, len(paths))
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			dirs = append(dirs, path)
		}
	}
	return dirs
}

func (r *runtime) callTool(ctx context.Context) *callnotes.Tool {
	tool := callnotes.NewTool(r.store, r.recorder, logging.Component("callnotes"))
	tool.Load(ctx)
	return tool
}

func (r *runtime) subsTool(ctx context.Context) (*subscriptions.Tool, error) {
	defaults, err := subscriptions.LoadBuiltin()
	if err != nil {
		return nil, err
	}

	logger := logging.Component("subscriptions")
	tool := subscriptions.NewTool(
		subscriptions.NewListStore(r.store, defaults, r.recorder, logger),
		subscriptions.NewSession(r.store, logger),
		r.recorder,
	)
	if err := tool.Load(ctx); err != nil {
		return nil, err
	}
	return tool, nil
}

// copyOutput copies text and records the copy. It reports whether the text
// reached the clipboard.
func (r *runtime) copyOutput(ctx context.Context, entity models.EntityType, key, text string) bool {
	if !clipboard.CopyText(logging.Component("clipboard"), r.copier, text) {
		return false
	}
	r.recorder.SummaryCopied(ctx, entity, key)
	return true
}
