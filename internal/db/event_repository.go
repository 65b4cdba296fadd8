package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opencode-ai/deskkit/internal/models"
)

// ErrEventNotFound is returned by Get for unknown ids.
var ErrEventNotFound = errors.New("event not found")

// defaultEventLimit caps Query when no limit is given.
const defaultEventLimit = 100

// timestampLayout is fixed-width so lexical order matches time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const eventColumns = `id, timestamp, type, entity_type, entity_id, payload_json, metadata_json`

// EventRepository stores the audit log of resets, edits and generated
// summaries. Events are append-only apart from Prune.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventQuery filters the audit log. Nil filters match everything.
type EventQuery struct {
	Type       *models.EventType
	EntityType *models.EntityType
	// Since is inclusive.
	Since *time.Time
	// Cursor is the id of the last event of the previous page.
	Cursor string
	Limit  int
}

// EventPage is one page of Query results, oldest first.
type EventPage struct {
	Events     []*models.Event
	NextCursor string
}

// Create appends event, assigning an id and a UTC timestamp when unset.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil {
		return fmt.Errorf("event is required")
	}
	if err := event.Validate(); err != nil {
		return err
	}

	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Timestamp = event.Timestamp.UTC()

	metadata, err := encodeMetadata(event.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Timestamp.Format(timestampLayout),
		string(event.Type),
		string(event.EntityType),
		event.EntityID,
		nullableString(string(event.Payload)),
		metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// Get returns one event by id.
func (r *EventRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	event, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// Query returns one page of matching events, oldest first.
func (r *EventRepository) Query(ctx context.Context, q EventQuery) (*EventPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}

	where, args := eventFilter(q, true)
	// One extra row tells whether a next page exists.
	args = append(args, limit+1)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events`+where+` ORDER BY timestamp, id LIMIT ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]*models.Event, 0, limit)
	for rows.Next() {
		event, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	page := &EventPage{Events: events}
	if len(events) > limit {
		page.Events = events[:limit]
		page.NextCursor = events[limit-1].ID
	}
	return page, nil
}

// Count returns how many events match q, ignoring its cursor and limit.
func (r *EventRepository) Count(ctx context.Context, q EventQuery) (int, error) {
	where, args := eventFilter(q, false)
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// Prune deletes events older than before and returns how many were removed.
func (r *EventRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE timestamp < ?`, before.UTC().Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}
	if removed > 0 {
		r.db.logger.Debug().Int64("removed", removed).Time("before", before).Msg("pruned events")
	}
	return removed, nil
}

// eventFilter builds the WHERE clause for q.
func eventFilter(q EventQuery, withCursor bool) (string, []any) {
	var clauses []string
	var args []any

	if q.Type != nil {
		clauses = append(clauses, `type = ?`)
		args = append(args, string(*q.Type))
	}
	if q.EntityType != nil {
		clauses = append(clauses, `entity_type = ?`)
		args = append(args, string(*q.EntityType))
	}
	if q.Since != nil {
		clauses = append(clauses, `timestamp >= ?`)
		args = append(args, q.Since.UTC().Format(timestampLayout))
	}
	if withCursor && q.Cursor != "" {
		clauses = append(clauses, `(timestamp, id) > (SELECT timestamp, id FROM events WHERE id = ?)`)
		args = append(args, q.Cursor)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *EventRepository) scan(row rowScanner) (*models.Event, error) {
	var (
		event                       models.Event
		timestamp, kind, entityType string
		payload, metadata           sql.NullString
	)
	if err := row.Scan(&event.ID, &timestamp, &kind, &entityType, &event.EntityID, &payload, &metadata); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}

	event.Type = models.EventType(kind)
	event.EntityType = models.EntityType(entityType)
	if parsed, err := time.Parse(timestampLayout, timestamp); err == nil {
		event.Timestamp = parsed
	} else {
		r.db.logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to parse event timestamp")
	}
	if payload.Valid {
		event.Payload = json.RawMessage(payload.String)
	}
	if metadata.Valid {
		if err := json.Unmarshal([]byte(metadata.String), &event.Metadata); err != nil {
			r.db.logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to parse event metadata")
		}
	}
	return &event, nil
}

func encodeMetadata(metadata map[string]string) (*string, error) {
	if metadata == nil {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return nullableString(string(data)), nil
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
