package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"deskclock/internal/models"

	"github.com/google/uuid"
)

// eventTimeLayout is the SQLite TIMESTAMP text format.
const eventTimeLayout = "2006-01-02 15:04:05"

// DefaultEventLimit caps List when the query sets no limit.
const DefaultEventLimit = 100

const (
	insertEventSQL = `INSERT INTO clock_events (id, occurred_at, type, message, meta) VALUES (?, ?, ?, ?, ?)`
	selectEventSQL = `SELECT id, occurred_at, type, message, meta FROM clock_events`
)

// EventQuery selects log entries. Zero fields do not filter.
type EventQuery struct {
	From       time.Time // inclusive
	To         time.Time // inclusive
	Types      []string
	Stage      string // TICK_ERROR entries whose meta.stages contains it
	Recurrence models.Recurrence
	Minute     *int // meta.minute of telemetry entries
	Limit      int  // newest first; DefaultEventLimit when <= 0
}

// where renders the filter as a SQL condition and its arguments.
func (q EventQuery) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, q.From.UTC().Format(eventTimeLayout))
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, q.To.UTC().Format(eventTimeLayout))
	}
	if len(q.Types) > 0 {
		conds = append(conds, "type IN ("+strings.TrimSuffix(strings.Repeat("?, ", len(q.Types)), ", ")+")")
		for _, t := range q.Types {
			args = append(args, t)
		}
	}
	if q.Stage != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM json_each(clock_events.meta, '$.stages') WHERE json_each.value = ?)")
		args = append(args, q.Stage)
	}
	if q.Recurrence != "" {
		conds = append(conds, "json_extract(meta, '$.recurrence') = ?")
		args = append(args, string(q.Recurrence))
	}
	if q.Minute != nil {
		conds = append(conds, "json_extract(meta, '$.minute') = ?")
		args = append(args, *q.Minute)
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

var _ EventRepo = (*EventSQLite)(nil)

// Append inserts e. Empty EventID and zero OccurredAt are filled in.
func (r *EventSQLite) Append(ctx context.Context, e models.ClockEvent) error {
	if !models.KnownEventType(e.Type) {
		return fmt.Errorf("append event: unknown type %q", e.Type)
	}
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	var meta sql.NullString
	if e.Meta != nil {
		b, err := json.Marshal(e.Meta)
		if err != nil {
			return fmt.Errorf("append event %s: encode meta: %w", e.Type, err)
		}
		meta = sql.NullString{String: string(b), Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.UTC().Format(eventTimeLayout),
		e.Type,
		e.Description,
		meta,
	); err != nil {
		return fmt.Errorf("append event %s: %w", e.Type, err)
	}
	return nil
}

// List returns the newest events matching q, newest first.
func (r *EventSQLite) List(ctx context.Context, q EventQuery) ([]models.ClockEvent, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultEventLimit
	}
	where, args := q.where()
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, selectEventSQL+where+" ORDER BY occurred_at DESC LIMIT ?", args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []models.ClockEvent
	for rows.Next() {
		var (
			ev   models.ClockEvent
			meta sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.Description, &meta); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		if meta.Valid && meta.String != "" {
			ev.Meta = &models.EventMeta{}
			if err := json.Unmarshal([]byte(meta.String), ev.Meta); err != nil {
				return nil, fmt.Errorf("decode meta of event %s: %w", ev.EventID, err)
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}
