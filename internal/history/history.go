// Package history records pipeline runs in SQLite as an append-only audit
// log. The log is never consulted during validation; busy and free windows
// are always recomputed from the calendar backend.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID            string
	Date          string
	PlanSource    string
	Status        string
	EventsCreated int
	Warnings      []string
	Errors        []string
	Unmatched     []string
	CreatedAt     time.Time
	Events        []RunEvent
}

// RunEvent is one calendar event created during a run.
type RunEvent struct {
	ID             string
	RunID          string
	Title          string
	StartTime      string
	EndTime        string
	Description    string
	BackendEventID string
	CreatedAt      time.Time
}

// Repo persists runs and their created events.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a Repo over an open database.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// RecordRun inserts a run and its events in one transaction. Missing IDs
// and timestamps are filled in.
func (r *Repo) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.EventsCreated = len(run.Events)

	warnings, err := marshalStrings(run.Warnings)
	if err != nil {
		return fmt.Errorf("encoding warnings: %w", err)
	}
	errs, err := marshalStrings(run.Errors)
	if err != nil {
		return fmt.Errorf("encoding errors: %w", err)
	}
	unmatched, err := marshalStrings(run.Unmatched)
	if err != nil {
		return fmt.Errorf("encoding unmatched items: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, date, plan_source, status, events_created, warnings, errors, unmatched, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Date, run.PlanSource, run.Status, run.EventsCreated,
		warnings, errs, unmatched, run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for i := range run.Events {
		ev := &run.Events[i]
		if ev.ID == "" {
			ev.ID = uuid.NewString()
		}
		ev.RunID = run.ID
		if ev.CreatedAt.IsZero() {
			ev.CreatedAt = run.CreatedAt
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_events (id, run_id, title, start_time, end_time, description, backend_event_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ev.ID, ev.RunID, ev.Title, ev.StartTime, ev.EndTime,
			ev.Description, ev.BackendEventID, ev.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("inserting run event %q: %w", ev.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, without their
// events.
func (r *Repo) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, plan_source, status, events_created, warnings, errors, unmatched, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// RunsForDate returns all runs recorded for a plan date, newest first.
func (r *Repo) RunsForDate(ctx context.Context, date string) ([]*Run, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, plan_source, status, events_created, warnings, errors, unmatched, created_at
		 FROM runs WHERE date = ? ORDER BY created_at DESC, id`, date)
	if err != nil {
		return nil, fmt.Errorf("listing runs for date: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// EventsForRun returns the events created during a run, in start order.
func (r *Repo) EventsForRun(ctx context.Context, runID string) ([]RunEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_id, title, start_time, end_time, description, backend_event_id, created_at
		 FROM run_events WHERE run_id = ? ORDER BY start_time`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing run events: %w", err)
	}
	defer rows.Close()

	var events []RunEvent
	for rows.Next() {
		var ev RunEvent
		var createdAt string
		if err := rows.Scan(&ev.ID, &ev.RunID, &ev.Title, &ev.StartTime, &ev.EndTime,
			&ev.Description, &ev.BackendEventID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run event: %w", err)
		}
		ev.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func scanRuns(rows *sql.Rows) ([]*Run, error) {
	var runs []*Run
	for rows.Next() {
		var run Run
		var warnings, errs, unmatched, createdAt string
		if err := rows.Scan(&run.ID, &run.Date, &run.PlanSource, &run.Status, &run.EventsCreated,
			&warnings, &errs, &unmatched, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := unmarshalStrings(warnings, &run.Warnings); err != nil {
			return nil, fmt.Errorf("decoding warnings: %w", err)
		}
		if err := unmarshalStrings(errs, &run.Errors); err != nil {
			return nil, fmt.Errorf("decoding errors: %w", err)
		}
		if err := unmarshalStrings(unmatched, &run.Unmatched); err != nil {
			return nil, fmt.Errorf("decoding unmatched items: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

func marshalStrings(ss []string) (string, error) {
	if ss == nil {
		ss = []string{}
	}
	data, err := json.Marshal(ss)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(data string, dst *[]string) error {
	if data == "" {
		return nil
	}
	return json.Unmarshal([]byte(data), dst)
}
