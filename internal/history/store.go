package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrMissingID is returned when a run without an identifier is recorded.
var ErrMissingID = errors.New("run id is required")

const runColumns = `id, started_at, finished_at, input_path, output_path, mode, state,
    kind, layers, bytes, content_id, error_kind, error_message`

// Record inserts or replaces a run.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.ID == "" {
		return ErrMissingID
	}
	_, err := s.execWithRetry(ctx,
		`INSERT OR REPLACE INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.Input,
		run.Output,
		run.Mode,
		run.State,
		nullableString(run.Kind),
		run.Layers,
		run.Bytes,
		nullableString(run.ContentID),
		nullableString(run.ErrorKind),
		nullableString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns a single run by identifier, or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx), `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &run, nil
}

// List returns the most recent runs, newest first. A limit <= 0 returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	return s.listRuns(ctx, "", limit)
}

// ListByKind is List restricted to runs recorded with the given kind label.
func (s *Store) ListByKind(ctx context.Context, kind string, limit int) ([]Run, error) {
	if kind == "" {
		return s.List(ctx, limit)
	}
	return s.listRuns(ctx, kind, limit)
}

func (s *Store) listRuns(ctx context.Context, kind string, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY started_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Count returns the number of recorded runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ensureContext(ctx), `SELECT COUNT(1) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

// Prune keeps the newest retain runs and deletes the rest. A retain <= 0 keeps everything.
func (s *Store) Prune(ctx context.Context, retain int) (int64, error) {
	if retain <= 0 {
		return 0, nil
	}
	res, err := s.execWithRetry(ctx,
		`DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
        )`, retain)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return removed, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run                          Run
		started, finished            string
		kind, contentID, errKind, em sql.NullString
	)
	if err := row.Scan(
		&run.ID,
		&started,
		&finished,
		&run.Input,
		&run.Output,
		&run.Mode,
		&run.State,
		&kind,
		&run.Layers,
		&run.Bytes,
		&contentID,
		&errKind,
		&em,
	); err != nil {
		return Run{}, err
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	run.Kind = kind.String
	run.ContentID = contentID.String
	run.ErrorKind = errKind.String
	run.Error = em.String
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
