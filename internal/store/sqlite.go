package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spiffcs/todo/internal/log"
	"github.com/spiffcs/todo/internal/task"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	is_completed INTEGER NOT NULL DEFAULT 0,
	created_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at);
`

// SQLiteStore keeps tasks in an SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens the database at path. ":memory:" is accepted for tests.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and avoids
	// writer contention.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			closeQuietly(db)
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug("opened sqlite store", "path", path)
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func closeQuietly(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Error("error closing db", "error", err)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (task.Task, error) {
	var (
		t         task.Task
		completed int
		created   int64
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &completed, &created); err != nil {
		return task.Task{}, err
	}
	t.IsCompleted = completed != 0
	t.CreatedAt = time.Unix(0, created).UTC()
	return t, nil
}

// Tasks returns all tasks in creation order.
func (s *SQLiteStore) Tasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, is_completed, created_at FROM tasks ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Task returns the task with the given ID.
func (s *SQLiteStore) Task(ctx context.Context, id string) (task.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, is_completed, created_at FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return t, err
}

// Create inserts a new active task.
func (s *SQLiteStore) Create(ctx context.Context, title, description string) (task.Task, error) {
	if err := validateNew(title, description); err != nil {
		return task.Task{}, err
	}

	t := task.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, is_completed, created_at) VALUES (?, ?, ?, 0, ?)`,
		t.ID, t.Title, t.Description, t.CreatedAt.UnixNano())
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Complete marks a task completed.
func (s *SQLiteStore) Complete(ctx context.Context, id string) error {
	return s.setCompleted(ctx, id, true)
}

// Activate marks a task active again.
func (s *SQLiteStore) Activate(ctx context.Context, id string) error {
	return s.setCompleted(ctx, id, false)
}

func (s *SQLiteStore) setCompleted(ctx context.Context, id string, completed bool) error {
	v := 0
	if completed {
		v = 1
	}
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET is_completed = ? WHERE id = ?`, v, id)
	if err != nil {
		return err
	}
	return expectOne(res, id)
}

// ClearCompleted deletes every completed task and returns how many went.
func (s *SQLiteStore) ClearCompleted(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE is_completed = 1`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Delete removes a task.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
