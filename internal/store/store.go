// Package store persists tasks. Two backends are provided: a JSON file and
// an SQLite database. Both satisfy Repository.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spiffcs/todo/internal/task"
)

var (
	// ErrNotFound is returned when no task matches an ID.
	ErrNotFound = errors.New("task not found")

	// ErrAmbiguous is returned when an ID prefix matches more than one task.
	ErrAmbiguous = errors.New("ambiguous task id")

	// ErrEmptyTask is returned when creating a task with no title or description.
	ErrEmptyTask = errors.New("task needs a title or description")
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Repository is the persistence contract for tasks. Tasks are returned in
// creation order.
type Repository interface {
	Tasks(ctx context.Context) ([]task.Task, error)
	Task(ctx context.Context, id string) (task.Task, error)
	Create(ctx context.Context, title, description string) (task.Task, error)
	Complete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	ClearCompleted(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open returns the repository for backend, storing data at path. An empty
// path selects the default location under the user's data directory.
func Open(ctx context.Context, backend, path string) (Repository, error) {
	if backend == "" {
		backend = BackendFile
	}
	if path == "" {
		p, err := DefaultPath(backend)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch backend {
	case BackendFile:
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(ctx, path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q: use %s or %s", backend, BackendFile, BackendSQLite)
	}
}

// DefaultPath returns the default data file for backend.
func DefaultPath(backend string) (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	if backend == BackendSQLite {
		return filepath.Join(dir, "tasks.db"), nil
	}
	return filepath.Join(dir, "tasks.json"), nil
}

func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "todo"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "todo"), nil
}

// Resolve finds the task whose ID equals ref or starts with it.
func Resolve(ctx context.Context, repo Repository, ref string) (task.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return task.Task{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	tasks, err := repo.Tasks(ctx)
	if err != nil {
		return task.Task{}, err
	}

	var matches []task.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return task.Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return task.Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguous, ref, len(matches))
	}
}

func validateNew(title, description string) error {
	if (task.Task{Title: title, Description: description}).IsEmpty() {
		return ErrEmptyTask
	}
	return nil
}
