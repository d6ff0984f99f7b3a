package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spiffcs/todo/internal/log"
	"github.com/spiffcs/todo/internal/task"
)

// FileStore keeps all tasks in a single JSON file, rewritten on each change.
type FileStore struct {
	path  string
	tasks []task.Task
	mu    sync.RWMutex
	now   func() time.Time
}

// NewFileStore opens (or creates) the JSON task file at path.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &FileStore{
		path: path,
		now:  time.Now,
	}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Debug("opened file store", "path", path, "tasks", len(s.tasks))
	return s, nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, &s.tasks)
}

// save writes to a temp file first so a crash never leaves a torn file.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Tasks returns a copy of all tasks in creation order.
func (s *FileStore) Tasks(ctx context.Context) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// Task returns the task with the given ID.
func (s *FileStore) Task(ctx context.Context, id string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return task.Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.tasks[i], nil
}

// Create appends a new active task.
func (s *FileStore) Create(ctx context.Context, title, description string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	if err := validateNew(title, description); err != nil {
		return task.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := task.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   s.now().UTC(),
	}
	s.tasks = append(s.tasks, t)
	if err := s.save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return task.Task{}, err
	}
	return t, nil
}

// Complete marks a task completed.
func (s *FileStore) Complete(ctx context.Context, id string) error {
	return s.setCompleted(ctx, id, true)
}

// Activate marks a task active again.
func (s *FileStore) Activate(ctx context.Context, id string) error {
	return s.setCompleted(ctx, id, false)
}

func (s *FileStore) setCompleted(ctx context.Context, id string, completed bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	prev := s.tasks[i]
	s.tasks[i] = prev.WithCompleted(completed)
	if err := s.save(); err != nil {
		s.tasks[i] = prev
		return err
	}
	return nil
}

// ClearCompleted deletes every completed task and returns how many went.
func (s *FileStore) ClearCompleted(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.tasks
	kept := task.FilterActive.Apply(s.tasks)
	removed := len(prev) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	s.tasks = kept
	if err := s.save(); err != nil {
		s.tasks = prev
		return 0, err
	}
	return removed, nil
}

// Delete removes a task.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	prev := s.tasks
	next := make([]task.Task, 0, len(prev)-1)
	next = append(next, prev[:i]...)
	next = append(next, prev[i+1:]...)
	s.tasks = next
	if err := s.save(); err != nil {
		s.tasks = prev
		return err
	}
	return nil
}

// Close is a no-op; every mutation is already on disk.
func (s *FileStore) Close() error {
	return nil
}
