// Package history keeps a rolling record of task statistics so progress can
// be compared between runs.
package history

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spiffcs/todo/internal/log"
	"github.com/spiffcs/todo/internal/task"
)

// maxRecords is the maximum number of snapshots retained in the store.
const maxRecords = 500

// Snapshot is the task statistics at one point in time.
type Snapshot struct {
	Timestamp time.Time `json:"ts"`
	Active    int       `json:"active"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
}

// NewSnapshot records s as taken at ts.
func NewSnapshot(s task.Stats, ts time.Time) Snapshot {
	return Snapshot{
		Timestamp: ts,
		Active:    s.Active,
		Completed: s.Completed,
		Total:     s.Total,
	}
}

// Store manages persistence of snapshots as JSON Lines.
type Store struct {
	path string
	mu   sync.Mutex
}

// DefaultPath returns ~/.cache/todo/history.jsonl (or the platform equivalent).
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "todo", "history.jsonl"), nil
}

// NewStore creates a store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Append adds a snapshot and prunes to the last maxRecords entries.
func (s *Store) Append(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		log.Debug("could not read history, starting fresh", "error", err)
		records = nil
	}

	// Consecutive identical counts add nothing to the trend
	if n := len(records); n > 0 && sameCounts(records[n-1], snap) {
		records[n-1].Timestamp = snap.Timestamp
	} else {
		records = append(records, snap)
	}

	if len(records) > maxRecords {
		records = records[len(records)-maxRecords:]
	}

	return s.writeAll(records)
}

func sameCounts(a, b Snapshot) bool {
	return a.Active == b.Active && a.Completed == b.Completed && a.Total == b.Total
}

// Recent returns the last n snapshots, oldest first.
func (s *Store) Recent(n int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil, err
	}

	if n <= 0 || len(records) <= n {
		return records, nil
	}
	return records[len(records)-n:], nil
}

// readAll reads all snapshots from disk.
func (s *Store) readAll() ([]Snapshot, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var records []Snapshot
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal(line, &snap); err != nil {
			continue // skip malformed lines
		}
		records = append(records, snap)
	}
	return records, scanner.Err()
}

// writeAll replaces the file with records via a temporary file.
func (s *Store) writeAll(records []Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, s.path)
}
