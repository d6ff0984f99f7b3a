package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spiffcs/todo/internal/task"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func snap(i, active, completed int) Snapshot {
	return Snapshot{
		Timestamp: base.Add(time.Duration(i) * time.Hour),
		Active:    active,
		Completed: completed,
		Total:     active + completed,
	}
}

func TestAppendAndRecent(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.jsonl"))

	for i, counts := range [][2]int{{3, 0}, {2, 1}, {1, 2}} {
		if err := s.Append(snap(i, counts[0], counts[1])); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(got))
	}
	if got[0].Active != 3 || got[2].Completed != 2 {
		t.Errorf("snapshots out of order: %+v", got)
	}
}

func TestRecentLimitsResults(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.jsonl"))
	for i := range 5 {
		if err := s.Append(snap(i, i, 0)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Active != 3 || got[1].Active != 4 {
		t.Errorf("Recent(2) = %+v", got)
	}
}

func TestAppendCollapsesUnchangedCounts(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.jsonl"))
	_ = s.Append(snap(0, 2, 1))
	_ = s.Append(snap(1, 2, 1))

	got, err := s.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(got))
	}
	if !got[0].Timestamp.Equal(base.Add(time.Hour)) {
		t.Errorf("timestamp not refreshed: %v", got[0].Timestamp)
	}
}

func TestPrune(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "history.jsonl"))
	for i := range maxRecords + 10 {
		if err := s.Append(snap(i, i, 0)); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != maxRecords {
		t.Errorf("got %d snapshots, want %d", len(got), maxRecords)
	}
	if got[0].Active != 10 {
		t.Errorf("oldest kept = %d, want 10", got[0].Active)
	}
}

func TestMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope", "history.jsonl"))
	got, err := s.Recent(5)
	if err != nil || len(got) != 0 {
		t.Errorf("Recent() = %v, %v; want empty", got, err)
	}
}

func TestMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"ts":"2024-05-01T09:00:00Z","active":1,"completed":0,"total":1}
not json

{"ts":"2024-05-01T10:00:00Z","active":0,"completed":1,"total":1}
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(path).Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d snapshots, want 2", len(got))
	}
}

func TestNewSnapshot(t *testing.T) {
	st := task.ComputeStats([]task.Task{{ID: "1"}, {ID: "2", IsCompleted: true}})
	got := NewSnapshot(st, base)
	if got.Active != 1 || got.Completed != 1 || got.Total != 2 || !got.Timestamp.Equal(base) {
		t.Errorf("NewSnapshot() = %+v", got)
	}
}
