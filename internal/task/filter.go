package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFilter is returned when a filter name cannot be parsed.
var ErrInvalidFilter = errors.New("invalid filter")

// FilterKind selects which tasks the list shows.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterActive
	FilterCompleted
)

// FilterKinds lists every filter in display order.
func FilterKinds() []FilterKind {
	return []FilterKind{FilterAll, FilterActive, FilterCompleted}
}

func (f FilterKind) String() string {
	switch f {
	case FilterActive:
		return "active"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// ParseFilterKind parses "all", "active" or "completed" (case-insensitive).
func ParseFilterKind(s string) (FilterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return FilterAll, nil
	case "active":
		return FilterActive, nil
	case "completed", "done":
		return FilterCompleted, nil
	default:
		return FilterAll, fmt.Errorf("%w %q: use all, active, or completed", ErrInvalidFilter, s)
	}
}

// Next cycles All -> Active -> Completed -> All.
func (f FilterKind) Next() FilterKind {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Matches reports whether t belongs in the filtered list.
func (f FilterKind) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return t.IsActive()
	case FilterCompleted:
		return t.IsCompleted
	default:
		return true
	}
}

// Apply returns the tasks matching f, in their original order.
func (f FilterKind) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// FilteringInfo holds the labels and icon shown for a filter.
type FilteringInfo struct {
	Label      string
	EmptyLabel string
	EmptyIcon  string
}

// Info returns the display labels for f.
func (f FilterKind) Info() FilteringInfo {
	switch f {
	case FilterActive:
		return FilteringInfo{
			Label:      "Active Tasks",
			EmptyLabel: "You have no active tasks!",
			EmptyIcon:  "○",
		}
	case FilterCompleted:
		return FilteringInfo{
			Label:      "Completed Tasks",
			EmptyLabel: "You have no completed tasks!",
			EmptyIcon:  "✓",
		}
	default:
		return FilteringInfo{
			Label:      "All Tasks",
			EmptyLabel: "You have no tasks!",
			EmptyIcon:  "☰",
		}
	}
}
