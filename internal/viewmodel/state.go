package viewmodel

import (
	"errors"
	"fmt"

	"github.com/spiffcs/todo/internal/task"
)

// ErrInvalidState is returned by UiState.Validate for malformed snapshots.
var ErrInvalidState = errors.New("invalid ui state")

// UiState is an immutable snapshot of everything the task list shows.
// A new value replaces the previous one wholesale on every change.
type UiState struct {
	IsLoading       bool
	Items           []task.Task
	Filter          task.FilterKind
	FilterLabel     string
	EmptyStateLabel string
	EmptyStateIcon  string
	UserMessage     string
}

// Validate rejects snapshots the screen cannot render.
func (s UiState) Validate() error {
	if s.FilterLabel == "" {
		return fmt.Errorf("%w: missing filter label", ErrInvalidState)
	}
	if !s.IsLoading && len(s.Items) == 0 && s.EmptyStateLabel == "" {
		return fmt.Errorf("%w: missing empty-state label", ErrInvalidState)
	}
	for i, t := range s.Items {
		if t.ID == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidState, i)
		}
	}
	return nil
}

func (s UiState) clone() UiState {
	if s.Items != nil {
		items := make([]task.Task, len(s.Items))
		copy(items, s.Items)
		s.Items = items
	}
	return s
}

func stateForFilter(f task.FilterKind) UiState {
	info := f.Info()
	return UiState{
		Filter:          f,
		FilterLabel:     info.Label,
		EmptyStateLabel: info.EmptyLabel,
		EmptyStateIcon:  info.EmptyIcon,
	}
}
