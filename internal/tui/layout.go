package tui

import (
	"github.com/spiffcs/todo/internal/task"
	"github.com/spiffcs/todo/internal/viewmodel"
)

// Body is what the area below the filter label shows.
type Body int

const (
	// BodyNone shows nothing but the loading indicator (first load).
	BodyNone Body = iota
	// BodyEmpty shows the empty-state panel.
	BodyEmpty
	// BodyList shows one row per task.
	BodyList
)

// Row is the presentation of a single task.
type Row struct {
	Task          task.Task
	Checked       bool
	Strikethrough bool
	Title         string
}

// Layout is the pure mapping of a UiState onto what the screen shows.
type Layout struct {
	ShowLoading bool
	Body        Body
	FilterLabel string
	EmptyLabel  string
	EmptyIcon   string
	Rows        []Row
}

// BuildLayout maps a snapshot to a layout. Items are rendered exactly as
// given: no filtering, reordering or deduplication happens here.
func BuildLayout(s viewmodel.UiState) Layout {
	l := Layout{
		ShowLoading: s.IsLoading,
		FilterLabel: s.FilterLabel,
	}

	switch {
	case len(s.Items) > 0:
		// Keep the list under the indicator while a refresh runs.
		l.Body = BodyList
		l.Rows = make([]Row, len(s.Items))
		for i, t := range s.Items {
			l.Rows[i] = NewRow(t)
		}
	case s.IsLoading:
		l.Body = BodyNone
	default:
		l.Body = BodyEmpty
		l.EmptyLabel = s.EmptyStateLabel
		l.EmptyIcon = s.EmptyStateIcon
	}
	return l
}

// NewRow builds the row for t.
func NewRow(t task.Task) Row {
	return Row{
		Task:          t,
		Checked:       t.IsCompleted,
		Strikethrough: t.IsCompleted,
		Title:         t.TitleForList(),
	}
}
