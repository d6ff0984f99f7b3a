// Package task defines the to-do domain model shared by the store,
// view-model and screen layers.
package task

import (
	"strings"
	"time"
)

// Task is an immutable snapshot of a single to-do item.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TitleForList returns the title shown in list rows, falling back to the
// description when the title is blank.
func (t Task) TitleForList() string {
	if strings.TrimSpace(t.Title) != "" {
		return t.Title
	}
	return t.Description
}

// IsActive reports whether the task still needs doing.
func (t Task) IsActive() bool {
	return !t.IsCompleted
}

// IsEmpty reports whether the task carries neither a title nor a description.
func (t Task) IsEmpty() bool {
	return strings.TrimSpace(t.Title) == "" && strings.TrimSpace(t.Description) == ""
}

// WithCompleted returns a copy of t with the completion flag set.
func (t Task) WithCompleted(completed bool) Task {
	t.IsCompleted = completed
	return t
}
