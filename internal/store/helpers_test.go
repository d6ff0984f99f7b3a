package store

import (
	"time"

	"github.com/spiffcs/todo/internal/task"
)

func taskWithID(id, title string) task.Task {
	return task.Task{ID: id, Title: title, CreatedAt: time.Now()}
}
