package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/todo/internal/task"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// JSONOutput wraps the tasks with their statistics for JSON output
type JSONOutput struct {
	Tasks []task.Task `json:"tasks"`
	Stats task.Stats  `json:"stats"`
}

// Format outputs tasks and their statistics as JSON
func (f *JSONFormatter) Format(tasks []task.Task, w io.Writer) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return f.encode(w, JSONOutput{
		Tasks: tasks,
		Stats: task.ComputeStats(tasks),
	})
}

// FormatStats outputs statistics as JSON
func (f *JSONFormatter) FormatStats(s task.Stats, w io.Writer) error {
	return f.encode(w, s)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
