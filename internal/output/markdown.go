package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spiffcs/todo/internal/task"
)

// MarkdownFormatter formats output as a Markdown task list
type MarkdownFormatter struct{}

// Format outputs tasks as a Markdown checklist, active tasks first.
func (f *MarkdownFormatter) Format(tasks []task.Task, w io.Writer) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}

	fmt.Fprintln(w, "# Tasks")

	sections := []struct {
		filter task.FilterKind
		title  string
	}{
		{task.FilterActive, "Active"},
		{task.FilterCompleted, "Completed"},
	}
	for _, s := range sections {
		items := s.filter.Apply(tasks)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n## %s (%d)\n\n", s.title, len(items))
		for _, t := range items {
			formatItem(t, w)
		}
	}

	return nil
}

func formatItem(t task.Task, w io.Writer) {
	box := " "
	if t.IsCompleted {
		box = "x"
	}
	fmt.Fprintf(w, "- [%s] %s\n", box, escapeMarkdown(t.TitleForList()))
	if t.Description != "" && t.Description != t.TitleForList() {
		fmt.Fprintf(w, "  %s\n", escapeMarkdown(t.Description))
	}
}

// FormatStats outputs statistics as a Markdown table
func (f *MarkdownFormatter) FormatStats(s task.Stats, w io.Writer) error {
	fmt.Fprintln(w, "| Status | Count | Share |")
	fmt.Fprintln(w, "|---|---|---|")
	fmt.Fprintf(w, "| Active | %d | %.1f%% |\n", s.Active, s.ActivePercent)
	fmt.Fprintf(w, "| Completed | %d | %.1f%% |\n", s.Completed, s.CompletedPercent)
	fmt.Fprintf(w, "| Total | %d | |\n", s.Total)
	return nil
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(strings.ReplaceAll(s, "\n", " "))
}
