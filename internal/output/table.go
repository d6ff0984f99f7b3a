package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spiffcs/todo/internal/constants"
	"github.com/spiffcs/todo/internal/format"
	"github.com/spiffcs/todo/internal/task"
)

// TableFormatter formats output as a terminal table
type TableFormatter struct {
	// Now is used for the age column; time.Now when nil.
	Now func() time.Time
}

var crossedOut = color.New(color.CrossedOut, color.Faint)

// strike crosses out s, falling back to combining marks when colour
// output is off.
func strike(s string) string {
	if color.NoColor {
		return format.Strike(s)
	}
	return crossedOut.Sprint(s)
}

// ShortID returns the leading part of id shown in tables.
func ShortID(id string) string {
	if len(id) <= constants.ColID {
		return id
	}
	return id[:constants.ColID]
}

func (f *TableFormatter) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// Format outputs tasks as a table
func (f *TableFormatter) Format(tasks []task.Task, w io.Writer) error {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}

	// Header
	fmt.Fprintf(w, "%-*s  %-*s  %-*s  %s\n",
		constants.ColStatus, "Done",
		constants.ColID, "ID",
		constants.ColTitle, "Title",
		"Age")
	fmt.Fprintln(w, strings.Repeat("-", constants.ColStatus+constants.ColID+constants.ColTitle+constants.ColCreated+6))

	now := f.now()
	for _, t := range tasks {
		status := format.PadRight("[ ]", 3, constants.ColStatus)
		if t.IsCompleted {
			status = format.PadRight(color.GreenString("[x]"), 3, constants.ColStatus)
		}

		title, visible := format.TruncateToWidth(t.TitleForList(), constants.ColTitle)
		if t.IsCompleted {
			title = strike(title)
		}
		title = format.PadRight(title, visible, constants.ColTitle)

		id := ShortID(t.ID)
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			status,
			format.PadRight(color.CyanString(id), len(id), constants.ColID),
			title,
			format.Since(t.CreatedAt, now),
		)
	}

	printFooterSummary(task.ComputeStats(tasks), w)

	return nil
}

// printFooterSummary prints a one-line count under the table
func printFooterSummary(s task.Stats, w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %d active   %s %d completed\n",
		color.YellowString("○"), s.Active,
		color.GreenString("✓"), s.Completed)
}

// FormatStats outputs task statistics
func (f *TableFormatter) FormatStats(s task.Stats, w io.Writer) error {
	if s.Total == 0 {
		fmt.Fprintln(w, "You have no tasks.")
		return nil
	}

	fmt.Fprintf(w, "Total tasks: %d\n\n", s.Total)
	fmt.Fprintf(w, "  %s  %d  (%.1f%%)\n", color.YellowString("%-10s", "Active"), s.Active, s.ActivePercent)
	fmt.Fprintf(w, "  %s  %d  (%.1f%%)\n", color.GreenString("%-10s", "Completed"), s.Completed, s.CompletedPercent)
	return nil
}
