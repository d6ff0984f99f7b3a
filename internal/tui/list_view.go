package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spiffcs/todo/internal/constants"
	"github.com/spiffcs/todo/internal/format"
	"github.com/spiffcs/todo/internal/task"
)

// renderListView renders the complete task list
func renderListView(m ListModel) string {
	var b strings.Builder

	b.WriteString(renderTopBar(m.state.Filter, m.state.IsLoading, m.spinner.View()))
	b.WriteString("\n")
	b.WriteString(filterLabelStyle.Render(m.layout.FilterLabel))
	b.WriteString("\n\n")

	height := m.listHeight()
	if m.invalid != nil {
		b.WriteString(errorStyle.Render("Cannot show tasks: " + m.invalid.Error()))
		b.WriteString(strings.Repeat("\n", height))
	} else {
		b.WriteString(renderBody(m.layout, m.cursor, m.windowWidth, height))
	}

	b.WriteString("\n")
	b.WriteString(renderHelp(m.windowWidth))

	// The status line is always reserved so rows keep their screen lines
	// when a message appears.
	b.WriteString("\n")
	if m.statusMsg != "" {
		b.WriteString(statusStyle.Render(m.statusMsg))
	}

	return b.String()
}

// renderBody renders exactly height lines for the area under the filter label.
func renderBody(l Layout, cursor, width, height int) string {
	switch l.Body {
	case BodyEmpty:
		return renderEmptyState(l.EmptyLabel, l.EmptyIcon, width, height)
	case BodyNone:
		return strings.Repeat("\n", height)
	}

	var b strings.Builder
	start, end := calculateScrollWindow(cursor, len(l.Rows), height)
	for i := start; i < end; i++ {
		b.WriteString(renderRow(l.Rows[i], i == cursor, width))
		b.WriteString("\n")
	}
	for i := end - start; i < height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

// renderTopBar renders the app title, the filter choices and the loading
// indicator.
func renderTopBar(active task.FilterKind, loading bool, spinnerFrame string) string {
	parts := []string{topBarStyle.Render("☰ Todo")}
	for i, f := range task.FilterKinds() {
		label := fmt.Sprintf("[%d] %s", i+1, f.Info().Label)
		if f == active {
			parts = append(parts, filterActiveStyle.Render(label))
		} else {
			parts = append(parts, filterInactiveStyle.Render(label))
		}
	}
	bar := strings.Join(parts, "   ")
	if loading {
		bar += "   " + spinnerStyle.Render(spinnerFrame) + " " + dimStyle.Render("Loading...")
	}
	return bar
}

// renderRow renders a single task row: cursor, checkbox and title.
func renderRow(row Row, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}

	box := "[ ] "
	if row.Checked {
		box = applyStyle(checkboxDoneStyle, "[x] ", selected)
	} else {
		box = applyStyle(checkboxStyle, box, selected)
	}

	titleWidth := width - constants.CursorWidth - constants.CheckboxWidth
	if titleWidth < constants.MinTitleWidth {
		titleWidth = constants.MinTitleWidth
	}
	title, _ := format.TruncateToWidth(row.Title, titleWidth)
	if row.Strikethrough && lipgloss.ColorProfile() == termenv.Ascii {
		// Ascii renders no SGR attributes, so strike-through needs marks
		// in the text itself.
		title = format.Strike(title)
	}

	var style lipgloss.Style
	switch {
	case selected && row.Strikethrough:
		style = rowSelectedDoneStyle
	case selected:
		style = rowSelectedStyle
	case row.Strikethrough:
		style = rowDoneStyle
	default:
		style = rowStyle
	}

	return cursor + box + style.Render(title)
}

// renderEmptyState renders the empty-state panel centred in the body area.
func renderEmptyState(label, icon string, width, height int) string {
	panel := lipgloss.JoinVertical(lipgloss.Center,
		emptyIconStyle.Render(icon),
		"",
		emptyLabelStyle.Render(label),
	)
	if width <= 0 || height <= 0 {
		return panel + "\n"
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel) + "\n"
}

// helpEntries are listed most important first; renderHelp drops entries
// from the end until the line fits.
var helpEntries = []string{
	"space: toggle",
	"enter: open",
	"1-3/f: filter",
	"q: quit",
	"m: menu",
	"c: clear done",
	"r: refresh",
	"j/k: nav",
}

const helpSeparator = "  "

// renderHelp renders the key help line with the add-task action on the
// right. The result is always a single line.
func renderHelp(width int) string {
	fab := fabStyle.Render("+ Add task (n)")
	avail := width - lipgloss.Width(fab) - len(helpSeparator)

	entries := helpEntries
	for len(entries) > 0 && lipgloss.Width(strings.Join(entries, helpSeparator)) > avail {
		entries = entries[:len(entries)-1]
	}
	help := helpStyle.Render(strings.Join(entries, helpSeparator))

	gap := width - lipgloss.Width(help) - lipgloss.Width(fab)
	if gap < 1 {
		gap = 1
	}
	return help + strings.Repeat(" ", gap) + fab
}

// calculateScrollWindow determines which items to show based on cursor position
func calculateScrollWindow(cursor, total, viewHeight int) (start, end int) {
	if total <= viewHeight {
		return 0, total
	}

	start = cursor - viewHeight/2
	if start < 0 {
		start = 0
	}

	end = start + viewHeight
	if end > total {
		end = total
		start = end - viewHeight
		if start < 0 {
			start = 0
		}
	}

	return start, end
}

// applyStyle renders text with the given style when not selected.
// When selected, returns plain text to avoid ANSI reset codes that would
// interrupt the selected row's background highlight.
func applyStyle(s lipgloss.Style, text string, selected bool) string {
	if selected {
		return text
	}
	return s.Render(text)
}
