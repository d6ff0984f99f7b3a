package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spiffcs/todo/internal/constants"
	"github.com/spiffcs/todo/internal/format"
	"github.com/spiffcs/todo/internal/task"
	"github.com/spiffcs/todo/internal/viewmodel"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

// press sends msg to m and runs the resulting command, if any.
func press(t *testing.T, m ListModel, msg tea.Msg) ListModel {
	t.Helper()
	next, cmd := m.Update(msg)
	if cmd != nil {
		cmd()
	}
	return next.(ListModel)
}

func TestToggleInvokesCompleteTaskOnce(t *testing.T) {
	tests := []struct {
		name        string
		cursor      int
		wantID      string
		wantChecked bool
	}{
		{name: "check active task", cursor: 0, wantID: "1", wantChecked: true},
		{name: "uncheck completed task", cursor: 1, wantID: "2", wantChecked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			m := NewListModel(allState(milkAndBills()...), rec.callbacks())
			m.cursor = tt.cursor

			m = press(t, m, keyMsg(" "))

			if len(rec.completes) != 1 {
				t.Fatalf("CompleteTask called %d times, want 1", len(rec.completes))
			}
			got := rec.completes[0]
			if got.Task.ID != tt.wantID || got.Checked != tt.wantChecked {
				t.Errorf("CompleteTask(%q, %v), want (%q, %v)", got.Task.ID, got.Checked, tt.wantID, tt.wantChecked)
			}
			// The row only changes once a new snapshot arrives.
			if m.layout.Rows[tt.cursor].Checked == tt.wantChecked {
				t.Error("row changed before a new snapshot arrived")
			}
		})
	}
}

func TestFilterKeys(t *testing.T) {
	tests := []struct {
		key  string
		from task.FilterKind
		want task.FilterKind
	}{
		{key: "1", from: task.FilterCompleted, want: task.FilterAll},
		{key: "2", from: task.FilterAll, want: task.FilterActive},
		{key: "3", from: task.FilterAll, want: task.FilterCompleted},
		{key: "f", from: task.FilterAll, want: task.FilterActive},
		{key: "f", from: task.FilterActive, want: task.FilterCompleted},
		{key: "f", from: task.FilterCompleted, want: task.FilterAll},
	}

	for _, tt := range tests {
		t.Run(tt.key+"_from_"+tt.from.String(), func(t *testing.T) {
			rec := &recorder{}
			s := allState()
			s.Filter = tt.from
			m := NewListModel(s, rec.callbacks())

			press(t, m, keyMsg(tt.key))

			if len(rec.filters) != 1 || rec.filters[0] != tt.want {
				t.Errorf("SetFiltering calls = %v, want [%v]", rec.filters, tt.want)
			}
		})
	}
}

func TestKeyIntents(t *testing.T) {
	tests := []struct {
		key   string
		count func(*recorder) int
	}{
		{key: "c", count: func(r *recorder) int { return r.clears }},
		{key: "r", count: func(r *recorder) int { return r.refreshes }},
		{key: "n", count: func(r *recorder) int { return r.adds }},
		{key: "+", count: func(r *recorder) int { return r.adds }},
		{key: "m", count: func(r *recorder) int { return r.drawers }},
		{key: "enter", count: func(r *recorder) int { return len(r.clicks) }},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			rec := &recorder{}
			m := NewListModel(allState(milkAndBills()...), rec.callbacks())

			press(t, m, keyMsg(tt.key))

			if got := tt.count(rec); got != 1 {
				t.Errorf("intent raised %d times, want 1", got)
			}
		})
	}
}

func TestNilCallbacksIgnored(t *testing.T) {
	m := NewListModel(allState(milkAndBills()...), Callbacks{})
	for _, k := range []string{" ", "enter", "1", "c", "r", "n", "m"} {
		if _, cmd := m.Update(keyMsg(k)); cmd != nil {
			t.Errorf("key %q returned a command with no callbacks set", k)
		}
	}
}

func TestNavigation(t *testing.T) {
	items := []task.Task{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}, {ID: "3", Title: "c"}}
	m := NewListModel(allState(items...), Callbacks{})

	m = press(t, m, keyMsg("j"))
	m = press(t, m, keyMsg("j"))
	m = press(t, m, keyMsg("j"))
	if m.Cursor() != 2 {
		t.Errorf("cursor after 3x j = %d, want 2", m.Cursor())
	}
	m = press(t, m, keyMsg("g"))
	if m.Cursor() != 0 {
		t.Errorf("cursor after g = %d, want 0", m.Cursor())
	}
	m = press(t, m, keyMsg("G"))
	if m.Cursor() != 2 {
		t.Errorf("cursor after G = %d, want 2", m.Cursor())
	}
	m = press(t, m, keyMsg("k"))
	if m.Cursor() != 1 {
		t.Errorf("cursor after k = %d, want 1", m.Cursor())
	}
}

func TestSnapshotClampsCursor(t *testing.T) {
	items := []task.Task{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}, {ID: "3", Title: "c"}}
	m := NewListModel(allState(items...), Callbacks{})
	m.cursor = 2

	m = press(t, m, SnapshotMsg{State: allState(items[0])})

	if m.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor())
	}
	if len(m.State().Items) != 1 {
		t.Errorf("len(Items) = %d, want 1", len(m.State().Items))
	}
}

func TestUserMessageDisplayedOnce(t *testing.T) {
	rec := &recorder{}
	m := NewListModel(allState(), rec.callbacks())

	s := allState(milkAndBills()...)
	s.UserMessage = viewmodel.MsgTaskCompleted
	next, _ := m.Update(SnapshotMsg{State: s})
	m = next.(ListModel)

	if !strings.Contains(m.View(), viewmodel.MsgTaskCompleted) {
		t.Fatal("message not shown")
	}

	// A later snapshot still carrying the message does not restart it.
	next, _ = m.Update(SnapshotMsg{State: s})
	m = next.(ListModel)

	m = press(t, m, clearStatusMsg{message: viewmodel.MsgTaskCompleted})
	m = press(t, m, clearStatusMsg{message: viewmodel.MsgTaskCompleted})

	if rec.displayed != 1 {
		t.Errorf("OnUserMessageDisplayed called %d times, want 1", rec.displayed)
	}
	if strings.Contains(m.View(), viewmodel.MsgTaskCompleted) {
		t.Error("message still shown after its duration")
	}
}

func TestStaleStatusTimerIgnored(t *testing.T) {
	rec := &recorder{}
	s := allState(milkAndBills()...)
	s.UserMessage = viewmodel.MsgTaskActivated
	m := NewListModel(s, rec.callbacks())

	m = press(t, m, clearStatusMsg{message: "something else"})

	if rec.displayed != 0 {
		t.Errorf("OnUserMessageDisplayed called %d times, want 0", rec.displayed)
	}
}

func TestMouseClick(t *testing.T) {
	firstRow := constants.HeaderLines

	tests := []struct {
		name       string
		x, y       int
		wantToggle int
		wantClicks int
	}{
		{name: "checkbox toggles", x: constants.CursorWidth, y: firstRow, wantToggle: 1},
		{name: "checkbox end toggles", x: constants.CursorWidth + constants.CheckboxWidth - 1, y: firstRow + 1, wantToggle: 1},
		{name: "title opens", x: constants.CursorWidth + constants.CheckboxWidth + 2, y: firstRow, wantClicks: 1},
		{name: "header ignored", x: 10, y: 0},
		{name: "below rows ignored", x: 10, y: firstRow + 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			m := NewListModel(allState(milkAndBills()...), rec.callbacks(), WithSize(80, 24))

			press(t, m, click(tt.x, tt.y))

			if len(rec.completes) != tt.wantToggle {
				t.Errorf("CompleteTask called %d times, want %d", len(rec.completes), tt.wantToggle)
			}
			if len(rec.clicks) != tt.wantClicks {
				t.Errorf("OnTaskClick called %d times, want %d", len(rec.clicks), tt.wantClicks)
			}
		})
	}
}

func TestMouseClickSecondRow(t *testing.T) {
	rec := &recorder{}
	m := NewListModel(allState(milkAndBills()...), rec.callbacks(), WithSize(80, 24))

	m = press(t, m, click(constants.CursorWidth, constants.HeaderLines+1))

	if m.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor())
	}
	if len(rec.completes) != 1 || rec.completes[0].Task.ID != "2" || rec.completes[0].Checked {
		t.Errorf("completes = %+v, want one call unchecking task 2", rec.completes)
	}
}

func TestCalculateScrollWindow(t *testing.T) {
	tests := []struct {
		name                string
		cursor, total, view int
		wantStart, wantEnd  int
	}{
		{name: "fits", cursor: 2, total: 5, view: 10, wantStart: 0, wantEnd: 5},
		{name: "top", cursor: 0, total: 20, view: 10, wantStart: 0, wantEnd: 10},
		{name: "middle", cursor: 10, total: 20, view: 10, wantStart: 5, wantEnd: 15},
		{name: "bottom", cursor: 19, total: 20, view: 10, wantStart: 10, wantEnd: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := calculateScrollWindow(tt.cursor, tt.total, tt.view)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("calculateScrollWindow(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.cursor, tt.total, tt.view, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestViewRendersItemsInOrder(t *testing.T) {
	m := NewListModel(allState(milkAndBills()...), Callbacks{}, WithSize(100, 20))
	view := format.Unstrike(m.View())

	milk := strings.Index(view, "Buy milk")
	bills := strings.Index(view, "Pay bills")
	if milk < 0 || bills < 0 {
		t.Fatalf("view is missing titles:\n%s", view)
	}
	if milk > bills {
		t.Error("Buy milk rendered after Pay bills")
	}
	if !strings.Contains(view, "[x]") || !strings.Contains(view, "[ ]") {
		t.Error("expected one checked and one unchecked box")
	}
	if !strings.Contains(view, "All Tasks") {
		t.Error("expected filter label")
	}
}

func TestViewEmptyState(t *testing.T) {
	s := allState()
	s.Filter = task.FilterCompleted
	info := task.FilterCompleted.Info()
	s.FilterLabel, s.EmptyStateLabel, s.EmptyStateIcon = info.Label, info.EmptyLabel, info.EmptyIcon

	view := NewListModel(s, Callbacks{}, WithSize(80, 24)).View()

	if !strings.Contains(view, "You have no completed tasks!") {
		t.Errorf("empty label missing:\n%s", view)
	}
}

func TestViewLoading(t *testing.T) {
	view := NewListModel(viewmodel.UiState{IsLoading: true, FilterLabel: "All Tasks"}, Callbacks{}).View()

	if !strings.Contains(view, "Loading") {
		t.Error("loading indicator missing")
	}
	if strings.Contains(view, "You have no tasks!") {
		t.Error("empty state shown while loading")
	}
}

func TestViewInvalidState(t *testing.T) {
	view := NewListModel(viewmodel.UiState{}, Callbacks{}).View()

	if !strings.Contains(view, "Cannot show tasks") {
		t.Errorf("expected error for invalid state:\n%s", view)
	}
}

func TestQuit(t *testing.T) {
	m := NewListModel(allState(), Callbacks{})
	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if next.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func manyTasks(n int) []task.Task {
	tasks := make([]task.Task, n)
	for i := range tasks {
		tasks[i] = task.Task{ID: fmt.Sprintf("%d", i+1), Title: fmt.Sprintf("Task %02d", i+1)}
	}
	return tasks
}

func TestViewFitsWindow(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		message string
	}{
		{name: "default size with message", width: 80, height: 24, message: viewmodel.MsgTaskCompleted},
		{name: "default size", width: 80, height: 24},
		{name: "wide with message", width: 120, height: 24, message: viewmodel.MsgTaskCompleted},
		{name: "narrow and short", width: 50, height: 12, message: viewmodel.MsgTaskActivated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := allState(manyTasks(40)...)
			s.UserMessage = tt.message
			view := NewListModel(s, Callbacks{}, WithSize(tt.width, tt.height)).View()

			if lines := strings.Count(view, "\n") + 1; lines != tt.height {
				t.Errorf("view has %d lines, want %d", lines, tt.height)
			}
		})
	}
}

func TestRenderHelpIsOneLine(t *testing.T) {
	for _, width := range []int{40, 80, 120, 200} {
		help := renderHelp(width)
		if strings.Contains(help, "\n") {
			t.Errorf("renderHelp(%d) spans several lines", width)
		}
		if width >= 80 && lipgloss.Width(help) > width {
			t.Errorf("renderHelp(%d) is %d columns wide", width, lipgloss.Width(help))
		}
		if !strings.Contains(help, "Add task") {
			t.Errorf("renderHelp(%d) dropped the add-task action", width)
		}
	}
	if !strings.Contains(renderHelp(200), "j/k: nav") {
		t.Error("wide help should list every key")
	}
}

func TestClickWhileMessageShownHitsClickedRow(t *testing.T) {
	s := allState(manyTasks(40)...)
	s.UserMessage = viewmodel.MsgTaskCompleted
	rec := &recorder{}
	m := NewListModel(s, rec.callbacks(), WithSize(80, 24))

	y := constants.HeaderLines + 1
	if line := strings.Split(m.View(), "\n")[y]; !strings.Contains(line, "Task 02") {
		t.Fatalf("screen line %d = %q, want Task 02", y, line)
	}

	press(t, m, click(constants.CursorWidth+constants.CheckboxWidth+2, y))

	if len(rec.clicks) != 1 || rec.clicks[0].ID != "2" {
		t.Errorf("clicks = %+v, want task 2", rec.clicks)
	}
}

func TestCompletedRowStruckWithoutColor(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	view := NewListModel(allState(milkAndBills()...), Callbacks{}, WithSize(100, 20)).View()

	if !strings.Contains(view, format.Strike("Pay bills")) {
		t.Errorf("completed row not struck:\n%s", view)
	}
	if strings.Contains(view, format.Strike("Buy milk")) {
		t.Error("active row struck")
	}
}
