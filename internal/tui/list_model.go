package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spiffcs/todo/internal/constants"
	"github.com/spiffcs/todo/internal/task"
	"github.com/spiffcs/todo/internal/viewmodel"
)

// Callbacks are the intents the task list raises. The list owns no task
// state: every change is requested through one of these. Nil callbacks are
// ignored.
type Callbacks struct {
	SetFiltering        func(task.FilterKind)
	CompleteTask        func(t task.Task, checked bool)
	Refresh             func()
	ClearCompletedTasks func()

	OnAddTask              func()
	OnTaskClick            func(task.Task)
	OnUserMessageDisplayed func()
	OpenDrawer             func()
}

// ListModel is the Bubble Tea model for the task list: top bar, list or
// empty state, and the add-task action.
type ListModel struct {
	callbacks Callbacks

	state   viewmodel.UiState
	layout  Layout
	invalid error

	cursor       int
	windowWidth  int
	windowHeight int

	spinner  spinner.Model
	spinning bool

	statusMsg    string
	shownMessage string
	messageDelay time.Duration

	quitting bool
}

// ListOption is a functional option for configuring ListModel
type ListOption func(*ListModel)

// WithMessageDuration sets how long a user message stays visible.
func WithMessageDuration(d time.Duration) ListOption {
	return func(m *ListModel) {
		m.messageDelay = d
	}
}

// WithSize sets the initial window size.
func WithSize(width, height int) ListOption {
	return func(m *ListModel) {
		m.windowWidth = width
		m.windowHeight = height
	}
}

// NewListModel creates a task list showing initial.
func NewListModel(initial viewmodel.UiState, callbacks Callbacks, opts ...ListOption) ListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := ListModel{
		callbacks:    callbacks,
		windowWidth:  constants.DefaultWidth,
		windowHeight: constants.DefaultHeight,
		spinner:      s,
		messageDelay: constants.UserMessageDuration,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m, _ = m.applySnapshot(initial)
	return m
}

// Init implements tea.Model
func (m ListModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.state.IsLoading {
		cmds = append(cmds, m.spinner.Tick)
	}
	if m.statusMsg != "" {
		cmds = append(cmds, clearStatusAfter(m.messageDelay, m.statusMsg))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		return m, nil

	case SnapshotMsg:
		return m.applySnapshot(msg.State)

	case spinner.TickMsg:
		if !m.state.IsLoading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearStatusMsg:
		return m.messageDisplayed(msg.message)
	}

	return m, nil
}

// applySnapshot replaces the rendered state wholesale.
func (m ListModel) applySnapshot(s viewmodel.UiState) (ListModel, tea.Cmd) {
	m.state = s
	m.invalid = s.Validate()
	m.layout = BuildLayout(s)
	m.clampCursor()

	var cmds []tea.Cmd
	if s.IsLoading && !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}

	switch {
	case s.UserMessage == "":
		m.shownMessage = ""
		m.statusMsg = ""
	case s.UserMessage != m.shownMessage:
		m.shownMessage = s.UserMessage
		m.statusMsg = s.UserMessage
		cmds = append(cmds, clearStatusAfter(m.messageDelay, s.UserMessage))
	}

	return m, tea.Batch(cmds...)
}

// messageDisplayed hides the status line once its message has had its time
// on screen and tells the host.
func (m ListModel) messageDisplayed(message string) (tea.Model, tea.Cmd) {
	if message != m.statusMsg {
		return m, nil
	}
	m.statusMsg = ""
	return m, invoke(m.callbacks.OnUserMessageDisplayed)
}

func (m *ListModel) clampCursor() {
	n := len(m.layout.Rows)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// handleKey processes keyboard input
func (m ListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.layout.Rows)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "g", "home":
		m.cursor = 0
		return m, nil

	case "G", "end":
		if n := len(m.layout.Rows); n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case "1":
		return m, m.selectFilter(task.FilterAll)
	case "2":
		return m, m.selectFilter(task.FilterActive)
	case "3":
		return m, m.selectFilter(task.FilterCompleted)
	case "f":
		return m, m.selectFilter(m.state.Filter.Next())

	case "c":
		return m, invoke(m.callbacks.ClearCompletedTasks)

	case "r":
		return m, invoke(m.callbacks.Refresh)

	case "n", "a", "+":
		return m, invoke(m.callbacks.OnAddTask)

	case "m", "tab":
		return m, invoke(m.callbacks.OpenDrawer)

	case " ", "x":
		if row, ok := m.selectedRow(); ok {
			return m, m.toggle(row)
		}
		return m, nil

	case "enter":
		if row, ok := m.selectedRow(); ok {
			return m, m.click(row)
		}
		return m, nil
	}

	return m, nil
}

// handleMouse maps a left click onto a row. Clicks inside the checkbox
// toggle the task; clicks elsewhere on the row open it.
func (m ListModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		if m.cursor < len(m.layout.Rows)-1 {
			m.cursor++
		}
		return m, nil
	case msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress:
		return m, nil
	}

	idx, ok := m.rowAt(msg.Y)
	if !ok {
		return m, nil
	}
	m.cursor = idx
	row := m.layout.Rows[idx]

	checkStart := constants.CursorWidth
	checkEnd := checkStart + constants.CheckboxWidth
	if msg.X >= checkStart && msg.X < checkEnd {
		return m, m.toggle(row)
	}
	return m, m.click(row)
}

// rowAt returns the index of the row drawn on screen line y.
func (m ListModel) rowAt(y int) (int, bool) {
	if m.invalid != nil || m.layout.Body != BodyList {
		return 0, false
	}
	start, end := calculateScrollWindow(m.cursor, len(m.layout.Rows), m.listHeight())
	idx := start + y - constants.HeaderLines
	if y < constants.HeaderLines || idx >= end {
		return 0, false
	}
	return idx, true
}

func (m ListModel) selectedRow() (Row, bool) {
	if m.invalid != nil || m.layout.Body != BodyList || len(m.layout.Rows) == 0 {
		return Row{}, false
	}
	return m.layout.Rows[m.cursor], true
}

func (m ListModel) selectFilter(f task.FilterKind) tea.Cmd {
	fn := m.callbacks.SetFiltering
	if fn == nil {
		return nil
	}
	return func() tea.Msg {
		fn(f)
		return nil
	}
}

// toggle requests the opposite completion state; the row is not changed
// until the next snapshot arrives.
func (m ListModel) toggle(row Row) tea.Cmd {
	fn := m.callbacks.CompleteTask
	if fn == nil {
		return nil
	}
	t, checked := row.Task, !row.Checked
	return func() tea.Msg {
		fn(t, checked)
		return nil
	}
}

func (m ListModel) click(row Row) tea.Cmd {
	fn := m.callbacks.OnTaskClick
	if fn == nil {
		return nil
	}
	t := row.Task
	return func() tea.Msg {
		fn(t)
		return nil
	}
}

// listHeight is the number of lines available for rows.
func (m ListModel) listHeight() int {
	h := m.windowHeight - constants.HeaderLines - constants.FooterLines
	if h < 1 {
		return 1
	}
	return h
}

// State returns the snapshot currently shown.
func (m ListModel) State() viewmodel.UiState {
	return m.state
}

// Cursor returns the selected row index.
func (m ListModel) Cursor() int {
	return m.cursor
}

// View implements tea.Model
func (m ListModel) View() string {
	if m.quitting {
		return ""
	}
	return renderListView(m)
}

// invoke wraps a fire-and-forget callback in a command so it runs off the
// UI goroutine.
func invoke(fn func()) tea.Cmd {
	if fn == nil {
		return nil
	}
	return func() tea.Msg {
		fn()
		return nil
	}
}

// clearStatusMsg is a message to clear the status
type clearStatusMsg struct {
	message string
}

// clearStatusAfter returns a command that clears message after a delay
func clearStatusAfter(d time.Duration, message string) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{message: message}
	})
}
