package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spiffcs/todo/internal/task"
	"github.com/spiffcs/todo/internal/viewmodel"
)

// Action is what the user asked for when the screen closed.
type Action int

const (
	// ActionQuit means the user left the app.
	ActionQuit Action = iota
	// ActionAddTask means the user asked to create a task.
	ActionAddTask
)

// Result is returned by Run once the screen closes.
type Result struct {
	Action Action
}

// ViewModel is the state holder the screen observes and drives.
type ViewModel interface {
	Snapshot() viewmodel.UiState
	Subscribe() (<-chan viewmodel.UiState, func())
	SetFiltering(ctx context.Context, f task.FilterKind)
	CompleteTask(ctx context.Context, t task.Task, checked bool)
	Refresh(ctx context.Context)
	ClearCompletedTasks(ctx context.Context)
	UserMessageShown()
}

// StatsFunc loads statistics over all tasks for the drawer.
type StatsFunc func(ctx context.Context) (task.Stats, error)

// statsMsg carries drawer statistics.
type statsMsg struct {
	stats task.Stats
	err   error
}

// Screen hosts the task list and adds the navigation drawer, the task
// detail panel and the add-task hand-off.
type Screen struct {
	ctx    context.Context
	list   ListModel
	states <-chan viewmodel.UiState
	cancel func()
	events chan hostEvent
	stats  StatsFunc

	drawerOpen  bool
	drawerStats *task.Stats
	detail      *task.Task

	width  int
	height int
	now    func() time.Time
	result Result
	done   bool
}

// ScreenOption is a functional option for configuring Screen
type ScreenOption func(*Screen)

// WithStats sets the function used to fill the drawer statistics.
func WithStats(fn StatsFunc) ScreenOption {
	return func(s *Screen) {
		s.stats = fn
	}
}

// WithListOptions passes options through to the task list.
func WithListOptions(opts ...ListOption) ScreenOption {
	return func(s *Screen) {
		s.list = NewListModel(s.list.State(), s.list.callbacks, opts...)
		s.width, s.height = s.list.windowWidth, s.list.windowHeight
	}
}

// NewScreen subscribes to vm and builds a screen wired to it.
func NewScreen(ctx context.Context, vm ViewModel, opts ...ScreenOption) Screen {
	states, cancel := vm.Subscribe()
	events := make(chan hostEvent, 8)

	callbacks := Callbacks{
		SetFiltering: func(f task.FilterKind) { vm.SetFiltering(ctx, f) },
		CompleteTask: func(t task.Task, checked bool) { vm.CompleteTask(ctx, t, checked) },
		Refresh:      func() { vm.Refresh(ctx) },
		ClearCompletedTasks: func() {
			vm.ClearCompletedTasks(ctx)
		},
		OnAddTask:              func() { sendHostEvent(events, addTaskEvent{}) },
		OnTaskClick:            func(t task.Task) { sendHostEvent(events, taskClickEvent{Task: t}) },
		OnUserMessageDisplayed: vm.UserMessageShown,
		OpenDrawer:             func() { sendHostEvent(events, toggleDrawerEvent{}) },
	}

	s := Screen{
		ctx:    ctx,
		list:   NewListModel(vm.Snapshot(), callbacks),
		states: states,
		cancel: cancel,
		events: events,
		now:    time.Now,
	}
	s.width, s.height = s.list.windowWidth, s.list.windowHeight
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Init implements tea.Model
func (s Screen) Init() tea.Cmd {
	return tea.Batch(
		s.list.Init(),
		waitForSnapshot(s.states),
		waitForHostEvent(s.events),
		invoke(s.list.callbacks.Refresh),
	)
}

// Update implements tea.Model
func (s Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		var cmd tea.Cmd
		s.list, cmd = s.list.applySnapshot(msg.State)
		return s, tea.Batch(cmd, waitForSnapshot(s.states))

	case snapshotsClosedMsg:
		return s.quit(ActionQuit)

	case addTaskEvent:
		return s.quit(ActionAddTask)

	case taskClickEvent:
		t := msg.Task
		s.detail = &t
		return s, waitForHostEvent(s.events)

	case toggleDrawerEvent:
		s.drawerOpen = !s.drawerOpen
		s = s.resizeList()
		if s.drawerOpen {
			return s, tea.Batch(waitForHostEvent(s.events), s.loadStats())
		}
		return s, waitForHostEvent(s.events)

	case statsMsg:
		if msg.err == nil {
			st := msg.stats
			s.drawerStats = &st
		}
		return s, nil

	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		return s.resizeList(), nil

	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.MouseMsg:
		if s.detail != nil {
			return s, nil
		}
		if s.drawerOpen {
			msg.X -= drawerOuterWidth()
			if msg.X < 0 {
				return s, nil
			}
		}
		return s.forward(msg)
	}

	return s.forward(msg)
}

func (s Screen) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return s.quit(ActionQuit)
	}

	if s.detail != nil {
		switch key {
		case "esc", "enter", "backspace", "q":
			s.detail = nil
		}
		return s, nil
	}

	switch key {
	case "q":
		return s.quit(ActionQuit)
	case "esc":
		if s.drawerOpen {
			s.drawerOpen = false
			return s.resizeList(), nil
		}
		return s, nil
	}
	return s.forward(msg)
}

func (s Screen) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := s.list.Update(msg)
	s.list = m.(ListModel)
	return s, cmd
}

func (s Screen) quit(a Action) (tea.Model, tea.Cmd) {
	s.result = Result{Action: a}
	s.done = true
	return s, tea.Quit
}

// resizeList gives the list whatever width the drawer leaves.
func (s Screen) resizeList() Screen {
	w := s.width
	if s.drawerOpen {
		w -= drawerOuterWidth()
	}
	s.list.windowWidth = max(w, 1)
	s.list.windowHeight = s.height
	return s
}

func (s Screen) loadStats() tea.Cmd {
	if s.stats == nil {
		return nil
	}
	fn, ctx := s.stats, s.ctx
	return func() tea.Msg {
		st, err := fn(ctx)
		return statsMsg{stats: st, err: err}
	}
}

// View implements tea.Model
func (s Screen) View() string {
	if s.done {
		return ""
	}
	if s.detail != nil {
		return renderDetail(*s.detail, s.now(), s.width, s.height)
	}
	list := s.list.View()
	if !s.drawerOpen {
		return list
	}
	drawer := renderDrawer(s.list.State().Filter, s.drawerStats, s.height-drawerStyle.GetVerticalFrameSize())
	return lipgloss.JoinHorizontal(lipgloss.Top, drawer, list)
}

// Result returns what the user chose when the screen closed.
func (s Screen) Result() Result {
	return s.result
}

// DrawerOpen reports whether the navigation drawer is showing.
func (s Screen) DrawerOpen() bool {
	return s.drawerOpen
}

// Detail returns the task shown in the detail panel, if any.
func (s Screen) Detail() (task.Task, bool) {
	if s.detail == nil {
		return task.Task{}, false
	}
	return *s.detail, true
}

// List returns the hosted task list.
func (s Screen) List() ListModel {
	return s.list
}

// Close releases the subscription to the view model.
func (s Screen) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}
