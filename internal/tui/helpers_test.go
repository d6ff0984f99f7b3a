package tui

import (
	"context"
	"sync"

	"github.com/spiffcs/todo/internal/task"
	"github.com/spiffcs/todo/internal/viewmodel"
)

func allState(items ...task.Task) viewmodel.UiState {
	info := task.FilterAll.Info()
	return viewmodel.UiState{
		Items:           items,
		Filter:          task.FilterAll,
		FilterLabel:     info.Label,
		EmptyStateLabel: info.EmptyLabel,
		EmptyStateIcon:  info.EmptyIcon,
	}
}

func milkAndBills() []task.Task {
	return []task.Task{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Pay bills", IsCompleted: true},
	}
}

// recorder captures the intents raised by a ListModel.
type recorder struct {
	mu sync.Mutex

	filters   []task.FilterKind
	completes []completeCall
	refreshes int
	clears    int
	adds      int
	clicks    []task.Task
	displayed int
	drawers   int
}

type completeCall struct {
	Task    task.Task
	Checked bool
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		SetFiltering: func(f task.FilterKind) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.filters = append(r.filters, f)
		},
		CompleteTask: func(t task.Task, checked bool) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completes = append(r.completes, completeCall{Task: t, Checked: checked})
		},
		Refresh: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.refreshes++
		},
		ClearCompletedTasks: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.clears++
		},
		OnAddTask: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.adds++
		},
		OnTaskClick: func(t task.Task) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.clicks = append(r.clicks, t)
		},
		OnUserMessageDisplayed: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.displayed++
		},
		OpenDrawer: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.drawers++
		},
	}
}

// fakeVM is an in-memory ViewModel recording what the screen asks for.
type fakeVM struct {
	mu sync.Mutex

	state    viewmodel.UiState
	ch       chan viewmodel.UiState
	closed   bool
	filters  []task.FilterKind
	complete []completeCall
	refresh  int
	clear    int
	shown    int
}

func newFakeVM(s viewmodel.UiState) *fakeVM {
	return &fakeVM{state: s, ch: make(chan viewmodel.UiState, 1)}
}

func (f *fakeVM) Snapshot() viewmodel.UiState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeVM) Subscribe() (<-chan viewmodel.UiState, func()) {
	return f.ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if !f.closed {
			f.closed = true
			close(f.ch)
		}
	}
}

func (f *fakeVM) SetFiltering(_ context.Context, k task.FilterKind) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, k)
}

func (f *fakeVM) CompleteTask(_ context.Context, t task.Task, checked bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.complete = append(f.complete, completeCall{Task: t, Checked: checked})
}

func (f *fakeVM) Refresh(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh++
}

func (f *fakeVM) ClearCompletedTasks(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clear++
}

func (f *fakeVM) UserMessageShown() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown++
}
