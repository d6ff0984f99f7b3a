// Package viewmodel owns the task list state. It loads tasks from a
// repository, applies the selected filter, and publishes immutable UiState
// snapshots to subscribers.
package viewmodel

import (
	"context"
	"sync"
	"time"

	"github.com/spiffcs/todo/internal/log"
	"github.com/spiffcs/todo/internal/task"
	"golang.org/x/sync/singleflight"
)

// User-facing messages set on UiState.UserMessage.
const (
	MsgTaskCompleted      = "Task marked complete"
	MsgTaskActivated      = "Task marked active"
	MsgCompletedCleared   = "Completed tasks cleared"
	MsgLoadingTasksError  = "Error while loading tasks"
	MsgUpdatingTaskError  = "Error while updating task"
	MsgClearingTasksError = "Error while clearing completed tasks"
)

// TaskRepository is the subset of the store the view-model needs.
type TaskRepository interface {
	Tasks(ctx context.Context) ([]task.Task, error)
	Complete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	ClearCompleted(ctx context.Context) (int, error)
}

// TasksViewModel drives the task list screen.
type TasksViewModel struct {
	repo  TaskRepository
	group singleflight.Group

	mu          sync.Mutex
	state       UiState
	subscribers map[int]chan UiState
	nextSubID   int
	closed      bool

	// writes counts repository writes. A load that started before the
	// latest write is not published.
	writes   uint64
	loadSeq  uint64
	applied  uint64
	inflight int
}

const tasksKey = "tasks"

// Option configures a TasksViewModel.
type Option func(*TasksViewModel)

// WithInitialFilter sets the filter used before SetFiltering is called.
func WithInitialFilter(f task.FilterKind) Option {
	return func(vm *TasksViewModel) {
		vm.state = stateForFilter(f)
	}
}

// New creates a view-model over repo. Call Refresh to load tasks.
func New(repo TaskRepository, opts ...Option) *TasksViewModel {
	vm := &TasksViewModel{
		repo:        repo,
		state:       stateForFilter(task.FilterAll),
		subscribers: make(map[int]chan UiState),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Snapshot returns the current state.
func (vm *TasksViewModel) Snapshot() UiState {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state.clone()
}

// Subscribe returns a channel that receives the current state immediately
// and every later state. Slow readers only ever see the newest snapshot.
// The returned func unsubscribes and closes the channel.
func (vm *TasksViewModel) Subscribe() (<-chan UiState, func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	ch := make(chan UiState, 1)
	if vm.closed {
		close(ch)
		return ch, func() {}
	}

	id := vm.nextSubID
	vm.nextSubID++
	vm.subscribers[id] = ch
	ch <- vm.state.clone()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			vm.mu.Lock()
			defer vm.mu.Unlock()
			if sub, ok := vm.subscribers[id]; ok {
				delete(vm.subscribers, id)
				close(sub)
			}
		})
	}
}

// Close unsubscribes everyone. Later commands still update Snapshot.
func (vm *TasksViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.closed = true
	for id, ch := range vm.subscribers {
		delete(vm.subscribers, id)
		close(ch)
	}
}

// update applies fn to the state under the lock and publishes the result.
func (vm *TasksViewModel) update(fn func(*UiState)) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	fn(&vm.state)
	snap := vm.state.clone()
	for _, ch := range vm.subscribers {
		publish(ch, snap)
	}
	log.Trace("published snapshot", "filter", snap.Filter, "items", len(snap.Items), "loading", snap.IsLoading)
}

// publish replaces any unread snapshot in ch with snap.
func publish(ch chan UiState, snap UiState) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// SetFiltering switches the filter and reloads.
func (vm *TasksViewModel) SetFiltering(ctx context.Context, f task.FilterKind) {
	log.Info("filter changed", "filter", f)
	info := f.Info()
	vm.update(func(s *UiState) {
		s.Filter = f
		s.FilterLabel = info.Label
		s.EmptyStateLabel = info.EmptyLabel
		s.EmptyStateIcon = info.EmptyIcon
	})
	vm.load(ctx)
}

// CompleteTask marks t completed when checked is true, active otherwise.
func (vm *TasksViewModel) CompleteTask(ctx context.Context, t task.Task, checked bool) {
	var (
		err error
		msg string
	)
	if checked {
		err = vm.repo.Complete(ctx, t.ID)
		msg = MsgTaskCompleted
	} else {
		err = vm.repo.Activate(ctx, t.ID)
		msg = MsgTaskActivated
	}
	if err != nil {
		log.Error("failed to update task", "id", t.ID, "checked", checked, "error", err)
		msg = MsgUpdatingTaskError
	} else {
		vm.wrote()
	}
	vm.update(func(s *UiState) { s.UserMessage = msg })
	vm.load(ctx)
}

// Refresh reloads tasks, showing the loading indicator meanwhile.
func (vm *TasksViewModel) Refresh(ctx context.Context) {
	vm.load(ctx)
}

// ClearCompletedTasks deletes all completed tasks.
func (vm *TasksViewModel) ClearCompletedTasks(ctx context.Context) {
	msg := MsgCompletedCleared
	n, err := vm.repo.ClearCompleted(ctx)
	if err != nil {
		log.Error("failed to clear completed tasks", "error", err)
		msg = MsgClearingTasksError
	} else {
		log.Info("cleared completed tasks", "count", n)
		vm.wrote()
	}
	vm.update(func(s *UiState) { s.UserMessage = msg })
	vm.load(ctx)
}

// UserMessageShown clears the transient message once the screen has shown it.
func (vm *TasksViewModel) UserMessageShown() {
	vm.update(func(s *UiState) { s.UserMessage = "" })
}

// wrote records a repository write. Loads already in flight are detached
// so the next load reads the store again.
func (vm *TasksViewModel) wrote() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.writes++
	vm.group.Forget(tasksKey)
}

// load fetches tasks and applies the current filter. Loads that overlap
// share one repository call. Results are dropped when a write happened
// after the load started or a later load has already been published.
func (vm *TasksViewModel) load(ctx context.Context) {
	var seq, writes uint64
	vm.update(func(s *UiState) {
		vm.loadSeq++
		vm.inflight++
		seq, writes = vm.loadSeq, vm.writes
		s.IsLoading = true
	})

	start := time.Now()
	v, err, shared := vm.group.Do(tasksKey, func() (any, error) {
		return vm.repo.Tasks(ctx)
	})
	log.Debug("loaded tasks", "duration", time.Since(start), "shared", shared, "error", err)
	if err != nil {
		log.Error("failed to load tasks", "error", err)
	}

	vm.update(func(s *UiState) {
		vm.inflight--
		s.IsLoading = vm.inflight > 0
		if writes != vm.writes || seq < vm.applied {
			log.Debug("dropped stale task load", "seq", seq)
			return
		}
		vm.applied = seq
		if err != nil {
			s.UserMessage = MsgLoadingTasksError
			return
		}
		s.Items = s.Filter.Apply(v.([]task.Task))
	})
}
