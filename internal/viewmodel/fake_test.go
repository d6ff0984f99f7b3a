package viewmodel

import (
	"context"
	"errors"
	"sync"

	"github.com/spiffcs/todo/internal/task"
)

var errFake = errors.New("fake failure")

// fakeRepo is an in-memory TaskRepository with error injection.
type fakeRepo struct {
	mu    sync.Mutex
	tasks []task.Task
	loads int

	TasksErr    error
	CompleteErr error
	ClearErr    error
}

func newFakeRepo(tasks ...task.Task) *fakeRepo {
	return &fakeRepo{tasks: tasks}
}

func (f *fakeRepo) Tasks(ctx context.Context) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.TasksErr != nil {
		return nil, f.TasksErr
	}
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeRepo) set(id string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CompleteErr != nil {
		return f.CompleteErr
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].IsCompleted = completed
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeRepo) Complete(ctx context.Context, id string) error { return f.set(id, true) }
func (f *fakeRepo) Activate(ctx context.Context, id string) error { return f.set(id, false) }

func (f *fakeRepo) ClearCompleted(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ClearErr != nil {
		return 0, f.ClearErr
	}
	kept := task.FilterActive.Apply(f.tasks)
	n := len(f.tasks) - len(kept)
	f.tasks = kept
	return n, nil
}

func (f *fakeRepo) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

func sampleTasks() []task.Task {
	return []task.Task{
		{ID: "1", Title: "Buy milk"},
		{ID: "2", Title: "Pay bills", IsCompleted: true},
		{ID: "3", Title: "Walk dog"},
	}
}

// gatedRepo holds its first Tasks call open until release is closed. The
// tasks it returns are read before blocking.
type gatedRepo struct {
	*fakeRepo
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedRepo(tasks ...task.Task) *gatedRepo {
	return &gatedRepo{
		fakeRepo: newFakeRepo(tasks...),
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (g *gatedRepo) Tasks(ctx context.Context) ([]task.Task, error) {
	first := false
	g.once.Do(func() { first = true })

	out, err := g.fakeRepo.Tasks(ctx)
	if first {
		close(g.entered)
		<-g.release
	}
	return out, err
}
