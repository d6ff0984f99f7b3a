package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spiffcs/todo/internal/task"
	"github.com/spiffcs/todo/internal/viewmodel"
)

// SnapshotMsg delivers a new UiState to the list.
type SnapshotMsg struct {
	State viewmodel.UiState
}

// snapshotsClosedMsg signals that the state stream ended.
type snapshotsClosedMsg struct{}

// hostEvent is raised by the host callbacks and handled by Screen.
type hostEvent interface {
	isHostEvent()
}

type addTaskEvent struct{}

type taskClickEvent struct {
	Task task.Task
}

type toggleDrawerEvent struct{}

func (addTaskEvent) isHostEvent()      {}
func (taskClickEvent) isHostEvent()    {}
func (toggleDrawerEvent) isHostEvent() {}

// waitForSnapshot creates a command that waits for the next snapshot.
func waitForSnapshot(states <-chan viewmodel.UiState) tea.Cmd {
	if states == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-states
		if !ok {
			return snapshotsClosedMsg{}
		}
		return SnapshotMsg{State: s}
	}
}

// waitForHostEvent creates a command that waits for the next host event.
func waitForHostEvent(events <-chan hostEvent) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return e
	}
}

// sendHostEvent delivers e without blocking the caller; when the buffer is
// full the event is dropped.
func sendHostEvent(ch chan<- hostEvent, e hostEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- e:
	default:
	}
}
