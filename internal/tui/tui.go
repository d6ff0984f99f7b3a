package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Run shows the task screen for vm and blocks until the user leaves it or
// asks to add a task.
func Run(ctx context.Context, vm ViewModel, opts ...ScreenOption) (Result, error) {
	screen := NewScreen(ctx, vm, opts...)
	defer screen.Close()

	p := tea.NewProgram(screen,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	if s, ok := final.(Screen); ok {
		return s.Result(), nil
	}
	return Result{}, nil
}

// ShouldUseTUI returns true if the TUI should be used based on environment.
func ShouldUseTUI() bool {
	// Check if stdout is a TTY
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return false
	}

	// Check for CI environment variables
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"GITLAB_CI",
		"BUILDKITE",
	}

	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return false
		}
	}

	return true
}
