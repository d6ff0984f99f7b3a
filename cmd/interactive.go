package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spiffcs/todo/internal/log"
	"github.com/spiffcs/todo/internal/store"
	"github.com/spiffcs/todo/internal/task"
	"github.com/spiffcs/todo/internal/tui"
	"github.com/spiffcs/todo/internal/viewmodel"
)

// runInteractive shows the task screen until the user quits. Asking to add
// a task closes the screen, prompts for it on the terminal and reopens the
// screen with the same filter.
func runInteractive(ctx context.Context, cmd *cobra.Command, a *app, opts *Options) error {
	filter, err := a.filter(opts)
	if err != nil {
		return err
	}

	// Logs would corrupt the screen
	logPath := logFilePath()
	if err := log.ToFile(logPath); err != nil {
		return err
	}
	defer log.Restore()
	log.Info("interactive session started", "filter", filter, "backend", a.backend)

	vm := viewmodel.New(a.repo, viewmodel.WithInitialFilter(filter))
	defer vm.Close()

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for {
		res, err := tui.Run(ctx, vm, tui.WithStats(repoStats(a.repo)))
		if err != nil {
			return fmt.Errorf("interactive screen failed: %w", err)
		}
		if res.Action != tui.ActionAddTask {
			log.Info("interactive session ended")
			return nil
		}

		title, description, err := promptTask(in, out)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if title == "" && description == "" {
			fmt.Fprintln(out, "Nothing added.")
			continue
		}

		t, err := a.repo.Create(ctx, title, description)
		if err != nil {
			log.Error("failed to add task", "error", err)
			fmt.Fprintf(out, "Could not add task: %v\n", err)
			continue
		}
		log.Info("task added", "id", t.ID)
	}
}

// promptTask asks for a title and an optional description.
func promptTask(in *bufio.Reader, out io.Writer) (title, description string, err error) {
	fmt.Fprint(out, "New task title: ")
	title, err = readLine(in)
	if err != nil {
		return "", "", err
	}
	fmt.Fprint(out, "Description (optional): ")
	description, err = readLine(in)
	if errors.Is(err, io.EOF) {
		// A title without a trailing newline is still a task.
		return title, description, nil
	}
	return title, description, err
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	line = strings.TrimSpace(line)
	if errors.Is(err, io.EOF) && line != "" {
		return line, nil
	}
	return line, err
}

// repoStats computes drawer statistics over every task in repo.
func repoStats(repo store.Repository) tui.StatsFunc {
	return func(ctx context.Context) (task.Stats, error) {
		tasks, err := repo.Tasks(ctx)
		if err != nil {
			return task.Stats{}, err
		}
		return task.ComputeStats(tasks), nil
	}
}
