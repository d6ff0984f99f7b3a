package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spiffcs/todo/internal/duration"
	"github.com/spiffcs/todo/internal/log"
	"github.com/spiffcs/todo/internal/output"
	"github.com/spiffcs/todo/internal/task"
)

// NewCmdList creates the list command.
func NewCmdList(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print tasks",
		Long: `Print tasks in creation order. Use --filter to show only active or
completed tasks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return printTasks(ctx, cmd, a, opts)
			})
		},
	}

	addListFlags(cmd, opts)
	return cmd
}

// addListFlags adds the list-specific flags to a command.
func addListFlags(cmd *cobra.Command, opts *Options) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "Show only these tasks (all, active, completed)")
	cmd.Flags().StringVarP(&opts.Since, "since", "s", "", "Show only tasks created within this window (e.g., 1d, 1w, 6mo)")
}

// printTasks writes the filtered tasks in the requested format.
func printTasks(ctx context.Context, cmd *cobra.Command, a *app, opts *Options) error {
	format := opts.Format
	if format == "" {
		format = a.cfg.DefaultFormat
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	filter, err := a.filter(opts)
	if err != nil {
		return err
	}

	tasks, err := a.repo.Tasks(ctx)
	if err != nil {
		return err
	}
	shown := filter.Apply(tasks)
	if opts.Since != "" {
		since, err := duration.Since(opts.Since, time.Now())
		if err != nil {
			return err
		}
		shown = createdSince(shown, since)
	}
	log.Debug("listing tasks", "filter", filter, "total", len(tasks), "shown", len(shown))

	return output.NewFormatter(f).Format(shown, cmd.OutOrStdout())
}

// createdSince keeps the tasks created at or after since, in order.
func createdSince(tasks []task.Task, since time.Time) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.CreatedAt.Before(since) {
			out = append(out, t)
		}
	}
	return out
}
