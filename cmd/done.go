package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spiffcs/todo/internal/output"
	"github.com/spiffcs/todo/internal/store"
	"github.com/spiffcs/todo/internal/viewmodel"
)

// NewCmdDone creates the done command.
func NewCmdDone(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task complete",
		Long:  `Mark a task complete. The id may be any unique prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return runSetCompleted(ctx, cmd, a, args[0], true)
			})
		},
	}
}

// NewCmdUndo creates the undo command.
func NewCmdUndo(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <id>",
		Short: "Mark a task active again",
		Long:  `Mark a completed task active again. The id may be any unique prefix.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return runSetCompleted(ctx, cmd, a, args[0], false)
			})
		},
	}
}

func runSetCompleted(ctx context.Context, cmd *cobra.Command, a *app, ref string, completed bool) error {
	t, err := store.Resolve(ctx, a.repo, ref)
	if err != nil {
		return err
	}

	msg := viewmodel.MsgTaskCompleted
	if completed {
		err = a.repo.Complete(ctx, t.ID)
	} else {
		err = a.repo.Activate(ctx, t.ID)
		msg = viewmodel.MsgTaskActivated
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", msg, output.ShortID(t.ID), t.TitleForList())
	return nil
}
