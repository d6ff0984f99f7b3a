package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spiffcs/todo/internal/output"
	"github.com/spiffcs/todo/internal/store"
)

// NewCmdRm creates the rm command.
func NewCmdRm(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long:    `Delete a task whether or not it is complete. The id may be any unique prefix.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				t, err := store.Resolve(ctx, a.repo, args[0])
				if err != nil {
					return err
				}
				if err := a.repo.Delete(ctx, t.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", output.ShortID(t.ID), t.TitleForList())
				return nil
			})
		},
	}
}
