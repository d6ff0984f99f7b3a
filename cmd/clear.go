package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewCmdClear creates the clear command.
func NewCmdClear(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				n, err := a.repo.ClearCompleted(ctx)
				if err != nil {
					return err
				}
				switch n {
				case 0:
					fmt.Fprintln(cmd.OutOrStdout(), "No completed tasks to clear.")
				case 1:
					fmt.Fprintln(cmd.OutOrStdout(), "Cleared 1 completed task.")
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed tasks.\n", n)
				}
				return nil
			})
		},
	}
}
