package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spiffcs/todo/internal/log"
	"github.com/spiffcs/todo/internal/output"
)

// NewCmdAdd creates the add command.
func NewCmdAdd(opts *Options) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long: `Add a task. Words after 'add' form the title:

  todo add Buy milk
  todo add "Pay bills" -d "electricity and water"`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return runAdd(ctx, cmd, a, title, description)
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")

	return cmd
}

func runAdd(ctx context.Context, cmd *cobra.Command, a *app, title, description string) error {
	t, err := a.repo.Create(ctx, title, strings.TrimSpace(description))
	if err != nil {
		return err
	}
	log.Info("task added", "id", t.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Added task %s: %s\n", output.ShortID(t.ID), t.TitleForList())
	return nil
}
