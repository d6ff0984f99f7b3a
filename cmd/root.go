package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "todo",
		Short: "A task list for the terminal",
		Long: `Keep a list of tasks, tick them off and clear them away.

Run without arguments to open the interactive task list. When stdout is not
a terminal, or an output format is given, the tasks are printed instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				if shouldUseTUI(opts) {
					return runInteractive(ctx, cmd, a, opts)
				}
				return printTasks(ctx, cmd, a, opts)
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,

		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags(), opts)
	addListFlags(rootCmd, opts)

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	rootCmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable the interactive screen (default: auto-detect)")

	// Register subcommands
	rootCmd.AddCommand(NewCmdList(opts))
	rootCmd.AddCommand(NewCmdAdd(opts))
	rootCmd.AddCommand(NewCmdDone(opts))
	rootCmd.AddCommand(NewCmdUndo(opts))
	rootCmd.AddCommand(NewCmdClear(opts))
	rootCmd.AddCommand(NewCmdRm(opts))
	rootCmd.AddCommand(NewCmdStats(opts))
	rootCmd.AddCommand(NewCmdConfig(opts))
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}

// addGlobalFlags adds the flags shared by every command.
func addGlobalFlags(flags *pflag.FlagSet, opts *Options) {
	flags.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	flags.StringVar(&opts.Backend, "backend", "", "Storage backend (file, sqlite)")
	flags.StringVar(&opts.StorePath, "store", "", "Path to the task store")

	// Profiling flags
	flags.StringVar(&opts.CPUProfile, "cpuprofile", "", "Write CPU profile to file")
	flags.StringVar(&opts.MemProfile, "memprofile", "", "Write memory profile to file")
	flags.StringVar(&opts.Trace, "trace", "", "Write execution trace to file")
}

// withApp sets up logging and profiling, opens the store and runs fn.
func withApp(cmd *cobra.Command, opts *Options, fn func(ctx context.Context, a *app) error) error {
	stop, err := setupRuntime(opts)
	if err != nil {
		return err
	}
	defer stop()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
