package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spiffcs/todo/config"
	"github.com/spiffcs/todo/internal/store"
)

const configKeysHelp = `Keys:
  format           Output format for 'todo list' and 'todo stats' (table, json, markdown)
  filter           Filter the task list opens with (all, active, completed)
  storage.backend  Where tasks are kept (file, sqlite)
  storage.path     Task store location; defaults to $XDG_DATA_HOME/todo`

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig(opts *Options) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change configuration",
		Long: `Show or change configuration.

Settings are read from the global file, then ./.todo.yaml, with local values
winning. Flags such as --filter and --store override both.

` + configKeysHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	cmd.AddCommand(NewCmdConfigShow())
	cmd.AddCommand(NewCmdConfigSet())
	cmd.AddCommand(NewCmdConfigInit())
	cmd.AddCommand(NewCmdConfigPath(opts))
	cmd.AddCommand(NewCmdConfigDefaults())

	return cmd
}

// NewCmdConfigShow creates the config show subcommand.
func NewCmdConfigShow() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the merged configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigSet creates the config set subcommand.
func NewCmdConfigSet() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  "Set a configuration value in the global file, or in ./.todo.yaml with --local.\n\n" + configKeysHelp,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args, local)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Write to the local config file (./.todo.yaml)")

	return cmd
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit() *cobra.Command {
	var global, local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter config file",
		Long: `Create a commented config file with the default filter, output format
and storage settings.

--global writes the file for every directory, --local writes ./.todo.yaml.
Without either you are asked which one to create.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, global, local)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create the global config file")
	cmd.Flags().BoolVar(&local, "local", false, "Create ./.todo.yaml")

	return cmd
}

// NewCmdConfigPath creates the config path subcommand.
func NewCmdConfigPath(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config and task store locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigPath(cmd, opts)
		},
	}
}

// NewCmdConfigDefaults creates the config defaults subcommand.
func NewCmdConfigDefaults() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show the built-in configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printConfig(cmd.OutOrStdout(), config.DefaultConfig(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

func runConfigShow(cmd *cobra.Command, format string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return printConfig(cmd.OutOrStdout(), cfg, format)
}

// printConfig writes cfg as yaml or json.
func printConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "yaml":
		s, err := cfg.ToYAML()
		if err != nil {
			return err
		}
		fmt.Fprint(w, s)
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Fprintln(w, string(data))
	default:
		return fmt.Errorf("%w: output %q (want yaml or json)", config.ErrInvalidValue, format)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string, local bool) error {
	key, value := args[0], args[1]

	// Only the target file is rewritten, so values from the other file are
	// not copied into it.
	path := config.ConfigPath()
	if local {
		path = config.LocalConfigPath()
	}
	cfg, err := config.ReadFile(path)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.SaveFile(path); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s in %s.\n", key, value, path)
	return nil
}

func runConfigInit(cmd *cobra.Command, global, local bool) error {
	if global && local {
		return fmt.Errorf("--global and --local cannot be used together")
	}

	out := cmd.OutOrStdout()
	paths := config.GetConfigPaths()

	var target string
	switch {
	case global:
		target = paths.GlobalPath
	case local:
		target = paths.LocalPath
	default:
		fmt.Fprintln(out, "Which config file should be created?")
		fmt.Fprintf(out, "  [1] global  %s\n", paths.GlobalPath)
		fmt.Fprintf(out, "  [2] local   %s\n", paths.LocalPath)
		fmt.Fprint(out, "Choose [1/2]: ")

		choice, err := readLine(bufio.NewReader(cmd.InOrStdin()))
		if err != nil {
			return fmt.Errorf("failed to read choice: %w", err)
		}
		switch choice {
		case "1":
			target = paths.GlobalPath
		case "2":
			target = paths.LocalPath
		default:
			return fmt.Errorf("invalid choice %q: want 1 or 2", choice)
		}
	}

	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("config file already exists: %s", target)
	}
	if err := config.SaveTo(target, config.MinimalConfig()); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s.\n", target)
	fmt.Fprintln(out, "Change values there or with 'todo config set <key> <value>'.")
	return nil
}

func runConfigPath(cmd *cobra.Command, opts *Options) error {
	out := cmd.OutOrStdout()
	paths := config.GetConfigPaths()

	fmt.Fprintf(out, "Global config: %s%s\n", paths.GlobalPath, missing(paths.GlobalExists))
	fmt.Fprintf(out, "Local config:  %s%s\n", paths.LocalPath, missing(paths.LocalExists))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	backend, path := resolveStorage(cfg, opts)
	if path == "" {
		if path, err = store.DefaultPath(backend); err != nil {
			return err
		}
	}
	_, statErr := os.Stat(path)
	fmt.Fprintf(out, "Task store:    %s (%s)%s\n", path, backend, missing(statErr == nil))
	return nil
}

func missing(exists bool) string {
	if exists {
		return ""
	}
	return " (not created yet)"
}
