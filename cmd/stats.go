package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spiffcs/todo/internal/history"
	"github.com/spiffcs/todo/internal/log"
	"github.com/spiffcs/todo/internal/output"
	"github.com/spiffcs/todo/internal/task"
	"golang.org/x/sync/errgroup"
)

// storeInfo describes where tasks are kept.
type storeInfo struct {
	Backend string
	Path    string
	Size    int64 // -1 when the store has no file on disk
}

// NewCmdStats creates the stats command.
func NewCmdStats(opts *Options) *cobra.Command {
	var historyN int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Long: `Show how many tasks are active and completed, and where they are stored.

Each run is recorded; use --history to compare with earlier runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, opts, func(ctx context.Context, a *app) error {
				return runStats(ctx, cmd, a, opts, historyN)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "output", "o", "", "Output format (table, json, markdown)")
	cmd.Flags().IntVar(&historyN, "history", 0, "Also show the last N recorded runs")

	return cmd
}

func runStats(ctx context.Context, cmd *cobra.Command, a *app, opts *Options, historyN int) error {
	format := opts.Format
	if format == "" {
		format = a.cfg.DefaultFormat
	}
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	var (
		stats task.Stats
		info  storeInfo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tasks, err := a.repo.Tasks(gctx)
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		stats = task.ComputeStats(tasks)
		return nil
	})
	g.Go(func() error {
		var err error
		info, err = statStore(a.backend, a.path)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	hist := openHistory()
	if hist != nil {
		if err := hist.Append(history.NewSnapshot(stats, time.Now())); err != nil {
			log.Warn("failed to record stats history", "error", err)
		}
	}

	out := cmd.OutOrStdout()
	if err := output.NewFormatter(f).FormatStats(stats, out); err != nil {
		return err
	}
	if f != output.FormatTable {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Storage: %s\n", info)

	if historyN > 0 && hist != nil {
		records, err := hist.Recent(historyN)
		if err != nil {
			return fmt.Errorf("failed to read stats history: %w", err)
		}
		printHistory(out, records, time.Now())
	}
	return nil
}

// openHistory returns the stats history store, or nil when there is no
// cache directory.
func openHistory() *history.Store {
	path, err := history.DefaultPath()
	if err != nil {
		log.Debug("stats history disabled", "error", err)
		return nil
	}
	return history.NewStore(path)
}

// printHistory prints one line per recorded run, oldest first.
func printHistory(w io.Writer, records []history.Snapshot, now time.Time) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "History:")
	for _, r := range records {
		fmt.Fprintf(w, "  %-16s  %3d active  %3d completed\n",
			humanize.RelTime(r.Timestamp, now, "ago", "from now"), r.Active, r.Completed)
	}
}

// statStore reports the size of the store file; a store that has not been
// written yet reads as empty.
func statStore(backend, path string) (storeInfo, error) {
	info := storeInfo{Backend: backend, Path: path, Size: -1}
	fi, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return info, nil
	case err != nil:
		return info, fmt.Errorf("failed to stat task store: %w", err)
	}
	info.Size = fi.Size()
	return info, nil
}

func (s storeInfo) String() string {
	if s.Size < 0 {
		return fmt.Sprintf("%s (%s, not created yet)", s.Backend, s.Path)
	}
	return fmt.Sprintf("%s (%s, %s)", s.Backend, s.Path, humanize.Bytes(uint64(s.Size)))
}
