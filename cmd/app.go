package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spiffcs/todo/config"
	"github.com/spiffcs/todo/internal/log"
	"github.com/spiffcs/todo/internal/store"
	"github.com/spiffcs/todo/internal/task"
)

// app bundles what every command needs: the merged config and an open store.
type app struct {
	cfg     *config.Config
	repo    store.Repository
	backend string
	path    string
}

// openApp loads config and opens the task store. Flags in opts win over
// config values.
func openApp(ctx context.Context, opts *Options) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return openAppWith(ctx, cfg, opts)
}

func openAppWith(ctx context.Context, cfg *config.Config, opts *Options) (*app, error) {
	backend, path := resolveStorage(cfg, opts)
	if path == "" {
		p, err := store.DefaultPath(backend)
		if err != nil {
			return nil, err
		}
		path = p
	}

	log.Debug("opening task store", "backend", backend, "path", path)
	repo, err := store.Open(ctx, backend, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}

	return &app{cfg: cfg, repo: repo, backend: backend, path: path}, nil
}

// resolveStorage picks the backend and path from flags, then config.
func resolveStorage(cfg *config.Config, opts *Options) (backend, path string) {
	backend, path = opts.Backend, opts.StorePath
	if cfg.Storage != nil {
		if backend == "" {
			backend = cfg.Storage.Backend
		}
		if path == "" {
			path = cfg.Storage.Path
		}
	}
	if backend == "" {
		backend = config.DefaultBackend
	}
	return backend, path
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		log.Warn("failed to close task store", "error", err)
	}
}

// filter returns the filter from flags, falling back to the configured default.
func (a *app) filter(opts *Options) (task.FilterKind, error) {
	if opts.Filter != "" {
		return task.ParseFilterKind(opts.Filter)
	}
	return task.ParseFilterKind(a.cfg.DefaultFilter)
}

// setupRuntime starts logging and profiling for a command; the returned
// function stops profiling.
func setupRuntime(opts *Options) (func(), error) {
	log.Initialize(opts.Verbosity, os.Stderr)
	p := newProfiler(opts)
	if err := p.Start(); err != nil {
		return nil, err
	}
	return p.Stop, nil
}

// logFilePath is where logs go while the interactive screen runs.
func logFilePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "todo", "todo.log")
}
