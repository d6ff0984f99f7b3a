package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spiffcs/todo/internal/log"
)

// profiler runs the profiles requested with --cpuprofile, --trace and
// --memprofile for the lifetime of one command.
type profiler struct {
	cpuPath   string
	memPath   string
	tracePath string

	stops []func() error
}

func newProfiler(opts *Options) *profiler {
	return &profiler{
		cpuPath:   opts.CPUProfile,
		memPath:   opts.MemProfile,
		tracePath: opts.Trace,
	}
}

// Start begins CPU profiling and execution tracing. On error nothing is
// left running.
func (p *profiler) Start() error {
	if p.cpuPath != "" {
		if err := p.begin("cpu", p.cpuPath, pprof.StartCPUProfile, pprof.StopCPUProfile); err != nil {
			return err
		}
	}
	if p.tracePath != "" {
		if err := p.begin("trace", p.tracePath, trace.Start, trace.Stop); err != nil {
			p.stopRunning()
			return err
		}
	}
	return nil
}

func (p *profiler) begin(kind, path string, start func(io.Writer) error, stop func()) error {
	f, err := createProfile(path)
	if err != nil {
		return fmt.Errorf("failed to create %s profile: %w", kind, err)
	}
	if err := start(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to start %s profile: %w", kind, err)
	}
	log.Debug("profiling started", "kind", kind, "path", path)

	p.stops = append(p.stops, func() error {
		stop()
		return f.Close()
	})
	return nil
}

// Stop ends running profiles, newest first, then writes the heap profile.
func (p *profiler) Stop() {
	p.stopRunning()
	if p.memPath == "" {
		return
	}
	if err := writeHeapProfile(p.memPath); err != nil {
		log.Warn("failed to write memory profile", "path", p.memPath, "error", err)
	}
}

func (p *profiler) stopRunning() {
	for i := len(p.stops) - 1; i >= 0; i-- {
		if err := p.stops[i](); err != nil {
			log.Warn("failed to close profile", "error", err)
		}
	}
	p.stops = nil
}

func writeHeapProfile(path string) (err error) {
	f, err := createProfile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

// createProfile creates path along with any missing parent directories.
func createProfile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}
