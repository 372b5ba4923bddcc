package organize

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"flatcopy/internal/config"
	"flatcopy/internal/errors"
	"flatcopy/internal/filter"
	"flatcopy/internal/log"
	"flatcopy/internal/naming"
	"flatcopy/internal/walk"
	"flatcopy/pkg/types"
)

// Engine runs the walk, filter, flatten and copy pipeline for one config.
// Each Run starts with a fresh name reservation table, so an Engine can be
// run repeatedly and several engines can run in one process.
type Engine struct {
	config    *config.Config
	copier    *Copier
	logger    *log.Logger
	namerOpts []naming.Option
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for per-file messages.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithCaseFolding overrides the platform default for case-insensitive name
// reservation.
func WithCaseFolding(fold bool) EngineOption {
	return func(e *Engine) {
		e.namerOpts = append(e.namerOpts, naming.WithCaseFolding(fold))
	}
}

// NewWithConfig creates a new Engine for cfg
func NewWithConfig(cfg *config.Config, opts ...EngineOption) *Engine {
	e := &Engine{
		config: cfg,
		copier: &Copier{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsDryRun returns whether the engine only plans
func (e *Engine) IsDryRun() bool {
	return e.config.DryRun
}

// Run performs one invocation. Fatal problems (missing source, destination
// that cannot be created, invalid ignore patterns) are returned as errors
// before anything is copied. Per-file problems are recorded in the summary
// and the run continues.
//
// Destination names are reserved on the calling goroutine before a copy is
// handed to a worker, so up to Config.Jobs copies may run at once without
// sharing the reservation table.
func (e *Engine) Run(ctx context.Context) (*types.RunSummary, error) {
	start := time.Now()
	cfg := e.config

	if err := checkSource(cfg.SourceDir); err != nil {
		return nil, err
	}
	if !e.IsDryRun() {
		if err := EnsureDestination(cfg.DestDir); err != nil {
			return nil, err
		}
	}

	walker, err := walk.New(walk.Options{
		Root:        cfg.SourceDir,
		Targets:     cfg.TargetDirs,
		IgnoredDirs: cfg.IgnoredDirs,
		PruneDirs:   []string{cfg.DestDir},
	})
	if err != nil {
		return nil, err
	}
	accept := filter.New(cfg.IncludedExtensions, cfg.ExcludedExtensions)
	namer := naming.NewNamer(e.namerOpts...)

	summary := &types.RunSummary{DryRun: e.IsDryRun()}
	var mu sync.Mutex

	jobs := cfg.Jobs
	if jobs < 1 {
		jobs = 1
	}
	var g errgroup.Group
	g.SetLimit(jobs)

	e.logger.With(log.F("source", cfg.SourceDir), log.F("dest", cfg.DestDir), log.F("jobs", jobs)).
		Debug("starting run")

	seq := 0
	for c, walkErr := range walker.Candidates() {
		if ctx.Err() != nil {
			break
		}
		if walkErr != nil {
			summary.Warnings = append(summary.Warnings, walkErr)
			e.logger.WithError(walkErr).Warn("skipping unreadable path")
			continue
		}
		if !accept.Accept(c.AbsPath) {
			summary.Filtered++
			e.logger.With(log.F("path", c.RelPath)).Debug("filtered by extension")
			continue
		}

		name := namer.Reserve(c.RelPath)
		task := types.CopyTask{
			Seq:    seq,
			Source: c.AbsPath,
			Rel:    c.RelPath,
			Name:   name,
			Dest:   filepath.Join(cfg.DestDir, name),
		}
		seq++

		g.Go(func() error {
			res := e.execute(task)
			mu.Lock()
			summary.Results = append(summary.Results, res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(summary.Results, func(i, j int) bool {
		return summary.Results[i].Task.Seq < summary.Results[j].Task.Seq
	})
	for _, r := range summary.Results {
		if r.Error != nil {
			summary.Failed++
			continue
		}
		if r.Copied {
			summary.Copied++
		}
		summary.Bytes += r.Bytes
	}
	summary.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		return summary, errors.Wrap(err, "run interrupted")
	}
	return summary, nil
}

func (e *Engine) execute(task types.CopyTask) types.CopyResult {
	res := types.CopyResult{Task: task}
	logger := e.logger.With(log.F("source", task.Rel), log.F("dest", task.Name))

	if e.IsDryRun() {
		info, err := os.Stat(task.Source)
		if err != nil {
			res.Error = errors.NewCopyError("cannot stat source", task.Source, task.Dest, err)
			e.logger.WithError(res.Error).Error("file would fail to copy")
			return res
		}
		res.Bytes = info.Size()
		logger.Debug("would copy")
		return res
	}

	n, err := e.copier.Copy(task)
	if err != nil {
		res.Error = err
		e.logger.WithError(err).Error("failed to copy file")
		return res
	}
	res.Copied = true
	res.Bytes = n
	logger.Debug("copied")
	return res
}

func checkSource(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.NewFileError("source directory does not exist", dir, errors.SourceNotFound, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("source is not a directory", dir, errors.SourceNotFound, nil)
	}
	return nil
}
