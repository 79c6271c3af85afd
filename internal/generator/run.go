// Package generator runs one batch: acquire names, render each onto the
// template, store the images and record the names in history.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dosanma1/vncard-cli/internal/history"
	"github.com/dosanma1/vncard-cli/internal/logger"
	"github.com/dosanma1/vncard-cli/internal/output"
	"github.com/dosanma1/vncard-cli/internal/pipeline"
)

// ErrRenderFailed is wrapped when at least one image could not be produced.
var ErrRenderFailed = errors.New("render failed")

// Renderer draws one name and returns the encoded image.
type Renderer interface {
	Render(ctx context.Context, name string) ([]byte, error)
}

// Progress receives one tick per processed name.
type Progress interface {
	Add(n int) error
	Finish() error
}

// Options controls one run.
type Options struct {
	Plan pipeline.Plan
	// DryRun acquires and allocates ids without rendering or touching history.
	DryRun bool
}

// Record describes the outcome for one name.
type Record struct {
	Name    string
	ID      string
	Path    string
	Mirrors []string
	Err     error
}

// Result summarizes a run.
type Result struct {
	Records  []Record
	Rendered int
	Failed   int
}

// Names returns the acquired names in order.
func (r Result) Names() []string {
	out := make([]string, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Name
	}
	return out
}

// Deps are the collaborators of a Generator.
type Deps struct {
	Pipeline *pipeline.Pipeline
	History  *history.Store
	Renderer Renderer
	// Sink is the primary destination. Its failures fail the name.
	Sink output.Sink
	// Exists feeds the filename allocator; usually DirSink.Exists.
	Exists func(id string) bool
	// Mirrors receive a copy of every stored image. Their failures are logged.
	Mirrors []output.Sink
	// Progress creates a progress reporter for total names. Optional.
	Progress func(total int) Progress
	Logger   *slog.Logger
}

// Generator executes runs.
type Generator struct {
	deps Deps
	log  *slog.Logger
}

// New creates a generator.
func New(deps Deps) *Generator {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	if deps.Progress == nil {
		deps.Progress = func(int) Progress { return nopProgress{} }
	}
	return &Generator{deps: deps, log: log.With(logger.Component("generator"))}
}

// Generate performs one run. An acquisition failure aborts before anything is
// rendered. Render and store failures are per name: the successful names are
// still recorded and the returned error wraps ErrRenderFailed.
func (g *Generator) Generate(ctx context.Context, opts Options) (Result, error) {
	seen, err := g.deps.History.Load()
	if err != nil {
		g.log.WarnContext(ctx, "history unavailable, continuing without it",
			slog.String("path", g.deps.History.Path()), logger.Error(err))
	}

	acquired, err := g.deps.Pipeline.Acquire(ctx, opts.Plan, seen)
	if err != nil {
		return Result{}, err
	}
	g.log.InfoContext(ctx, "names acquired",
		logger.Source(string(opts.Plan.Kind)),
		slog.Int("count", len(acquired)),
		slog.Int("history", seen.Len()),
	)

	alloc := output.NewAllocator(g.deps.Exists)
	res := Result{Records: make([]Record, 0, len(acquired))}

	if opts.DryRun {
		for _, name := range acquired {
			res.Records = append(res.Records, Record{Name: name, ID: alloc.Allocate(name)})
		}
		return res, nil
	}

	bar := g.deps.Progress(len(acquired))
	stored := make([]string, 0, len(acquired))
	for _, name := range acquired {
		if err := ctx.Err(); err != nil {
			_ = bar.Finish()
			return res, err
		}

		rec := g.produce(ctx, name, alloc.Allocate(name))
		res.Records = append(res.Records, rec)
		if rec.Err != nil {
			res.Failed++
		} else {
			res.Rendered++
			stored = append(stored, name)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := g.deps.History.Append(stored); err != nil {
		return res, fmt.Errorf("failed to record history: %w", err)
	}
	if res.Failed > 0 {
		return res, fmt.Errorf("%w: %d of %d images", ErrRenderFailed, res.Failed, len(acquired))
	}
	return res, nil
}

func (g *Generator) produce(ctx context.Context, name, id string) Record {
	rec := Record{Name: name, ID: id}

	data, err := g.deps.Renderer.Render(ctx, name)
	if err != nil {
		rec.Err = fmt.Errorf("failed to render %q: %w", name, err)
		g.log.ErrorContext(ctx, "render failed", logger.Name(name), logger.Error(err))
		return rec
	}

	path, err := g.deps.Sink.Put(ctx, id, data)
	if err != nil {
		rec.Err = err
		g.log.ErrorContext(ctx, "store failed", logger.Name(name), logger.Error(err))
		return rec
	}
	rec.Path = path

	for _, m := range g.deps.Mirrors {
		loc, err := m.Put(ctx, id, data)
		if err != nil {
			g.log.WarnContext(ctx, "mirror failed", logger.Name(name), logger.Error(err))
			continue
		}
		rec.Mirrors = append(rec.Mirrors, loc)
	}

	g.log.DebugContext(ctx, "image stored", logger.Name(name), slog.String("path", path))
	return rec
}

type nopProgress struct{}

func (nopProgress) Add(int) error { return nil }
func (nopProgress) Finish() error { return nil }
