// Package pipeline turns one source's candidates into exactly N names that
// are unique within the batch and absent from history.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dosanma1/vncard-cli/internal/logger"
	"github.com/dosanma1/vncard-cli/internal/names"
	"github.com/dosanma1/vncard-cli/internal/source"
)

// ErrInsufficientNames is matched by every *InsufficientNamesError.
var ErrInsufficientNames = errors.New("insufficient unique names")

// InsufficientNamesError reports a shortfall that padding did not cover.
type InsufficientNamesError struct {
	Source string
	Got    int
	Want   int
}

func (e *InsufficientNamesError) Error() string {
	return fmt.Sprintf("%s did not return enough unique names (%d/%d)", e.Source, e.Got, e.Want)
}

func (e *InsufficientNamesError) Is(target error) bool {
	return target == ErrInsufficientNames
}

// Plan is the immutable description of one acquisition.
type Plan struct {
	Count   int
	Kind    source.Kind
	Adapter source.Adapter
	// Pad fills a shortfall with offline names.
	Pad bool
}

// Pipeline runs acquisitions. It is not safe for concurrent use because the
// shared Rand is not.
type Pipeline struct {
	offline source.Adapter
	rnd     names.Rand
	log     *slog.Logger
}

// New creates a pipeline. offline is used for padding and rnd for shuffling
// sources whose order carries no meaning.
func New(offline source.Adapter, rnd names.Rand, log *slog.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{offline: offline, rnd: rnd, log: log.With(logger.Component("pipeline"))}
}

// Acquire returns exactly plan.Count names, or an error wrapping
// ErrInsufficientNames. The offline source is the exception: it returns
// whatever its vocabulary can still reach within the attempt cap. Source failures are logged and treated as empty
// batches. Only context cancellation aborts the call early.
func (p *Pipeline) Acquire(ctx context.Context, plan Plan, history names.Set) ([]string, error) {
	if plan.Count <= 0 {
		return []string{}, nil
	}
	if plan.Adapter == nil {
		return nil, fmt.Errorf("no adapter for source %q", plan.Kind)
	}

	entry, ok := source.Lookup(plan.Kind)
	if !ok {
		entry = source.Entry{Kind: plan.Kind, Multiplier: 1}
	}

	req := source.Request{Count: plan.Count * entry.Multiplier, Avoid: history}
	batch, err := plan.Adapter.Fetch(ctx, req)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		p.log.WarnContext(ctx, "source unavailable", logger.Source(plan.Adapter.Name()), logger.Error(err))
	}
	p.log.DebugContext(ctx, "fetched candidates",
		logger.Source(plan.Adapter.Name()),
		slog.Int("requested", req.Count),
		slog.Int("received", len(batch)),
	)

	collected := Filter(batch, history, -1)
	if entry.Shuffle && p.rnd != nil {
		p.rnd.Shuffle(len(collected), func(i, j int) {
			collected[i], collected[j] = collected[j], collected[i]
		})
	}
	if len(collected) > plan.Count {
		collected = collected[:plan.Count]
	}

	if len(collected) < plan.Count && plan.Kind == source.KindOffline {
		p.log.WarnContext(ctx, "offline vocabulary exhausted, continuing with fewer names",
			slog.Int("got", len(collected)),
			slog.Int("want", plan.Count),
		)
		return collected, nil
	}

	if len(collected) < plan.Count {
		short := &InsufficientNamesError{Source: plan.Adapter.Name(), Got: len(collected), Want: plan.Count}
		if !plan.Pad {
			return nil, short
		}
		padded, err := p.pad(ctx, plan.Count-len(collected), history.Union(collected...))
		if err != nil {
			return nil, err
		}
		p.log.InfoContext(ctx, "padded with offline names",
			logger.Source(plan.Adapter.Name()),
			slog.Int("got", len(collected)),
			slog.Int("padded", len(padded)),
		)
		collected = append(collected, padded...)
		if len(collected) < plan.Count {
			short.Got = len(collected)
			return nil, short
		}
	}
	return collected, nil
}

func (p *Pipeline) pad(ctx context.Context, n int, avoid names.Set) ([]string, error) {
	if p.offline == nil {
		return nil, nil
	}
	extra, err := p.offline.Fetch(ctx, source.Request{Count: n, Avoid: avoid})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		p.log.WarnContext(ctx, "source unavailable", logger.Source(p.offline.Name()), logger.Error(err))
	}
	return Filter(extra, avoid, n), nil
}

// Filter trims candidates, drops empties, history members and repeats (the
// first occurrence wins), then keeps at most n. A negative n keeps everything.
// It does not modify its inputs and Filter(Filter(b, h, n), h, n) equals
// Filter(b, h, n).
func Filter(batch []string, history names.Set, n int) []string {
	out := make([]string, 0, len(batch))
	seen := make(names.Set, len(batch))
	for _, c := range batch {
		if n >= 0 && len(out) >= n {
			break
		}
		c = strings.TrimSpace(c)
		if c == "" || history.Has(c) || seen.Has(c) {
			continue
		}
		seen.Add(c)
		out = append(out, c)
	}
	return out
}
