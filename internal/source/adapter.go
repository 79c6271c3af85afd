// Package source provides the interchangeable name sources. Every source is
// best-effort: failures come back as an error wrapping ErrUnavailable next to
// whatever candidates were gathered, and the caller decides what to do with
// a short batch.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/dosanma1/vncard-cli/internal/names"
)

// ErrUnavailable marks a source that could not deliver: network failure,
// timeout, malformed payload or missing credentials.
var ErrUnavailable = errors.New("source unavailable")

// Request describes one fetch.
type Request struct {
	// Count is how many candidates the caller would like. Zero or negative
	// means "everything the source has" for sources where that is finite.
	Count int
	// Avoid holds names that must not be returned. Sources that loop until a
	// quota is met use it to skip known names; others may ignore it.
	Avoid names.Set
}

// Adapter is a uniform wrapper around one name-acquisition mechanism.
type Adapter interface {
	// Name returns the identifier used in logs and error messages.
	Name() string

	// Fetch returns raw candidate names in source order. Candidates may be
	// duplicated or already known; callers filter them.
	Fetch(ctx context.Context, req Request) ([]string, error)
}

func unavailable(src string, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", src, ErrUnavailable, fmt.Sprintf(format, args...))
}

func truncate(items []string, n int) []string {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
