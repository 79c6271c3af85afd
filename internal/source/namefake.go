package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dosanma1/vncard-cli/internal/names"
)

const (
	// NamefakeURL returns one random Vietnamese identity per call.
	NamefakeURL = "https://api.namefake.com/vietnamese-vietnam/random"

	namefakeTimeout         = 5 * time.Second
	namefakeAttemptsPerName = 10
	namefakeRetryDelay      = 300 * time.Millisecond
)

// Namefake collects names one call at a time from the public namefake API.
type Namefake struct {
	url    string
	client *http.Client
	delay  time.Duration
}

// NamefakeOption customizes the public API source.
type NamefakeOption func(*Namefake)

// WithNamefakeURL points the source at another endpoint.
func WithNamefakeURL(u string) NamefakeOption {
	return func(n *Namefake) { n.url = u }
}

// WithNamefakeDelay sets the pause after an empty or failed attempt.
func WithNamefakeDelay(d time.Duration) NamefakeOption {
	return func(n *Namefake) { n.delay = d }
}

// WithNamefakeClient replaces the HTTP client.
func WithNamefakeClient(c *http.Client) NamefakeOption {
	return func(n *Namefake) {
		if c != nil {
			n.client = c
		}
	}
}

// NewNamefake creates the public API source.
func NewNamefake(opts ...NamefakeOption) *Namefake {
	n := &Namefake{
		url:    NamefakeURL,
		client: NewHTTPClient(namefakeTimeout),
		delay:  namefakeRetryDelay,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Namefake) Name() string { return string(KindNamefake) }

// Fetch calls the API until req.Count distinct names were seen or
// 10*max(1, req.Count) attempts were spent.
func (n *Namefake) Fetch(ctx context.Context, req Request) ([]string, error) {
	got := make([]string, 0, max(req.Count, 0))
	seen := names.NewSet()
	budget := namefakeAttemptsPerName * max(1, req.Count)
	var lastErr error

	for attempt := 0; len(got) < req.Count && attempt < budget; attempt++ {
		name, err := n.once(ctx)
		if err != nil {
			lastErr = err
		}
		if name != "" {
			if !seen.Has(name) {
				seen.Add(name)
				got = append(got, name)
			}
			continue
		}
		if err := sleep(ctx, n.delay); err != nil {
			return got, unavailable(n.Name(), "%v", err)
		}
	}

	if len(got) == 0 && lastErr != nil {
		return nil, unavailable(n.Name(), "%v", lastErr)
	}
	return got, nil
}

func (n *Namefake) once(ctx context.Context) (string, error) {
	body, err := fetchBody(ctx, n.client, n.url)
	if err != nil {
		return "", err
	}
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return names.Normalize(strings.TrimSpace(payload.Name)), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
