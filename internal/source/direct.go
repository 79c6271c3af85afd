package source

import (
	"context"
	"net/http"

	"github.com/dosanma1/vncard-cli/internal/names"
)

// DirectURL fetches names from a single endpoint.
type DirectURL struct {
	url    string
	client *http.Client
}

// NewDirectURL creates a single-endpoint source. A nil client gets the
// default timeout.
func NewDirectURL(url string, client *http.Client) *DirectURL {
	if client == nil {
		client = NewHTTPClient(DefaultHTTPTimeout)
	}
	return &DirectURL{url: url, client: client}
}

func (d *DirectURL) Name() string { return string(KindURL) }

// Fetch returns the distinct names found in the response, truncated to
// req.Count.
func (d *DirectURL) Fetch(ctx context.Context, req Request) ([]string, error) {
	if d.url == "" {
		return nil, unavailable(d.Name(), "no url configured")
	}
	return fetchNames(ctx, d.client, d.Name(), d.url, req.Count)
}

func fetchNames(ctx context.Context, client *http.Client, src, url string, count int) ([]string, error) {
	body, err := fetchBody(ctx, client, url)
	if err != nil {
		return nil, unavailable(src, "%s: %v", url, err)
	}
	raw := Extract(body)
	for i := range raw {
		raw[i] = names.Normalize(raw[i])
	}
	return truncate(names.Dedupe(raw), count), nil
}
