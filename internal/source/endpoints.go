package source

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// CountParams are the query parameters tried, in order, to ask an endpoint
// for a larger page.
var CountParams = []string{"count", "limit", "size", "n"}

// endpointOverfetch is how many names are asked from each endpoint per name
// needed.
const endpointOverfetch = 5

// MultiEndpoint walks a configured list of endpoints until one of them
// delivers enough names.
type MultiEndpoint struct {
	listPath string
	client   *http.Client
}

// NewMultiEndpoint creates a source reading its endpoint list from listPath.
func NewMultiEndpoint(listPath string, client *http.Client) *MultiEndpoint {
	if client == nil {
		client = NewHTTPClient(DefaultHTTPTimeout)
	}
	return &MultiEndpoint{listPath: listPath, client: client}
}

func (m *MultiEndpoint) Name() string { return string(KindAuto) }

// Fetch tries each endpoint bare and then with every CountParams variant. It
// returns as soon as req.Count new names were collected, otherwise whatever
// was gathered across all endpoints.
func (m *MultiEndpoint) Fetch(ctx context.Context, req Request) ([]string, error) {
	bases, err := LoadEndpoints(m.listPath)
	if err != nil {
		return nil, unavailable(m.Name(), "%v", err)
	}
	if len(bases) == 0 {
		return nil, unavailable(m.Name(), "no endpoints listed in %s", m.listPath)
	}

	want := max(req.Count, 1)
	ask := want * endpointOverfetch
	collected := make([]string, 0, want)
	seen := req.Avoid.Union()
	var errs []error

	for _, base := range bases {
		for _, u := range endpointVariants(base, ask) {
			if ctx.Err() != nil {
				return collected, unavailable(m.Name(), "%v", ctx.Err())
			}
			found, err := fetchNames(ctx, m.client, m.Name(), u, ask)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for _, n := range found {
				if len(collected) >= want {
					break
				}
				if seen.Has(n) {
					continue
				}
				seen.Add(n)
				collected = append(collected, n)
			}
			if len(collected) >= want {
				return collected, nil
			}
		}
	}

	if len(collected) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return collected, nil
}

// endpointVariants returns base followed by base with each count parameter
// set to n.
func endpointVariants(base string, n int) []string {
	out := []string{base}
	u, err := url.Parse(base)
	if err != nil {
		return out
	}
	for _, key := range CountParams {
		v := *u
		q := v.Query()
		q.Set(key, strconv.Itoa(n))
		v.RawQuery = q.Encode()
		out = append(out, v.String())
	}
	return out
}

// LoadEndpoints reads one URL per line; blank lines and lines starting with
// '#' are ignored. A missing file yields no endpoints.
func LoadEndpoints(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var urls []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}
