package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dosanma1/vncard-cli/internal/names"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.5-flash"

	geminiEndpoint      = "/v1beta/models/{model}:generateContent"
	geminiTimeout       = 60 * time.Second
	geminiMaxBatch      = 20
	geminiBatchSlack    = 5
	geminiRoundsPerName = 3
)

var errRateLimited = errors.New("rate limited")

var (
	numberingPattern = regexp.MustCompile(`^\d+[.)]\s*`)
	bulletPattern    = regexp.MustCompile(`^[-*•]\s*`)
)

// GeminiOptions configures the generative text source.
type GeminiOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Gemini asks the Google Generative Language API for batches of names.
type Gemini struct {
	client *http.Client
	url    string
	apiKey string
}

// NewGemini creates the generative source. A missing API key is not an error
// here; Fetch reports it as an unavailable source so fallback policy applies.
func NewGemini(opts GeminiOptions) *Gemini {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultGeminiBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultGeminiModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = geminiTimeout
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	path := strings.ReplaceAll(geminiEndpoint, "{model}", url.PathEscape(opts.Model))
	return &Gemini{
		client: client,
		url:    strings.TrimRight(opts.BaseURL, "/") + path,
		apiKey: strings.TrimSpace(opts.APIKey),
	}
}

func (g *Gemini) Name() string { return string(KindGemini) }

// Fetch prompts repeatedly until req.Count acceptable names were collected or
// 3*req.Count rounds were spent. Failed calls count toward the rounds.
func (g *Gemini) Fetch(ctx context.Context, req Request) ([]string, error) {
	if g.apiKey == "" {
		return nil, unavailable(g.Name(), "missing API key (set GEMINI_API_KEY or sources.gemini_api_key)")
	}
	if req.Count <= 0 {
		return []string{}, nil
	}

	collected := make([]string, 0, req.Count)
	accepted := names.NewSet()
	var (
		lastErr error
		okCalls int
	)

	for round := 0; len(collected) < req.Count && round < req.Count*geminiRoundsPerName; round++ {
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		batch := min(geminiMaxBatch, req.Count-len(collected)+geminiBatchSlack)
		text, err := g.generate(ctx, Prompt(batch))
		if err != nil {
			lastErr = err
			continue
		}
		okCalls++
		for _, line := range strings.Split(text, "\n") {
			name := names.Normalize(CleanLine(line))
			if !names.ValidExternal(name) || req.Avoid.Has(name) || accepted.Has(name) {
				continue
			}
			accepted.Add(name)
			collected = append(collected, name)
			if len(collected) >= req.Count {
				break
			}
		}
	}

	if okCalls == 0 && lastErr != nil {
		return collected, unavailable(g.Name(), "%v", lastErr)
	}
	return collected, nil
}

// Prompt builds the instruction asking for n names, one per line.
func Prompt(n int) string {
	return fmt.Sprintf(`Tạo %d tên sinh viên Việt Nam ngẫu nhiên, đa dạng.
Yêu cầu:
- Mỗi tên gồm họ, tên đệm và tên chính (ví dụ: Nguyễn Văn An)
- Sử dụng các họ phổ biến như: Nguyễn, Trần, Lê, Phạm, Hoàng, Huỳnh, Phan, Vũ, Võ, Đặng, Bùi, Đỗ, Hồ, Ngô, Dương
- Đảm bảo có dấu thanh đúng (á, à, ả, ã, ạ, â, ấ, ầ, ẩ, ẫ, ậ, ă, ắ, ằ, ẳ, ẵ, ặ, v.v.)
- Mỗi tên trên một dòng
- Không đánh số, không giải thích, chỉ liệt kê tên

Ví dụ format:
Nguyễn Thị Lan
Trần Văn Hùng
Lê Minh Anh`, n)
}

// CleanLine strips list numbering ("1. ", "1) ") and bullet markers.
func CleanLine(line string) string {
	s := strings.TrimSpace(line)
	s = numberingPattern.ReplaceAllString(s, "")
	s = bulletPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

type gmPart struct {
	Text string `json:"text"`
}

type gmContent struct {
	Role  string   `json:"role,omitempty"`
	Parts []gmPart `json:"parts"`
}

type gmReq struct {
	Contents []gmContent `json:"contents"`
}

type gmResp struct {
	Candidates []struct {
		Content struct {
			Parts []gmPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(gmReq{Contents: []gmContent{{Role: "user", Parts: []gmPart{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", errRateLimited
	}
	if resp.StatusCode/100 != 2 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("gemini upstream %d: %s", resp.StatusCode, strings.TrimSpace(string(slurp)))
	}

	var gr gmResp
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	var out strings.Builder
	if len(gr.Candidates) > 0 {
		for _, p := range gr.Candidates[0].Content.Parts {
			out.WriteString(p.Text)
		}
	}
	if out.Len() == 0 {
		return "", errors.New("empty response")
	}
	return out.String(), nil
}
