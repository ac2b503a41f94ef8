// Package classify is a client for a hosted zero-shot classification
// model. Given a text and a set of candidate labels it returns the
// model's probability distribution over those labels, best guess
// first. The labels compete for probability mass, so scores are only
// comparable within one call.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/deusflow/newsbot/internal/ratelimit"
	"github.com/deusflow/newsbot/internal/retry"
)

const (
	defaultModel   = "MoritzLaurer/mDeBERTa-v3-base-mnli-xnli"
	defaultBaseURL = "https://api-inference.huggingface.co"
)

var (
	ErrEmptyText       = errors.New("classify: empty input text")
	ErrNoLabels        = errors.New("classify: no candidate labels")
	ErrBudgetExhausted = errors.New("classify: daily call budget exhausted")
)

// LabelScore is one (label, probability) pair of a classification
// result.
type LabelScore struct {
	Label string
	Score float64
}

// Client talks to the zero-shot classification endpoint.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	retryCfg   retry.Config
	limiter    *ratelimit.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default classification model.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetry sets the retry policy for transient failures.
func WithRetry(cfg retry.Config) Option {
	return func(c *Client) {
		if cfg.MaxAttempts > 0 {
			c.retryCfg = cfg
		}
	}
}

// WithLimiter attaches a daily call budget.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retryCfg:   retry.Config{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type response struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
	Error    string    `json:"error"`
}

// Classify returns the ranked label distribution for text. The result
// is sorted descending by score; the first entry is the model's best
// guess. All failures come back as errors, never panics, so callers
// can apply their fail-closed defaults.
func (c *Client) Classify(ctx context.Context, text string, labels []string) ([]LabelScore, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	if c.limiter != nil && !c.limiter.AllowClassify() {
		return nil, ErrBudgetExhausted
	}

	var result []LabelScore
	err := retry.WithRetry(ctx, c.retryCfg, func() error {
		scores, err := c.classifyOnce(ctx, text, labels)
		if err != nil {
			return err
		}
		result = scores
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) classifyOnce(ctx context.Context, text string, labels []string) ([]LabelScore, error) {
	body, err := json.Marshal(request{
		Inputs:     text,
		Parameters: parameters{CandidateLabels: labels},
	})
	if err != nil {
		return nil, retry.Permanent{Err: fmt.Errorf("classify: marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, retry.Permanent{Err: fmt.Errorf("classify: create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classify: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("classify: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decoding
	case resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests:
		// Model cold start or rate limiting, worth another attempt.
		return nil, fmt.Errorf("classify: API status %d: %s", resp.StatusCode, truncate(raw, 200))
	default:
		return nil, retry.Permanent{
			Err: fmt.Errorf("classify: API status %d: %s", resp.StatusCode, truncate(raw, 200)),
		}
	}

	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, retry.Permanent{Err: fmt.Errorf("classify: decode response: %w", err)}
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("classify: API error: %s", parsed.Error)
	}
	if len(parsed.Labels) == 0 || len(parsed.Labels) != len(parsed.Scores) {
		return nil, retry.Permanent{
			Err: fmt.Errorf("classify: malformed response: %d labels, %d scores",
				len(parsed.Labels), len(parsed.Scores)),
		}
	}

	scores := make([]LabelScore, len(parsed.Labels))
	for i, label := range parsed.Labels {
		scores[i] = LabelScore{Label: label, Score: parsed.Scores[i]}
	}
	// The API already ranks results, but the descending order is part
	// of this client's contract.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores, nil
}

func truncate(raw []byte, max int) string {
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}
