package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/deusflow/newsbot/internal/ratelimit"
)

var ErrBudgetExhausted = errors.New("gemini: daily call budget exhausted")

// Client is the generation oracle used for summaries.
type Client struct {
	client  *genai.Client
	model   string
	limiter *ratelimit.Limiter
}

func NewClient(ctx context.Context, apiKey, model string, limiter *ratelimit.Limiter) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, model: model, limiter: limiter}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Generate runs one prompt and returns the model's text response.
// All failures (quota, network, empty candidates) come back as
// catchable errors.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil && !c.limiter.AllowGenerate() {
		return "", ErrBudgetExhausted
	}

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}
