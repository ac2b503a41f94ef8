// Package summary produces a short synopsis for a matched news item.
package summary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/deusflow/newsbot/internal/model"
	"github.com/deusflow/newsbot/internal/retry"
)

// Placeholder is returned when the generation oracle cannot produce
// a summary. Callers always get usable text, never an error.
const Placeholder = "(failed to generate summary)"

// Generator is the text-generation dependency.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Extractor fetches full article text, best effort.
type Extractor interface {
	FetchFullText(ctx context.Context, link string) string
}

type Summarizer struct {
	generator Generator
	extractor Extractor
	retryCfg  retry.Config
}

func New(generator Generator, extractor Extractor, retryCfg retry.Config) *Summarizer {
	if retryCfg.MaxAttempts <= 0 {
		retryCfg.MaxAttempts = 1
	}
	return &Summarizer{
		generator: generator,
		extractor: extractor,
		retryCfg:  retryCfg,
	}
}

// Summarize picks the best available text for item (full article
// first, "{title}. {description}" as fallback) and asks the oracle
// for a concise same-language synopsis. Large article text is passed
// through untrimmed; the oracle enforces its own limits.
func (s *Summarizer) Summarize(ctx context.Context, item model.Item) string {
	text := s.extractor.FetchFullText(ctx, item.Link)
	if text == "" {
		text = item.FallbackText()
	}

	prompt := buildPrompt(text)

	var result string
	err := retry.WithRetry(ctx, s.retryCfg, func() error {
		out, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		result = out
		return nil
	})
	if err != nil {
		slog.Warn("summary generation failed, using placeholder",
			"title", snippet(item.Title), "error", err)
		return Placeholder
	}

	return result
}

func buildPrompt(text string) string {
	return fmt.Sprintf(
		"You are an assistant writing news summaries. "+
			"Write a concise summary of the following news item, "+
			"in the same language as the source text:\n\n%s", text)
}

func snippet(s string) string {
	const max = 80
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
