// Package relevance decides whether a news item matches any of a
// user's subscribed tags.
package relevance

import (
	"context"
	"log/slog"
	"time"

	"github.com/deusflow/newsbot/internal/cache"
	"github.com/deusflow/newsbot/internal/classify"
	"github.com/deusflow/newsbot/internal/metrics"
	"github.com/deusflow/newsbot/internal/model"
)

// Oracle is the zero-shot classification dependency.
type Oracle interface {
	Classify(ctx context.Context, text string, labels []string) ([]classify.LabelScore, error)
}

// Classifier matches items against tag sets. All tags are submitted
// as competing candidate labels in a single oracle call; an item is
// relevant when the top-ranked tag clears the threshold. One call per
// item, and generically "newsy" text cannot inflate every tag's score
// at once.
type Classifier struct {
	oracle    Oracle
	threshold float64
	cache     *cache.Cache
	cacheTTL  time.Duration
}

func New(oracle Oracle, threshold float64, c *cache.Cache, ttl time.Duration) *Classifier {
	return &Classifier{
		oracle:    oracle,
		threshold: threshold,
		cache:     c,
		cacheTTL:  ttl,
	}
}

// Threshold reports the configured relevance threshold.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// IsRelevant reports whether item matches any tag. Empty text and
// empty tag sets never match. Oracle failures are logged and treated
// as not relevant; they never propagate.
func (c *Classifier) IsRelevant(ctx context.Context, item model.Item, tags []string) bool {
	text := item.CombinedText()
	if text == "" || len(tags) == 0 {
		return false
	}

	scores, err := c.classify(ctx, text, tags)
	if err != nil {
		metrics.Global.IncrementOracleFailures()
		slog.Warn("relevance classification failed, treating as not relevant",
			"title", snippet(item.Title), "error", err)
		return false
	}
	if len(scores) == 0 {
		return false
	}

	top := scores[0]
	slog.Debug("zero-shot relevance",
		"title", snippet(item.Title), "label", top.Label, "score", top.Score)
	return top.Score >= c.threshold
}

func (c *Classifier) classify(ctx context.Context, text string, tags []string) ([]classify.LabelScore, error) {
	if c.cache == nil {
		return c.oracle.Classify(ctx, text, tags)
	}

	key := cache.Key(text, tags)
	if v, ok := c.cache.Get(key); ok {
		if scores, ok := v.([]classify.LabelScore); ok {
			metrics.Global.IncrementClassifyCacheHits()
			return scores, nil
		}
	}

	scores, err := c.oracle.Classify(ctx, text, tags)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, scores, c.cacheTTL)
	return scores, nil
}

func snippet(s string) string {
	const max = 80
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
