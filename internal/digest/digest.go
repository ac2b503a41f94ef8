// Package digest drives the end-to-end flow for one user request:
// read tags, scan sources under bounded limits, classify, score,
// summarize, and emit entries in a stable order.
package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/deusflow/newsbot/internal/metrics"
	"github.com/deusflow/newsbot/internal/model"
	"github.com/deusflow/newsbot/internal/trust"
)

// MaxMatches caps every digest at five entries. The scan budget
// (MaxChecked) is configurable; this cap is part of the product.
const MaxMatches = 5

var (
	ErrNoSubscription = errors.New("digest: user has no subscription")
	ErrNoMatches      = errors.New("digest: no items matched the subscription")
)

// Entry is one rendered digest unit.
type Entry struct {
	Title      string
	Summary    string
	TrustLabel string
	Link       string
}

// Render formats the entry for delivery. The trust line is omitted
// when no label was derived.
func (e Entry) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "📰 %s\n\n📝 %s\n\n", e.Title, e.Summary)
	if e.TrustLabel != "" {
		b.WriteString(e.TrustLabel)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "🔗 %s", e.Link)
	return b.String()
}

// TagStore reads a user's subscription.
type TagStore interface {
	GetTags(ctx context.Context, userID int64) ([]string, error)
}

// ItemSource fetches one feed, returning zero items on failure.
type ItemSource interface {
	Fetch(ctx context.Context, url string) []model.Item
}

// Matcher decides relevance of one item against a tag set.
type Matcher interface {
	IsRelevant(ctx context.Context, item model.Item, tags []string) bool
}

// TrustScorer assigns a credibility tier to item text.
type TrustScorer interface {
	Assess(ctx context.Context, text string) trust.Tier
}

// Summarizer produces a synopsis for one item.
type Summarizer interface {
	Summarize(ctx context.Context, item model.Item) string
}

// Builder assembles digests. Calls to collaborators are issued
// sequentially; entries always come out in discovery order (source
// list order, then feed order), never re-ranked by score.
type Builder struct {
	store      TagStore
	source     ItemSource
	sources    []string
	matcher    Matcher
	trust      TrustScorer
	summarizer Summarizer
	maxChecked int
}

func NewBuilder(
	store TagStore,
	source ItemSource,
	sources []string,
	matcher Matcher,
	trustScorer TrustScorer,
	summarizer Summarizer,
	maxChecked int,
) *Builder {
	return &Builder{
		store:      store,
		source:     source,
		sources:    sources,
		matcher:    matcher,
		trust:      trustScorer,
		summarizer: summarizer,
		maxChecked: maxChecked,
	}
}

// Build runs one digest request for userID. Returns ErrNoSubscription
// when the user has no tags and ErrNoMatches when the bounded scan
// finds nothing relevant.
func (b *Builder) Build(ctx context.Context, userID int64) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.Global.RecordDigestTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	tags, err := b.store.GetTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read subscription for user %d: %w", userID, err)
	}
	if len(tags) == 0 {
		return nil, ErrNoSubscription
	}

	matched, checked := b.scan(ctx, tags)
	metrics.Global.AddItemsChecked(int64(checked))
	metrics.Global.AddItemsMatched(int64(len(matched)))

	if len(matched) == 0 {
		metrics.Global.IncrementDigestsEmpty()
		return nil, ErrNoMatches
	}

	entries := make([]Entry, 0, len(matched))
	for _, item := range matched {
		tier := b.trust.Assess(ctx, item.FallbackText())
		entries = append(entries, Entry{
			Title:      item.Title,
			Summary:    b.summarizer.Summarize(ctx, item),
			TrustLabel: tier.Label(),
			Link:       item.Link,
		})
	}

	metrics.Global.IncrementDigestsBuilt()
	slog.Info("digest built",
		"user", userID, "checked", checked, "entries", len(entries))
	return entries, nil
}

// scan walks the source list in declaration order and stops the whole
// sweep, mid-source if need be, once either limit is reached. Sources
// later in the list may contribute nothing when limits are hit early;
// the ordered feeds config is the operator's lever over that bias.
func (b *Builder) scan(ctx context.Context, tags []string) ([]model.Item, int) {
	var matched []model.Item
	checked := 0

	for _, url := range b.sources {
		if checked >= b.maxChecked || len(matched) >= MaxMatches {
			break
		}
		for _, item := range b.source.Fetch(ctx, url) {
			if checked >= b.maxChecked || len(matched) >= MaxMatches {
				break
			}
			if b.matcher.IsRelevant(ctx, item, tags) {
				matched = append(matched, item)
			}
			checked++
		}
	}

	return matched, checked
}
