// Package trust assigns a coarse credibility tier to news text.
//
// This is a heuristic proxy, not fact-checking: it measures a
// classifier's confidence that the text reads like reliable vs
// questionable news copy by surface style. It knows nothing about
// whether the claims are true.
package trust

import (
	"context"
	"log/slog"

	"github.com/deusflow/newsbot/internal/classify"
	"github.com/deusflow/newsbot/internal/metrics"
)

// Candidate labels are mutually exclusive, so the two scores split
// the probability mass between them.
const (
	LabelReliable     = "reliable information"
	LabelQuestionable = "questionable information"
)

// Tier is the credibility bucket. Derived per request, never stored.
type Tier int

const (
	TierUnknown Tier = iota
	TierHigh
	TierQuestionable
	TierLow
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierQuestionable:
		return "questionable"
	case TierLow:
		return "low"
	default:
		return "unknown"
	}
}

// Label is the short user-facing form shown in digests.
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "🛡 looks reliable"
	case TierQuestionable:
		return "⚠️ questionable reliability"
	case TierLow:
		return "❗ likely unreliable"
	default:
		return ""
	}
}

// Oracle is the zero-shot classification dependency.
type Oracle interface {
	Classify(ctx context.Context, text string, labels []string) ([]classify.LabelScore, error)
}

// Scorer bands classifier confidence into tiers.
type Scorer struct {
	oracle Oracle
	low    float64
	high   float64
}

func New(oracle Oracle, low, high float64) *Scorer {
	return &Scorer{oracle: oracle, low: low, high: high}
}

// Assess returns the tier for text. Banding on the "questionable"
// label: score >= high flags the item as low trust, scores in
// [low, high) stay questionable, and scores below low are treated as
// not actionable and default to high trust. Both thresholds come from
// config. Oracle failures yield TierUnknown, never an error.
func (s *Scorer) Assess(ctx context.Context, text string) Tier {
	scores, err := s.oracle.Classify(ctx, text, []string{LabelReliable, LabelQuestionable})
	if err != nil {
		metrics.Global.IncrementOracleFailures()
		slog.Warn("trust classification failed", "text", snippet(text), "error", err)
		return TierUnknown
	}
	if len(scores) == 0 {
		return TierUnknown
	}

	top := scores[0]
	if top.Label != LabelQuestionable {
		return TierHigh
	}

	switch {
	case top.Score >= s.high:
		return TierLow
	case top.Score >= s.low:
		return TierQuestionable
	default:
		return TierHigh
	}
}

func snippet(s string) string {
	const max = 80
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
