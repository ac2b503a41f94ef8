package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deusflow/newsbot/internal/model"
	"github.com/deusflow/newsbot/internal/retry"
)

type fakeGenerator struct {
	out     string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

type fakeExtractor struct {
	text string
}

func (f *fakeExtractor) FetchFullText(ctx context.Context, link string) string {
	return f.text
}

func fastRetry() retry.Config {
	return retry.Config{MaxAttempts: 2, Delay: time.Millisecond}
}

var testItem = model.Item{
	Title:       "Rocket launch",
	Description: "Crewed mission lifts off",
	Link:        "https://example.com/rocket",
}

func TestSummarizePrefersFullArticle(t *testing.T) {
	gen := &fakeGenerator{out: "A crew launches tomorrow."}
	s := New(gen, &fakeExtractor{text: "Full article text about the launch."}, fastRetry())

	got := s.Summarize(context.Background(), testItem)
	if got != "A crew launches tomorrow." {
		t.Errorf("got %q", got)
	}
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "Full article text about the launch.") {
		t.Errorf("prompt should carry article text, got %q", gen.prompts)
	}
}

func TestSummarizeFallsBackToTitleDescription(t *testing.T) {
	gen := &fakeGenerator{out: "Short summary."}
	s := New(gen, &fakeExtractor{text: ""}, fastRetry())

	s.Summarize(context.Background(), testItem)
	if len(gen.prompts) != 1 || !strings.Contains(gen.prompts[0], "Rocket launch. Crewed mission lifts off") {
		t.Errorf("prompt should carry fallback text, got %q", gen.prompts)
	}
}

func TestSummarizePlaceholderOnFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	s := New(gen, &fakeExtractor{}, fastRetry())

	if got := s.Summarize(context.Background(), testItem); got != Placeholder {
		t.Errorf("got %q, want placeholder", got)
	}
}

func TestSummarizeRetriesTransientFailure(t *testing.T) {
	calls := 0
	gen := &retryGenerator{failures: 1, out: "Recovered summary.", calls: &calls}
	s := New(gen, &fakeExtractor{}, fastRetry())

	if got := s.Summarize(context.Background(), testItem); got != "Recovered summary." {
		t.Errorf("got %q", got)
	}
	if calls != 2 {
		t.Errorf("generator calls = %d, want 2", calls)
	}
}

type retryGenerator struct {
	failures int
	out      string
	calls    *int
}

func (r *retryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	*r.calls++
	if *r.calls <= r.failures {
		return "", errors.New("transient")
	}
	return r.out, nil
}
