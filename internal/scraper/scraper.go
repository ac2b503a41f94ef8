// Package scraper does best-effort extraction of full article text
// from news pages. It is a boundary collaborator: every failure mode
// (network, paywall, unparseable markup) collapses to an empty
// string, which callers treat as "use fallback text".
package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

type Extractor struct {
	client *http.Client
}

func New(timeout time.Duration) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: timeout},
	}
}

// FetchFullText downloads the page at link and extracts readable
// article text. Returns "" on any failure; never returns an error.
func (e *Extractor) FetchFullText(ctx context.Context, link string) string {
	if link == "" {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		slog.Debug("article request build failed", "url", link, "error", err)
		return ""
	}

	resp, err := e.client.Do(req)
	if err != nil {
		slog.Debug("article fetch failed", "url", link, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("article fetch non-200", "url", link, "status", resp.StatusCode)
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		slog.Debug("article parse failed", "url", link, "error", err)
		return ""
	}

	return cleanContent(extractContent(doc))
}

// extractContent walks a ladder of increasingly generic selectors and
// keeps the first one that yields enough paragraphs.
func extractContent(doc *goquery.Document) string {
	selectors := []string{
		"article p",
		".article-body p",
		".article-content p",
		".post-content p",
		".entry-content p",
		".content p",
		"main p",
		"#content p",
		"p",
	}

	var best []string
	for _, selector := range selectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 { // three solid paragraphs is enough
			return strings.Join(paragraphs, "\n\n")
		}
		if len(paragraphs) > len(best) {
			best = paragraphs
		}
	}

	return strings.Join(best, "\n\n")
}

var junkIndicators = []string{
	"cookie", "gdpr", "subscribe to our newsletter", "sign up",
	"read more", "click here", "follow us", "share this article",
	"advertisement", "all rights reserved",
}

// cleanContent strips boilerplate lines and normalizes whitespace.
func cleanContent(content string) string {
	if content == "" {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 8 {
			continue
		}

		lower := strings.ToLower(line)
		junk := false
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				junk = true
				break
			}
		}
		if junk {
			continue
		}

		kept = append(kept, strings.Join(strings.Fields(line), " "))
	}

	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}
