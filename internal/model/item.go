package model

import "strings"

// Item is one normalized news-feed entry. Optional text fields are
// empty strings when the feed did not provide them; normalization
// happens once at the feed boundary, so downstream code never probes
// for missing data.
type Item struct {
	Title       string
	Description string
	Summary     string
	Body        string // richest available text (first content block)
	Link        string
}

// CombinedText assembles the classification input from all available
// text fields, in fixed order, with embedded newlines flattened to
// spaces. Returns "" when the item carries no text at all.
func (it Item) CombinedText() string {
	var b strings.Builder
	if it.Title != "" {
		b.WriteString(it.Title)
		b.WriteString(". ")
	}
	for _, part := range []string{it.Description, it.Summary, it.Body} {
		if part == "" {
			continue
		}
		b.WriteString(part)
		b.WriteString(" ")
	}
	return Flatten(b.String())
}

// FallbackText is the short text used when no full article body is
// available: "{title}. {description}".
func (it Item) FallbackText() string {
	return Flatten(it.Title + ". " + it.Description)
}

// Flatten collapses all whitespace runs (including newlines) into
// single spaces and trims the result.
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseTags splits a comma-separated subscription string into
// normalized tags: trimmed, lower-cased, empty entries dropped.
// Original order is preserved so confirmations can echo it back.
func ParseTags(text string) []string {
	var tags []string
	for _, raw := range strings.Split(text, ",") {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
