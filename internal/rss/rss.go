package rss

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/deusflow/newsbot/internal/model"
)

// FeedsConfig is YAML config structure
// feeds:
//   - https://...
//
// Declaration order matters: the digest scan walks feeds top to
// bottom, so earlier feeds are favored under the scan limits.
type FeedsConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadFeeds reads the ordered RSS source list from a YAML file.
func LoadFeeds(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// Client fetches and normalizes feed items.
type Client struct {
	parser *gofeed.Parser
}

func NewClient(timeout time.Duration) *Client {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	return &Client{parser: parser}
}

// Fetch downloads and parses one feed. Any fetch or parse error is
// logged and yields an empty slice; a broken source never stops the
// scan of the remaining ones.
func (c *Client) Fetch(ctx context.Context, url string) []model.Item {
	feed, err := c.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		slog.Warn("error parsing RSS feed", "url", url, "error", err)
		return nil
	}

	items := make([]model.Item, 0, len(feed.Items))
	for _, raw := range feed.Items {
		if raw == nil {
			continue
		}
		items = append(items, normalize(raw))
	}

	slog.Debug("loaded feed", "url", url, "items", len(items))
	return items
}

// normalize converts a parsed feed entry into the internal Item once,
// at the boundary. Missing fields become empty strings; only the
// first content block is kept.
func normalize(raw *gofeed.Item) model.Item {
	item := model.Item{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Body:        strings.TrimSpace(raw.Content),
		Link:        strings.TrimSpace(raw.Link),
	}

	// Feeds carrying a Dublin Core description expose a second,
	// usually shorter, summary next to the RSS description.
	if raw.DublinCoreExt != nil && len(raw.DublinCoreExt.Description) > 0 {
		item.Summary = strings.TrimSpace(raw.DublinCoreExt.Description[0])
	}

	return item
}
