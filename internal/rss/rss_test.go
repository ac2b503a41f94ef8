package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Example News</title>
    <item>
      <title>Rocket launch scheduled</title>
      <description>A crewed mission lifts off tomorrow.</description>
      <content:encoded><![CDATA[Full body of the launch story.]]></content:encoded>
      <link>https://example.com/rocket</link>
    </item>
    <item>
      <title>Markets close higher</title>
      <link>https://example.com/markets</link>
    </item>
  </channel>
</rss>`

func TestFetchNormalizesItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	items := NewClient(5 * time.Second).Fetch(context.Background(), srv.URL)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.Title != "Rocket launch scheduled" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Description != "A crewed mission lifts off tomorrow." {
		t.Errorf("Description = %q", first.Description)
	}
	if first.Body != "Full body of the launch story." {
		t.Errorf("Body = %q", first.Body)
	}
	if first.Link != "https://example.com/rocket" {
		t.Errorf("Link = %q", first.Link)
	}

	second := items[1]
	if second.Description != "" || second.Body != "" {
		t.Errorf("missing fields should be empty, got %+v", second)
	}
}

func TestFetchErrorsYieldEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if items := NewClient(5 * time.Second).Fetch(context.Background(), srv.URL); len(items) != 0 {
		t.Errorf("got %d items from failing source, want 0", len(items))
	}

	bad := NewClient(5 * time.Second).Fetch(context.Background(), "http://127.0.0.1:1/feed")
	if len(bad) != 0 {
		t.Errorf("got %d items from unreachable source, want 0", len(bad))
	}
}

func TestFetchGarbageYieldsEmptySlice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not XML"))
	}))
	defer srv.Close()

	if items := NewClient(5 * time.Second).Fetch(context.Background(), srv.URL); len(items) != 0 {
		t.Errorf("got %d items from garbage source, want 0", len(items))
	}
}

func TestLoadFeedsKeepsOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.yaml")
	content := "feeds:\n  - https://a.example/rss\n  - https://b.example/rss\n  - https://c.example/rss\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	feeds, err := LoadFeeds(path)
	if err != nil {
		t.Fatalf("LoadFeeds: %v", err)
	}
	want := []string{"https://a.example/rss", "https://b.example/rss", "https://c.example/rss"}
	if len(feeds) != len(want) {
		t.Fatalf("got %d feeds, want %d", len(feeds), len(want))
	}
	for i := range want {
		if feeds[i] != want[i] {
			t.Errorf("feeds[%d] = %q, want %q", i, feeds[i], want[i])
		}
	}
}

func TestLoadFeedsMissingFile(t *testing.T) {
	if _, err := LoadFeeds(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config")
	}
}
