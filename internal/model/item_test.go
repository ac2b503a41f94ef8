package model

import (
	"reflect"
	"testing"
)

func TestCombinedTextOrderAndFlattening(t *testing.T) {
	it := Item{
		Title:       "Rocket launch",
		Description: "A new\nmission",
		Summary:     "Crew of four",
		Body:        "Full\narticle text",
	}

	got := it.CombinedText()
	want := "Rocket launch. A new mission Crew of four Full article text"
	if got != want {
		t.Errorf("CombinedText() = %q, want %q", got, want)
	}
}

func TestCombinedTextEmptyItem(t *testing.T) {
	if got := (Item{}).CombinedText(); got != "" {
		t.Errorf("empty item should produce empty text, got %q", got)
	}
}

func TestCombinedTextSkipsMissingFields(t *testing.T) {
	it := Item{Title: "Only a title"}
	if got := it.CombinedText(); got != "Only a title." {
		t.Errorf("got %q", got)
	}
}

func TestFallbackText(t *testing.T) {
	it := Item{Title: "Title", Description: "Desc\nhere"}
	if got := it.FallbackText(); got != "Title. Desc here" {
		t.Errorf("got %q", got)
	}
}

func TestParseTags(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"AI, space", []string{"ai", "space"}},
		{"  Space ,  , technology ", []string{"space", "technology"}},
		{"", nil},
		{",,,", nil},
		{"одна тема", []string{"одна тема"}},
	}

	for _, c := range cases {
		if got := ParseTags(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
