package search

import (
	"testing"
	"time"

	"github.com/verifai-labs/verifai/internal/model"
)

func TestWeight_EncyclopedicHalfWeight(t *testing.T) {
	now := time.Now()

	urls := []string{
		"https://en.wikipedia.org/wiki/Water",
		"https://EN.WIKIPEDIA.ORG/wiki/Water",
		"https://de.wikipedia.org/wiki/Wasser",
	}
	for _, u := range urls {
		if w := Weight(u, nil, now); w != 0.5 {
			t.Errorf("expected 0.5 for %s, got %v", u, w)
		}
	}

	if w := Weight("https://www.nature.com/articles/x", nil, now); w != 1.0 {
		t.Errorf("expected 1.0 for non-encyclopedic source, got %v", w)
	}
}

func TestWeight_RecencyMonotonic(t *testing.T) {
	now := time.Now()
	url := "https://news.example.com/story"

	ages := []time.Duration{
		2 * time.Hour,       // breaking: 1.5
		3 * 24 * time.Hour,  // recent: 1.2
		30 * 24 * time.Hour, // stale: 1.0
	}

	var prev float64 = 2.0
	for _, age := range ages {
		published := now.Add(-age)
		w := Weight(url, &published, now)
		if w > prev {
			t.Errorf("weight increased with age: %v at age %v (prev %v)", w, age, prev)
		}
		prev = w
	}
}

func TestWeight_RecencyBuckets(t *testing.T) {
	now := time.Now()
	url := "https://news.example.com/story"

	fresh := now.Add(-1 * time.Hour)
	if w := Weight(url, &fresh, now); w != 1.5 {
		t.Errorf("expected 1.5 for breaking news, got %v", w)
	}

	week := now.Add(-5 * 24 * time.Hour)
	if w := Weight(url, &week, now); w != 1.2 {
		t.Errorf("expected 1.2 for recent news, got %v", w)
	}

	old := now.Add(-60 * 24 * time.Hour)
	if w := Weight(url, &old, now); w != 1.0 {
		t.Errorf("expected 1.0 for old news, got %v", w)
	}
}

func TestWeight_UnknownDateDefaultsToOne(t *testing.T) {
	if w := Weight("https://example.com", nil, time.Now()); w != 1.0 {
		t.Errorf("expected 1.0 for undated source, got %v", w)
	}
}

func TestWeight_EncyclopedicWithRecency(t *testing.T) {
	now := time.Now()
	fresh := now.Add(-1 * time.Hour)
	if w := Weight("https://en.wikipedia.org/wiki/X", &fresh, now); w != 0.75 {
		t.Errorf("expected 0.5*1.5=0.75, got %v", w)
	}
}

func TestApplyWeights(t *testing.T) {
	now := time.Now()
	sources := []model.Source{
		{URL: "https://en.wikipedia.org/wiki/X"},
		{URL: "https://example.com"},
	}
	ApplyWeights(sources, now)

	if sources[0].Weight != 0.5 {
		t.Errorf("expected 0.5, got %v", sources[0].Weight)
	}
	if sources[1].Weight != 1.0 {
		t.Errorf("expected 1.0, got %v", sources[1].Weight)
	}
}
