package search

import (
	"strings"
	"time"

	"github.com/verifai-labs/verifai/internal/model"
)

// Encyclopedic aggregators carry half weight: they cite primary sources
// rather than being one.
const (
	encyclopedicMarker = "wikipedia.org"
	encyclopedicBase   = 0.5
	defaultBase        = 1.0
)

// Recency multipliers for dated sources
const (
	breakingMultiplier = 1.5 // published within 24h
	recentMultiplier   = 1.2 // published within 7d
	staleMultiplier    = 1.0 // older or unknown
)

// Weight computes the credibility weight for one source: base weight from
// the domain times a recency multiplier from the publish date. Pure.
func Weight(rawURL string, publishedAt *time.Time, now time.Time) float64 {
	base := defaultBase
	if strings.Contains(strings.ToLower(rawURL), encyclopedicMarker) {
		base = encyclopedicBase
	}

	multiplier := staleMultiplier
	if publishedAt != nil {
		age := now.Sub(*publishedAt)
		switch {
		case age <= 24*time.Hour:
			multiplier = breakingMultiplier
		case age <= 7*24*time.Hour:
			multiplier = recentMultiplier
		}
	}

	return base * multiplier
}

// ApplyWeights fills in Weight for each source in place
func ApplyWeights(sources []model.Source, now time.Time) {
	for i := range sources {
		sources[i].Weight = Weight(sources[i].URL, sources[i].PublishedAt, now)
	}
}
