package model

import "time"

// Source represents one piece of retrieved evidence.
// Sources are read-only once retrieved and owned by the request that fetched them.
type Source struct {
	URL         string     `json:"url"`
	Text        string     `json:"text,omitempty"`         // Truncated to SearchConfig.MaxSourceTextLen
	PublishedAt *time.Time `json:"published_at,omitempty"` // Unknown for most web results
	Weight      float64    `json:"weight"`                 // baseWeight * recencyMultiplier, see search.Weights
}
