// Package search retrieves candidate evidence for a claim from a web search
// API, bounded by a hard timeout, and scores each source's credibility.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/verifai-labs/verifai/internal/cache"
	"github.com/verifai-labs/verifai/internal/model"
	"github.com/verifai-labs/verifai/internal/util"
)

// RetrievalError marks a source fetch timeout or provider failure. The
// pipeline converts it into a terminal Error verdict with a system refund.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string { return fmt.Sprintf("source retrieval failed: %v", e.Err) }
func (e *RetrievalError) Unwrap() error { return e.Err }

// Retriever fetches candidate evidence text for a claim
type Retriever interface {
	Retrieve(ctx context.Context, claim string) ([]model.Source, error)
}

// Client is an Exa-style search API client. Retrieved texts are truncated to
// a fixed maximum length before being handed downstream, bounding prompt cost.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	numResults int
	maxTextLen int
	timeout    time.Duration

	cache    cache.Cache // nil disables caching
	cacheTTL time.Duration

	enricher *PageEnricher // nil disables page enrichment
}

// NewClient creates a search client from configuration
func NewClient(cfg model.SearchConfig, httpCfg model.HTTPConfig, c cache.Cache, cacheTTL time.Duration) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		numResults: cfg.NumResults,
		maxTextLen: cfg.MaxSourceTextLen,
		timeout:    cfg.Timeout,
		cache:      c,
		cacheTTL:   cacheTTL,
	}

	if cfg.EnrichPages {
		client.enricher = NewPageEnricher(cfg, httpCfg)
	}

	return client
}

// Search API structures
type searchRequest struct {
	Query      string         `json:"query"`
	NumResults int            `json:"numResults"`
	Contents   searchContents `json:"contents"`
}

type searchContents struct {
	Text bool `json:"text"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Text          string `json:"text"`
	PublishedDate string `json:"publishedDate"`
}

// Retrieve fetches sources for the claim under the configured hard timeout.
// Weights are not assigned here; callers apply ApplyWeights so recency is
// computed against the request's own clock.
func (c *Client) Retrieve(ctx context.Context, claim string) ([]model.Source, error) {
	if c.cache != nil {
		if cached, found := c.cache.Get(cache.ClaimKey(claim)); found {
			var sources []model.Source
			if err := json.Unmarshal(cached, &sources); err == nil {
				return sources, nil
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	sources, err := c.search(ctx, claim)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}

	if c.enricher != nil {
		c.enricher.Enrich(ctx, sources)
	}

	if c.cache != nil {
		if data, err := json.Marshal(sources); err == nil {
			_ = c.cache.Set(cache.ClaimKey(claim), data, c.cacheTTL)
		}
	}

	return sources, nil
}

func (c *Client) search(ctx context.Context, claim string) ([]model.Source, error) {
	body, err := json.Marshal(searchRequest{
		Query:      claim,
		NumResults: c.numResults,
		Contents:   searchContents{Text: true},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	sources := make([]model.Source, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL == "" {
			continue
		}
		sources = append(sources, model.Source{
			URL:         r.URL,
			Text:        Truncate(r.Text, c.maxTextLen),
			PublishedAt: parsePublished(r.PublishedDate),
		})
	}

	return sources, nil
}

// Truncate bounds text to at most max runes
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}

func parsePublished(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
