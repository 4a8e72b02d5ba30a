package search

import (
	"context"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"

	"github.com/verifai-labs/verifai/internal/model"
	"github.com/verifai-labs/verifai/internal/ratelimit"
	"github.com/verifai-labs/verifai/internal/util"
)

// PageEnricher fills in missing source text by fetching the result pages
// directly. Fetches honor robots.txt and a per-domain rate limit, and run
// inside the retrieval deadline: a slow page simply stays empty.
type PageEnricher struct {
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *ratelimit.DomainLimiter
	maxBytes   int64
	maxTextLen int
	userAgent  string
}

// NewPageEnricher creates a page enricher from configuration
func NewPageEnricher(cfg model.SearchConfig, httpCfg model.HTTPConfig) *PageEnricher {
	return &PageEnricher{
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
			},
		},
		robots:     util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout),
		limiter:    ratelimit.NewDomainLimiter(cfg.PageRPS, cfg.PageBurst),
		maxBytes:   httpCfg.MaxBodyBytes,
		maxTextLen: cfg.MaxSourceTextLen,
		userAgent:  httpCfg.UserAgent,
	}
}

// Enrich fetches page text for sources that came back without any.
// Best-effort: failures leave the source text empty.
func (e *PageEnricher) Enrich(ctx context.Context, sources []model.Source) {
	for i := range sources {
		if sources[i].Text != "" {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		if text, ok := e.fetchText(ctx, sources[i].URL); ok {
			sources[i].Text = Truncate(text, e.maxTextLen)
		}
	}
}

func (e *PageEnricher) fetchText(ctx context.Context, rawURL string) (string, bool) {
	if !e.robots.IsAllowed(ctx, rawURL) {
		return "", false
	}
	if err := e.limiter.Wait(ctx, rawURL); err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", false
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBytes))
	if err != nil {
		return "", false
	}

	text := visibleText(string(body))
	if text == "" {
		return "", false
	}
	return text, true
}

// visibleText extracts text nodes from HTML, skipping scripts and styles
func visibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return ""
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String())
}
