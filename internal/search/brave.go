// Package search retrieves candidate corroborating web sources for a claim.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/claimlens/claimlens/internal/model"
)

// Searcher is the retrieval boundary the pipeline depends on
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// BraveClient queries the Brave web-search API
type BraveClient struct {
	baseURL    string
	apiKey     string
	maxResults int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// braveResponse mirrors the slice of the Brave API response this client
// consumes
type braveResponse struct {
	Web *struct {
		Results []model.SearchResult `json:"results"`
	} `json:"web"`
}

// NewBraveClient creates a Brave search client. The rate limiter keeps the
// client inside the subscription tier's request budget.
func NewBraveClient(cfg model.SearchConfig, httpCfg model.HTTPConfig) (*BraveClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Brave API key is required (set BRAVE_API_KEY)")
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.search.brave.com/res/v1/web/search"
	}

	return &BraveClient{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		httpClient: &http.Client{
			Timeout: httpCfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

// Search runs one web search for the query and returns the normalized
// results. A non-2xx response or transport failure is a hard error for the
// query; there is no internal retry.
func (c *BraveClient) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4_000_000))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(body))
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return nil, fmt.Errorf("Brave API error: %d %s - %s", resp.StatusCode, http.StatusText(resp.StatusCode), detail)
	}

	var parsed braveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if parsed.Web == nil || parsed.Web.Results == nil {
		return []model.SearchResult{}, nil
	}

	results := parsed.Web.Results
	if c.maxResults > 0 && len(results) > c.maxResults {
		results = results[:c.maxResults]
	}
	return results, nil
}
