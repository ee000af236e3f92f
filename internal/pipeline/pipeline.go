// Package pipeline wires segmentation, classification, retrieval and ranking
// into the two user-facing operations: extracting claims from post text and
// checking one claim against the web.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claimlens/claimlens/internal/cache"
	"github.com/claimlens/claimlens/internal/classify"
	"github.com/claimlens/claimlens/internal/credibility"
	"github.com/claimlens/claimlens/internal/embed"
	"github.com/claimlens/claimlens/internal/extract"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/rank"
	"github.com/claimlens/claimlens/internal/search"
	"github.com/claimlens/claimlens/internal/segment"
	"github.com/claimlens/claimlens/internal/validate"
)

// Pipeline orchestrates the claim-extraction and source-scoring flow
type Pipeline struct {
	classifier *classify.Classifier
	searcher   search.Searcher
	aggregator *rank.Aggregator
	checker    *validate.Checker
	fetcher    *Fetcher
	renderer   *Renderer
	config     *model.Config
}

// NewPipeline creates a pipeline from configuration. The search client is
// only constructed when an API key is present so that claim extraction works
// without one.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	provider, err := embed.NewProvider(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	ttl := cfg.Embedding.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	cached := embed.NewCachedProvider(provider, cache.NewMemoryCache(ttl, 2*ttl), ttl)

	weights := classify.NewStore(ExpandHome(cfg.Classifier.WeightsPath))
	credStore := credibility.NewStore(ExpandHome(cfg.Credibility.DatasetPath))

	var searcher search.Searcher
	if cfg.Search.APIKey != "" {
		client, err := search.NewBraveClient(cfg.Search, cfg.HTTP)
		if err != nil {
			return nil, fmt.Errorf("search client: %w", err)
		}
		searcher = client
	}

	return &Pipeline{
		classifier: classify.NewClassifier(cached, weights),
		searcher:   searcher,
		aggregator: rank.NewAggregator(cached, credibility.NewScorer(credStore), cfg.Concurrency.ScoreWorkers),
		checker:    validate.NewChecker(cfg.HTTP, cfg.Concurrency.CheckWorkers),
		fetcher:    NewFetcher(cfg.HTTP),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
	}, nil
}

// ExtractClaims segments post text into clauses and classifies them.
// A classification error is distinct from "no claims found": the caller gets
// an error, never a silently empty report.
func (p *Pipeline) ExtractClaims(ctx context.Context, text, source string) (*model.PostReport, error) {
	clauses := segment.Segment(text)

	claims, err := p.classifier.Classify(ctx, clauses)
	if err != nil {
		return nil, fmt.Errorf("classify clauses: %w", err)
	}

	return &model.PostReport{
		Source:      source,
		ExtractedAt: time.Now().UTC(),
		Clauses:     clauses,
		Claims:      claims,
	}, nil
}

// CheckClaim searches the web for a claim and ranks the results best-first.
// withChecks additionally probes each result link; probes never affect the
// ranking.
func (p *Pipeline) CheckClaim(ctx context.Context, claim string, withChecks bool) (*model.ClaimReport, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, fmt.Errorf("empty claim")
	}
	if p.searcher == nil {
		return nil, fmt.Errorf("search not configured (set BRAVE_API_KEY)")
	}

	results, err := p.searcher.Search(ctx, claim)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	scored := p.aggregator.Rank(ctx, claim, results)

	report := &model.ClaimReport{
		Claim:     claim,
		CheckedAt: time.Now().UTC(),
		Results:   scored,
	}

	if withChecks {
		report.LinkChecks = p.checker.Check(ctx, scored)
	}

	return report, nil
}

// FetchText fetches a page and extracts its visible text for segmentation
func (p *Pipeline) FetchText(ctx context.Context, url string) (string, error) {
	fetched, err := p.fetcher.FetchWithRetry(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}

	text, err := extract.Text(fetched.HTML)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return text, nil
}

// Renderer exposes the report renderer for the CLI layer
func (p *Pipeline) Renderer() *Renderer {
	return p.renderer
}

// ExpandHome resolves a leading ~ in configured paths
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
