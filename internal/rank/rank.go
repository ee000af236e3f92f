package rank

import (
	"context"
	"sort"
	"sync"

	"github.com/claimlens/claimlens/internal/credibility"
	"github.com/claimlens/claimlens/internal/embed"
	"github.com/claimlens/claimlens/internal/model"
)

// Aggregator scores search results for a claim and produces a stable
// best-first ranking
type Aggregator struct {
	provider   embed.Provider
	quality    *credibility.Scorer
	maxWorkers int
}

// NewAggregator creates an aggregator. maxWorkers bounds the concurrent
// similarity scoring fan-out.
func NewAggregator(provider embed.Provider, quality *credibility.Scorer, maxWorkers int) *Aggregator {
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	return &Aggregator{
		provider:   provider,
		quality:    quality,
		maxWorkers: maxWorkers,
	}
}

// Rank scores every result independently and sorts descending by total
// score. Similarity calls run concurrently and are joined before sorting, so
// latency tracks the slowest embedding call rather than their sum. A
// similarity failure is recorded on that result (contributing 0) and never
// aborts the rest. Ties keep their original retrieval order.
func (a *Aggregator) Rank(ctx context.Context, claim string, results []model.SearchResult) []model.ScoredResult {
	if len(results) == 0 {
		return []model.ScoredResult{}
	}

	scored := make([]model.ScoredResult, len(results))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, a.maxWorkers)

	for i, result := range results {
		wg.Add(1)
		go func(idx int, r model.SearchResult) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				scored[idx] = model.ScoredResult{
					Result: r,
					Error:  "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			scored[idx] = a.scoreSingle(ctx, claim, r)
		}(i, result)
	}

	wg.Wait()

	// Stable sort: equal totals keep retrieval order
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})

	return scored
}

// scoreSingle scores one result. Quality is a cheap synchronous dataset
// lookup; similarity involves the embedding round trip.
func (a *Aggregator) scoreSingle(ctx context.Context, claim string, r model.SearchResult) model.ScoredResult {
	quality, isDefault := a.quality.Quality(r.URL)

	similarity, err := Similarity(ctx, a.provider, claim, r.Title)
	scored := model.ScoredResult{
		Result:          r,
		QualityScore:    quality,
		SimilarityScore: similarity,
		TotalScore:      quality + similarity,
		DefaultQuality:  isDefault,
	}
	if err != nil {
		scored.SimilarityScore = 0
		scored.TotalScore = quality
		scored.Error = err.Error()
	}
	return scored
}
