package rank

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/claimlens/claimlens/internal/credibility"
	"github.com/claimlens/claimlens/internal/model"
)

// pairProvider returns preset vectors keyed by text and counts calls
type pairProvider struct {
	vectors map[string][]float64
	calls   int32
	failOn  string
}

func (p *pairProvider) Name() string { return "pair/test" }

func (p *pairProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	atomic.AddInt32(&p.calls, 1)
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if text == p.failOn {
			return nil, errors.New("embedding failed for " + text)
		}
		v, ok := p.vectors[text]
		if !ok {
			v = []float64{1, 0}
		}
		out[i] = v
	}
	return out, nil
}

func f(v float64) *float64 { return &v }

func emptyScorer() *credibility.Scorer {
	return credibility.NewScorer(credibility.NewStoreFromDataset(nil))
}

func TestSimilarity_IdenticalTexts(t *testing.T) {
	provider := &pairProvider{vectors: map[string][]float64{
		"the earth is round": {0.6, 0.8},
	}}

	sim, err := Similarity(context.Background(), provider, "the earth is round", "the earth is round")
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}
	if math.Abs(sim-50) > 1e-9 {
		t.Errorf("Expected similarity 50 for identical texts, got %v", sim)
	}
}

func TestSimilarity_BlankInputsNoProviderCall(t *testing.T) {
	provider := &pairProvider{}

	for _, pair := range [][2]string{
		{"", "some title"},
		{"some claim", ""},
		{"   ", "some title"},
		{"some claim", "  \t "},
	} {
		sim, err := Similarity(context.Background(), provider, pair[0], pair[1])
		if err != nil {
			t.Fatalf("Similarity(%q, %q) failed: %v", pair[0], pair[1], err)
		}
		if sim != 0 {
			t.Errorf("Similarity(%q, %q): expected 0, got %v", pair[0], pair[1], sim)
		}
	}

	if provider.calls != 0 {
		t.Errorf("Expected no provider calls for blank inputs, got %d", provider.calls)
	}
}

func TestSimilarity_NegativeDotClampsToZero(t *testing.T) {
	provider := &pairProvider{vectors: map[string][]float64{
		"claim text here": {1, 0},
		"opposite title":  {-1, 0},
	}}

	sim, err := Similarity(context.Background(), provider, "claim text here", "opposite title")
	if err != nil {
		t.Fatal(err)
	}
	if sim != 0 {
		t.Errorf("Expected clamp to 0 for negative cosine, got %v", sim)
	}
}

func TestSimilarity_DriftPastOneClampsToFifty(t *testing.T) {
	// Slightly over unit length to simulate floating-point drift
	provider := &pairProvider{vectors: map[string][]float64{
		"claim text here": {1.0000001, 0},
		"matching title":  {1.0000001, 0},
	}}

	sim, err := Similarity(context.Background(), provider, "claim text here", "matching title")
	if err != nil {
		t.Fatal(err)
	}
	if sim != 50 {
		t.Errorf("Expected clamp to 50, got %v", sim)
	}
}

func TestRank_DescendingStableOrder(t *testing.T) {
	// Three results engineered to totals [30, 30, 45]: the 45 comes first,
	// the equal 30s keep retrieval order
	provider := &pairProvider{vectors: map[string][]float64{
		"the claim":  {1, 0},
		"title five": {0.1, 0}, // dot 0.1 -> sim 5
		"title same": {0.1, 0},
		"title best": {0.4, 0}, // dot 0.4 -> sim 20
	}}

	scorer := credibility.NewScorer(credibility.NewStoreFromDataset(nil)) // quality 25 for all
	agg := NewAggregator(provider, scorer, 2)

	results := []model.SearchResult{
		{Title: "title five", URL: "https://a.example/1"},
		{Title: "title same", URL: "https://b.example/2"},
		{Title: "title best", URL: "https://c.example/3"},
	}

	scored := agg.Rank(context.Background(), "the claim", results)
	if len(scored) != 3 {
		t.Fatalf("Expected 3 scored results, got %d", len(scored))
	}

	if scored[0].Result.Title != "title best" {
		t.Errorf("Expected highest total first, got %q", scored[0].Result.Title)
	}
	if math.Abs(scored[0].TotalScore-45) > 1e-9 {
		t.Errorf("Expected top total 45, got %v", scored[0].TotalScore)
	}

	// Tie: original retrieval order preserved
	if scored[1].Result.Title != "title five" || scored[2].Result.Title != "title same" {
		t.Errorf("Tied results reordered: %q then %q", scored[1].Result.Title, scored[2].Result.Title)
	}
	if scored[1].TotalScore != scored[2].TotalScore {
		t.Errorf("Expected tied totals, got %v and %v", scored[1].TotalScore, scored[2].TotalScore)
	}
}

func TestRank_EmptyResults(t *testing.T) {
	agg := NewAggregator(&pairProvider{}, emptyScorer(), 2)
	scored := agg.Rank(context.Background(), "the claim", nil)
	if len(scored) != 0 {
		t.Errorf("Expected empty ranking, got %d", len(scored))
	}
}

func TestRank_ResultWithoutTitleAndURLStillScored(t *testing.T) {
	provider := &pairProvider{}
	agg := NewAggregator(provider, emptyScorer(), 2)

	scored := agg.Rank(context.Background(), "the claim", []model.SearchResult{
		{Description: "bare result"},
	})
	if len(scored) != 1 {
		t.Fatalf("Expected bare result to stay in ranking, got %d results", len(scored))
	}
	if scored[0].QualityScore != 25 {
		t.Errorf("Expected default quality 25, got %v", scored[0].QualityScore)
	}
	if !scored[0].DefaultQuality {
		t.Error("Expected DefaultQuality flag for missing URL")
	}
	if scored[0].SimilarityScore != 0 {
		t.Errorf("Expected similarity 0 for missing title, got %v", scored[0].SimilarityScore)
	}
	if scored[0].TotalScore != 25 {
		t.Errorf("Expected total 25, got %v", scored[0].TotalScore)
	}
	if provider.calls != 0 {
		t.Errorf("Expected no provider call for missing title, got %d", provider.calls)
	}
}

func TestRank_PerResultFailureDoesNotAbort(t *testing.T) {
	provider := &pairProvider{
		vectors: map[string][]float64{
			"the claim":  {1, 0},
			"good title": {1, 0},
		},
		failOn: "bad title",
	}
	agg := NewAggregator(provider, emptyScorer(), 2)

	scored := agg.Rank(context.Background(), "the claim", []model.SearchResult{
		{Title: "bad title", URL: "https://bad.example/"},
		{Title: "good title", URL: "https://good.example/"},
	})
	if len(scored) != 2 {
		t.Fatalf("Expected both results scored, got %d", len(scored))
	}

	// Failed result: similarity 0, error recorded, still ranked
	var failed, ok *model.ScoredResult
	for i := range scored {
		if scored[i].Result.Title == "bad title" {
			failed = &scored[i]
		} else {
			ok = &scored[i]
		}
	}
	if failed == nil || ok == nil {
		t.Fatal("Expected both results present in ranking")
	}
	if failed.Error == "" {
		t.Error("Expected error recorded on failed result")
	}
	if failed.SimilarityScore != 0 || failed.TotalScore != 25 {
		t.Errorf("Expected failed result scored quality-only, got sim=%v total=%v", failed.SimilarityScore, failed.TotalScore)
	}
	if ok.Error != "" {
		t.Errorf("Unexpected error on healthy result: %s", ok.Error)
	}
	if math.Abs(ok.TotalScore-75) > 1e-9 {
		t.Errorf("Expected healthy result total 75, got %v", ok.TotalScore)
	}
}

func TestRank_QualityBlendsWithDataset(t *testing.T) {
	dataset := map[string]model.CredibilityEntry{
		"trusted.example": {Credibility: &model.CredibilityRatings{
			AdFontes: &model.Rating{Bias: f(0), Credibility: f(64)},
		}},
	}
	provider := &pairProvider{vectors: map[string][]float64{
		"the claim": {1, 0},
		"any title": {0, 1}, // orthogonal -> sim 0
	}}
	agg := NewAggregator(provider, credibility.NewScorer(credibility.NewStoreFromDataset(dataset)), 2)

	scored := agg.Rank(context.Background(), "the claim", []model.SearchResult{
		{Title: "any title", URL: "https://trusted.example/story"},
		{Title: "any title", URL: "https://unknown.example/story"},
	})

	if scored[0].Result.URL != "https://trusted.example/story" {
		t.Errorf("Expected trusted domain ranked first, got %q", scored[0].Result.URL)
	}
	if scored[0].QualityScore != 50 || scored[0].DefaultQuality {
		t.Errorf("Expected computed quality 50, got %v (default=%v)", scored[0].QualityScore, scored[0].DefaultQuality)
	}
	if scored[1].QualityScore != 25 || !scored[1].DefaultQuality {
		t.Errorf("Expected default quality 25, got %v (default=%v)", scored[1].QualityScore, scored[1].DefaultQuality)
	}
}
