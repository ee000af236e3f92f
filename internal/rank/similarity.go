// Package rank scores and orders retrieved web results for a claim by
// blending domain credibility with claim/title semantic similarity.
package rank

import (
	"context"
	"fmt"
	"strings"

	"github.com/claimlens/claimlens/internal/embed"
)

// MaxSimilarity is the ceiling of the similarity contribution
const MaxSimilarity = 50.0

// Similarity returns the 0-50 semantic similarity between a claim and a
// result title. A blank claim or title scores 0 without touching the
// embedding provider; that is a legitimate state (results often have no
// title), not an error.
func Similarity(ctx context.Context, provider embed.Provider, claim, title string) (float64, error) {
	claim = strings.TrimSpace(claim)
	title = strings.TrimSpace(title)
	if claim == "" || title == "" {
		return 0, nil
	}

	// One batched call for the pair
	vectors, err := provider.Embed(ctx, []string{claim, title})
	if err != nil {
		return 0, fmt.Errorf("embed claim/title: %w", err)
	}
	if len(vectors) != 2 {
		return 0, fmt.Errorf("embed claim/title: got %d vectors, expected 2", len(vectors))
	}

	// Both vectors are unit length, so cosine is the plain dot product.
	// Clamp guards against floating-point drift past the bound.
	sim := dot(vectors[0], vectors[1])
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}

	score := sim * MaxSimilarity
	if score > MaxSimilarity {
		score = MaxSimilarity
	}
	return score, nil
}

// dot computes the dot product over the shared prefix; missing coordinates
// count as 0
func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
