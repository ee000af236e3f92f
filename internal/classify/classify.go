// Package classify decides which clauses are factual claims using a
// pretrained logistic-regression model over sentence embeddings.
package classify

import (
	"context"
	"fmt"

	"github.com/claimlens/claimlens/internal/embed"
	"github.com/claimlens/claimlens/internal/model"
)

// ConfigError indicates malformed or missing classifier weights.
// It is fatal to the classification call and never silently defaulted,
// so callers can render it differently from a provider failure.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "classifier configuration: " + e.Reason
}

// Classifier applies the linear model to clause embeddings
type Classifier struct {
	provider embed.Provider
	weights  *Store
}

// NewClassifier creates a classifier over the given provider and weights store
func NewClassifier(provider embed.Provider, weights *Store) *Classifier {
	return &Classifier{
		provider: provider,
		weights:  weights,
	}
}

// Classify returns the subset of clauses judged to be factual claims, in
// input order. Empty input returns immediately without touching the
// embedding provider. Embedding failures propagate; zero vectors are never
// substituted.
func (c *Classifier) Classify(ctx context.Context, clauses []model.Clause) ([]model.Clause, error) {
	if len(clauses) == 0 {
		return []model.Clause{}, nil
	}

	weights, err := c.weights.Load()
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(clauses))
	for i, clause := range clauses {
		texts[i] = clause.Text
	}

	// One batched call for all clauses
	embeddings, err := c.provider.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed clauses: %w", err)
	}
	if len(embeddings) != len(clauses) {
		return nil, fmt.Errorf("embed clauses: got %d vectors for %d clauses", len(embeddings), len(clauses))
	}

	claims := []model.Clause{}
	for i, clause := range clauses {
		if Score(weights, embeddings[i]) >= 0 {
			claims = append(claims, clause)
		}
	}
	return claims, nil
}

// Score computes the linear decision value intercept + coef·embedding.
// Missing embedding coordinates count as 0. A non-negative score marks a
// claim (logistic-regression threshold at probability 0.5; no sigmoid
// needed for the decision).
func Score(weights *model.ClassifierWeights, embedding []float64) float64 {
	s := weights.Intercept
	n := len(weights.Coefficients)
	if len(embedding) < n {
		n = len(embedding)
	}
	for j := 0; j < n; j++ {
		s += weights.Coefficients[j] * embedding[j]
	}
	return s
}
