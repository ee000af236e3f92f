// Package embed provides the text-embedding boundary used by claim
// classification and similarity scoring. Providers return one fixed-dimension,
// L2-normalized vector per input text and must fail explicitly instead of
// returning zero vectors.
package embed

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Provider defines the interface for embedding providers
type Provider interface {
	// Name returns a stable provider identifier (includes the model name)
	Name() string

	// Embed returns one vector per input text, in input order.
	// All vectors share the provider's fixed dimension and are unit length.
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// NewProvider creates an embedding provider from configuration
func NewProvider(cfg model.EmbeddingConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg)
	case "ollama":
		return NewOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama)", cfg.Provider)
	}
}

// l2Normalize scales a vector to unit length in place.
// A zero vector is left unchanged.
func l2Normalize(v []float64) {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sum)
	for i := range v {
		v[i] *= inv
	}
}
