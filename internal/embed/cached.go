package embed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/claimlens/claimlens/internal/cache"
)

// CachedProvider wraps a Provider with a process-lifetime vector cache.
// Repeated texts (the same claim scored against many results, duplicate
// titles) skip the embedding API entirely.
type CachedProvider struct {
	inner Provider
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedProvider wraps a provider with the given cache
func NewCachedProvider(inner Provider, c cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: c,
		ttl:   ttl,
	}
}

// Name returns the underlying provider identifier
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// Embed serves what it can from the cache and batches all misses into a
// single call to the underlying provider
func (p *CachedProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	vectors := make([][]float64, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		if v, ok := p.lookup(text); ok {
			vectors[i] = v
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	fetched, err := p.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(fetched) != len(missing) {
		return nil, fmt.Errorf("embedding cache: got %d vectors for %d inputs", len(fetched), len(missing))
	}

	for j, v := range fetched {
		vectors[missingIdx[j]] = v
		p.store(missing[j], v)
	}

	return vectors, nil
}

func (p *CachedProvider) key(text string) string {
	return cache.Key(p.inner.Name() + "|" + text)
}

func (p *CachedProvider) lookup(text string) ([]float64, bool) {
	raw, ok := p.cache.Get(p.key(text))
	if !ok {
		return nil, false
	}
	var v []float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

func (p *CachedProvider) store(text string, v []float64) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = p.cache.Set(p.key(text), raw, p.ttl)
}
