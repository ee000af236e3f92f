package embed

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/claimlens/claimlens/internal/model"
)

// OpenAIProvider implements Provider using the OpenAI embeddings API
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIProvider creates a new OpenAI embedding provider
func NewOpenAIProvider(cfg model.EmbeddingConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	embModel := cfg.Model
	if embModel == "" {
		embModel = string(openai.SmallEmbedding3)
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   embModel,
		timeout: cfg.Timeout,
	}, nil
}

// Name returns the provider identifier
func (p *OpenAIProvider) Name() string {
	return "openai/" + p.model
}

// Embed requests embeddings for all texts in a single batched API call
func (p *OpenAIProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	timeout := p.timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateEmbeddings(ctxWithTimeout, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("OpenAI embeddings: got %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float64, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("OpenAI embeddings: vector index %d out of range", d.Index)
		}
		v := make([]float64, len(d.Embedding))
		for i, x := range d.Embedding {
			v[i] = float64(x)
		}
		// The API returns unit vectors already; renormalize to guard against
		// drift so downstream cosine stays a plain dot product.
		l2Normalize(v)
		vectors[d.Index] = v
	}

	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("OpenAI embeddings: missing vector for input %d", i)
		}
	}

	return vectors, nil
}
