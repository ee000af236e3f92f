package model

import "time"

// Config is the complete claimlens configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" json:"http"`
	Search      SearchConfig      `yaml:"search" json:"search"`
	Embedding   EmbeddingConfig   `yaml:"embedding" json:"embedding"`
	Classifier  ClassifierConfig  `yaml:"classifier" json:"classifier"`
	Credibility CredibilityConfig `yaml:"credibility" json:"credibility"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// HTTPConfig controls the outbound HTTP behavior shared by fetching and
// link checking
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent    string        `yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
}

// SearchConfig configures the Brave web-search client
type SearchConfig struct {
	BaseURL           string  `yaml:"base_url" json:"base_url"`
	APIKey            string  `yaml:"api_key,omitempty" json:"-"`
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
	MaxResults        int     `yaml:"max_results" json:"max_results"`
}

// EmbeddingConfig configures the embedding provider
type EmbeddingConfig struct {
	Provider string        `yaml:"provider" json:"provider"` // openai, ollama
	Model    string        `yaml:"model" json:"model"`
	APIKey   string        `yaml:"api_key,omitempty" json:"-"`
	BaseURL  string        `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
}

// ClassifierConfig locates the pretrained claim-classifier weights
type ClassifierConfig struct {
	WeightsPath string `yaml:"weights_path" json:"weights_path"`
}

// CredibilityConfig locates the domain credibility dataset
type CredibilityConfig struct {
	DatasetPath string `yaml:"dataset_path" json:"dataset_path"`
}

// ConcurrencyConfig bounds the concurrent work per request
type ConcurrencyConfig struct {
	ScoreWorkers int `yaml:"score_workers" json:"score_workers"` // Parallel similarity scoring
	CheckWorkers int `yaml:"check_workers" json:"check_workers"` // Parallel link checks
	BatchWorkers int `yaml:"batch_workers" json:"batch_workers"` // Parallel claims in batch mode
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Claimlens/0.1 (+https://github.com/claimlens/claimlens)",
			MaxBodyBytes: 2_000_000,
		},
		Search: SearchConfig{
			BaseURL:           "https://api.search.brave.com/res/v1/web/search",
			RequestsPerSecond: 1.0, // Brave free tier
			Burst:             1,
			MaxResults:        10,
		},
		Embedding: EmbeddingConfig{
			Provider: "openai",
			Model:    "text-embedding-3-small",
			Timeout:  30 * time.Second,
			CacheTTL: 15 * time.Minute,
		},
		Classifier: ClassifierConfig{
			WeightsPath: "~/.claimlens/claim_lr_weights.json",
		},
		Credibility: CredibilityConfig{
			DatasetPath: "~/.claimlens/credibility.json",
		},
		Concurrency: ConcurrencyConfig{
			ScoreWorkers: 5,
			CheckWorkers: 10,
			BatchWorkers: 3,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
