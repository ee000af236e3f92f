package model

import "time"

// SearchResult is a single web result returned by the retrieval client.
// Any field may be empty; a result with neither title nor url is still scored.
type SearchResult struct {
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// ScoredResult pairs a search result with its scoring breakdown.
// Immutable once produced by the aggregator.
type ScoredResult struct {
	Result          SearchResult `json:"result"`
	QualityScore    float64      `json:"quality_score"`    // 0-50, domain credibility
	SimilarityScore float64      `json:"similarity_score"` // 0-50, claim/title semantic closeness
	TotalScore      float64      `json:"total_score"`      // 0-100, quality + similarity

	// DefaultQuality is true when the quality score is the fallback 25
	// (unknown domain, unparseable url) rather than a computed value.
	DefaultQuality bool `json:"default_quality,omitempty"`

	// Error records a per-result similarity failure. The result stays in the
	// ranking with a zero similarity contribution.
	Error string `json:"error,omitempty"`
}

// CheckResult contains a link accessibility check for a scored result
type CheckResult struct {
	URL          string `json:"url"`
	IsAccessible bool   `json:"is_accessible"`
	StatusCode   int    `json:"status_code,omitempty"`
	RobotsDenied bool   `json:"robots_denied,omitempty"` // robots.txt disallowed the probe
	RedirectURL  string `json:"redirect_url,omitempty"`
	Error        string `json:"error,omitempty"`
}

// ClaimReport is the complete output of checking one claim against the web
type ClaimReport struct {
	Claim     string    `json:"claim"`
	CheckedAt time.Time `json:"checked_at"`

	Results    []ScoredResult `json:"results"`               // Best-first
	LinkChecks []CheckResult  `json:"link_checks,omitempty"` // Optional, never affects scores
}

// PostReport is the output of claim extraction over one post's text
type PostReport struct {
	Source      string    `json:"source,omitempty"` // URL or file the text came from, if any
	ExtractedAt time.Time `json:"extracted_at"`
	Clauses     []Clause  `json:"clauses"`
	Claims      []Clause  `json:"claims"`
}
