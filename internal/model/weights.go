package model

// ClassifierWeights holds the precomputed logistic-regression weights used
// for claim classification. Loaded once and shared read-only.
type ClassifierWeights struct {
	Coefficients []float64 `json:"coefficients"` // Length D, matching the embedding dimension
	Intercept    float64   `json:"intercept"`
}

// WeightsFile matches the JSON written by the offline training script:
// a 2D coef matrix (one row for binary classification) and an intercept
// vector of length one.
type WeightsFile struct {
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
	Classes   []string    `json:"classes,omitempty"`
}
