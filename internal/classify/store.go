package classify

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/claimlens/claimlens/internal/model"
)

// Store lazily loads classifier weights from disk exactly once and shares
// the immutable result across all callers. The sync.Once is the single-flight
// guard: concurrent first loads wait for the one in-flight read instead of
// re-reading the file.
type Store struct {
	path string

	once    sync.Once
	weights *model.ClassifierWeights
	err     error
}

// NewStore creates a weights store for the given JSON file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewStoreFromWeights creates a store with preloaded weights (used in tests
// and by callers that already hold the weights)
func NewStoreFromWeights(w *model.ClassifierWeights) *Store {
	s := &Store{}
	s.once.Do(func() {})
	s.weights = w
	return s
}

// Load returns the cached weights, reading and validating the file on first
// use. All failures are ConfigError: weights are supplied input data and a
// bad file must surface to the caller, never default.
func (s *Store) Load() (*model.ClassifierWeights, error) {
	s.once.Do(func() {
		s.weights, s.err = readWeights(s.path)
	})
	if s.err != nil {
		return nil, s.err
	}
	if s.weights == nil {
		return nil, &ConfigError{Reason: "weights not loaded"}
	}
	return s.weights, nil
}

// readWeights reads the training script's JSON export: a coef matrix with a
// single row and an intercept vector with a single element.
func readWeights(path string) (*model.ClassifierWeights, error) {
	if path == "" {
		return nil, &ConfigError{Reason: "weights path not configured"}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Reason: "read weights file: " + err.Error()}
	}

	var file model.WeightsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, &ConfigError{Reason: "parse weights file: " + err.Error()}
	}

	if len(file.Coef) == 0 || len(file.Coef[0]) == 0 {
		return nil, &ConfigError{Reason: "weights file missing coef"}
	}
	if len(file.Intercept) == 0 {
		return nil, &ConfigError{Reason: "weights file missing intercept"}
	}

	return &model.ClassifierWeights{
		Coefficients: file.Coef[0],
		Intercept:    file.Intercept[0],
	}, nil
}
