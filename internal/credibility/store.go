package credibility

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/claimlens/claimlens/internal/model"
)

// Store lazily loads the credibility dataset once per process. Unlike
// classifier weights, a missing or broken dataset is not an error: every
// lookup degrades to the default score instead.
type Store struct {
	path string

	once    sync.Once
	dataset model.CredibilityDataset
}

// NewStore creates a dataset store for the given JSON file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewStoreFromDataset creates a store with a preloaded dataset
func NewStoreFromDataset(ds model.CredibilityDataset) *Store {
	s := &Store{}
	s.once.Do(func() {})
	if ds == nil {
		ds = model.CredibilityDataset{}
	}
	s.dataset = ds
	return s
}

// Load returns the cached dataset, reading the file on first use. Load
// failure yields an empty dataset; the sync.Once guarantees a single read
// even under concurrent first calls.
func (s *Store) Load() model.CredibilityDataset {
	s.once.Do(func() {
		s.dataset = readDataset(s.path)
	})
	return s.dataset
}

func readDataset(path string) model.CredibilityDataset {
	if path == "" {
		return model.CredibilityDataset{}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return model.CredibilityDataset{}
	}

	var ds model.CredibilityDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return model.CredibilityDataset{}
	}
	if ds == nil {
		ds = model.CredibilityDataset{}
	}
	return ds
}
