package fit

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrModelNotLoaded is returned when inference is requested before any
// artifact has been published.
var ErrModelNotLoaded = errors.New("fit model not loaded")

// Store holds the currently published model. Publication swaps the whole
// artifact pointer; readers always see either the old or the new model,
// never a partially updated one.
type Store struct {
	current atomic.Pointer[Artifact]
}

func NewStore() *Store {
	return &Store{}
}

// Publish replaces the served model.
func (s *Store) Publish(art *Artifact) {
	s.current.Store(art)
}

// Current returns the published artifact, or nil.
func (s *Store) Current() *Artifact {
	if s == nil {
		return nil
	}
	return s.current.Load()
}

// Predict runs inference on an engineered feature vector.
func (s *Store) Predict(features []float64) (float64, error) {
	art := s.Current()
	if art == nil || art.Forest == nil {
		return 0, ErrModelNotLoaded
	}
	if len(features) != art.Forest.Dims {
		return 0, fmt.Errorf("feature vector has %d dims, model expects %d", len(features), art.Forest.Dims)
	}
	return art.Forest.Predict(features), nil
}
