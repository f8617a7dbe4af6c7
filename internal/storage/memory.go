package storage

import (
	"sync"

	"bankpulse"
)

// MemoryStorage keeps results in memory. It backs tests and dry runs where
// no database is configured.
type MemoryStorage struct {
	mu       sync.RWMutex
	analyses map[string]bankpulse.ReviewAnalysis
	groups   map[string]bankpulse.GroupThemeAnalysis
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		analyses: make(map[string]bankpulse.ReviewAnalysis),
		groups:   make(map[string]bankpulse.GroupThemeAnalysis),
	}
}

func (s *MemoryStorage) SaveAnalyses(analyses []bankpulse.ReviewAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range analyses {
		s.analyses[a.Review.ID] = a
	}
	return nil
}

func (s *MemoryStorage) SaveGroupSummaries(groups map[string]bankpulse.GroupThemeAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for group, analysis := range groups {
		s.groups[group] = analysis
	}
	return nil
}

// Analysis returns a stored per-review result.
func (s *MemoryStorage) Analysis(reviewID string) (bankpulse.ReviewAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analyses[reviewID]
	return a, ok
}

// GroupSummary returns a stored per-group analysis.
func (s *MemoryStorage) GroupSummary(group string) (bankpulse.GroupThemeAnalysis, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.groups[group]
	return g, ok
}

func (s *MemoryStorage) Close() error {
	return nil
}
