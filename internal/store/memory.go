package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/nvandessel/auralie/internal/models"
)

// MemoryResultStore implements ResultStore for testing and development.
// Results are stored as encoded snapshots, so callers cannot mutate what
// was saved.
type MemoryResultStore struct {
	mu      sync.RWMutex
	results map[string][]byte
	saves   map[string]int
}

// NewMemoryResultStore creates an empty in-memory store.
func NewMemoryResultStore() *MemoryResultStore {
	return &MemoryResultStore{
		results: make(map[string][]byte),
		saves:   make(map[string]int),
	}
}

// Save stores a snapshot of result.
func (s *MemoryResultStore) Save(ctx context.Context, result *models.SimulationResult) error {
	if err := ValidateResult(result); err != nil {
		return fmt.Errorf("invalid result: %w", err)
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result %s: %w", result.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = data
	s.saves[result.ID]++
	return nil
}

// Get returns the latest snapshot saved under id.
func (s *MemoryResultStore) Get(ctx context.Context, id string) (*models.SimulationResult, error) {
	s.mu.RLock()
	data, ok := s.results[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("result %s: %w", id, ErrNotFound)
	}
	var r models.SimulationResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode result %s: %w", id, err)
	}
	return &r, nil
}

// List returns summaries of all stored results.
func (s *MemoryResultStore) List(ctx context.Context) ([]models.Summary, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.results))
	for id := range s.results {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	out := make([]models.Summary, 0, len(ids))
	for _, id := range ids {
		r, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, r.Summarize())
	}
	sortSummaries(out)
	return out, nil
}

// SaveCount reports how many times a result with id was saved.
func (s *MemoryResultStore) SaveCount(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves[id]
}

// Close is a no-op.
func (s *MemoryResultStore) Close() error { return nil }

// MemoryProfileStore implements ProfileStore over a fixed set of profiles.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

// NewMemoryProfileStore creates a store holding profiles. Each profile is
// normalized so that its ID is populated.
func NewMemoryProfileStore(profiles ...*models.Profile) *MemoryProfileStore {
	s := &MemoryProfileStore{profiles: make(map[string]*models.Profile, len(profiles))}
	for _, p := range profiles {
		s.Put(p)
	}
	return s
}

// Put adds or replaces a profile.
func (s *MemoryProfileStore) Put(p *models.Profile) {
	cp := *p
	cp.Normalize()
	s.mu.Lock()
	s.profiles[cp.ID] = &cp
	s.mu.Unlock()
}

// Get returns a copy of the profile with id.
func (s *MemoryProfileStore) Get(ctx context.Context, id string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

// List returns copies of all profiles ordered by ID.
func (s *MemoryProfileStore) List(ctx context.Context) ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
