// internal/emi/store.go
package emi

import (
	"context"
	"sync"
)

// Store keeps calculation history. Records are append-only.
type Store interface {
	Append(ctx context.Context, calc Calculation) error
	ByLead(ctx context.Context, leadID string) ([]Calculation, error)
}

// MemoryStore is the in-process history backend.
type MemoryStore struct {
	mu     sync.RWMutex
	byLead map[string][]Calculation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byLead: make(map[string][]Calculation)}
}

func (s *MemoryStore) Append(_ context.Context, calc Calculation) error {
	s.mu.Lock()
	s.byLead[calc.LeadID] = append(s.byLead[calc.LeadID], calc)
	s.mu.Unlock()
	return nil
}

// ByLead returns the lead's calculations newest first. Unknown leads get an
// empty slice.
func (s *MemoryStore) ByLead(_ context.Context, leadID string) ([]Calculation, error) {
	s.mu.RLock()
	stored := s.byLead[leadID]
	out := make([]Calculation, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	s.mu.RUnlock()
	return out, nil
}
