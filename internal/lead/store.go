// internal/lead/store.go
package lead

import (
	"context"
	"sync"
	"time"

	stderrors "leadgen-backend/internal/common/errors"
)

// Store is the persistence capability for leads. Update must serialize
// mutations per lead id; operations on different leads must not block each
// other. A mutate callback that returns an error must leave the stored lead
// untouched.
type Store interface {
	Create(ctx context.Context, l *Lead) error
	Get(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, id string, mutate func(*Lead) error) (*Lead, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps leads in process memory. Each lead carries its own mutex,
// so concurrent updates to different leads proceed independently while
// updates to one lead are serialized.
type MemoryStore struct {
	mu    sync.RWMutex
	leads map[string]*memoryEntry
}

type memoryEntry struct {
	mu   sync.Mutex
	lead *Lead
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{leads: make(map[string]*memoryEntry)}
}

func (s *MemoryStore) Create(_ context.Context, l *Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[l.ID] = &memoryEntry{lead: l.clone()}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Lead, error) {
	s.mu.RLock()
	entry, ok := s.leads[id]
	s.mu.RUnlock()
	if !ok {
		return nil, stderrors.NewLeadNotFoundError(id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.lead.clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, mutate func(*Lead) error) (*Lead, error) {
	s.mu.RLock()
	entry, ok := s.leads[id]
	s.mu.RUnlock()
	if !ok {
		return nil, stderrors.NewLeadNotFoundError(id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// Mutate a copy so a failed callback leaves the record untouched.
	working := entry.lead.clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now().UTC()
	entry.lead = working
	return working.clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[id]; !ok {
		return stderrors.NewLeadNotFoundError(id)
	}
	delete(s.leads, id)
	return nil
}
