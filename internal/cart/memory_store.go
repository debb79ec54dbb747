package cart

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store, used when no Redis is configured.
type MemoryStore struct {
	carts map[uint]Cart
	mu    sync.RWMutex
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[uint]Cart),
	}
}

// Get returns a copy of the stored cart.
func (s *MemoryStore) Get(_ context.Context, userID uint) (*Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[userID]
	if !ok {
		return New(userID), nil
	}
	c := stored
	c.Items = append([]Item{}, stored.Items...)
	return &c, nil
}

// Save stores a copy of c.
func (s *MemoryStore) Save(_ context.Context, c *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *c
	stored.Items = append([]Item{}, c.Items...)
	stored.UpdatedAt = time.Now()
	s.carts[c.UserID] = stored
	return nil
}

// Delete removes the user's cart.
func (s *MemoryStore) Delete(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
