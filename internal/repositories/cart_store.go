package repositories

import (
	"sync"

	"undangan/internal/models"
)

// CartStore persists session carts. Each session ID is an isolated cart;
// a session that has never saved anything reads back as an empty cart, not
// an error. Implementations own the cart lifecycle (expiry included).
type CartStore interface {
	Get(sessionID string) (models.Cart, error)
	Save(sessionID string, cart models.Cart) error
	Clear(sessionID string) error
}

// MemoryCartStore is an in-memory CartStore for tests and single-node
// development runs. Carts live until Clear or process exit.
type MemoryCartStore struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMemoryCartStore creates a new instance of MemoryCartStore.
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts: make(map[string]models.Cart),
	}
}

// Get returns a copy of the session's cart, or an empty cart if none exists.
func (s *MemoryCartStore) Get(sessionID string) (models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.carts[sessionID]
	cart := make(models.Cart, len(stored))
	if ok {
		for productID, quantity := range stored {
			cart[productID] = quantity
		}
	}
	return cart, nil
}

// Save stores the cart for the session, replacing any previous contents.
func (s *MemoryCartStore) Save(sessionID string, cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(models.Cart, len(cart))
	for productID, quantity := range cart {
		stored[productID] = quantity
	}
	s.carts[sessionID] = stored
	return nil
}

// Clear removes the session's cart entirely.
func (s *MemoryCartStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}
