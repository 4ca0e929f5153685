package cart

import (
	"context"
	"sync"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// memoryStore keeps carts in process memory.
type memoryStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID][]model.CartItem
}

// NewMemoryStore creates a process-local cart store.
func NewMemoryStore() Store {
	return &memoryStore{
		carts: make(map[uuid.UUID][]model.CartItem),
	}
}

func (s *memoryStore) Get(_ context.Context, cartID uuid.UUID) ([]model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.carts[cartID]), nil
}

func (s *memoryStore) Add(_ context.Context, cartID uuid.UUID, product model.CartItem) ([]model.CartItem, error) {
	return s.update(cartID, func(items []model.CartItem) []model.CartItem {
		return Add(items, product)
	}), nil
}

func (s *memoryStore) Remove(_ context.Context, cartID uuid.UUID, productID uuid.UUID) ([]model.CartItem, error) {
	return s.update(cartID, func(items []model.CartItem) []model.CartItem {
		return Remove(items, productID)
	}), nil
}

func (s *memoryStore) SetQuantity(_ context.Context, cartID uuid.UUID, productID uuid.UUID, quantity int) ([]model.CartItem, error) {
	return s.update(cartID, func(items []model.CartItem) []model.CartItem {
		return SetQuantity(items, productID, quantity)
	}), nil
}

func (s *memoryStore) Clear(_ context.Context, cartID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
	return nil
}

func (s *memoryStore) update(cartID uuid.UUID, fn func([]model.CartItem) []model.CartItem) []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := fn(s.carts[cartID])
	s.carts[cartID] = items
	return clone(items)
}
