package cart

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
)

// Store is the cart state container. All reads and writes go through its
// API; there is no ambient global cart. Adding an existing product merges
// quantities, and a line whose quantity drops to zero is removed.
type Store struct {
	mu     sync.Mutex
	items  []domain.CartLineItem
	logger *zap.Logger
}

// NewStore creates a new cart store
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Add puts an item in the cart, merging quantities when the product is
// already present. Quantity must be at least 1.
func (s *Store) Add(item domain.CartLineItem) error {
	if item.ProductID == "" {
		return fmt.Errorf("product id is required")
	}
	if item.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", item.Quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			s.logger.Debug("Merged cart line",
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", s.items[i].Quantity),
			)
			return nil
		}
	}

	s.items = append(s.items, item)
	return nil
}

// UpdateQuantity sets the quantity of a cart line. A quantity of zero or
// less removes the line.
func (s *Store) UpdateQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID != productID {
			continue
		}
		if quantity < 1 {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
		s.items[i].Quantity = quantity
		return nil
	}

	return fmt.Errorf("product %s is not in the cart", productID)
}

// Remove deletes a cart line regardless of its quantity
func (s *Store) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("product %s is not in the cart", productID)
}

// Items returns a copy of the cart lines in insertion order
func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of cart lines
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subtotal returns the sum of unit price times quantity over all lines
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// Clear empties the cart. Irreversible within the session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
