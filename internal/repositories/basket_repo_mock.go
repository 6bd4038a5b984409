package repositories

import (
	"sync"

	"sportstore/internal/models"

	"github.com/google/uuid"
)

// MockBasketRepository is an in-memory implementation of BasketRepository.
type MockBasketRepository struct {
	items map[string]models.BasketItem
	mu    sync.RWMutex
}

// NewMockBasketRepository creates a new instance of MockBasketRepository.
func NewMockBasketRepository() *MockBasketRepository {
	return &MockBasketRepository{
		items: make(map[string]models.BasketItem),
	}
}

// Upsert adds a basket item or increments the quantity of the row sharing its
// (user, product, size) triple.
func (r *MockBasketRepository) Upsert(item *models.BasketItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID && existing.Size == item.Size {
			existing.Quantity += item.Quantity
			r.items[id] = existing
			*item = existing
			return nil
		}
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// ListByUser returns all basket items belonging to a user.
func (r *MockBasketRepository) ListByUser(userID string) ([]models.BasketItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.BasketItem, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			itemList = append(itemList, item)
		}
	}
	return itemList, nil
}
