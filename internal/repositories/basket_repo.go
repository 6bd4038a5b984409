package repositories

import (
	"sportstore/internal/models"
)

// BasketRepository defines the interface for basket line-item data access.
type BasketRepository interface {
	// Upsert inserts the item, or atomically increments the quantity of the
	// existing row for the same (user, product, size) triple.
	Upsert(item *models.BasketItem) error
	// ListByUser returns the user's basket items with their products loaded.
	ListByUser(userID string) ([]models.BasketItem, error)
}
