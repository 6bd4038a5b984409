package repositories

import (
	"errors"

	"sportstore/internal/models"
)

// ErrNotFound is returned when a looked-up record does not exist. Callers
// match it with errors.Is to tell a missing record apart from a storage
// failure.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	GetByCategory(category string) ([]models.Product, error)
	GetSpecialOffers() ([]models.Product, error)
	Create(product *models.Product) error
	// Delete removes the product row and any basket items referencing it
	// in a single transaction.
	Delete(id string) error
}
