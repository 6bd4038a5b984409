package repositories

import "sportstore/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// Delete removes the user together with their products and basket items.
	Delete(id string) error
}
