package repositories

import (
	"fmt"
	"sportstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMBasketRepository is a GORM implementation of BasketRepository.
type GORMBasketRepository struct {
	db *gorm.DB
}

// NewGORMBasketRepository creates a new instance of GORMBasketRepository.
func NewGORMBasketRepository(db *gorm.DB) *GORMBasketRepository {
	return &GORMBasketRepository{
		db: db,
	}
}

// Upsert inserts a basket item, or increments the quantity of the existing row
// for the same (user, product, size) triple. The increment happens inside the
// INSERT via ON CONFLICT, so two concurrent adds for the same triple cannot
// lose an update or produce a duplicate row.
func (r *GORMBasketRepository) Upsert(item *models.BasketItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	err := r.db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "size"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", item.Quantity),
		}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert basket item: %w", err)
	}
	return nil
}

// ListByUser retrieves all basket items for a user, with products preloaded.
func (r *GORMBasketRepository) ListByUser(userID string) ([]models.BasketItem, error) {
	var items []models.BasketItem
	if err := r.db.Preload("Product").Find(&items, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to list basket items for user %s: %w", userID, err)
	}
	return items, nil
}
