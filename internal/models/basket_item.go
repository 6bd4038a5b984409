package models

import "gorm.io/gorm"

// BasketItem is one line of a user's basket: a quantity of a product in a size.
// At most one row may exist per (user, product, size); repeated adds increment
// the quantity of the existing row.
type BasketItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string `json:"user_id" gorm:"type:varchar(36);uniqueIndex:uq_basket_user_product_size;index" validate:"required"`
	ProductID string `json:"product_id" gorm:"type:varchar(36);uniqueIndex:uq_basket_user_product_size;index" validate:"required"`
	Size      string `json:"size" gorm:"type:varchar(50);uniqueIndex:uq_basket_user_product_size" validate:"required"`
	Quantity  int    `json:"quantity" gorm:"not null;default:1" validate:"gt=0"`

	Product Product `json:"product" gorm:"foreignKey:ProductID"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
