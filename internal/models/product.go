package models

import "gorm.io/gorm"

// Categories is the fixed set of product categories the store sells.
var Categories = []string{"football", "basketball", "running"}

// ValidCategory reports whether category is one of the fixed set.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Product represents a catalog entry in the store.
type Product struct {
	ID             string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string  `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	ImageName      string  `json:"image_name" gorm:"type:varchar(100)" validate:"required"` // sanitized filename of the stored asset
	Category       string  `json:"category" gorm:"type:varchar(100);index" validate:"required,oneof=football basketball running"`
	Price          float64 `json:"price" validate:"gte=0"`
	Sizes          string  `json:"sizes" gorm:"type:varchar(100)" validate:"required"` // free-form, e.g. "S,M,L" or "8,9,10"
	Quantity       int     `json:"quantity" gorm:"not null;default:0" validate:"gte=0"`
	IsSpecialOffer bool    `json:"is_special_offer" gorm:"not null;default:false;index"`
	UserID         *string `json:"user_id,omitempty" gorm:"type:varchar(36)"` // creator, if any

	BasketItems []BasketItem `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
