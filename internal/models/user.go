package models

import "gorm.io/gorm"

// User represents a customer or administrator of the store.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	FirstName string `json:"first_name" gorm:"type:varchar(150)" validate:"required,min=1"`
	Admin     bool   `json:"admin" gorm:"not null;default:false"`

	// Deleting a user removes their products and basket items with them.
	Products    []Product    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BasketItems []BasketItem `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
