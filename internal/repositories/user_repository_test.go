package repositories_test

import (
	"fmt"
	"testing"

	"sportstore/internal/models"
	"sportstore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a private in-memory SQLite database and migrates the schema.
func setupDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.BasketItem{}); err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}
	return db
}

// Deleting a user takes their products and basket items with them, in one
// transaction, while other users' rows are untouched.
func TestGORMUserRepository_DeleteCascades(t *testing.T) {
	db := setupDB(t, "user_repo_delete_test")
	users := repositories.NewGORMUserRepository(db)
	products := repositories.NewGORMProductRepository(db)
	baskets := repositories.NewGORMBasketRepository(db)

	owner := &models.User{Email: "owner@example.com", FirstName: "Olive", Password: "hashed", Admin: true}
	assert.NoError(t, users.Create(owner))

	other := &models.User{Email: "other@example.com", FirstName: "Sam", Password: "hashed"}
	assert.NoError(t, users.Create(other))

	boots := &models.Product{
		Name:      "Strike Boots",
		ImageName: "strike_boots.png",
		Category:  "football",
		Price:     59.99,
		Sizes:     "8,9,10",
		Quantity:  5,
		UserID:    &owner.ID,
	}
	assert.NoError(t, products.Create(boots))

	assert.NoError(t, baskets.Upsert(&models.BasketItem{UserID: owner.ID, ProductID: boots.ID, Size: "9", Quantity: 2}))
	assert.NoError(t, baskets.Upsert(&models.BasketItem{UserID: other.ID, ProductID: boots.ID, Size: "8", Quantity: 1}))

	assert.NoError(t, users.Delete(owner.ID))

	_, err := users.GetByID(owner.ID)
	assert.Error(t, err)

	items, err := baskets.ListByUser(owner.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 0)

	all, err := products.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 0)

	// The other user and their basket line survive
	_, err = users.GetByID(other.ID)
	assert.NoError(t, err)
	otherItems, err := baskets.ListByUser(other.ID)
	assert.NoError(t, err)
	assert.Len(t, otherItems, 1)
}

func TestGORMUserRepository_DeleteUnknownUser(t *testing.T) {
	db := setupDB(t, "user_repo_delete_unknown_test")
	users := repositories.NewGORMUserRepository(db)

	err := users.Delete("ghost")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
