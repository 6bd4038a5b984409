package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"sportstore/internal/models"
	"sportstore/internal/repositories"
	"sportstore/pkg/rabbitmq"
)

// BasketService handles business logic for the per-user basket.
type BasketService struct {
	basketRepo  repositories.BasketRepository
	productRepo repositories.ProductRepository
	mqClient    *rabbitmq.Client // may be nil, events are then skipped
}

// NewBasketService creates a new BasketService.
func NewBasketService(basketRepo repositories.BasketRepository, productRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *BasketService {
	return &BasketService{
		basketRepo:  basketRepo,
		productRepo: productRepo,
		mqClient:    mqClient,
	}
}

// AddItem validates the request and adds quantity of a product in a size to
// the user's basket. Adding a (product, size) the user already has increments
// the existing line instead of creating a duplicate. The checks run in order
// and the first failure wins.
func (s *BasketService) AddItem(userID, productID string, quantity int, size string) error {
	if productID == "" {
		return NewValidationError("product_id is required")
	}
	if quantity <= 0 {
		return NewValidationError("quantity must be a positive integer")
	}
	size = strings.TrimSpace(size)
	if size == "" {
		return NewValidationError("size is required")
	}
	if _, err := s.productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to look up product %s: %w", productID, err)
	}

	item := &models.BasketItem{
		UserID:    userID,
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
	}
	if err := s.basketRepo.Upsert(item); err != nil {
		return fmt.Errorf("failed to add basket item: %w", err)
	}

	s.publishEvent("basket.item.added", map[string]interface{}{
		"userID":    userID,
		"productID": productID,
		"size":      size,
		"quantity":  quantity,
	})
	return nil
}

// ListItems returns the user's basket items with their products loaded.
func (s *BasketService) ListItems(userID string) ([]models.BasketItem, error) {
	return s.basketRepo.ListByUser(userID)
}

// Total computes the basket total for a user. Unit prices are read from the
// catalog at call time, so a price change is reflected in any basket that
// still holds the product.
func (s *BasketService) Total(userID string) (float64, error) {
	items, err := s.basketRepo.ListByUser(userID)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total, nil
}

// publishEvent publishes a basket event to the message broker. Failures are
// logged, never surfaced: the basket mutation has already committed.
func (s *BasketService) publishEvent(routing string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routing, err)
		return
	}
	if err := s.mqClient.PublishCatalogEvent(routing, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routing, err)
	}
}
