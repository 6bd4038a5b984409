package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"sportstore/internal/cache"
	"sportstore/internal/models"
	"sportstore/internal/repositories"
	"sportstore/pkg/imagestore"
	"sportstore/pkg/rabbitmq"
)

// ImageStore is the asset store the product lifecycle writes images to.
type ImageStore interface {
	Save(name string, r io.Reader) error
	Remove(name string) error
}

// ProductService handles catalog reads and the admin product lifecycle.
type ProductService struct {
	repo     repositories.ProductRepository
	images   ImageStore
	offers   *cache.OffersCache // may be nil, reads then go straight to the repo
	mqClient *rabbitmq.Client   // may be nil, events are then skipped
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, images ImageStore, offers *cache.OffersCache, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		images:   images,
		offers:   offers,
		mqClient: mqClient,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetProductsByCategory retrieves all products in a category.
func (s *ProductService) GetProductsByCategory(category string) ([]models.Product, error) {
	return s.repo.GetByCategory(category)
}

// GetSpecialOffers retrieves the special-offer listing, from the cache when
// one is configured and warm.
func (s *ProductService) GetSpecialOffers() ([]models.Product, error) {
	if s.offers != nil {
		if products, ok := s.offers.Get(); ok {
			return products, nil
		}
	}

	products, err := s.repo.GetSpecialOffers()
	if err != nil {
		return nil, err
	}
	if s.offers != nil {
		s.offers.Set(products)
	}
	return products, nil
}

// CreateProductInput carries the admin add-product form fields. Price and
// Quantity arrive as the raw form strings and are parsed here so a malformed
// value is a validation failure, not a handler crash.
type CreateProductInput struct {
	Name           string
	Category       string
	Price          string
	Quantity       string
	Sizes          string
	IsSpecialOffer bool
	UserID         *string
}

// ImageUpload is the uploaded product image.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CreateProduct validates the input, stores the image and inserts the product.
// The checks run in order and the first failure wins. The image is written
// before the row is inserted; a failed image write aborts the whole creation
// so no row ever references an asset that was not stored.
func (s *ProductService) CreateProduct(input CreateProductInput, image ImageUpload) (*models.Product, error) {
	if image.Filename == "" || image.Content == nil {
		return nil, NewValidationError("please upload a product image")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, NewValidationError("product name is required")
	}
	category := strings.TrimSpace(input.Category)
	if !models.ValidCategory(category) {
		return nil, NewValidationError("invalid category")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(input.Price), 64)
	if err != nil || price < 0 {
		return nil, NewValidationError("price must be a valid non-negative number")
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(input.Quantity))
	if err != nil || quantity < 0 {
		return nil, NewValidationError("quantity must be a valid non-negative integer")
	}
	sizes := strings.TrimSpace(input.Sizes)
	if sizes == "" {
		return nil, NewValidationError("sizes are required (e.g., 'S,M,L' or '8,9,10')")
	}

	filename := imagestore.Sanitize(image.Filename)
	if filename == "" {
		return nil, NewValidationError("please upload a product image")
	}

	// Same sanitized name overwrites the stored asset. Collisions are the
	// admin's to manage; asset identity is the filename.
	if err := s.images.Save(filename, image.Content); err != nil {
		return nil, fmt.Errorf("failed to store product image %s: %w", filename, err)
	}

	product := &models.Product{
		Name:           name,
		ImageName:      filename,
		Category:       category,
		Price:          price,
		Quantity:       quantity,
		Sizes:          sizes,
		IsSpecialOffer: input.IsSpecialOffer,
		UserID:         input.UserID,
	}
	if err := s.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateOffers()
	s.publishEvent("catalog.product.created", map[string]interface{}{
		"productID": product.ID,
		"name":      product.Name,
		"category":  product.Category,
	})
	return product, nil
}

// DeleteOutcome reports the result of a product deletion. AssetErr carries a
// failed image cleanup; the row deletion has committed regardless, so callers
// treat it as a warning, not a failure.
type DeleteOutcome struct {
	ImageName string
	AssetErr  error
}

// DeleteProduct removes a product and its basket items, then its stored image.
// The row deletion is authoritative: an image-cleanup failure is returned in
// the outcome but does not undo or re-fail the delete.
func (s *ProductService) DeleteProduct(id string) (*DeleteOutcome, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product %s: %w", id, err)
	}

	if err := s.repo.Delete(id); err != nil {
		return nil, fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	outcome := &DeleteOutcome{ImageName: product.ImageName}
	if err := s.images.Remove(product.ImageName); err != nil {
		log.Printf("Warning: product %s deleted but image %s not removed: %v", id, product.ImageName, err)
		outcome.AssetErr = err
	}

	s.invalidateOffers()
	s.publishEvent("catalog.product.deleted", map[string]interface{}{
		"productID": id,
	})
	return outcome, nil
}

func (s *ProductService) invalidateOffers() {
	if s.offers != nil {
		s.offers.Invalidate()
	}
}

// publishEvent publishes a catalog event to the message broker. Failures are
// logged, never surfaced: the catalog mutation has already committed.
func (s *ProductService) publishEvent(routing string, payload map[string]interface{}) {
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
