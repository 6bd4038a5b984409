package services_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"sportstore/internal/models"
	"sportstore/internal/repositories"
	"sportstore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCategory(category string) ([]models.Product, error) {
	args := m.Called(category)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetSpecialOffers() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockImageStore is a mock implementation of services.ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(name string, r io.Reader) error {
	args := m.Called(name, r)
	return args.Error(0)
}

func (m *MockImageStore) Remove(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func validCreateInput() services.CreateProductInput {
	return services.CreateProductInput{
		Name:     "Strike Boots",
		Category: "football",
		Price:    "59.99",
		Quantity: "10",
		Sizes:    "8,9,10",
	}
}

func pngUpload(name string) services.ImageUpload {
	return services.ImageUpload{Filename: name, Content: strings.NewReader("png-bytes")}
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockImages := new(MockImageStore)
	service := services.NewProductService(mockRepo, mockImages, nil, nil)

	mockImages.On("Save", "boots.png", mock.Anything).Return(nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(validCreateInput(), pngUpload("boots.png"))
	assert.NoError(t, err)
	assert.Equal(t, "Strike Boots", product.Name)
	assert.Equal(t, "boots.png", product.ImageName)
	assert.Equal(t, "football", product.Category)
	assert.Equal(t, 59.99, product.Price)
	assert.Equal(t, 10, product.Quantity)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestProductService_CreateProduct_SanitizesFilename(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockImages := new(MockImageStore)
	service := services.NewProductService(mockRepo, mockImages, nil, nil)

	mockImages.On("Save", "my_boots_1.png", mock.Anything).Return(nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(validCreateInput(), pngUpload("../../my boots?1.png"))
	assert.NoError(t, err)
	assert.Equal(t, "my_boots_1.png", product.ImageName)
	mockImages.AssertExpectations(t)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*services.CreateProductInput)
		upload services.ImageUpload
		msg    string
	}{
		{"missing image", func(in *services.CreateProductInput) {}, services.ImageUpload{}, "please upload a product image"},
		{"empty name", func(in *services.CreateProductInput) { in.Name = "  " }, pngUpload("boots.png"), "product name is required"},
		{"unknown category", func(in *services.CreateProductInput) { in.Category = "tennis" }, pngUpload("boots.png"), "invalid category"},
		{"negative price", func(in *services.CreateProductInput) { in.Price = "-5" }, pngUpload("boots.png"), "price must be a valid non-negative number"},
		{"garbage price", func(in *services.CreateProductInput) { in.Price = "cheap" }, pngUpload("boots.png"), "price must be a valid non-negative number"},
		{"negative quantity", func(in *services.CreateProductInput) { in.Quantity = "-1" }, pngUpload("boots.png"), "quantity must be a valid non-negative integer"},
		{"fractional quantity", func(in *services.CreateProductInput) { in.Quantity = "2.5" }, pngUpload("boots.png"), "quantity must be a valid non-negative integer"},
		{"empty sizes", func(in *services.CreateProductInput) { in.Sizes = " " }, pngUpload("boots.png"), "sizes are required (e.g., 'S,M,L' or '8,9,10')"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			mockImages := new(MockImageStore)
			service := services.NewProductService(mockRepo, mockImages, nil, nil)

			input := validCreateInput()
			tc.mutate(&input)

			_, err := service.CreateProduct(input, tc.upload)
			assert.Error(t, err)
			assert.True(t, services.IsValidationError(err))
			assert.Equal(t, tc.msg, err.Error())

			// A rejected create must touch neither the asset store nor the catalog
			mockImages.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestProductService_CreateProduct_ImageWriteFailureAbortsInsert(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockImages := new(MockImageStore)
	service := services.NewProductService(mockRepo, mockImages, nil, nil)

	mockImages.On("Save", "boots.png", mock.Anything).Return(fmt.Errorf("disk full")).Once()

	_, err := service.CreateProduct(validCreateInput(), pngUpload("boots.png"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	// No row may reference an asset that was never stored
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockImages.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockImages := new(MockImageStore)
	service := services.NewProductService(mockRepo, mockImages, nil, nil)

	product := &models.Product{ID: "prod-1", Name: "Strike Boots", ImageName: "boots.png"}

	// Successful delete removes the row, then the image
	mockRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	mockRepo.On("Delete", "prod-1").Return(nil).Once()
	mockImages.On("Remove", "boots.png").Return(nil).Once()

	outcome, err := service.DeleteProduct("prod-1")
	assert.NoError(t, err)
	assert.NoError(t, outcome.AssetErr)
	assert.Equal(t, "boots.png", outcome.ImageName)
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)

	// Unknown product
	mockRepo.On("GetByID", "ghost").Return(nil, fmt.Errorf("product with ID ghost: %w", repositories.ErrNotFound)).Once()
	_, err = service.DeleteProduct("ghost")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	mockRepo.AssertExpectations(t)

	// A storage failure on the lookup is passed through, not reported as a
	// missing product
	mockRepo.On("GetByID", "prod-1").Return(nil, fmt.Errorf("connection refused")).Once()
	_, err = service.DeleteProduct("prod-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct_AssetCleanupFailureIsAWarning(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockImages := new(MockImageStore)
	service := services.NewProductService(mockRepo, mockImages, nil, nil)

	product := &models.Product{ID: "prod-1", ImageName: "boots.png"}
	mockRepo.On("GetByID", "prod-1").Return(product, nil).Once()
	mockRepo.On("Delete", "prod-1").Return(nil).Once()
	mockImages.On("Remove", "boots.png").Return(fmt.Errorf("permission denied")).Once()

	// The delete still succeeds; the cleanup failure rides along as a warning
	outcome, err := service.DeleteProduct("prod-1")
	assert.NoError(t, err)
	assert.Error(t, outcome.AssetErr)
	assert.Contains(t, outcome.AssetErr.Error(), "permission denied")
	mockRepo.AssertExpectations(t)
	mockImages.AssertExpectations(t)
}

func TestProductService_GetSpecialOffers_NoCache(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockImages := new(MockImageStore)
	service := services.NewProductService(mockRepo, mockImages, nil, nil)

	offers := []models.Product{{ID: "1", Name: "Strike Boots", IsSpecialOffer: true}}
	mockRepo.On("GetSpecialOffers").Return(offers, nil).Once()

	got, err := service.GetSpecialOffers()
	assert.NoError(t, err)
	assert.Equal(t, offers, got)
	mockRepo.AssertExpectations(t)
}
