package handlers

import (
	"log"

	"sportstore/internal/models"
	"sportstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the public product-browsing routes.
type CatalogHandler struct {
	service *services.ProductService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.ProductService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the browsing routes with the Fiber app. The home
// page lists special offers; each category gets its own listing route.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleHome)
	for _, category := range models.Categories {
		router.Get("/"+category, h.categoryHandler(category))
	}
}

// productListing is a product plus the URL its image is served from.
type productListing struct {
	Product  models.Product `json:"product"`
	ImageURL string         `json:"image_url"`
}

func withImageURLs(products []models.Product) []productListing {
	listings := make([]productListing, 0, len(products))
	for _, p := range products {
		listings = append(listings, productListing{
			Product:  p,
			ImageURL: "/static/img/" + p.ImageName,
		})
	}
	return listings
}

// HandleHome returns the special-offer listing.
func (h *CatalogHandler) HandleHome(c *fiber.Ctx) error {
	offers, err := h.service.GetSpecialOffers()
	if err != nil {
		log.Printf("Error getting special offers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve special offers",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"special_offers": withImageURLs(offers),
	})
}

// categoryHandler returns the listing handler for one category.
func (h *CatalogHandler) categoryHandler(category string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := h.service.GetProductsByCategory(category)
		if err != nil {
			log.Printf("Error getting products for category %s: %v", category, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not retrieve products",
				"error":   err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"category": category,
			"products": withImageURLs(products),
		})
	}
}
