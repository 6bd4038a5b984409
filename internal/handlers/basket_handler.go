package handlers

import (
	"errors"
	"log"

	"sportstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// BasketHandler handles HTTP requests for the current user's basket.
type BasketHandler struct {
	service *services.BasketService
}

// NewBasketHandler creates a new BasketHandler.
func NewBasketHandler(service *services.BasketService) *BasketHandler {
	return &BasketHandler{
		service: service,
	}
}

// RegisterRoutes registers the basket routes with the Fiber app. Both routes
// require authentication.
func (h *BasketHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/basket", h.HandleGetBasket)
	router.Post("/basket", h.HandleAddToBasket)
}

// HandleGetBasket returns the current user's basket items and total.
func (h *BasketHandler) HandleGetBasket(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	items, err := h.service.ListItems(userID)
	if err != nil {
		log.Printf("Error listing basket for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve basket",
			"error":   err.Error(),
		})
	}

	var total float64
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
	}

	return c.JSON(fiber.Map{
		"basket_items": items,
		"total":        total,
	})
}

// AddToBasketRequest represents the request body for adding to the basket.
// Quantity is a pointer so an absent field defaults to 1 while an explicit
// zero still fails validation.
type AddToBasketRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
	Size      string `json:"size"`
}

// HandleAddToBasket adds a product in a size to the current user's basket.
func (h *BasketHandler) HandleAddToBasket(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	// An unparsable body is treated as an empty payload so the field checks
	// below report the first missing field, same as a well-formed empty body.
	var req AddToBasketRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing basket request body: %v", err)
		req = AddToBasketRequest{}
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if err := h.service.AddItem(userID, req.ProductID, quantity, req.Size); err != nil {
		if services.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		log.Printf("Error adding to basket for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not add to basket",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Added to basket",
	})
}
