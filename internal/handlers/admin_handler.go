package handlers

import (
	"errors"
	"log"

	"sportstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin product-management routes.
type AdminHandler struct {
	service *services.ProductService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.ProductService) *AdminHandler {
	return &AdminHandler{
		service: service,
	}
}

// RegisterRoutes registers the product-management routes with the Fiber app.
// Both require an authenticated admin.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/product_management", h.HandleListProducts)
	router.Post("/product_management", h.HandleManageProducts)
}

// HandleListProducts returns the full catalog for the management page.
func (h *AdminHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error listing products for management: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"products": products,
	})
}

// HandleManageProducts dispatches the management form: a product_id_to_remove
// field means a delete, a product_name or uploaded pic means a create.
func (h *AdminHandler) HandleManageProducts(c *fiber.Ctx) error {
	if id := c.FormValue("product_id_to_remove"); id != "" {
		return h.handleRemoveProduct(c, id)
	}

	_, picErr := c.FormFile("pic")
	if c.FormValue("product_name") != "" || picErr == nil {
		return h.handleAddProduct(c)
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "nothing to do: provide product fields or product_id_to_remove",
	})
}

func (h *AdminHandler) handleRemoveProduct(c *fiber.Ctx, id string) error {
	outcome, err := h.service.DeleteProduct(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found!",
			})
		}
		log.Printf("Error deleting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}

	resp := fiber.Map{"message": "Product deleted!"}
	if outcome.AssetErr != nil {
		// The row is gone; the leftover image is worth telling the admin about.
		resp["warning"] = "product image could not be removed: " + outcome.AssetErr.Error()
	}
	return c.JSON(resp)
}

func (h *AdminHandler) handleAddProduct(c *fiber.Ctx) error {
	input := services.CreateProductInput{
		Name:           c.FormValue("product_name"),
		Category:       c.FormValue("category"),
		Price:          c.FormValue("price"),
		Quantity:       c.FormValue("quantity"),
		Sizes:          c.FormValue("sizes"),
		IsSpecialOffer: c.FormValue("is_special_offer") == "on",
	}
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		input.UserID = &userID
	}

	var image services.ImageUpload
	if fh, err := c.FormFile("pic"); err == nil {
		f, err := fh.Open()
		if err != nil {
			log.Printf("Error opening uploaded image: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "please upload a product image",
			})
		}
		defer f.Close()
		image = services.ImageUpload{Filename: fh.Filename, Content: f}
	}

	product, err := h.service.CreateProduct(input, image)
	if err != nil {
		if services.IsValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added!",
		"product": product,
	})
}
