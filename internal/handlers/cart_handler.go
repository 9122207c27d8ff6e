package handlers

import (
	"log"

	"undangan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleViewCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Patch("/", h.HandleUpdateItem)
	cartRoutes.Delete("/", h.HandleRemoveItem)
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=10"`
}

type updateItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0,max=10"`
}

type removeItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// HandleViewCart returns the cart view model with live prices.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	view, err := h.service.View(sessionID(c))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(view)
}

// HandleAddItem adds a product to the cart, merging with an existing line.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return renderValidationErrors(c, err)
	}

	if err := h.service.Add(sessionID(c), req.ProductID, req.Quantity); err != nil {
		return renderServiceError(c, err)
	}

	view, err := h.service.View(sessionID(c))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product added to cart successfully!",
		"cart":    view,
	})
}

// HandleUpdateItem overwrites a line's quantity; quantity 0 deletes it.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return renderValidationErrors(c, err)
	}

	if err := h.service.Update(sessionID(c), req.ProductID, req.Quantity); err != nil {
		return renderServiceError(c, err)
	}

	view, err := h.service.View(sessionID(c))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart updated successfully!",
		"cart":    view,
	})
}

// HandleRemoveItem removes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	var req removeItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing remove-from-cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return renderValidationErrors(c, err)
	}

	if err := h.service.Remove(sessionID(c), req.ProductID); err != nil {
		return renderServiceError(c, err)
	}

	view, err := h.service.View(sessionID(c))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart!",
		"cart":    view,
	})
}
