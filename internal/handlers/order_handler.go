package handlers

import (
	"log"

	"undangan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for order confirmation and tracking.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/confirmation/:code", h.HandleConfirmation)
	orderRoutes.Get("/track", h.HandleTrackingForm)
	orderRoutes.Post("/track", h.HandleTrack)
}

type trackRequest struct {
	OrderCode     string `json:"order_code" validate:"required"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
}

// HandleConfirmation returns the post-checkout confirmation view for an
// order code.
func (h *OrderHandler) HandleConfirmation(c *fiber.Ctx) error {
	order, err := h.service.GetByCode(c.Params("code"))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"order": order,
	})
}

// HandleTrackingForm describes the tracking form for the view layer.
func (h *OrderHandler) HandleTrackingForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Enter your order code and email address to track your order.",
		"fields":  []string{"order_code", "customer_email"},
	})
}

// HandleTrack looks up an order by code and email. A mismatch on either
// field produces the same generic not-found response.
func (h *OrderHandler) HandleTrack(c *fiber.Ctx) error {
	var req trackRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing track request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return renderValidationErrors(c, err)
	}

	order, err := h.service.Track(req.OrderCode, req.CustomerEmail)
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"order": order,
	})
}
