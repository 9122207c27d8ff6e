package handlers

import (
	"log"

	"undangan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	service  *services.CheckoutService
	validate *validator.Validate
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Get("/", h.HandleCheckoutPage)
	checkoutRoutes.Post("/", h.HandlePlaceOrder)
}

// HandleCheckoutPage returns the checkout view model (lines, subtotal,
// tax, shipping, total). An empty cart gets a 409 with a redirect hint.
func (h *CheckoutHandler) HandleCheckoutPage(c *fiber.Ctx) error {
	view, err := h.service.Preview(sessionID(c))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(view)
}

// HandlePlaceOrder validates the checkout form and places the order.
func (h *CheckoutHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var input services.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(input); err != nil {
		return renderValidationErrors(c, err)
	}

	order, err := h.service.Checkout(sessionID(c), input)
	if err != nil {
		return renderServiceError(c, err)
	}

	// The client navigates to the confirmation page keyed by order code.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Your order has been placed successfully!",
		"order":    order,
		"redirect": "/orders/confirmation/" + order.OrderCode,
	})
}
