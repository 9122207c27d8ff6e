package handlers

import (
	"errors"
	"log"

	"undangan/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// renderServiceError maps the service error taxonomy onto HTTP responses.
// Everything here is recovered at the request boundary; nothing is fatal.
func renderServiceError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	var stockErr *services.StockError

	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fiber.Map{validationErr.Field: validationErr.Message},
		})
	case errors.As(err, &stockErr):
		// Soft failure: the customer can adjust the quantity and retry.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Not enough stock available.",
			"error":   stockErr.Error(),
		})
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message":  "Your cart is empty.",
			"redirect": "/cart",
		})
	case errors.Is(err, services.ErrOrderNotFound):
		// Deliberately generic: never reveal whether the code or the email
		// was the wrong half of a tracking lookup.
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found. Please check your order code and email address.",
		})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found.",
		})
	default:
		log.Printf("Unhandled service error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong. Please try again.",
		})
	}
}

// renderValidationErrors renders go-playground/validator struct errors as
// per-field messages.
func renderValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = "Field '" + e.Field() + "' failed on the '" + e.Tag() + "' tag"
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// sessionID pulls the cart session ID set by the session middleware.
func sessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals("session_id").(string)
	return sid
}
