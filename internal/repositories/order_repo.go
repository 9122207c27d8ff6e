package repositories

import (
	"undangan/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// PlaceOrder persists the order together with its items and applies the
	// given stock decrements (product ID -> quantity) as one atomic unit.
	// If any decrement would take a tracked product below zero it returns
	// an *InsufficientStockError and nothing is written.
	PlaceOrder(order *models.Order, decrements map[string]int) error
	ExistsByCode(code string) (bool, error)
	FindByCode(code string) (*models.Order, error)
	// FindByCodeAndEmail is the tracking lookup: both fields must match
	// exactly. A miss on either returns ErrNotFound.
	FindByCodeAndEmail(code, email string) (*models.Order, error)
	UpdateStatus(code string, status string) error
}
