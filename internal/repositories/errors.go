package repositories

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested record does not exist. Callers
// match it with errors.Is.
var ErrNotFound = errors.New("record not found")

// InsufficientStockError is returned by OrderRepository.PlaceOrder when a
// stock decrement would take a tracked product below zero. The whole
// transaction is rolled back when this happens.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}
