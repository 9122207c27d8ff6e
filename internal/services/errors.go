package services

import (
	"errors"
	"fmt"
)

// Request-boundary error taxonomy. Handlers translate these into HTTP
// responses; none of them is fatal to the process.
var (
	// ErrEmptyCart guards checkout and checkout-dependent pages.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderNotFound covers both a wrong order code and a wrong customer
	// email so the response never reveals which of the two was incorrect.
	ErrOrderNotFound = errors.New("order not found")

	// ErrProductNotFound is returned for unknown product lookups on the
	// catalog surface.
	ErrProductNotFound = errors.New("product not found")
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StockError reports that a tracked product cannot satisfy the requested
// quantity. It is user-facing and retryable: the customer can lower the
// quantity and resubmit.
type StockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("not enough stock for %s (requested: %d, available: %d)",
		e.ProductName, e.Requested, e.Available)
}
