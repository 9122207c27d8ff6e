package services

import (
	"errors"
	"fmt"
	"strings"

	"undangan/internal/models"
	"undangan/internal/repositories"
)

// OrderService handles order lookup and status management.
type OrderService struct {
	orders repositories.OrderRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repositories.OrderRepository) *OrderService {
	return &OrderService{
		orders: orders,
	}
}

// Track looks up an order by its code and the customer's email. Both must
// match exactly; a miss on either returns the same ErrOrderNotFound so the
// caller cannot tell which field was wrong.
func (s *OrderService) Track(orderCode, customerEmail string) (*models.Order, error) {
	orderCode = strings.TrimSpace(orderCode)
	customerEmail = strings.TrimSpace(customerEmail)

	order, err := s.orders.FindByCodeAndEmail(orderCode, customerEmail)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to track order %s: %w", orderCode, err)
	}
	return order, nil
}

// GetByCode retrieves an order by code for the post-checkout confirmation
// page.
func (s *OrderService) GetByCode(orderCode string) (*models.Order, error) {
	order, err := s.orders.FindByCode(strings.TrimSpace(orderCode))
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderCode, err)
	}
	return order, nil
}

// UpdateStatus moves an order to a new status. Used by the order events
// consumer and back-office tooling, not exposed on storefront routes.
func (s *OrderService) UpdateStatus(orderCode, status string) error {
	if !models.ValidOrderStatus(status) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("invalid order status: %s", status)}
	}

	err := s.orders.UpdateStatus(strings.TrimSpace(orderCode), status)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update status for order %s: %w", orderCode, err)
	}
	return nil
}
