package repositories

import (
	"fmt"
	"sync"
	"time"

	"undangan/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It delegates stock reads/writes to a ProductRepository so that PlaceOrder
// can honor the same all-or-nothing contract as the GORM implementation.
type MockOrderRepository struct {
	orders   map[string]models.Order // keyed by order code
	products ProductRepository
	mu       sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository(products ProductRepository) *MockOrderRepository {
	return &MockOrderRepository{
		orders:   make(map[string]models.Order),
		products: products,
	}
}

// PlaceOrder stores the order and applies stock decrements. All decrements
// are checked before any of them is applied, so a failed check leaves both
// the order map and the stock untouched.
func (r *MockOrderRepository) PlaceOrder(order *models.Order, decrements map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for productID, quantity := range decrements {
		product, err := r.products.GetByID(productID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
		}
		if product.StockQuantity < quantity {
			return &InsufficientStockError{ProductID: productID}
		}
	}

	for productID, quantity := range decrements {
		product, err := r.products.GetByID(productID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
		}
		product.StockQuantity -= quantity
		if err := r.products.Update(product); err != nil {
			return fmt.Errorf("failed to update stock for product %s: %w", productID, err)
		}
	}

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.OrderCode] = *order
	return nil
}

// ExistsByCode reports whether an order with the given code exists.
func (r *MockOrderRepository) ExistsByCode(code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.orders[code]
	return ok, nil
}

// FindByCode returns an order by its code.
func (r *MockOrderRepository) FindByCode(code string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[code]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", code, ErrNotFound)
	}
	return &order, nil
}

// FindByCodeAndEmail returns an order only when both fields match exactly.
func (r *MockOrderRepository) FindByCodeAndEmail(code, email string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[code]
	if !ok || order.CustomerEmail != email {
		return nil, fmt.Errorf("order %s: %w", code, ErrNotFound)
	}
	return &order, nil
}

// UpdateStatus updates the status of an order by its code.
func (r *MockOrderRepository) UpdateStatus(code string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[code]
	if !ok {
		return fmt.Errorf("order %s: %w", code, ErrNotFound)
	}
	order.Status = status
	now := time.Now()
	switch status {
	case models.OrderStatusShipped:
		order.ShippedAt = &now
	case models.OrderStatusDelivered:
		order.DeliveredAt = &now
	}
	order.UpdatedAt = now
	r.orders[code] = order
	return nil
}
