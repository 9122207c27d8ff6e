package repositories

import (
	"errors"
	"fmt"
	"time"

	"undangan/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// PlaceOrder runs the whole checkout write in a single transaction: stock
// decrements first, then the order row and its items. The decrement carries
// its own floor check (stock_quantity >= quantity) so concurrent checkouts
// against the same product serialize on the row and stock can never go
// negative; a failed check rolls everything back.
func (r *GORMOrderRepository) PlaceOrder(order *models.Order, decrements map[string]int) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for productID, quantity := range decrements {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", productID, quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", productID, res.Error)
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{ProductID: productID}
			}
		}

		// Creating the order also creates the associated items.
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order %s: %w", order.OrderCode, err)
		}
		return nil
	})
}

// ExistsByCode reports whether any order already holds the given code.
func (r *GORMOrderRepository) ExistsByCode(code string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("order_code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check order code %s: %w", code, err)
	}
	return count > 0, nil
}

// FindByCode retrieves an order with its items by order code.
func (r *GORMOrderRepository) FindByCode(code string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, "order_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order %s: %w", code, err)
	}
	return &order, nil
}

// FindByCodeAndEmail retrieves an order with its items, requiring an exact
// match on both the order code and the customer email.
func (r *GORMOrderRepository) FindByCodeAndEmail(code, email string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("order_code = ? AND customer_email = ?", code, email).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to look up order %s: %w", code, err)
	}
	return &order, nil
}

// UpdateStatus updates an order's status by code, stamping shipped_at or
// delivered_at when the status calls for it.
func (r *GORMOrderRepository) UpdateStatus(code string, status string) error {
	updates := map[string]interface{}{"status": status}
	now := time.Now()
	switch status {
	case models.OrderStatusShipped:
		updates["shipped_at"] = &now
	case models.OrderStatusDelivered:
		updates["delivered_at"] = &now
	}

	res := r.db.Model(&models.Order{}).Where("order_code = ?", code).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update status for order %s: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", code, ErrNotFound)
	}
	return nil
}
