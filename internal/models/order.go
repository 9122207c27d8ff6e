package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status values. The normal flow is pending -> processing -> shipped
// -> delivered; cancelled can replace any of them.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCreditCard     = "credit_card"
	PaymentMethodBankTransfer   = "bank_transfer"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

// Order is the durable record of a placed order. It is created atomically
// with its items at checkout and snapshots everything it needs from the
// catalog, so later catalog edits never change what the customer bought.
type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderCode       string      `json:"order_code" gorm:"uniqueIndex;type:varchar(16)"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email" gorm:"index;type:varchar(255)"`
	CustomerPhone   string      `json:"customer_phone"`
	ShippingAddress string      `json:"shipping_address"`
	BillingAddress  string      `json:"billing_address"`
	Subtotal        float64     `json:"subtotal"`
	TaxAmount       float64     `json:"tax_amount"`
	ShippingCost    float64     `json:"shipping_cost"`
	Total           float64     `json:"total"`
	Status          string      `json:"status" gorm:"type:varchar(16)"`
	PaymentStatus   string      `json:"payment_status" gorm:"type:varchar(16)"`
	PaymentMethod   string      `json:"payment_method" gorm:"type:varchar(32)"`
	Notes           string      `json:"notes"`
	ShippedAt       *time.Time  `json:"shipped_at"`
	DeliveredAt     *time.Time  `json:"delivered_at"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	gorm.Model                  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// OrderItem is one line of an order. Name, SKU and price are copied from the
// product at checkout time and never mutated afterwards.
type OrderItem struct {
	ID             string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID        string  `json:"order_id" gorm:"index;type:varchar(36)"`
	ProductID      string  `json:"product_id" gorm:"index;type:varchar(36)"`
	ProductName    string  `json:"product_name"`
	ProductSKU     string  `json:"product_sku" gorm:"column:product_sku;type:varchar(40)"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
	Total          float64 `json:"total"`
	ProductOptions string  `json:"product_options"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
