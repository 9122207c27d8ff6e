package models

import "gorm.io/gorm"

// Product status values. Only active products are visible to the storefront.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
	ProductStatusDraft    = "draft"
)

// Category groups products for browsing. The relation is referential only:
// a product points at one category, nothing is owned exclusively.
type Category struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Active      bool   `json:"active"`
	SortOrder   int    `json:"sort_order"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Product represents a product in the catalog.
type Product struct {
	ID            string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CategoryID    string   `json:"category_id" gorm:"index;type:varchar(36)"`
	Name          string   `json:"name" validate:"required,min=3,max=100"`
	Slug          string   `json:"slug" gorm:"uniqueIndex;type:varchar(120)" validate:"required,max=120"`
	Description   string   `json:"description" validate:"omitempty,max=2000"`
	Price         float64  `json:"price" validate:"gte=0"`
	SalePrice     *float64 `json:"sale_price" validate:"omitempty,gte=0"`
	SKU           string   `json:"sku" gorm:"column:sku;uniqueIndex;type:varchar(40)"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	TrackStock    bool     `json:"track_stock"`
	Status        string   `json:"status" gorm:"type:varchar(16);default:active"`
	gorm.Model             // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CurrentPrice returns the effective selling price: the sale price when one
// is set and lower than the list price, otherwise the list price. Cart view
// and checkout both price lines through this method so the two can never
// disagree.
func (p *Product) CurrentPrice() float64 {
	if p.SalePrice != nil && *p.SalePrice < p.Price {
		return *p.SalePrice
	}
	return p.Price
}

// IsActive reports whether the product is visible to the storefront.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// HasStock reports whether the product can satisfy the requested quantity.
// Products that do not track stock are always considered available.
func (p *Product) HasStock(quantity int) bool {
	if !p.TrackStock {
		return true
	}
	return p.StockQuantity >= quantity
}
