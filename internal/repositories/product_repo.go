package repositories

import (
	"undangan/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetByID(id string) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	// GetActive returns active products, optionally restricted to the
	// category with the given slug (empty slug means all categories).
	GetActive(categorySlug string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetActive() ([]models.Category, error)
	Create(category *models.Category) error
}
