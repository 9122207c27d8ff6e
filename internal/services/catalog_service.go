package services

import (
	"errors"
	"fmt"

	"undangan/internal/models"
	"undangan/internal/repositories"
)

// How many products the home page shows as "featured".
const featuredProductLimit = 8

// CatalogService handles read access to products and categories for the
// storefront. Inactive and draft products never leave this layer.
type CatalogService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repositories.ProductRepository, categories repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
	}
}

// HomeView is the view model for the home page.
type HomeView struct {
	Categories       []models.Category `json:"categories"`
	FeaturedProducts []models.Product  `json:"featured_products"`
}

// GetHome returns active categories plus the newest active products.
func (s *CatalogService) GetHome() (HomeView, error) {
	categories, err := s.categories.GetActive()
	if err != nil {
		return HomeView{}, fmt.Errorf("failed to load categories: %w", err)
	}

	products, err := s.products.GetActive("")
	if err != nil {
		return HomeView{}, fmt.Errorf("failed to load products: %w", err)
	}
	if len(products) > featuredProductLimit {
		products = products[:featuredProductLimit]
	}

	return HomeView{
		Categories:       categories,
		FeaturedProducts: products,
	}, nil
}

// ListProducts returns active products, optionally filtered by category
// slug.
func (s *CatalogService) ListProducts(categorySlug string) ([]models.Product, error) {
	return s.products.GetActive(categorySlug)
}

// GetProductBySlug returns an active product by slug. Inactive and draft
// products are reported as not found.
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.products.GetBySlug(slug)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %s: %w", slug, err)
	}
	if !product.IsActive() {
		return nil, ErrProductNotFound
	}
	return product, nil
}
