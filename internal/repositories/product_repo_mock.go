package repositories

import (
	"fmt"
	"sort"
	"sync"

	"undangan/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository
// plus CategoryRepository, used in unit tests and local development.
type MockProductRepository struct {
	products   map[string]models.Product
	categories map[string]models.Category
	mu         sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products:   make(map[string]models.Product),
		categories: make(map[string]models.Category),
	}
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return &product, nil
}

// GetBySlug returns a product by its slug.
func (r *MockProductRepository) GetBySlug(slug string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Slug == slug {
			product := p
			return &product, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", slug, ErrNotFound)
}

// GetActive returns active products, optionally filtered by category slug.
func (r *MockProductRepository) GetActive(categorySlug string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var categoryID string
	if categorySlug != "" {
		for _, c := range r.categories {
			if c.Slug == categorySlug {
				categoryID = c.ID
				break
			}
		}
	}

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Status != models.ProductStatusActive {
			continue
		}
		if categorySlug != "" && p.CategoryID != categoryID {
			continue
		}
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].Name < productList[j].Name
	})
	return productList, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// Update modifies an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	r.products[product.ID] = *product
	return nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// getActiveCategories returns active categories in display order. It is
// exposed through the CategoryRepository view below.
func (r *MockProductRepository) getActiveCategories() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if c.Active {
			categoryList = append(categoryList, c)
		}
	}
	sort.Slice(categoryList, func(i, j int) bool {
		return categoryList[i].SortOrder < categoryList[j].SortOrder
	})
	return categoryList, nil
}

func (r *MockProductRepository) createCategory(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	r.categories[category.ID] = *category
	return nil
}

// Categories returns the repository's CategoryRepository view, backed by
// the same in-memory data.
func (r *MockProductRepository) Categories() CategoryRepository {
	return &mockCategoryView{repo: r}
}

type mockCategoryView struct {
	repo *MockProductRepository
}

func (v *mockCategoryView) GetActive() ([]models.Category, error) {
	return v.repo.getActiveCategories()
}

func (v *mockCategoryView) Create(category *models.Category) error {
	return v.repo.createCategory(category)
}
