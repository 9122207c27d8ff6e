package services

import (
	"errors"
	"fmt"
	"sort"

	"undangan/internal/models"
	"undangan/internal/repositories"
)

// Per-request quantity bounds for cart mutations.
const (
	MinLineQuantity = 1
	MaxLineQuantity = 10
)

// CartService handles the session-scoped shopping cart. Every operation
// takes the session ID explicitly; there is no ambient cart state.
type CartService struct {
	carts    repositories.CartStore
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartStore, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// CartLine is one line of the cart view. Total is recomputed from the
// product's current price at view time, never stored.
type CartLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Total    float64        `json:"total"`
}

// CartView is the view model for the cart page.
type CartView struct {
	Items        []CartLine `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	TaxRate      float64    `json:"tax_rate"`
	ShippingCost float64    `json:"shipping_cost"`
}

// Add puts quantity of a product into the cart, merging with an existing
// line by summing. The per-request quantity is bounded 1..10; the merged
// line total is not, so repeated adds can push a line past the maximum.
func (s *CartService) Add(sessionID, productID string, quantity int) error {
	if quantity < MinLineQuantity || quantity > MaxLineQuantity {
		return &ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between %d and %d", MinLineQuantity, MaxLineQuantity),
		}
	}

	product, err := s.products.GetByID(productID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &ValidationError{Field: "product_id", Message: "unknown product"}
	}
	if err != nil {
		return fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	if !product.IsActive() {
		return &ValidationError{Field: "product_id", Message: "product is not available"}
	}

	cart, err := s.carts.Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	requested := cart[productID] + quantity
	if !product.HasStock(requested) {
		return &StockError{
			ProductName: product.Name,
			Requested:   requested,
			Available:   product.StockQuantity,
		}
	}

	cart[productID] = requested
	if err := s.carts.Save(sessionID, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Update overwrites a line's quantity. Quantity 0 removes the line;
// updating a line that is not in the cart is a silent no-op.
func (s *CartService) Update(sessionID, productID string, quantity int) error {
	if quantity < 0 || quantity > MaxLineQuantity {
		return &ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between 0 and %d", MaxLineQuantity),
		}
	}

	cart, err := s.carts.Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	if quantity == 0 {
		delete(cart, productID)
	} else if _, ok := cart[productID]; ok {
		cart[productID] = quantity
	}

	if err := s.carts.Save(sessionID, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Remove deletes a line from the cart unconditionally.
func (s *CartService) Remove(sessionID, productID string) error {
	cart, err := s.carts.Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	delete(cart, productID)

	if err := s.carts.Save(sessionID, cart); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// View builds the cart view model. Line totals come from each product's
// current price at call time; lines whose product has been deleted or
// deactivated since being added are silently dropped.
func (s *CartService) View(sessionID string) (CartView, error) {
	cart, err := s.carts.Get(sessionID)
	if err != nil {
		return CartView{}, fmt.Errorf("failed to load cart: %w", err)
	}

	view := CartView{
		Items:        []CartLine{},
		TaxRate:      TaxRate,
		ShippingCost: ShippingCost,
	}

	for productID, quantity := range cart {
		product, err := s.products.GetByID(productID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return CartView{}, fmt.Errorf("failed to load product %s: %w", productID, err)
		}
		if !product.IsActive() {
			continue
		}

		lineTotal := product.CurrentPrice() * float64(quantity)
		view.Items = append(view.Items, CartLine{
			Product:  *product,
			Quantity: quantity,
			Total:    lineTotal,
		})
		view.Subtotal += lineTotal
	}

	// Map iteration order is random; keep the view stable for the client.
	sort.Slice(view.Items, func(i, j int) bool {
		return view.Items[i].Product.Name < view.Items[j].Product.Name
	})

	return view, nil
}
