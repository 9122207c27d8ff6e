package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"undangan/internal/models"
	"undangan/internal/repositories"
	"undangan/pkg/rabbitmq"
)

// Pricing constants. Tax is a fixed 10% of the subtotal, shipping a flat
// fee; both apply identically to the checkout preview and the final order.
const (
	TaxRate      = 0.10
	ShippingCost = 15.0
)

// CheckoutService turns a session cart into a durable order. It owns the
// single forward transition of the flow: cart non-empty -> order created ->
// cart cleared.
type CheckoutService struct {
	carts    repositories.CartStore
	products repositories.ProductRepository
	orders   repositories.OrderRepository
	mqClient *rabbitmq.Client
}

// NewCheckoutService creates a new CheckoutService. mqClient may be nil;
// event publishing is then skipped.
func NewCheckoutService(
	carts repositories.CartStore,
	products repositories.ProductRepository,
	orders repositories.OrderRepository,
	mqClient *rabbitmq.Client,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		products: products,
		orders:   orders,
		mqClient: mqClient,
	}
}

// CheckoutInput is the customer/payment form submitted at checkout.
type CheckoutInput struct {
	CustomerName    string `json:"customer_name" validate:"required,max=255"`
	CustomerEmail   string `json:"customer_email" validate:"required,email,max=255"`
	CustomerPhone   string `json:"customer_phone" validate:"required,max=20"`
	ShippingAddress string `json:"shipping_address" validate:"required"`
	BillingAddress  string `json:"billing_address" validate:"omitempty"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=credit_card bank_transfer cash_on_delivery"`
	Notes           string `json:"notes" validate:"omitempty,max=500"`
}

// CheckoutView is the view model for the checkout page.
type CheckoutView struct {
	Items        []CartLine `json:"items"`
	Subtotal     float64    `json:"subtotal"`
	TaxAmount    float64    `json:"tax_amount"`
	ShippingCost float64    `json:"shipping_cost"`
	Total        float64    `json:"total"`
}

// pricedLine is a cart line re-priced against the live catalog.
type pricedLine struct {
	product   *models.Product
	quantity  int
	unitPrice float64
	lineTotal float64
}

// priceCart re-fetches every cart line's product and prices it at the
// current effective price. Lines whose product no longer exists or is no
// longer active are dropped, mirroring the cart view. Stock is not checked
// here.
func (s *CheckoutService) priceCart(cart models.Cart) ([]pricedLine, float64, error) {
	// Stable order so order items and error reporting are deterministic.
	productIDs := make([]string, 0, len(cart))
	for productID := range cart {
		productIDs = append(productIDs, productID)
	}
	sort.Strings(productIDs)

	lines := make([]pricedLine, 0, len(cart))
	var subtotal float64

	for _, productID := range productIDs {
		quantity := cart[productID]
		product, err := s.products.GetByID(productID)
		if errors.Is(err, repositories.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load product %s: %w", productID, err)
		}
		if !product.IsActive() {
			continue
		}

		unitPrice := product.CurrentPrice()
		lineTotal := unitPrice * float64(quantity)
		lines = append(lines, pricedLine{
			product:   product,
			quantity:  quantity,
			unitPrice: unitPrice,
			lineTotal: lineTotal,
		})
		subtotal += lineTotal
	}

	return lines, subtotal, nil
}

// Preview builds the checkout view model, or ErrEmptyCart when there is
// nothing to check out.
func (s *CheckoutService) Preview(sessionID string) (CheckoutView, error) {
	cart, err := s.carts.Get(sessionID)
	if err != nil {
		return CheckoutView{}, fmt.Errorf("failed to load cart: %w", err)
	}

	lines, subtotal, err := s.priceCart(cart)
	if err != nil {
		return CheckoutView{}, err
	}
	if len(lines) == 0 {
		return CheckoutView{}, ErrEmptyCart
	}

	view := CheckoutView{
		Items:        make([]CartLine, 0, len(lines)),
		Subtotal:     subtotal,
		TaxAmount:    round2(subtotal * TaxRate),
		ShippingCost: ShippingCost,
	}
	view.Total = view.Subtotal + view.TaxAmount + view.ShippingCost

	for _, line := range lines {
		view.Items = append(view.Items, CartLine{
			Product:  *line.product,
			Quantity: line.quantity,
			Total:    line.lineTotal,
		})
	}

	return view, nil
}

// Checkout validates the cart against live catalog data, creates the order
// with snapshot line items, decrements tracked stock, and clears the cart.
// The order/items/stock writes happen in one transaction inside the order
// repository: if any product fails its stock check, no order exists and no
// stock has moved.
func (s *CheckoutService) Checkout(sessionID string, input CheckoutInput) (*models.Order, error) {
	cart, err := s.carts.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	lines, subtotal, err := s.priceCart(cart)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Pre-check stock so the common failure surfaces before any write. The
	// transaction's floor-checked decrement still backs this up under
	// concurrency.
	for _, line := range lines {
		if !line.product.HasStock(line.quantity) {
			return nil, &StockError{
				ProductName: line.product.Name,
				Requested:   line.quantity,
				Available:   line.product.StockQuantity,
			}
		}
	}

	taxAmount := round2(subtotal * TaxRate)
	total := subtotal + taxAmount + ShippingCost

	code, err := s.generateOrderCode()
	if err != nil {
		return nil, err
	}

	billingAddress := input.BillingAddress
	if billingAddress == "" {
		billingAddress = input.ShippingAddress
	}

	items := make([]models.OrderItem, 0, len(lines))
	decrements := make(map[string]int)
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID:      line.product.ID,
			ProductName:    line.product.Name,
			ProductSKU:     line.product.SKU,
			Price:          line.unitPrice,
			Quantity:       line.quantity,
			Total:          line.lineTotal,
			ProductOptions: "{}",
		})
		if line.product.TrackStock {
			decrements[line.product.ID] = line.quantity
		}
	}

	order := &models.Order{
		OrderCode:       code,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  billingAddress,
		Subtotal:        subtotal,
		TaxAmount:       taxAmount,
		ShippingCost:    ShippingCost,
		Total:           total,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
		Items:           items,
	}

	if err := s.orders.PlaceOrder(order, decrements); err != nil {
		var stockErr *repositories.InsufficientStockError
		if errors.As(err, &stockErr) {
			// A concurrent checkout drained the stock between our
			// pre-check and the transaction. Report it the same way.
			return nil, s.stockErrorFor(stockErr.ProductID, cart[stockErr.ProductID])
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	if err := s.carts.Clear(sessionID); err != nil {
		// The order exists at this point; a stale cart is recoverable, so
		// log and move on rather than failing the checkout.
		log.Printf("Warning: failed to clear cart for session %s after order %s: %v", sessionID, code, err)
	}

	s.publishOrderPlaced(order)

	return order, nil
}

// stockErrorFor builds a StockError from the product's current state.
func (s *CheckoutService) stockErrorFor(productID string, requested int) error {
	available := 0
	name := productID
	if product, err := s.products.GetByID(productID); err == nil {
		available = product.StockQuantity
		name = product.Name
	}
	return &StockError{ProductName: name, Requested: requested, Available: available}
}

// publishOrderPlaced emits an order.placed event for downstream consumers
// (fulfilment, confirmation email). Publishing failures are logged, never
// surfaced: the order is already durable.
func (s *CheckoutService) publishOrderPlaced(order *models.Order) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"order_code":     order.OrderCode,
		"customer_email": order.CustomerEmail,
		"status":         order.Status,
		"total":          order.Total,
	}
	if err := s.mqClient.PublishOrderPlaced(event); err != nil {
		log.Printf("Warning: failed to publish order placed event for order %s: %v", order.OrderCode, err)
	}
}

// generateOrderCode draws "AD-" plus 8 uppercase hex characters and retries
// until no existing order holds the code. The lookup loop, not the
// randomness, is the uniqueness guarantee.
func (s *CheckoutService) generateOrderCode() (string, error) {
	for {
		buf := make([]byte, 4)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate order code: %w", err)
		}
		code := "AD-" + strings.ToUpper(hex.EncodeToString(buf))

		exists, err := s.orders.ExistsByCode(code)
		if err != nil {
			return "", fmt.Errorf("failed to check order code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
