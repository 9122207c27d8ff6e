package services_test

import (
	"fmt"
	"regexp"
	"testing"

	"undangan/internal/models"
	"undangan/internal/repositories"
	"undangan/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCheckoutFixture(t *testing.T) (*services.CheckoutService, *repositories.MockProductRepository, *repositories.MockOrderRepository, *repositories.MemoryCartStore) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	orderRepo := repositories.NewMockOrderRepository(productRepo)
	cartStore := repositories.NewMemoryCartStore()
	service := services.NewCheckoutService(cartStore, productRepo, orderRepo, nil)
	return service, productRepo, orderRepo, cartStore
}

func validCheckoutInput() services.CheckoutInput {
	return services.CheckoutInput{
		CustomerName:    "Ayu Lestari",
		CustomerEmail:   "ayu@example.com",
		CustomerPhone:   "+62 812 3456 7890",
		ShippingAddress: "Jl. Melati No. 12, Bandung",
		PaymentMethod:   models.PaymentMethodBankTransfer,
	}
}

func TestCheckoutService_EmptyCartRejected(t *testing.T) {
	service, _, _, cartStore := newCheckoutFixture(t)

	_, err := service.Checkout("sess-1", validCheckoutInput())
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	_, err = service.Preview("sess-1")
	assert.ErrorIs(t, err, services.ErrEmptyCart)

	cart, err := cartStore.Get("sess-1")
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCheckoutService_TotalsInvariant(t *testing.T) {
	service, productRepo, _, cartStore := newCheckoutFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Classic Floral Invitation", Slug: "classic-floral-invitation",
		Price: 44.99, StockQuantity: 50, TrackStock: true,
	})

	assert.NoError(t, cartStore.Save("sess-1", models.Cart{product.ID: 3}))

	order, err := service.Checkout("sess-1", validCheckoutInput())
	assert.NoError(t, err)

	subtotal := 44.99 * 3
	assert.InDelta(t, subtotal, order.Subtotal, 1e-9)
	assert.InDelta(t, 13.50, order.TaxAmount, 1e-9) // round2(134.97 * 0.10)
	assert.Equal(t, services.ShippingCost, order.ShippingCost)
	assert.InDelta(t, order.Subtotal+order.TaxAmount+order.ShippingCost, order.Total, 1e-9)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}

func TestCheckoutService_InsufficientStockIsAtomic(t *testing.T) {
	service, productRepo, orderRepo, cartStore := newCheckoutFixture(t)
	plenty := seedProduct(t, productRepo, models.Product{
		Name: "Gold Foil Invitation", Slug: "gold-foil-invitation",
		Price: 75.0, StockQuantity: 50, TrackStock: true,
	})
	scarce := seedProduct(t, productRepo, models.Product{
		Name: "Engraved Keychain Favor", Slug: "engraved-keychain-favor",
		Price: 15.0, StockQuantity: 2, TrackStock: true,
	})

	assert.NoError(t, cartStore.Save("sess-1", models.Cart{plenty.ID: 3, scarce.ID: 5}))

	var stockErr *services.StockError
	_, err := service.Checkout("sess-1", validCheckoutInput())
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Engraved Keychain Favor", stockErr.ProductName)

	// No order, no stock movement, cart untouched.
	exists, err := orderRepo.ExistsByCode("AD-00000000")
	assert.NoError(t, err)
	assert.False(t, exists)

	got, err := productRepo.GetByID(plenty.ID)
	assert.NoError(t, err)
	assert.Equal(t, 50, got.StockQuantity)
	got, err = productRepo.GetByID(scarce.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, got.StockQuantity)

	cart, err := cartStore.Get("sess-1")
	assert.NoError(t, err)
	assert.Len(t, cart, 2)
}

func TestCheckoutService_SuccessfulCheckout(t *testing.T) {
	service, productRepo, orderRepo, cartStore := newCheckoutFixture(t)
	sale := 59.0
	invitation := seedProduct(t, productRepo, models.Product{
		Name: "Gold Foil Invitation", Slug: "gold-foil-invitation",
		Price: 75.0, SalePrice: &sale, SKU: "AD-INV002",
		StockQuantity: 30, TrackStock: true,
	})
	card := seedProduct(t, productRepo, models.Product{
		Name: "Minimalist Thank You Card", Slug: "minimalist-thank-you-card",
		Price: 20.0, SKU: "AD-TYC001", TrackStock: false,
	})

	assert.NoError(t, cartStore.Save("sess-1", models.Cart{invitation.ID: 2, card.ID: 1}))

	order, err := service.Checkout("sess-1", validCheckoutInput())
	assert.NoError(t, err)
	assert.Regexp(t, `^AD-[A-Z0-9]{8}$`, order.OrderCode)
	assert.Len(t, order.Items, 2)

	// Tracked stock decreased by exactly the ordered quantity; untracked
	// stock is untouched.
	got, err := productRepo.GetByID(invitation.ID)
	assert.NoError(t, err)
	assert.Equal(t, 28, got.StockQuantity)
	got, err = productRepo.GetByID(card.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, got.StockQuantity)

	// Cart is cleared.
	cart, err := cartStore.Get("sess-1")
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	// Billing defaults to shipping when not provided.
	assert.Equal(t, order.ShippingAddress, order.BillingAddress)

	// Line items snapshot the effective price at checkout time; a later
	// price change must not leak into the stored order.
	invitation.SalePrice = nil
	invitation.Price = 99.0
	assert.NoError(t, productRepo.Update(&invitation))

	stored, err := orderRepo.FindByCode(order.OrderCode)
	assert.NoError(t, err)
	for _, item := range stored.Items {
		switch item.ProductID {
		case invitation.ID:
			assert.Equal(t, 59.0, item.Price)
			assert.Equal(t, "AD-INV002", item.ProductSKU)
			assert.Equal(t, "Gold Foil Invitation", item.ProductName)
			assert.Equal(t, 2, item.Quantity)
			assert.Equal(t, 118.0, item.Total)
		case card.ID:
			assert.Equal(t, 20.0, item.Price)
		default:
			t.Fatalf("unexpected product %s in order", item.ProductID)
		}
	}
}

func TestCheckoutService_OrderCodesAreUnique(t *testing.T) {
	service, productRepo, _, cartStore := newCheckoutFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Watercolor Save the Date", Slug: "watercolor-save-the-date",
		Price: 35.0, TrackStock: false,
	})

	codePattern := regexp.MustCompile(`^AD-[A-Z0-9]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		sessionID := fmt.Sprintf("sess-%d", i)
		assert.NoError(t, cartStore.Save(sessionID, models.Cart{product.ID: 1}))

		order, err := service.Checkout(sessionID, validCheckoutInput())
		assert.NoError(t, err)
		assert.Regexp(t, codePattern, order.OrderCode)
		assert.False(t, seen[order.OrderCode], "duplicate order code %s", order.OrderCode)
		seen[order.OrderCode] = true
	}
}

func TestCheckoutService_PreviewTotals(t *testing.T) {
	service, productRepo, _, cartStore := newCheckoutFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Classic Floral Invitation", Slug: "classic-floral-invitation",
		Price: 45.0, StockQuantity: 50, TrackStock: true,
	})

	assert.NoError(t, cartStore.Save("sess-1", models.Cart{product.ID: 2}))

	view, err := service.Preview("sess-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 90.0, view.Subtotal)
	assert.Equal(t, 9.0, view.TaxAmount)
	assert.Equal(t, services.ShippingCost, view.ShippingCost)
	assert.Equal(t, 90.0+9.0+services.ShippingCost, view.Total)
}
