package services_test

import (
	"testing"

	"undangan/internal/models"
	"undangan/internal/repositories"
	"undangan/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockProductRepository, *repositories.MemoryCartStore) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	cartStore := repositories.NewMemoryCartStore()
	return services.NewCartService(cartStore, productRepo), productRepo, cartStore
}

func seedProduct(t *testing.T, repo *repositories.MockProductRepository, p models.Product) models.Product {
	t.Helper()
	if p.Status == "" {
		p.Status = models.ProductStatusActive
	}
	err := repo.Create(&p)
	assert.NoError(t, err)
	return p
}

func TestCartService_AddMergesQuantities(t *testing.T) {
	service, productRepo, _ := newCartFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Classic Floral Invitation", Slug: "classic-floral-invitation",
		Price: 45.0, StockQuantity: 50, TrackStock: true,
	})

	assert.NoError(t, service.Add("sess-1", product.ID, 4))
	assert.NoError(t, service.Add("sess-1", product.ID, 5))

	view, err := service.View("sess-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 9, view.Items[0].Quantity)
	assert.Equal(t, 45.0*9, view.Items[0].Total)
	assert.Equal(t, 45.0*9, view.Subtotal)
}

func TestCartService_AddMergeIsNotClampedAtTen(t *testing.T) {
	service, productRepo, _ := newCartFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Gold Foil Invitation", Slug: "gold-foil-invitation",
		Price: 75.0, StockQuantity: 50, TrackStock: true,
	})

	// Each request is bounded at 10, but the merged line is not: two adds
	// of 8 land at 16. Documented current behavior.
	assert.NoError(t, service.Add("sess-1", product.ID, 8))
	assert.NoError(t, service.Add("sess-1", product.ID, 8))

	view, err := service.View("sess-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, 16, view.Items[0].Quantity)
}

func TestCartService_AddValidation(t *testing.T) {
	service, productRepo, _ := newCartFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Watercolor Save the Date", Slug: "watercolor-save-the-date",
		Price: 35.0, StockQuantity: 10, TrackStock: true,
	})

	var validationErr *services.ValidationError

	// Quantity below/above the per-request range.
	err := service.Add("sess-1", product.ID, 0)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "quantity", validationErr.Field)

	err = service.Add("sess-1", product.ID, 11)
	assert.ErrorAs(t, err, &validationErr)

	// Unknown product.
	err = service.Add("sess-1", "no-such-product", 1)
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "product_id", validationErr.Field)

	// Inactive product is treated like an absent one.
	draft := seedProduct(t, productRepo, models.Product{
		Name: "Unreleased Card", Slug: "unreleased-card",
		Price: 10.0, Status: models.ProductStatusDraft,
	})
	err = service.Add("sess-1", draft.ID, 1)
	assert.ErrorAs(t, err, &validationErr)

	// Nothing should have reached the cart.
	view, err := service.View("sess-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_AddInsufficientStock(t *testing.T) {
	service, productRepo, _ := newCartFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Engraved Keychain Favor", Slug: "engraved-keychain-favor",
		Price: 15.0, StockQuantity: 5, TrackStock: true,
	})

	var stockErr *services.StockError
	err := service.Add("sess-1", product.ID, 6)
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Engraved Keychain Favor", stockErr.ProductName)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, stockErr.Available)

	// The merged total is what gets stock-checked.
	assert.NoError(t, service.Add("sess-1", product.ID, 3))
	err = service.Add("sess-1", product.ID, 3)
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)
}

func TestCartService_AddUntrackedStockAlwaysAvailable(t *testing.T) {
	service, productRepo, _ := newCartFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Minimalist Thank You Card", Slug: "minimalist-thank-you-card",
		Price: 20.0, StockQuantity: 0, TrackStock: false,
	})

	assert.NoError(t, service.Add("sess-1", product.ID, 10))
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	service, productRepo, _ := newCartFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Classic Floral Invitation", Slug: "classic-floral-invitation",
		Price: 45.0, StockQuantity: 50, TrackStock: true,
	})

	assert.NoError(t, service.Add("sess-1", product.ID, 4))

	// Overwrite, not merge.
	assert.NoError(t, service.Update("sess-1", product.ID, 2))
	view, err := service.View("sess-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, view.Items[0].Quantity)

	// Updating a line that isn't in the cart is a silent no-op.
	assert.NoError(t, service.Update("sess-1", "no-such-product", 3))
	view, err = service.View("sess-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)

	// Quantity 0 removes the line.
	assert.NoError(t, service.Update("sess-1", product.ID, 0))
	view, err = service.View("sess-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)

	// Remove is unconditional.
	assert.NoError(t, service.Add("sess-1", product.ID, 1))
	assert.NoError(t, service.Remove("sess-1", product.ID))
	view, err = service.View("sess-1")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_ViewUsesCurrentPriceAndDropsDeleted(t *testing.T) {
	service, productRepo, _ := newCartFixture(t)
	invitation := seedProduct(t, productRepo, models.Product{
		Name: "Gold Foil Invitation", Slug: "gold-foil-invitation",
		Price: 75.0, StockQuantity: 50, TrackStock: true,
	})
	keychain := seedProduct(t, productRepo, models.Product{
		Name: "Engraved Keychain Favor", Slug: "engraved-keychain-favor",
		Price: 15.0, StockQuantity: 50, TrackStock: true,
	})

	assert.NoError(t, service.Add("sess-1", invitation.ID, 2))
	assert.NoError(t, service.Add("sess-1", keychain.ID, 1))

	// A sale price set after the add shows up at view time.
	sale := 59.0
	invitation.SalePrice = &sale
	assert.NoError(t, productRepo.Update(&invitation))

	view, err := service.View("sess-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 59.0*2+15.0, view.Subtotal)

	// A deleted product is silently dropped from the view.
	assert.NoError(t, productRepo.Delete(keychain.ID))
	view, err = service.View("sess-1")
	assert.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, "Gold Foil Invitation", view.Items[0].Product.Name)
	assert.Equal(t, 59.0*2, view.Subtotal)
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	service, productRepo, _ := newCartFixture(t)
	product := seedProduct(t, productRepo, models.Product{
		Name: "Classic Floral Invitation", Slug: "classic-floral-invitation",
		Price: 45.0, StockQuantity: 50, TrackStock: true,
	})

	assert.NoError(t, service.Add("sess-1", product.ID, 3))

	view, err := service.View("sess-2")
	assert.NoError(t, err)
	assert.Empty(t, view.Items)
}
