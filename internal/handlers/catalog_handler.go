package handlers

import (
	"undangan/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles HTTP requests for the storefront catalog.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/home", h.HandleHome)
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:slug", h.HandleGetProduct)
}

// HandleHome returns the home page view model: active categories plus
// featured products.
func (h *CatalogHandler) HandleHome(c *fiber.Ctx) error {
	view, err := h.service.GetHome()
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(view)
}

// HandleListProducts returns active products, optionally filtered with the
// ?category=<slug> query parameter.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.Query("category"))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct returns a single active product by slug.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProductBySlug(c.Params("slug"))
	if err != nil {
		return renderServiceError(c, err)
	}
	return c.JSON(product)
}
