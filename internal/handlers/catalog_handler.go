package handlers

import (
	"strings"

	"toystore/internal/apperrors"
	"toystore/internal/models"
	"toystore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the public product catalog.
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
	router.Get("/categories", h.HandleGetCategories)
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// HandleGetCategories lists every category.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetProducts lists in-stock products.
// Optional query parameters: category_id, min_age and search.
func (h *CatalogHandler) HandleGetProducts(c *fiber.Ctx) error {
	categoryID := c.QueryInt("category_id", 0)
	minAge := c.QueryInt("min_age", 0)
	if categoryID < 0 || minAge < 0 {
		return respondError(c, "Invalid filter", apperrors.ErrValidation.Wrapf("category_id and min_age must not be negative"))
	}

	products, err := h.service.ListProducts(c.UserContext(), models.ProductFilter{
		CategoryID: uint(categoryID),
		MinAge:     minAge,
		Search:     strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *CatalogHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid product ID", err)
	}

	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, "Could not retrieve product", err)
	}
	return c.JSON(product)
}
