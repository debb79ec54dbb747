package handlers

import (
	"toystore/internal/cart"
	"toystore/internal/middleware"
	"toystore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service *services.CartService
	carts   cart.Store
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, carts cart.Store) *CartHandler {
	return &CartHandler{
		service: service,
		carts:   carts,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	cartRoutes := router.Group("/cart", requireAuth)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Delete("/items/:product_id", h.HandleRemoveItem)
}

// AddItemRequest represents the request body for adding to the cart.
type AddItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"`
}

// HandleGetCart returns the cart priced at current prices.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	userCart, err := h.carts.Get(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, "Could not load cart", err)
	}
	return h.respondView(c, fiber.StatusOK, userCart)
}

// HandleAddItem adds a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	ctx := c.UserContext()
	userCart, err := h.carts.Get(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, "Could not load cart", err)
	}
	if err := h.service.Add(ctx, userCart, req.ProductID, req.Quantity); err != nil {
		return respondError(c, "Could not add item to cart", err)
	}
	if err := h.carts.Save(ctx, userCart); err != nil {
		return respondError(c, "Could not save cart", err)
	}
	return h.respondView(c, fiber.StatusOK, userCart)
}

// HandleRemoveItem drops one product from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID, err := paramID(c, "product_id")
	if err != nil {
		return respondError(c, "Invalid product ID", err)
	}

	ctx := c.UserContext()
	userCart, err := h.carts.Get(ctx, middleware.UserID(c))
	if err != nil {
		return respondError(c, "Could not load cart", err)
	}
	if h.service.Remove(userCart, productID) {
		if err := h.carts.Save(ctx, userCart); err != nil {
			return respondError(c, "Could not save cart", err)
		}
	}
	return h.respondView(c, fiber.StatusOK, userCart)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.carts.Delete(c.UserContext(), middleware.UserID(c)); err != nil {
		return respondError(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}

func (h *CartHandler) respondView(c *fiber.Ctx, status int, userCart *cart.Cart) error {
	view, err := h.service.View(c.UserContext(), userCart)
	if err != nil {
		return respondError(c, "Could not price cart", err)
	}
	return c.Status(status).JSON(view)
}
