package handlers

import (
	"toystore/internal/cart"
	"toystore/internal/middleware"
	"toystore/internal/models"
	"toystore/internal/services"
	"toystore/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for checkout, orders and payments.
type OrderHandler struct {
	orders   *services.OrderService
	payments *services.PaymentService
	carts    cart.Store
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *services.OrderService, payments *services.PaymentService, carts cart.Store) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		payments: payments,
		carts:    carts,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	router.Post("/checkout", requireAuth, h.HandleCheckout)

	orderRoutes := router.Group("/orders", requireAuth)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/:id/pay", h.HandlePayOrder)
	orderRoutes.Get("/:id/payment", h.HandleGetPayment)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
}

// HandleCheckout turns the session cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := middleware.UserID(c)

	userCart, err := h.carts.Get(ctx, userID)
	if err != nil {
		return respondError(c, "Could not load cart", err)
	}

	order, err := h.orders.Checkout(ctx, userID, userCart)
	if err != nil {
		return respondError(c, "Checkout failed", err)
	}

	// The order is already committed.
	if err := h.carts.Delete(ctx, userID); err != nil {
		logger.Log.Warn("failed to clear cart after checkout", zap.Uint("user_id", userID), zap.Error(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order created",
		"order":   order,
		"total":   order.Total(),
	})
}

// HandleGetOrders lists the user's orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, "Could not retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves one of the user's orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid order ID", err)
	}

	detail, err := h.orders.OrderDetail(c.UserContext(), orderID, middleware.UserID(c))
	if err != nil {
		return respondError(c, "Could not retrieve order", err)
	}
	return c.JSON(detail)
}

// PayRequest represents the request body for paying an order.
// A blank method is rejected by the payment service.
type PayRequest struct {
	Method string `json:"method" validate:"omitempty,oneof=Card E-wallet Cash"`
}

// HandlePayOrder records a payment for the order.
func (h *OrderHandler) HandlePayOrder(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid order ID", err)
	}

	var req PayRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	payment, err := h.payments.Pay(c.UserContext(), orderID, middleware.UserID(c), req.Method)
	if err != nil {
		return respondError(c, "Payment failed", err)
	}
	return c.JSON(fiber.Map{
		"message": "Payment accepted",
		"payment": payment,
		"status":  models.OrderStatusPaid,
	})
}

// HandleGetPayment returns the order's payment record, if any.
func (h *OrderHandler) HandleGetPayment(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid order ID", err)
	}

	payment, err := h.payments.GetPayment(c.UserContext(), orderID, middleware.UserID(c))
	if err != nil {
		return respondError(c, "Could not retrieve payment", err)
	}
	return c.JSON(fiber.Map{
		"payment": payment,
	})
}

// HandleCancelOrder cancels an unshipped order.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid order ID", err)
	}

	order, err := h.orders.Cancel(c.UserContext(), orderID, middleware.UserID(c))
	if err != nil {
		return respondError(c, "Could not cancel order", err)
	}
	return c.JSON(fiber.Map{
		"message": "Order cancelled",
		"order":   order,
	})
}
