package handlers

import (
	"toystore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DeliveryHandler exposes the staff-only shipping operations.
type DeliveryHandler struct {
	service *services.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(service *services.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{
		service: service,
	}
}

// RegisterRoutes registers the admin delivery routes with the Fiber app.
func (h *DeliveryHandler) RegisterRoutes(router fiber.Router, requireAdmin fiber.Handler) {
	adminRoutes := router.Group("/admin/orders", requireAdmin)
	adminRoutes.Post("/:id/delivery", h.HandleSchedule)
	adminRoutes.Post("/:id/ship", h.HandleShip)
	adminRoutes.Post("/:id/deliver", h.HandleConfirmDelivered)
}

// ScheduleRequest represents the request body for scheduling a delivery.
type ScheduleRequest struct {
	Address string `json:"address" validate:"omitempty,max=500"`
}

// HandleSchedule creates the delivery of an order.
func (h *DeliveryHandler) HandleSchedule(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid order ID", err)
	}

	var req ScheduleRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &req); !ok {
			return err
		}
	}

	delivery, err := h.service.Schedule(c.UserContext(), orderID, req.Address)
	if err != nil {
		return respondError(c, "Could not schedule delivery", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Delivery scheduled",
		"delivery": delivery,
	})
}

// HandleShip marks a paid order as shipped.
func (h *DeliveryHandler) HandleShip(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid order ID", err)
	}

	delivery, err := h.service.Ship(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, "Could not ship order", err)
	}
	return c.JSON(fiber.Map{
		"message":  "Order shipped",
		"delivery": delivery,
	})
}

// HandleConfirmDelivered marks a shipped order as delivered.
func (h *DeliveryHandler) HandleConfirmDelivered(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, "Invalid order ID", err)
	}

	delivery, err := h.service.ConfirmDelivered(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, "Could not confirm delivery", err)
	}
	return c.JSON(fiber.Map{
		"message":  "Order delivered",
		"delivery": delivery,
	})
}
