package services

import (
	"encoding/json"
	"time"

	"toystore/internal/models"
	"toystore/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Routing keys of the order lifecycle events.
const (
	EventOrderCreated   = "order.created"
	EventOrderPaid      = "order.paid"
	EventOrderCancelled = "order.cancelled"
	EventOrderShipped   = "order.shipped"
	EventOrderDelivered = "order.delivered"
)

// EventPublisher sends a message to the order events exchange.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderEvent is the message body published for every order status change.
type OrderEvent struct {
	EventID    string             `json:"event_id"`
	OrderID    uint               `json:"order_id"`
	UserID     uint               `json:"user_id"`
	Status     models.OrderStatus `json:"status"`
	Total      decimal.Decimal    `json:"total"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// publishOrderEvent is best effort: the state change is already committed,
// so failures are logged and never returned.
func publishOrderEvent(publisher EventPublisher, routingKey string, order *models.Order) {
	if publisher == nil {
		logger.Log.Debug("event publisher not configured, skipping", zap.String("routing_key", routingKey))
		return
	}

	event := OrderEvent{
		EventID:    uuid.NewString(),
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total(),
		OccurredAt: time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		logger.Log.Error("failed to marshal order event", zap.Uint("order_id", order.ID), zap.Error(err))
		return
	}
	if err := publisher.Publish(routingKey, body); err != nil {
		logger.Log.Warn("failed to publish order event",
			zap.String("routing_key", routingKey),
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
		return
	}
	logger.Log.Info("published order event",
		zap.String("routing_key", routingKey),
		zap.Uint("order_id", order.ID),
		zap.String("event_id", event.EventID),
	)
}
