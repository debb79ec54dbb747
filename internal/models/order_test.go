package models_test

import (
	"testing"

	"toystore/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		want     bool
	}{
		{models.OrderStatusCreated, models.OrderStatusPaid, true},
		{models.OrderStatusCreated, models.OrderStatusCancelled, true},
		{models.OrderStatusCreated, models.OrderStatusShipped, false},
		{models.OrderStatusPaid, models.OrderStatusShipped, true},
		{models.OrderStatusPaid, models.OrderStatusCancelled, true},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusShipped, models.OrderStatusCancelled, false},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, models.OrderStatusDelivered.IsTerminal())
	assert.True(t, models.OrderStatusCancelled.IsTerminal())
	assert.False(t, models.OrderStatusCreated.IsTerminal())
	assert.False(t, models.OrderStatusShipped.IsTerminal())
}

func TestOrder_Total(t *testing.T) {
	order := models.Order{Items: []models.OrderItem{
		{ProductID: 3, Quantity: 1, Price: decimal.RequireFromString("8999.99")},
		{ProductID: 7, Quantity: 2, Price: decimal.RequireFromString("2499.00")},
	}}

	assert.Equal(t, "13997.99", order.Total().StringFixed(2))
	assert.True(t, models.Order{}.Total().IsZero())
}
