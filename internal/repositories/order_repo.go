package repositories

import (
	"context"

	"toystore/internal/models"
)

// OrderRepository defines the interface for order data access.
// Every read that takes a userID only matches orders owned by that user.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	CreateItem(ctx context.Context, item *models.OrderItem) error
	// GetByID loads an order with its items regardless of owner.
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByIDAndUserID(ctx context.Context, id, userID uint) (*models.Order, error)
	// GetDetail loads an owned order with items, their products, payment and delivery.
	GetDetail(ctx context.Context, id, userID uint) (*models.Order, error)
	// ListByUser returns the user's orders with items, newest first.
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	// UpdateStatus moves the order from status from to status to. It fails with
	// ErrStatusConflict when the order is no longer in status from.
	UpdateStatus(ctx context.Context, id uint, from, to models.OrderStatus) error
}
