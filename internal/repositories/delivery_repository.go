package repositories

import (
	"context"
	"fmt"

	"toystore/internal/models"

	"gorm.io/gorm"
)

// DeliveryRepository defines the interface for delivery data access.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *models.Delivery) error
	GetByOrderID(ctx context.Context, orderID uint) (*models.Delivery, error)
	Update(ctx context.Context, delivery *models.Delivery) error
}

// GORMDeliveryRepository is a GORM implementation of DeliveryRepository.
type GORMDeliveryRepository struct {
	db *gorm.DB
}

// NewGORMDeliveryRepository creates a new instance of GORMDeliveryRepository.
func NewGORMDeliveryRepository(db *gorm.DB) *GORMDeliveryRepository {
	return &GORMDeliveryRepository{db: db}
}

func (r *GORMDeliveryRepository) Create(ctx context.Context, delivery *models.Delivery) error {
	if err := r.db.WithContext(ctx).Create(delivery).Error; err != nil {
		return fmt.Errorf("failed to create delivery for order %d: %w", delivery.OrderID, err)
	}
	return nil
}

func (r *GORMDeliveryRepository) GetByOrderID(ctx context.Context, orderID uint) (*models.Delivery, error) {
	var delivery models.Delivery
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&delivery).Error; err != nil {
		return nil, notFoundOr(err, "delivery for order %d", orderID)
	}
	return &delivery, nil
}

func (r *GORMDeliveryRepository) Update(ctx context.Context, delivery *models.Delivery) error {
	if err := r.db.WithContext(ctx).Save(delivery).Error; err != nil {
		return fmt.Errorf("failed to update delivery %d: %w", delivery.ID, err)
	}
	return nil
}
