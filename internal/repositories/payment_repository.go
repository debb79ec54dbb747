package repositories

import (
	"context"
	"fmt"

	"toystore/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	// GetByOrderID returns ErrNotFound when the order has no payment yet.
	GetByOrderID(ctx context.Context, orderID uint) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{db: db}
}

func (r *GORMPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment for order %d: %w", payment.OrderID, err)
	}
	return nil
}

func (r *GORMPaymentRepository) GetByOrderID(ctx context.Context, orderID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, notFoundOr(err, "payment for order %d", orderID)
	}
	return &payment, nil
}

func (r *GORMPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", payment.ID).
		Updates(map[string]any{
			"method":       payment.Method,
			"status":       payment.Status,
			"payment_date": payment.PaymentDate,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update payment %d: %w", payment.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment with ID %d: %w", payment.ID, ErrNotFound)
	}
	return nil
}
