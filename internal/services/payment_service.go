package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"toystore/internal/apperrors"
	"toystore/internal/models"
	"toystore/internal/repositories"
	"toystore/pkg/logger"

	"go.uber.org/zap"
)

// PaymentService records payments against orders.
type PaymentService struct {
	store     repositories.Store
	publisher EventPublisher
}

// NewPaymentService creates a new PaymentService. publisher may be nil.
func NewPaymentService(store repositories.Store, publisher EventPublisher) *PaymentService {
	return &PaymentService{
		store:     store,
		publisher: publisher,
	}
}

// Pay marks the order paid with method. An order has at most one payment:
// paying again updates the existing record in place and keeps its amount.
func (s *PaymentService) Pay(ctx context.Context, orderID, userID uint, method string) (*models.Payment, error) {
	if _, err := s.store.Orders().GetByIDAndUserID(ctx, orderID, userID); err != nil {
		return nil, orderLookupError(err)
	}

	method = strings.TrimSpace(method)
	if method == "" {
		return nil, apperrors.ErrMethodRequired
	}

	var (
		order   *models.Order
		payment *models.Payment
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		order, err = tx.Orders().GetByIDAndUserID(ctx, orderID, userID)
		if err != nil {
			return orderLookupError(err)
		}
		if order.Status != models.OrderStatusPaid && !order.Status.CanTransitionTo(models.OrderStatusPaid) {
			return apperrors.ErrInvalidTransition.Wrapf("order %d is %s", order.ID, order.Status)
		}

		now := time.Now()
		existing, err := tx.Payments().GetByOrderID(ctx, order.ID)
		switch {
		case err == nil:
			existing.Method = method
			existing.Status = models.PaymentStatusSucceeded
			existing.PaymentDate = &now
			if err := tx.Payments().Update(ctx, existing); err != nil {
				return err
			}
			payment = existing
		case errors.Is(err, repositories.ErrNotFound):
			payment = &models.Payment{
				OrderID:     order.ID,
				Method:      method,
				Amount:      order.Total(),
				Status:      models.PaymentStatusSucceeded,
				PaymentDate: &now,
			}
			if err := tx.Payments().Create(ctx, payment); err != nil {
				return err
			}
		default:
			return err
		}
		return transitionOrder(ctx, tx, order, models.OrderStatusPaid)
	})
	if err != nil {
		logger.Log.Warn("payment failed", zap.Uint("order_id", orderID), zap.Error(err))
		return nil, apperrors.Persistence(err)
	}

	logger.Log.Info("order paid",
		zap.Uint("order_id", order.ID),
		zap.String("method", method),
		zap.String("amount", payment.Amount.StringFixed(2)),
	)
	publishOrderEvent(s.publisher, EventOrderPaid, order)
	return payment, nil
}

// GetPayment returns the payment of one of the user's orders, or nil if it has none.
func (s *PaymentService) GetPayment(ctx context.Context, orderID, userID uint) (*models.Payment, error) {
	if _, err := s.store.Orders().GetByIDAndUserID(ctx, orderID, userID); err != nil {
		return nil, orderLookupError(err)
	}

	payment, err := s.store.Payments().GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, apperrors.Persistence(err)
	}
	return payment, nil
}
