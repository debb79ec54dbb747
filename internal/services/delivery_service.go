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

// DeliveryService drives the shipping side of the order lifecycle.
// It is used by staff, so it does not check order ownership.
type DeliveryService struct {
	store     repositories.Store
	publisher EventPublisher
}

// NewDeliveryService creates a new DeliveryService. publisher may be nil.
func NewDeliveryService(store repositories.Store, publisher EventPublisher) *DeliveryService {
	return &DeliveryService{
		store:     store,
		publisher: publisher,
	}
}

// Schedule creates the pending delivery of an order. A blank address falls back to
// the address stored on the customer's account.
func (s *DeliveryService) Schedule(ctx context.Context, orderID uint, address string) (*models.Delivery, error) {
	var delivery *models.Delivery
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		order, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			return orderLookupError(err)
		}
		if order.Status.IsTerminal() {
			return apperrors.ErrInvalidTransition.Wrapf("order %d is %s", order.ID, order.Status)
		}

		_, err = tx.Deliveries().GetByOrderID(ctx, orderID)
		if err == nil {
			return apperrors.ErrDeliveryExists.Wrapf("order %d", orderID)
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		address = strings.TrimSpace(address)
		if address == "" {
			user, err := tx.Users().GetByID(ctx, order.UserID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return apperrors.ErrUserNotFound.Wrap(err)
				}
				return err
			}
			address = user.Address
		}

		delivery = &models.Delivery{
			OrderID: orderID,
			Address: address,
			Status:  models.DeliveryStatusPending,
		}
		return tx.Deliveries().Create(ctx, delivery)
	})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	logger.Log.Info("delivery scheduled", zap.Uint("order_id", orderID), zap.Uint("delivery_id", delivery.ID))
	return delivery, nil
}

// Ship hands a paid order to the carrier.
func (s *DeliveryService) Ship(ctx context.Context, orderID uint) (*models.Delivery, error) {
	return s.advance(ctx, orderID, models.OrderStatusShipped, EventOrderShipped, func(d *models.Delivery, now time.Time) {
		d.Status = models.DeliveryStatusInTransit
		d.ShippedDate = &now
	})
}

// ConfirmDelivered records that a shipped order reached the customer.
func (s *DeliveryService) ConfirmDelivered(ctx context.Context, orderID uint) (*models.Delivery, error) {
	return s.advance(ctx, orderID, models.OrderStatusDelivered, EventOrderDelivered, func(d *models.Delivery, now time.Time) {
		d.Status = models.DeliveryStatusDelivered
		d.DeliveredDate = &now
	})
}

// advance moves the order to next and updates its delivery in one transaction.
func (s *DeliveryService) advance(
	ctx context.Context,
	orderID uint,
	next models.OrderStatus,
	routingKey string,
	apply func(d *models.Delivery, now time.Time),
) (*models.Delivery, error) {
	var (
		order    *models.Order
		delivery *models.Delivery
	)
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		order, err = tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			return orderLookupError(err)
		}
		if !order.Status.CanTransitionTo(next) {
			return apperrors.ErrInvalidTransition.Wrapf("order %d is %s, cannot become %s", order.ID, order.Status, next)
		}

		delivery, err = tx.Deliveries().GetByOrderID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrDeliveryNotFound.Wrap(err)
			}
			return err
		}

		apply(delivery, time.Now())
		if err := tx.Deliveries().Update(ctx, delivery); err != nil {
			return err
		}
		return transitionOrder(ctx, tx, order, next)
	})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	logger.Log.Info("order status changed", zap.Uint("order_id", orderID), zap.String("status", string(next)))
	publishOrderEvent(s.publisher, routingKey, order)
	return delivery, nil
}
