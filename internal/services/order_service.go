package services

import (
	"context"
	"errors"
	"time"

	"toystore/internal/apperrors"
	"toystore/internal/cart"
	"toystore/internal/models"
	"toystore/internal/repositories"
	"toystore/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderSummary is one row of a user's order history.
type OrderSummary struct {
	ID        uint               `json:"id"`
	Status    models.OrderStatus `json:"status"`
	OrderDate time.Time          `json:"order_date"`
	ItemCount int                `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
}

// OrderDetailItem is an order line with the product's display fields.
type OrderDetailItem struct {
	ProductID     uint            `json:"product_id"`
	Name          string          `json:"name"`
	ImageFilename string          `json:"image_filename,omitempty"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

// OrderDetail is the full view of one order.
type OrderDetail struct {
	ID             uint                   `json:"id"`
	Status         models.OrderStatus     `json:"status"`
	OrderDate      time.Time              `json:"order_date"`
	Total          decimal.Decimal        `json:"total"`
	PaymentStatus  *models.PaymentStatus  `json:"payment_status"`
	PaymentMethod  string                 `json:"payment_method,omitempty"`
	DeliveryStatus *models.DeliveryStatus `json:"delivery_status"`
	Items          []OrderDetailItem      `json:"items"`
}

// OrderService handles checkout and the customer side of the order lifecycle.
type OrderService struct {
	store     repositories.Store
	publisher EventPublisher
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(store repositories.Store, publisher EventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
	}
}

// Checkout turns the cart into an order in a single transaction.
// Every line snapshots the current product price and takes its quantity out of stock;
// any failure rolls the whole order back. On success the cart is emptied.
func (s *OrderService) Checkout(ctx context.Context, userID uint, c *cart.Cart) (*models.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, apperrors.ErrEmptyCart
	}

	var order *models.Order
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		order = &models.Order{
			UserID: userID,
			Status: models.OrderStatusCreated,
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}

		for _, line := range c.Items {
			product, err := tx.Products().GetByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return apperrors.ErrProductNotFound.Wrap(err)
				}
				return err
			}

			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.Price,
			}
			if err := tx.Orders().CreateItem(ctx, &item); err != nil {
				return err
			}

			if err := tx.Products().DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, repositories.ErrStockConflict) {
					return apperrors.ErrInsufficientStock.Wrap(err)
				}
				return err
			}
			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		logger.Log.Warn("checkout failed", zap.Uint("user_id", userID), zap.Error(err))
		return nil, apperrors.Persistence(err)
	}

	c.Clear()
	logger.Log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.String("total", order.Total().StringFixed(2)),
	)
	publishOrderEvent(s.publisher, EventOrderCreated, order)
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]OrderSummary, error) {
	orders, err := s.store.Orders().ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, OrderSummary{
			ID:        o.ID,
			Status:    o.Status,
			OrderDate: o.OrderDate,
			ItemCount: len(o.Items),
			Total:     o.Total(),
		})
	}
	return summaries, nil
}

// OrderDetail returns one of the user's orders with payment, delivery and product details.
func (s *OrderService) OrderDetail(ctx context.Context, orderID, userID uint) (*OrderDetail, error) {
	order, err := s.store.Orders().GetDetail(ctx, orderID, userID)
	if err != nil {
		return nil, orderLookupError(err)
	}

	detail := &OrderDetail{
		ID:        order.ID,
		Status:    order.Status,
		OrderDate: order.OrderDate,
		Total:     order.Total(),
		Items:     make([]OrderDetailItem, 0, len(order.Items)),
	}
	if order.Payment != nil {
		detail.PaymentStatus = &order.Payment.Status
		detail.PaymentMethod = order.Payment.Method
	}
	if order.Delivery != nil {
		detail.DeliveryStatus = &order.Delivery.Status
	}
	for _, item := range order.Items {
		line := OrderDetailItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal(),
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			line.ImageFilename = item.Product.ImageFilename
		}
		detail.Items = append(detail.Items, line)
	}
	return detail, nil
}

// Cancel cancels an unshipped order and returns its items to stock.
func (s *OrderService) Cancel(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	var order *models.Order
	err := s.store.Transaction(ctx, func(tx repositories.Store) error {
		var err error
		order, err = tx.Orders().GetByIDAndUserID(ctx, orderID, userID)
		if err != nil {
			return orderLookupError(err)
		}
		if !order.Status.CanTransitionTo(models.OrderStatusCancelled) {
			return apperrors.ErrInvalidTransition.Wrapf("order %d is %s", order.ID, order.Status)
		}
		if err := transitionOrder(ctx, tx, order, models.OrderStatusCancelled); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := tx.Products().IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Persistence(err)
	}

	logger.Log.Info("order cancelled", zap.Uint("order_id", order.ID), zap.Uint("user_id", userID))
	publishOrderEvent(s.publisher, EventOrderCancelled, order)
	return order, nil
}

// transitionOrder writes next only if the stored status still matches order.Status.
func transitionOrder(ctx context.Context, tx repositories.Store, order *models.Order, next models.OrderStatus) error {
	if err := tx.Orders().UpdateStatus(ctx, order.ID, order.Status, next); err != nil {
		if errors.Is(err, repositories.ErrStatusConflict) {
			return apperrors.ErrInvalidTransition.Wrap(err)
		}
		return err
	}
	order.Status = next
	return nil
}

func orderLookupError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.ErrOrderNotFound.Wrap(err)
	}
	return apperrors.Persistence(err)
}
