package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the state of a payment record.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusSucceeded PaymentStatus = "Succeeded"
)

// Supported payment methods.
const (
	PaymentMethodCard    = "Card"
	PaymentMethodEWallet = "E-wallet"
	PaymentMethodCash    = "Cash"
)

// Payment is the single payment record attached to an order.
type Payment struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"uniqueIndex;not null"`
	Method      string          `json:"method" gorm:"type:varchar(50);not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null;check:amount > 0"`
	Status      PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'Pending'"`
	PaymentDate *time.Time      `json:"payment_date,omitempty"`
}
