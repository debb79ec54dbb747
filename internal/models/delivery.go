package models

import "time"

// DeliveryStatus is the shipment state of an order.
type DeliveryStatus string

const (
	DeliveryStatusPending    DeliveryStatus = "Pending"
	DeliveryStatusAssembling DeliveryStatus = "Assembling"
	DeliveryStatusInTransit  DeliveryStatus = "InTransit"
	DeliveryStatusDelivered  DeliveryStatus = "Delivered"
)

// Delivery tracks the shipment of an order.
type Delivery struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	OrderID       uint           `json:"order_id" gorm:"uniqueIndex;not null"`
	Address       string         `json:"address" gorm:"type:varchar(500);not null"`
	Status        DeliveryStatus `json:"status" gorm:"type:varchar(20);not null;default:'Pending'"`
	ShippedDate   *time.Time     `json:"shipped_date,omitempty"`
	DeliveredDate *time.Time     `json:"delivered_date,omitempty"`
}

// TableName keeps the singular table name of the store schema.
func (Delivery) TableName() string {
	return "delivery"
}
