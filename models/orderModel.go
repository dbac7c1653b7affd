package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusApproved,
	OrderStatusCancelled,
	OrderStatusShipped,
	OrderStatusDelivered,
}

var ErrInvalidStatus = fmt.Errorf("status must be one of: %s, %s, %s, %s, %s",
	OrderStatusPending, OrderStatusApproved, OrderStatusCancelled, OrderStatusShipped, OrderStatusDelivered)

// ParseOrderStatus accepts any of the five statuses. There is no transition
// graph: every status may be set from every other one.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, status := range OrderStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

type Order struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	OrderNumber  string          `json:"order_number" gorm:"size:32;uniqueIndex;not null"`
	CustomerName string          `json:"customer_name" gorm:"size:255;not null"`
	Age          int             `json:"age" gorm:"not null"`
	School       *string         `json:"school" gorm:"size:255"`
	Address      string          `json:"address" gorm:"type:text;not null"`
	Email        *string         `json:"email" gorm:"size:255"`
	PhoneNumber  string          `json:"phone_number" gorm:"size:32;not null"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status       OrderStatus     `json:"status" gorm:"size:16;not null;default:pending;index"`
	Notes        *string         `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Items        []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem keeps a snapshot of the unit price at order time; later catalog
// price changes never reach it.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	Size      Size            `json:"size" gorm:"size:8;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2);not null"`

	Product     *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	ProductName string   `json:"product_name,omitempty" gorm:"-"`
	ImageURL    *string  `json:"image_url,omitempty" gorm:"-"`
}

// Summary is the header subset returned right after placement.
func (o *Order) Summary() map[string]any {
	return map[string]any{
		"id":            o.ID,
		"order_number":  o.OrderNumber,
		"customer_name": o.CustomerName,
		"total_amount":  o.TotalAmount,
		"status":        o.Status,
		"created_at":    o.CreatedAt,
	}
}

// OrderStats holds the admin dashboard counters.
type OrderStats struct {
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	ApprovedOrders  int64           `json:"approved_orders"`
	CancelledOrders int64           `json:"cancelled_orders"`
	ShippedOrders   int64           `json:"shipped_orders"`
	DeliveredOrders int64           `json:"delivered_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalProducts   int64           `json:"total_products"`
}
