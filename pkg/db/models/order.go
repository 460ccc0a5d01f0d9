package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is the snapshot of one cart line at checkout time.
type OrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
}

// TimelineEntry records one step of an order's lifecycle.
type TimelineEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Order is a placed customer order, identified by its public order id
// (ORD<unix-ms>), not a surrogate key.
type Order struct {
	OrderID        string          `gorm:"column:order_id;primaryKey"`
	Name           string          `gorm:"column:name;not null"`
	Email          string          `gorm:"column:email;not null;index"`
	Phone          string          `gorm:"column:phone;not null"`
	Address        *string         `gorm:"column:address"`
	DeliveryMethod string          `gorm:"column:delivery_method;not null"`
	Items          []OrderItem     `gorm:"column:items;serializer:json;not null"`
	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null"`
	DeliveryFee    decimal.Decimal `gorm:"column:delivery_fee;type:numeric(10,2);not null"`
	Total          decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	Status         string          `gorm:"column:status;not null;default:'pending'"`
	Timeline       []TimelineEntry `gorm:"column:timeline;serializer:json"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }
