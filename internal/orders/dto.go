package orders

import (
	"github.com/minithai/minithai-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// Status is an order's lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether the value is a known lifecycle state.
func ValidStatus(value string) bool {
	switch Status(value) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Delivery methods accepted at order creation.
const (
	DeliveryMethodPickup   = "pickup"
	DeliveryMethodDelivery = "delivery"
)

// CreateInput is the direct order-placement payload. Checkout builds
// the same input from the session cart instead of trusting the caller.
type CreateInput struct {
	Name           string             `json:"name" validate:"required"`
	Email          string             `json:"email" validate:"required,email"`
	Phone          string             `json:"phone" validate:"required"`
	Address        *string            `json:"address"`
	DeliveryMethod string             `json:"deliveryMethod" validate:"required,oneof=pickup delivery"`
	Items          []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DeliveryFee    decimal.Decimal    `json:"deliveryFee"`
	Total          decimal.Decimal    `json:"total"`
}

// ListInput selects a customer's orders, newest first.
type ListInput struct {
	Email  string
	Limit  int
	Cursor string
}

// ListResult is one page of orders plus the cursor for the next.
type ListResult struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// UpdateStatusInput moves an order to a new lifecycle state.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}
