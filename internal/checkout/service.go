package checkout

import (
	"context"
	"fmt"

	"github.com/minithai/minithai-backend/internal/cart"
	"github.com/minithai/minithai-backend/internal/orders"
	"github.com/minithai/minithai-backend/pkg/config"
	"github.com/minithai/minithai-backend/pkg/db/models"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Input is the customer-supplied half of a checkout; the items and
// prices come from the session cart, never from the request.
type Input struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required"`
	Address        *string `json:"address"`
	DeliveryMethod string  `json:"deliveryMethod" validate:"required,oneof=pickup delivery"`
}

// Service turns a session cart into a placed order.
type Service interface {
	Checkout(ctx context.Context, store *cart.Store, input Input) (*models.Order, error)
}

type service struct {
	orders          orders.Service
	deliveryFee     decimal.Decimal
	freeDeliveryMin decimal.Decimal
}

// NewService builds a checkout service with the required dependencies.
func NewService(orderSvc orders.Service, cfg config.CheckoutConfig) (Service, error) {
	if orderSvc == nil {
		return nil, fmt.Errorf("order service required")
	}
	fee, err := decimal.NewFromString(cfg.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("invalid delivery fee %q: %w", cfg.DeliveryFee, err)
	}
	freeMin, err := decimal.NewFromString(cfg.FreeDeliveryMin)
	if err != nil {
		return nil, fmt.Errorf("invalid free-delivery minimum %q: %w", cfg.FreeDeliveryMin, err)
	}
	return &service{
		orders:          orderSvc,
		deliveryFee:     fee,
		freeDeliveryMin: freeMin,
	}, nil
}

// Checkout snapshots the cart, places the order, and clears the cart
// only once the order is stored. A failed order placement leaves the
// cart exactly as it was.
func (s *service) Checkout(ctx context.Context, store *cart.Store, input Input) (*models.Order, error) {
	if store == nil || store.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]models.OrderItem, 0, len(store.Items()))
	for _, line := range store.Items() {
		items = append(items, models.OrderItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Image:    line.Image,
			Quantity: line.Quantity,
		})
	}

	order, err := s.orders.Create(ctx, orders.CreateInput{
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		DeliveryMethod: input.DeliveryMethod,
		Items:          items,
		DeliveryFee:    s.feeFor(input.DeliveryMethod, store.Total()),
	})
	if err != nil {
		return nil, err
	}

	store.Clear(ctx)
	return order, nil
}

func (s *service) feeFor(method string, subtotal decimal.Decimal) decimal.Decimal {
	if method != orders.DeliveryMethodDelivery {
		return decimal.Zero
	}
	if subtotal.GreaterThanOrEqual(s.freeDeliveryMin) {
		return decimal.Zero
	}
	return s.deliveryFee
}
