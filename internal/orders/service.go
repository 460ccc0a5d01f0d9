package orders

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/minithai/minithai-backend/pkg/db/models"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"github.com/minithai/minithai-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service defines order operations above the repository.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Order, error)
	Get(ctx context.Context, orderID string) (*models.Order, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	UpdateStatus(ctx context.Context, orderID string, input UpdateStatusInput) (*models.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// Create places an order. The subtotal and total are recomputed from
// the line items; caller-supplied figures are ignored.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one item")
	}
	if input.DeliveryMethod == DeliveryMethodDelivery && (input.Address == nil || *input.Address == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery orders require an address")
	}

	subtotal := decimal.Zero
	for _, item := range input.Items {
		if item.Price.Sign() <= 0 || item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "order items need a positive price and quantity")
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := s.now()
	order := &models.Order{
		OrderID:        newOrderID(now),
		Name:           input.Name,
		Email:          input.Email,
		Phone:          input.Phone,
		Address:        input.Address,
		DeliveryMethod: input.DeliveryMethod,
		Items:          input.Items,
		Subtotal:       subtotal,
		DeliveryFee:    input.DeliveryFee,
		Total:          subtotal.Add(input.DeliveryFee),
		Status:         string(StatusPending),
		Timeline: []models.TimelineEntry{{
			Timestamp: now,
			Message:   "Order placed",
		}},
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Limit)
	rows, err := s.repo.ListByEmail(ctx, input.Email, pagination.LimitWithBuffer(input.Limit), cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	result := &ListResult{Orders: rows}
	if len(rows) > limit {
		result.Orders = rows[:limit]
		last := result.Orders[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.OrderID,
		})
	}
	return result, nil
}

// UpdateStatus moves the order to a new state and appends a timeline
// entry. Any known status is reachable from any other; the kitchen
// occasionally walks orders backwards.
func (s *service) UpdateStatus(ctx context.Context, orderID string, input UpdateStatusInput) (*models.Order, error) {
	if !ValidStatus(input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]string{"status": input.Status})
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Status = input.Status
	order.Timeline = append(order.Timeline, models.TimelineEntry{
		Timestamp: s.now(),
		Message:   "Status changed to " + input.Status,
	})

	updated, err := s.repo.Update(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, orderID string) error {
	if _, err := s.Get(ctx, orderID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting order")
	}
	return nil
}

// newOrderID builds the public order id from the placement time, e.g.
// ORD1757000000000.
func newOrderID(at time.Time) string {
	return "ORD" + strconv.FormatInt(at.UnixMilli(), 10)
}
