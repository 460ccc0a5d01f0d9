package orders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/minithai/minithai-backend/pkg/db/models"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"github.com/minithai/minithai-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubRepo struct {
	orders map[string]*models.Order
	listed []models.Order
}

func newStubRepo() *stubRepo {
	return &stubRepo{orders: make(map[string]*models.Order)}
}

func (r *stubRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	r.orders[order.OrderID] = order
	return order, nil
}

func (r *stubRepo) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, ok := r.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *stubRepo) ListByEmail(ctx context.Context, email string, limit int, cursor *pagination.Cursor) ([]models.Order, error) {
	if limit > len(r.listed) {
		limit = len(r.listed)
	}
	return r.listed[:limit], nil
}

func (r *stubRepo) Update(ctx context.Context, order *models.Order) (*models.Order, error) {
	r.orders[order.OrderID] = order
	return order, nil
}

func (r *stubRepo) Delete(ctx context.Context, orderID string) error {
	delete(r.orders, orderID)
	return nil
}

func testItems() []models.OrderItem {
	return []models.OrderItem{
		{ID: "7", Name: "Som Tam", Price: decimal.RequireFromString("18.90"), Quantity: 3},
		{ID: "12", Name: "Pad Thai", Price: decimal.RequireFromString("16.50"), Quantity: 1},
	}
}

func TestCreateRecomputesTotals(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("service construction failed: %v", err)
	}

	order, err := svc.Create(context.Background(), CreateInput{
		Name:           "Anna",
		Email:          "anna@example.com",
		Phone:          "+49 160 1234567",
		DeliveryMethod: DeliveryMethodPickup,
		Items:          testItems(),
		// Caller-supplied figures must be ignored.
		Subtotal: decimal.NewFromInt(1),
		Total:    decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !order.Subtotal.Equal(decimal.RequireFromString("73.20")) {
		t.Fatalf("subtotal not recomputed: %s", order.Subtotal)
	}
	if !order.Total.Equal(decimal.RequireFromString("73.20")) {
		t.Fatalf("total not recomputed: %s", order.Total)
	}
	if !strings.HasPrefix(order.OrderID, "ORD") {
		t.Fatalf("unexpected order id: %s", order.OrderID)
	}
	if order.Status != string(StatusPending) {
		t.Fatalf("new orders start pending, got %s", order.Status)
	}
	if len(order.Timeline) != 1 || order.Timeline[0].Message != "Order placed" {
		t.Fatalf("missing placement timeline entry: %+v", order.Timeline)
	}
}

func TestCreateDeliveryRequiresAddress(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newStubRepo())

	_, err := svc.Create(context.Background(), CreateInput{
		Name:           "Anna",
		Email:          "anna@example.com",
		Phone:          "+49 160 1234567",
		DeliveryMethod: DeliveryMethodDelivery,
		Items:          testItems(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newStubRepo())

	_, err := svc.Create(context.Background(), CreateInput{
		Name:           "Anna",
		Email:          "anna@example.com",
		Phone:          "+49 160 1234567",
		DeliveryMethod: DeliveryMethodPickup,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusAppendsTimeline(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	svc, _ := NewService(repo)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreateInput{
		Name:           "Anna",
		Email:          "anna@example.com",
		Phone:          "+49 160 1234567",
		DeliveryMethod: DeliveryMethodPickup,
		Items:          testItems(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, order.OrderID, UpdateStatusInput{Status: "preparing"})
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if updated.Status != "preparing" {
		t.Fatalf("status not applied: %s", updated.Status)
	}
	if len(updated.Timeline) != 2 {
		t.Fatalf("expected timeline entry appended, got %d entries", len(updated.Timeline))
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newStubRepo())

	_, err := svc.UpdateStatus(context.Background(), "ORD1", UpdateStatusInput{Status: "teleported"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListPaginatesWithCursor(t *testing.T) {
	t.Parallel()

	repo := newStubRepo()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		repo.listed = append(repo.listed, models.Order{
			OrderID:   newOrderID(base.Add(-time.Duration(i) * time.Minute)),
			Email:     "anna@example.com",
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}

	svc, _ := NewService(repo)
	result, err := svc.List(context.Background(), ListInput{Email: "anna@example.com", Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Orders) != 2 {
		t.Fatalf("expected page of 2, got %d", len(result.Orders))
	}
	if result.NextCursor == "" {
		t.Fatal("expected next cursor for remaining row")
	}

	cursor, err := pagination.ParseCursor(result.NextCursor)
	if err != nil {
		t.Fatalf("cursor should round-trip: %v", err)
	}
	if cursor.ID != result.Orders[1].OrderID {
		t.Fatalf("cursor should point at last returned row, got %s", cursor.ID)
	}
}

func TestListRequiresEmail(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(newStubRepo())

	_, err := svc.List(context.Background(), ListInput{})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
