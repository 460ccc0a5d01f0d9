package checkout

import (
	"context"
	"testing"

	"github.com/minithai/minithai-backend/internal/cart"
	"github.com/minithai/minithai-backend/internal/orders"
	"github.com/minithai/minithai-backend/pkg/config"
	"github.com/minithai/minithai-backend/pkg/db/models"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type stubOrders struct {
	created *orders.CreateInput
	fail    error
}

func (s *stubOrders) Create(ctx context.Context, input orders.CreateInput) (*models.Order, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	s.created = &input
	return &models.Order{OrderID: "ORD1757000000000"}, nil
}

func (s *stubOrders) Get(ctx context.Context, orderID string) (*models.Order, error) {
	return nil, nil
}

func (s *stubOrders) List(ctx context.Context, input orders.ListInput) (*orders.ListResult, error) {
	return nil, nil
}

func (s *stubOrders) UpdateStatus(ctx context.Context, orderID string, input orders.UpdateStatusInput) (*models.Order, error) {
	return nil, nil
}

func (s *stubOrders) Delete(ctx context.Context, orderID string) error {
	return nil
}

func testConfig() config.CheckoutConfig {
	return config.CheckoutConfig{DeliveryFee: "5.00", FreeDeliveryMin: "50.00"}
}

func seededStore(t *testing.T, total string, quantity int) *cart.Store {
	t.Helper()
	backend := cart.NewMemoryBackend()
	store := cart.NewStore(context.Background(), "mt:cart:test", backend.Context(), nil)
	t.Cleanup(func() { _ = store.Close() })

	store.AddItem(context.Background(), cart.Candidate{
		ID:       "7",
		Name:     "Som Tam",
		Price:    decimal.RequireFromString(total),
		Quantity: quantity,
	})
	return store
}

func pickupInput() Input {
	return Input{
		Name:           "Anna",
		Email:          "anna@example.com",
		Phone:          "+49 160 1234567",
		DeliveryMethod: "pickup",
	}
}

func TestCheckoutClearsCartOnSuccess(t *testing.T) {
	t.Parallel()

	stub := &stubOrders{}
	svc, err := NewService(stub, testConfig())
	if err != nil {
		t.Fatalf("service construction failed: %v", err)
	}

	store := seededStore(t, "18.90", 2)
	order, err := svc.Checkout(context.Background(), store, pickupInput())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.OrderID == "" {
		t.Fatal("expected placed order")
	}
	if !store.IsEmpty() {
		t.Fatal("cart must be cleared after a successful checkout")
	}
	if len(stub.created.Items) != 1 || stub.created.Items[0].Quantity != 2 {
		t.Fatalf("order items should snapshot the cart: %+v", stub.created.Items)
	}
}

func TestCheckoutFailureLeavesCartIntact(t *testing.T) {
	t.Parallel()

	stub := &stubOrders{fail: pkgerrors.New(pkgerrors.CodeInternal, "db down")}
	svc, _ := NewService(stub, testConfig())

	store := seededStore(t, "18.90", 2)
	_, err := svc.Checkout(context.Background(), store, pickupInput())
	if err == nil {
		t.Fatal("expected checkout failure")
	}
	if store.IsEmpty() {
		t.Fatal("failed checkout must not clear the cart")
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubOrders{}, testConfig())

	backend := cart.NewMemoryBackend()
	store := cart.NewStore(context.Background(), "mt:cart:test", backend.Context(), nil)
	defer func() { _ = store.Close() }()

	_, err := svc.Checkout(context.Background(), store, pickupInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeliveryFeeWaivedAboveMinimum(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		price    string
		quantity int
		method   string
		wantFee  string
	}{
		{"pickup never pays", "18.90", 1, "pickup", "0"},
		{"small delivery pays", "18.90", 1, "delivery", "5.00"},
		{"large delivery is free", "18.90", 3, "delivery", "0"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stub := &stubOrders{}
			svc, _ := NewService(stub, testConfig())

			store := seededStore(t, tc.price, tc.quantity)
			input := pickupInput()
			input.DeliveryMethod = tc.method
			if tc.method == "delivery" {
				addr := "Hauptstr. 1"
				input.Address = &addr
			}

			if _, err := svc.Checkout(context.Background(), store, input); err != nil {
				t.Fatalf("checkout failed: %v", err)
			}
			if !stub.created.DeliveryFee.Equal(decimal.RequireFromString(tc.wantFee)) {
				t.Fatalf("fee mismatch: got %s, want %s", stub.created.DeliveryFee, tc.wantFee)
			}
		})
	}
}
