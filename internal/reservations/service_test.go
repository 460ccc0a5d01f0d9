package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minithai/minithai-backend/pkg/db/models"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubRepo struct {
	rows map[uuid.UUID]*models.Reservation
}

func newStubRepo() *stubRepo {
	return &stubRepo{rows: make(map[uuid.UUID]*models.Reservation)}
}

func (r *stubRepo) List(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, row := range r.rows {
		out = append(out, *row)
	}
	return out, nil
}

func (r *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *row
	return &copied, nil
}

func (r *stubRepo) CountActiveSlot(ctx context.Context, date, timeOfDay string) (int64, error) {
	var count int64
	for _, row := range r.rows {
		if row.Date == date && row.Time == timeOfDay && row.Status != StatusCancelled {
			count++
		}
	}
	return count, nil
}

func (r *stubRepo) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	r.rows[reservation.ID] = reservation
	return reservation, nil
}

func (r *stubRepo) Update(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	r.rows[reservation.ID] = reservation
	return reservation, nil
}

func newTestService(t *testing.T, repo Repository) *service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("service construction failed: %v", err)
	}
	typed := svc.(*service)
	// Fixed clock so "past" is deterministic.
	typed.now = func() time.Time {
		return time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)
	}
	return typed
}

func validInput() CreateInput {
	return CreateInput{
		Name:   "Anna",
		Email:  "anna@example.com",
		Phone:  "+49 160 1234567",
		Date:   "2026-06-02",
		Time:   "19:00",
		Guests: 2,
	}
}

func TestCreateBooksSlot(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != StatusConfirmed {
		t.Fatalf("new reservations start confirmed, got %s", created.Status)
	}
}

func TestCreateRejectsPastSlot(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())

	input := validInput()
	input.Date = "2026-05-31"
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsMalformedSlot(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())

	input := validInput()
	input.Time = "7pm"
	_, err := svc.Create(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateConflictsOnTakenSlot(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := svc.Create(ctx, validInput())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	if _, err := svc.Cancel(ctx, first.ID, CancelInput{Email: "anna@example.com"}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := svc.Create(ctx, validInput()); err != nil {
		t.Fatalf("cancelled slot should be bookable again: %v", err)
	}
}

func TestCancelRequiresMatchingEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = svc.Cancel(ctx, created.ID, CancelInput{Email: "mallory@example.com"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Case differences in the email are not a mismatch.
	if _, err := svc.Cancel(ctx, created.ID, CancelInput{Email: "ANNA@example.com"}); err != nil {
		t.Fatalf("case-insensitive match should cancel: %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubRepo())

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), UpdateStatusInput{Status: "vanished"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
