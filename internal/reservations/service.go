package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minithai/minithai-backend/pkg/db/models"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines reservation operations above the repository.
type Service interface {
	List(ctx context.Context) ([]models.Reservation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	Create(ctx context.Context, input CreateInput) (*models.Reservation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*models.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID, input CancelInput) (*models.Reservation, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a reservation service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reservations repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

func (s *service) List(ctx context.Context) ([]models.Reservation, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing reservations")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "reservation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading reservation")
	}
	return reservation, nil
}

// Create books a slot. Past slots are rejected, and a date+time already
// held by a non-cancelled reservation conflicts.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Reservation, error) {
	slot, err := parseSlot(input.Date, input.Time)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid reservation slot")
	}
	if slot.Before(s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reservation slot is in the past")
	}

	taken, err := s.repo.CountActiveSlot(ctx, input.Date, input.Time)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking slot availability")
	}
	if taken > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "slot already booked").
			WithDetails(map[string]string{"date": input.Date, "time": input.Time})
	}

	reservation := &models.Reservation{
		ID:              uuid.New(),
		Name:            input.Name,
		Email:           input.Email,
		Phone:           input.Phone,
		Date:            input.Date,
		Time:            input.Time,
		Guests:          input.Guests,
		SpecialRequests: input.SpecialRequests,
		Status:          StatusConfirmed,
	}
	created, err := s.repo.Create(ctx, reservation)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating reservation")
	}
	return created, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*models.Reservation, error) {
	if !ValidStatus(input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown reservation status").
			WithDetails(map[string]string{"status": input.Status})
	}

	reservation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	reservation.Status = input.Status
	updated, err := s.repo.Update(ctx, reservation)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating reservation status")
	}
	return updated, nil
}

// Cancel is the guest-facing path: the caller proves ownership by
// supplying the booking email.
func (s *service) Cancel(ctx context.Context, id uuid.UUID, input CancelInput) (*models.Reservation, error) {
	reservation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(reservation.Email, input.Email) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "email does not match the reservation")
	}
	if reservation.Status == StatusCancelled {
		return reservation, nil
	}

	reservation.Status = StatusCancelled
	updated, err := s.repo.Update(ctx, reservation)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cancelling reservation")
	}
	return updated, nil
}

// parseSlot combines the date and time fields into one instant in the
// restaurant's local clock.
func parseSlot(date, timeOfDay string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, time.Local)
}
