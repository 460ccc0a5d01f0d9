package reservations

import (
	"context"

	"github.com/google/uuid"
	"github.com/minithai/minithai-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the persistence boundary for reservations.
type Repository interface {
	List(ctx context.Context) ([]models.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	CountActiveSlot(ctx context.Context, date, timeOfDay string) (int64, error)
	Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
	Update(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reservations repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]models.Reservation, error) {
	var rows []models.Reservation
	err := r.db.WithContext(ctx).
		Order("date ASC, time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) CountActiveSlot(ctx context.Context, date, timeOfDay string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("date = ? AND time = ? AND status <> ?", date, timeOfDay, StatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *repository) Create(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}

func (r *repository) Update(ctx context.Context, reservation *models.Reservation) (*models.Reservation, error) {
	if err := r.db.WithContext(ctx).Save(reservation).Error; err != nil {
		return nil, err
	}
	return reservation, nil
}
