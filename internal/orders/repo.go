package orders

import (
	"context"

	"github.com/minithai/minithai-backend/pkg/db/models"
	"github.com/minithai/minithai-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository is the persistence boundary for orders.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListByEmail(ctx context.Context, email string, limit int, cursor *pagination.Cursor) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) (*models.Order, error)
	Delete(ctx context.Context, orderID string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByEmail(ctx context.Context, email string, limit int, cursor *pagination.Cursor) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("email = ?", email).
		Order("created_at DESC, order_id DESC").
		Limit(limit)

	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND order_id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Update(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) Delete(ctx context.Context, orderID string) error {
	return r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.Order{}).Error
}
