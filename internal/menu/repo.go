package menu

import (
	"context"

	"github.com/google/uuid"
	"github.com/minithai/minithai-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the persistence boundary for menu items.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a menu repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItem{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Vegetarian != nil {
		query = query.Where("vegetarian = ?", *filter.Vegetarian)
	}

	var items []models.MenuItem
	if err := query.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) Create(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) Update(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{}).Error
}
