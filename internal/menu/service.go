package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minithai/minithai-backend/pkg/db/models"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service defines menu operations above the repository.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.MenuItem, error)
	Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Create(ctx context.Context, input CreateInput) (*models.MenuItem, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.MenuItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a menu service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("menu repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.MenuItem, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing menu items")
	}
	return items, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading menu item")
	}
	return item, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.MenuItem, error) {
	if input.Price.Sign() <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}

	item := &models.MenuItem{
		ID:            uuid.New(),
		Name:          input.Name,
		Category:      input.Category,
		Price:         input.Price,
		DescriptionEN: input.DescriptionEN,
		DescriptionTH: input.DescriptionTH,
		Vegetarian:    input.Vegetarian,
		SpicyLevel:    input.SpicyLevel,
		Image:         input.Image,
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating menu item")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.MenuItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Price != nil {
		if input.Price.Sign() <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		item.Price = *input.Price
	}
	if input.DescriptionEN != nil {
		item.DescriptionEN = *input.DescriptionEN
	}
	if input.DescriptionTH != nil {
		item.DescriptionTH = *input.DescriptionTH
	}
	if input.Vegetarian != nil {
		item.Vegetarian = *input.Vegetarian
	}
	if input.SpicyLevel != nil {
		item.SpicyLevel = *input.SpicyLevel
	}
	if input.Image != nil {
		item.Image = *input.Image
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating menu item")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting menu item")
	}
	return nil
}
