package contact

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minithai/minithai-backend/pkg/db/models"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"gorm.io/gorm"
)

// CreateInput is a contact-form submission.
type CreateInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

// Repository is the persistence boundary for contact messages.
type Repository interface {
	Create(ctx context.Context, message *models.Message) (*models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Message, error)
}

// Service defines contact-message operations.
type Service interface {
	Submit(ctx context.Context, input CreateInput) (*models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds a contact service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contact repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Submit(ctx context.Context, input CreateInput) (*models.Message, error) {
	message := &models.Message{
		ID:      uuid.New(),
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}
	created, err := s.repo.Create(ctx, message)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing contact message")
	}
	return created, nil
}

func (s *service) List(ctx context.Context) ([]models.Message, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing contact messages")
	}
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading contact message")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting contact message")
	}
	return nil
}
