// Package content serves the static-ish site content: gallery photos
// and the staff page.
package content

import (
	"context"
	"fmt"

	"github.com/minithai/minithai-backend/pkg/db/models"
	pkgerrors "github.com/minithai/minithai-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the read side of the site content.
type Service interface {
	Gallery(ctx context.Context) ([]models.GalleryImage, error)
	Staff(ctx context.Context) ([]models.StaffMember, error)
}

// Repository is the persistence boundary for site content.
type Repository interface {
	ListGallery(ctx context.Context) ([]models.GalleryImage, error)
	ListStaff(ctx context.Context) ([]models.StaffMember, error)
}

type service struct {
	repo Repository
}

// NewService builds a content service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("content repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Gallery(ctx context.Context) ([]models.GalleryImage, error) {
	rows, err := s.repo.ListGallery(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing gallery")
	}
	return rows, nil
}

func (s *service) Staff(ctx context.Context) ([]models.StaffMember, error) {
	rows, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing staff")
	}
	return rows, nil
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a content repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListGallery(ctx context.Context) ([]models.GalleryImage, error) {
	var rows []models.GalleryImage
	err := r.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListStaff(ctx context.Context) ([]models.StaffMember, error) {
	var rows []models.StaffMember
	err := r.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
