package models

import (
	"time"

	"github.com/google/uuid"
)

// GalleryImage is a photo shown on the gallery page.
type GalleryImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title"`
	URL       string    `gorm:"column:url;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (GalleryImage) TableName() string { return "gallery_images" }

// StaffMember is a team entry on the about page.
type StaffMember struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Role      string    `gorm:"column:role;not null"`
	Bio       string    `gorm:"column:bio"`
	Photo     string    `gorm:"column:photo"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (StaffMember) TableName() string { return "staff_members" }
