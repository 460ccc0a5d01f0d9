package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a booked table slot.
type Reservation struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	Email           string    `gorm:"column:email;not null"`
	Phone           string    `gorm:"column:phone;not null"`
	Date            string    `gorm:"column:date;not null;index:idx_reservations_slot"`
	Time            string    `gorm:"column:time;not null;index:idx_reservations_slot"`
	Guests          int       `gorm:"column:guests;not null"`
	SpecialRequests string    `gorm:"column:special_requests"`
	Status          string    `gorm:"column:status;not null;default:'confirmed'"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Reservation) TableName() string { return "reservations" }
