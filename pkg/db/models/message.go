package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a contact-form submission.
type Message struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	Message   string    `gorm:"column:message;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Message) TableName() string { return "messages" }
