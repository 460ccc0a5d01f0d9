package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is one purchasable dish on the public menu.
type MenuItem struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	Category      string          `gorm:"column:category;not null;index"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	DescriptionEN string          `gorm:"column:description_en"`
	DescriptionTH string          `gorm:"column:description_th"`
	Vegetarian    bool            `gorm:"column:vegetarian;not null;default:false"`
	SpicyLevel    int             `gorm:"column:spicy_level;not null;default:0"`
	Image         string          `gorm:"column:image"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (MenuItem) TableName() string { return "menu_items" }
