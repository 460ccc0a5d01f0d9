package menu

import "github.com/shopspring/decimal"

// CreateInput carries the fields to add a dish to the menu.
type CreateInput struct {
	Name          string          `json:"name" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	DescriptionEN string          `json:"description_en"`
	DescriptionTH string          `json:"description_th"`
	Vegetarian    bool            `json:"vegetarian"`
	SpicyLevel    int             `json:"spicy_level" validate:"gte=0,lte=3"`
	Image         string          `json:"image"`
}

// UpdateInput carries a partial update; nil fields are left untouched.
type UpdateInput struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	DescriptionEN *string          `json:"description_en"`
	DescriptionTH *string          `json:"description_th"`
	Vegetarian    *bool            `json:"vegetarian"`
	SpicyLevel    *int             `json:"spicy_level" validate:"omitempty,gte=0,lte=3"`
	Image         *string          `json:"image"`
}

// ListFilter narrows the menu listing.
type ListFilter struct {
	Category   string
	Vegetarian *bool
}
