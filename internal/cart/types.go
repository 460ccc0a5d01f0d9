package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one distinct purchasable entry held in a cart. Lines are
// keyed by catalog id plus image reference on insert (see Store.AddItem)
// and serialized wholesale as the cart document.
type LineItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"addedAt"`
}

// Candidate carries the fields a caller supplies when adding to the
// cart. Quantity <= 0 defaults to 1.
type Candidate struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Quantity int             `json:"quantity,omitempty"`
}
