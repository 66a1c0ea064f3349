package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// CartLine is one entry in a session's cart. UnitPrice is a snapshot of the
// product price at add-time and does not track later catalog changes; the
// json field name matches the client-side cart payload.
type CartLine struct {
	ID             int64              `json:"id"`
	ProductID      int64              `json:"productId"`
	Name           string             `json:"name"`
	UnitPrice      decimal.Decimal    `json:"price"`
	Quantity       int                `json:"quantity"`
	ImageURL       string             `json:"imageUrl"`
	Customizations *LineCustomization `json:"customizations,omitempty"`
}

// MergeKey identifies "the same line" for add-to-cart merging: two lines
// merge iff their product and customization payload are structurally equal.
func (l CartLine) MergeKey() string {
	return strconv.FormatInt(l.ProductID, 10) + "|" + l.Customizations.Key()
}
