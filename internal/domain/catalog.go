package domain

import (
	"github.com/shopspring/decimal"
)

// Product categories as they appear in the catalog and in the
// ?category= query filter.
const (
	CategoryCuttingBoards = "cutting-boards"
	CategoryAccessories   = "accessories"
	CategorySets          = "sets"
	CategoryCustom        = "custom"
)

// Product represents an item in the catalog. Products are immutable after
// creation; there is no update path in this system's scope.
// The json tags correspond to the fields expected in API responses/requests.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"` // 2-place currency, decimal-safe end to end
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
	InStock     bool            `json:"inStock"`
	Featured    bool            `json:"featured"`
}

// Customization type discriminators for catalog-level customization offers.
const (
	CustomizationEngraving = "engraving"
	CustomizationSize      = "size"
	CustomizationFinish    = "finish"
)

// Customization is a catalog-level offer: a named, priced modifier associated
// with a product. It is distinct from LineCustomization, which is the chosen
// instantiation attached to a cart line or order item.
type Customization struct {
	ID              int64           `json:"id"`
	ProductID       *int64          `json:"productId"` // weak reference, no cascading delete
	Name            string          `json:"name"`
	Description     *string         `json:"description"`
	AdditionalPrice decimal.Decimal `json:"additionalPrice"`
	Type            string          `json:"type"`
}
