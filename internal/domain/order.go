package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. There is no enforced transition table: a PATCH may move an
// order between any of these values, but unknown strings are rejected.
const (
	StatusProcessing = "processing"
	StatusProduction = "production"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

// ValidStatus reports whether s is a member of the order-status domain.
func ValidStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusProduction, StatusShipped, StatusDelivered:
		return true
	}
	return false
}

// Order is created exactly once at checkout. Total is a snapshot of the
// client-computed amount; status is the only server-mutable field afterwards.
type Order struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone *string         `json:"customerPhone"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
	DeliveryDate  *time.Time      `json:"deliveryDate"`
}

// OrderItem is the persisted, immutable record of one cart line at the moment
// of checkout. UnitPrice includes any customization surcharge baked in.
type OrderItem struct {
	ID             int64              `json:"id"`
	OrderID        *int64             `json:"orderId"`
	ProductID      *int64             `json:"productId"` // weak reference
	Quantity       int                `json:"quantity"`
	UnitPrice      decimal.Decimal    `json:"unitPrice"`
	Customizations *LineCustomization `json:"customizations"`
}

// Contact is an independent entity created once per contact-form submission,
// never mutated or deleted.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
