package store

import (
	"context"
	"errors"

	"spoiler-storefront/internal/domain"
)

// Predefined errors for store operations
var (
	ErrProductNotFound  = errors.New("store: product not found")
	ErrOrderNotFound    = errors.New("store: order not found")
	ErrInvalidOrderItem = errors.New("store: invalid order item")
)

// ProductStorer defines the repository operations for catalog products.
// List operations return results in creation order.
type ProductStorer interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
}

// CustomizationStorer defines the repository operations for catalog-level
// customization offers.
type CustomizationStorer interface {
	ListCustomizations(ctx context.Context) ([]domain.Customization, error)
	ListCustomizationsByProduct(ctx context.Context, productID int64) ([]domain.Customization, error)
	CreateCustomization(ctx context.Context, customization *domain.Customization) (*domain.Customization, error)
}

// OrderStorer defines the repository operations for orders and their items.
// CreateOrderWithItems persists the order and all items as one atomic unit:
// either everything is visible afterwards, or nothing is.
type OrderStorer interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, []domain.OrderItem, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*domain.Order, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	CreateOrderItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
}

// ContactStorer defines the repository operations for contact submissions.
type ContactStorer interface {
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	CreateContact(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
}

// Store is the full repository contract a storage backend implements.
type Store interface {
	ProductStorer
	CustomizationStorer
	OrderStorer
	ContactStorer
	Close() error
}
