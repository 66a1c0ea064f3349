package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"spoiler-storefront/internal/domain"
)

// MemoryStore is the default, non-persistent storage backend: maps guarded by
// a single RWMutex plus per-entity monotonic counters. Mutations are
// serialized under the write lock so id allocation and record publication are
// one visible unit even under concurrent checkout requests.
type MemoryStore struct {
	mu sync.RWMutex

	products       map[int64]domain.Product
	customizations map[int64]domain.Customization
	orders         map[int64]domain.Order
	orderItems     map[int64]domain.OrderItem
	contacts       map[int64]domain.Contact

	nextProductID       int64
	nextCustomizationID int64
	nextOrderID         int64
	nextOrderItemID     int64
	nextContactID       int64
}

// NewMemoryStore creates a store seeded with the sample catalog.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		products:            make(map[int64]domain.Product),
		customizations:      make(map[int64]domain.Customization),
		orders:              make(map[int64]domain.Order),
		orderItems:          make(map[int64]domain.OrderItem),
		contacts:            make(map[int64]domain.Contact),
		nextProductID:       1,
		nextCustomizationID: 1,
		nextOrderID:         1,
		nextOrderItemID:     1,
		nextContactID:       1,
	}
	s.seed()
	return s
}

func (s *MemoryStore) seed() {
	sampleProducts := []domain.Product{
		{
			Name:        "Tábua Rústica Grande",
			Description: "Tábua artesanal de 60x40cm, ideal para churrascos em família",
			Price:       decimal.RequireFromString("89.90"),
			Category:    domain.CategoryCuttingBoards,
			ImageURL:    "https://pixabay.com/get/g7d5005b3342b77885acbc4221cc58a6a_1280.jpg",
			InStock:     true,
		},
		{
			Name:        "Tábua com Alças",
			Description: "Tábua prática de 45x30cm com alças para fácil manuseio",
			Price:       decimal.RequireFromString("69.90"),
			Category:    domain.CategoryCuttingBoards,
			ImageURL:    "https://images.unsplash.com/photo-1586201375761-83865001e31c",
			InStock:     true,
		},
		{
			Name:        "Kit Utensílios Premium",
			Description: "Conjunto completo com garfo, espátula e pegador de madeira",
			Price:       decimal.RequireFromString("149.90"),
			Category:    domain.CategoryAccessories,
			ImageURL:    "https://images.unsplash.com/photo-1504544750208-dc0358e63f7f",
			InStock:     true,
		},
		{
			Name:        "Kit Master Churrasco",
			Description: "Kit completo: tábua + utensílios + suporte personalizado",
			Price:       decimal.RequireFromString("199.90"),
			Category:    domain.CategorySets,
			ImageURL:    "https://images.unsplash.com/photo-1558618666-fcd25c85cd64",
			InStock:     true,
			Featured:    true,
		},
	}
	for i := range sampleProducts {
		p := sampleProducts[i]
		p.ID = s.nextProductID
		s.nextProductID++
		s.products[p.ID] = p
	}

	boardID := int64(1)
	sampleCustomizations := []domain.Customization{
		{
			ProductID:       &boardID,
			Name:            "Gravação de Nome/Logo",
			Description:     ptrTo("Personalize com seu nome, logotipo ou frase especial"),
			AdditionalPrice: decimal.RequireFromString("25.00"),
			Type:            domain.CustomizationEngraving,
		},
		{
			ProductID:       &boardID,
			Name:            "Tamanhos Customizados",
			Description:     ptrTo("Dimensões especiais para suas necessidades específicas"),
			AdditionalPrice: decimal.RequireFromString("35.00"),
			Type:            domain.CustomizationSize,
		},
		{
			ProductID:       &boardID,
			Name:            "Acabamentos Especiais",
			Description:     ptrTo("Verniz premium, bordas arredondadas ou detalhes únicos"),
			AdditionalPrice: decimal.RequireFromString("45.00"),
			Type:            domain.CustomizationFinish,
		},
	}
	for i := range sampleCustomizations {
		c := sampleCustomizations[i]
		c.ID = s.nextCustomizationID
		s.nextCustomizationID++
		s.customizations[c.ID] = c
	}
}

func ptrTo[T any](v T) *T {
	return &v
}

// --- ProductStorer Implementation ---

func (s *MemoryStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	// Ids are monotonic, so id order is creation order.
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (s *MemoryStore) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *MemoryStore) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (s *MemoryStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *product
	created.ID = s.nextProductID
	s.nextProductID++
	s.products[created.ID] = created
	return &created, nil
}

// --- CustomizationStorer Implementation ---

func (s *MemoryStore) ListCustomizations(ctx context.Context) ([]domain.Customization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customizations := make([]domain.Customization, 0, len(s.customizations))
	for _, c := range s.customizations {
		customizations = append(customizations, c)
	}
	sort.Slice(customizations, func(i, j int) bool { return customizations[i].ID < customizations[j].ID })
	return customizations, nil
}

func (s *MemoryStore) ListCustomizationsByProduct(ctx context.Context, productID int64) ([]domain.Customization, error) {
	customizations, err := s.ListCustomizations(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.Customization, 0, len(customizations))
	for _, c := range customizations {
		if c.ProductID != nil && *c.ProductID == productID {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *MemoryStore) CreateCustomization(ctx context.Context, customization *domain.Customization) (*domain.Customization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *customization
	created.ID = s.nextCustomizationID
	s.nextCustomizationID++
	s.customizations[created.ID] = created
	return &created, nil
}

// --- OrderStorer Implementation ---

func (s *MemoryStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (s *MemoryStore) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &o, nil
}

func (s *MemoryStore) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.createOrderLocked(order)
	return &created, nil
}

func (s *MemoryStore) createOrderLocked(order *domain.Order) domain.Order {
	created := *order
	created.ID = s.nextOrderID
	s.nextOrderID++
	if created.Status == "" {
		created.Status = domain.StatusProcessing
	}
	created.CreatedAt = time.Now()
	created.DeliveryDate = nil
	s.orders[created.ID] = created
	return created
}

// CreateOrderWithItems creates the order and every item under one lock.
// The memory backend has no transactions, so a failing item triggers a
// compensating rollback: the order and any already-created items are deleted
// before the error is returned.
func (s *MemoryStore) CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, []domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.createOrderLocked(order)

	createdItems := make([]domain.OrderItem, 0, len(items))
	rollback := func() {
		for _, it := range createdItems {
			delete(s.orderItems, it.ID)
		}
		delete(s.orders, created.ID)
	}

	for i := range items {
		item := items[i]
		item.OrderID = &created.ID
		if err := validateOrderItem(&item); err != nil {
			rollback()
			return nil, nil, fmt.Errorf("%w: item %d: %v", ErrInvalidOrderItem, i, err)
		}
		item.ID = s.nextOrderItemID
		s.nextOrderItemID++
		s.orderItems[item.ID] = item
		createdItems = append(createdItems, item)
	}

	return &created, createdItems, nil
}

func validateOrderItem(item *domain.OrderItem) error {
	if item.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", item.Quantity)
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("unit price cannot be negative")
	}
	return item.Customizations.Validate()
}

func (s *MemoryStore) UpdateOrderStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o.Status = status
	s.orders[id] = o
	return &o, nil
}

func (s *MemoryStore) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.OrderItem, 0)
	for _, it := range s.orderItems {
		if it.OrderID != nil && *it.OrderID == orderID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *MemoryStore) CreateOrderItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateOrderItem(item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrderItem, err)
	}
	created := *item
	created.ID = s.nextOrderItemID
	s.nextOrderItemID++
	s.orderItems[created.ID] = created
	return &created, nil
}

// --- ContactStorer Implementation ---

func (s *MemoryStore) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	contacts := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, c)
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })
	return contacts, nil
}

func (s *MemoryStore) CreateContact(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *contact
	created.ID = s.nextContactID
	s.nextContactID++
	created.CreatedAt = time.Now()
	s.contacts[created.ID] = created
	return &created, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
