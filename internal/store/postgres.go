package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"spoiler-storefront/internal/domain"
)

// PostgresStore implements the Store contract using PostgreSQL. It is the
// optional durable backend behind the same repository interfaces as the
// in-memory store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS products (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	price NUMERIC(10,2) NOT NULL,
	category TEXT NOT NULL,
	image_url TEXT NOT NULL,
	in_stock BOOLEAN NOT NULL DEFAULT TRUE,
	featured BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS customizations (
	id SERIAL PRIMARY KEY,
	product_id INTEGER REFERENCES products(id),
	name TEXT NOT NULL,
	description TEXT,
	additional_price NUMERIC(10,2) NOT NULL,
	type TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS orders (
	id SERIAL PRIMARY KEY,
	customer_name TEXT NOT NULL,
	customer_email TEXT NOT NULL,
	customer_phone TEXT,
	status TEXT NOT NULL DEFAULT 'processing',
	total NUMERIC(10,2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	delivery_date TIMESTAMPTZ
);
CREATE TABLE IF NOT EXISTS order_items (
	id SERIAL PRIMARY KEY,
	order_id INTEGER REFERENCES orders(id),
	product_id INTEGER REFERENCES products(id),
	quantity INTEGER NOT NULL,
	unit_price NUMERIC(10,2) NOT NULL,
	customizations TEXT
);
CREATE TABLE IF NOT EXISTS contacts (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	subject TEXT NOT NULL,
	message TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// EnsureSchema creates the storefront tables when they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("store: EnsureSchema failed: %w", err)
	}
	return nil
}

// --- ProductStorer Implementation ---

const productColumns = "id, name, description, price, category, image_url, in_stock, featured"

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.ImageURL, &p.InStock, &p.Featured)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListProducts failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProducts iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY id ASC;`
	rows, err := s.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("store: ListProductsByCategory failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListProductsByCategory failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListProductsByCategory iteration error: %w", err)
	}
	return products, nil
}

func (s *PostgresStore) GetProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1;`
	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("store: GetProductByID failed to scan row: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, description, price, category, image_url, in_stock, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns + `;`
	created, err := scanProduct(s.db.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.Category,
		product.ImageURL, product.InStock, product.Featured,
	))
	if err != nil {
		return nil, fmt.Errorf("store: CreateProduct failed to scan row: %w", err)
	}
	return created, nil
}

// --- CustomizationStorer Implementation ---

const customizationColumns = "id, product_id, name, description, additional_price, type"

func scanCustomization(row interface{ Scan(...interface{}) error }) (*domain.Customization, error) {
	var c domain.Customization
	err := row.Scan(&c.ID, &c.ProductID, &c.Name, &c.Description, &c.AdditionalPrice, &c.Type)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) ListCustomizations(ctx context.Context) ([]domain.Customization, error) {
	query := `SELECT ` + customizationColumns + ` FROM customizations ORDER BY id ASC;`
	return s.queryCustomizations(ctx, query)
}

func (s *PostgresStore) ListCustomizationsByProduct(ctx context.Context, productID int64) ([]domain.Customization, error) {
	query := `SELECT ` + customizationColumns + ` FROM customizations WHERE product_id = $1 ORDER BY id ASC;`
	return s.queryCustomizations(ctx, query, productID)
}

func (s *PostgresStore) queryCustomizations(ctx context.Context, query string, args ...interface{}) ([]domain.Customization, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: failed to query customizations: %w", err)
	}
	defer rows.Close()

	customizations := make([]domain.Customization, 0)
	for rows.Next() {
		c, err := scanCustomization(rows)
		if err != nil {
			return nil, fmt.Errorf("store: failed to scan customization row: %w", err)
		}
		customizations = append(customizations, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: customizations iteration error: %w", err)
	}
	return customizations, nil
}

func (s *PostgresStore) CreateCustomization(ctx context.Context, customization *domain.Customization) (*domain.Customization, error) {
	query := `
		INSERT INTO customizations (product_id, name, description, additional_price, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + customizationColumns + `;`
	created, err := scanCustomization(s.db.QueryRowContext(ctx, query,
		customization.ProductID, customization.Name, customization.Description,
		customization.AdditionalPrice, customization.Type,
	))
	if err != nil {
		return nil, fmt.Errorf("store: CreateCustomization failed to scan row: %w", err)
	}
	return created, nil
}

// --- OrderStorer Implementation ---

const orderColumns = "id, customer_name, customer_email, customer_phone, status, total, created_at, delivery_date"

func scanOrder(row interface{ Scan(...interface{}) error }) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.Status, &o.Total, &o.CreatedAt, &o.DeliveryDate)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *PostgresStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY id ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListOrders failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListOrders failed to scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListOrders iteration error: %w", err)
	}
	return orders, nil
}

func (s *PostgresStore) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1;`
	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("store: GetOrderByID failed to scan row: %w", err)
	}
	return o, nil
}

const insertOrderQuery = `
		INSERT INTO orders (customer_name, customer_email, customer_phone, status, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns + `;`

func (s *PostgresStore) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	status := order.Status
	if status == "" {
		status = domain.StatusProcessing
	}
	created, err := scanOrder(s.db.QueryRowContext(ctx, insertOrderQuery,
		order.CustomerName, order.CustomerEmail, order.CustomerPhone, status, order.Total,
	))
	if err != nil {
		return nil, fmt.Errorf("store: CreateOrder failed to scan row: %w", err)
	}
	return created, nil
}

const insertOrderItemQuery = `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, customizations)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, order_id, product_id, quantity, unit_price, customizations;`

func scanOrderItem(row interface{ Scan(...interface{}) error }) (*domain.OrderItem, error) {
	var it domain.OrderItem
	var serialized sql.NullString
	err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &serialized)
	if err != nil {
		return nil, err
	}
	if serialized.Valid && serialized.String != "" {
		cust, err := domain.ParseLineCustomization(serialized.String)
		if err != nil {
			return nil, err
		}
		it.Customizations = cust
	}
	return &it, nil
}

// CreateOrderWithItems persists the order and all items inside a single
// transaction, so a failing item leaves nothing behind.
func (s *PostgresStore) CreateOrderWithItems(ctx context.Context, order *domain.Order, items []domain.OrderItem) (*domain.Order, []domain.OrderItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("store: CreateOrderWithItems failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	status := order.Status
	if status == "" {
		status = domain.StatusProcessing
	}
	created, err := scanOrder(tx.QueryRowContext(ctx, insertOrderQuery,
		order.CustomerName, order.CustomerEmail, order.CustomerPhone, status, order.Total,
	))
	if err != nil {
		return nil, nil, fmt.Errorf("store: CreateOrderWithItems failed to create order: %w", err)
	}

	createdItems := make([]domain.OrderItem, 0, len(items))
	for i := range items {
		item := items[i]
		item.OrderID = &created.ID
		if err := validateOrderItem(&item); err != nil {
			return nil, nil, fmt.Errorf("%w: item %d: %v", ErrInvalidOrderItem, i, err)
		}
		serialized, err := item.Customizations.Serialize()
		if err != nil {
			return nil, nil, fmt.Errorf("store: CreateOrderWithItems item %d: %w", i, err)
		}
		var custArg interface{}
		if serialized != "" {
			custArg = serialized
		}
		createdItem, err := scanOrderItem(tx.QueryRowContext(ctx, insertOrderItemQuery,
			item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, custArg,
		))
		if err != nil {
			return nil, nil, fmt.Errorf("store: CreateOrderWithItems failed to create item %d: %w", i, err)
		}
		createdItems = append(createdItems, *createdItem)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("store: CreateOrderWithItems failed to commit: %w", err)
	}
	return created, createdItems, nil
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		RETURNING ` + orderColumns + `;`
	o, err := scanOrder(s.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("store: UpdateOrderStatus failed to scan row: %w", err)
	}
	return o, nil
}

func (s *PostgresStore) ListOrderItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price, customizations
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC;`
	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("store: ListOrderItems failed to query items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListOrderItems failed to scan item row: %w", err)
		}
		items = append(items, *it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListOrderItems iteration error: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) CreateOrderItem(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	if err := validateOrderItem(item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrderItem, err)
	}
	serialized, err := item.Customizations.Serialize()
	if err != nil {
		return nil, fmt.Errorf("store: CreateOrderItem: %w", err)
	}
	var custArg interface{}
	if serialized != "" {
		custArg = serialized
	}
	created, err := scanOrderItem(s.db.QueryRowContext(ctx, insertOrderItemQuery,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, custArg,
	))
	if err != nil {
		return nil, fmt.Errorf("store: CreateOrderItem failed to scan row: %w", err)
	}
	return created, nil
}

// --- ContactStorer Implementation ---

const contactColumns = "id, name, email, phone, subject, message, created_at"

func scanContact(row interface{ Scan(...interface{}) error }) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY id ASC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: ListContacts failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("store: ListContacts failed to scan contact row: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: ListContacts iteration error: %w", err)
	}
	return contacts, nil
}

func (s *PostgresStore) CreateContact(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	query := `
		INSERT INTO contacts (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + contactColumns + `;`
	created, err := scanContact(s.db.QueryRowContext(ctx, query,
		contact.Name, contact.Email, contact.Phone, contact.Subject, contact.Message,
	))
	if err != nil {
		return nil, fmt.Errorf("store: CreateContact failed to scan row: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		log.Println("INFO: Closing database connection pool...")
		if err := s.db.Close(); err != nil {
			log.Printf("ERROR: Failed to close database connection pool: %v", err)
			return err
		}
		log.Println("INFO: Database connection pool closed successfully.")
	}
	return nil
}
