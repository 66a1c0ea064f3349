// Package cart implements the session-owned cart aggregate. A cart belongs
// to exactly one session and is mutated by that session's synchronous call
// sequence, so the aggregate carries no internal locking.
package cart

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/pricing"
)

// Cart is an ordered sequence of lines plus the open/closed UI flag. Pricing
// queries are derived from current state on every call, so they are always
// consistent with the latest mutation.
type Cart struct {
	cfg   pricing.Config
	node  *snowflake.Node
	lines []domain.CartLine
	open  bool
}

// New returns an empty cart. Line ids are minted from a snowflake node so
// they stay time-ordered without same-millisecond collisions.
func New(cfg pricing.Config) (*Cart, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("cart: init id node: %w", err)
	}
	return &Cart{cfg: cfg, node: node}, nil
}

// AddItem merges the new line into an existing one when product and
// customization payload are structurally identical (quantities sum),
// otherwise appends it under a freshly minted line id. After this call no two
// lines share a (productId, customization) pair. The stored line is returned.
func (c *Cart) AddItem(line domain.CartLine) domain.CartLine {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	key := line.MergeKey()
	for i := range c.lines {
		if c.lines[i].MergeKey() == key {
			c.lines[i].Quantity += line.Quantity
			return c.lines[i]
		}
	}
	line.ID = c.node.Generate().Int64()
	c.lines = append(c.lines, line)
	return line
}

// RemoveItem deletes the line with the given id; absent ids are a no-op.
func (c *Cart) RemoveItem(id int64) {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the line's quantity; zero or negative quantities
// remove the line. Absent ids are a no-op.
func (c *Cart) UpdateQuantity(id int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
}

// Restore replaces the cart contents, used when loading persisted state.
func (c *Cart) Restore(lines []domain.CartLine) {
	c.lines = append([]domain.CartLine(nil), lines...)
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	return append([]domain.CartLine(nil), c.lines...)
}

// ItemCount is the sum of line quantities.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) Subtotal() decimal.Decimal {
	return pricing.Subtotal(c.lines)
}

func (c *Cart) Shipping() decimal.Decimal {
	return c.cfg.Shipping(c.Subtotal())
}

func (c *Cart) Total() decimal.Decimal {
	return c.cfg.Total(c.lines)
}

// Toggle flips the cart sidebar open/closed. The flag is UI state only and
// is never persisted.
func (c *Cart) Toggle() {
	c.open = !c.open
}

func (c *Cart) CloseSidebar() {
	c.open = false
}

func (c *Cart) IsOpen() bool {
	return c.open
}
