package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := New(pricing.DefaultConfig())
	require.NoError(t, err)
	return c
}

func boardLine(quantity int) domain.CartLine {
	return domain.CartLine{
		ProductID: 1,
		Name:      "Tábua Rústica Grande",
		UnitPrice: dec("89.90"),
		Quantity:  quantity,
	}
}

func TestCart_AddItem_MergesIdenticalLines(t *testing.T) {
	c := newTestCart(t)

	first := c.AddItem(boardLine(1))
	second := c.AddItem(boardLine(2))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 3, c.ItemCount())
}

func TestCart_AddItem_DistinctCustomizationIsNewLine(t *testing.T) {
	c := newTestCart(t)

	plain := boardLine(1)
	engraved := boardLine(1)
	engraved.Customizations = &domain.LineCustomization{
		Engraving:      "Família Silva",
		AdditionalCost: dec("25"),
	}

	c.AddItem(plain)
	c.AddItem(engraved)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.NotEqual(t, lines[0].ID, lines[1].ID)
}

func TestCart_AddItem_SameCustomizationMergesDespiteFinishOrder(t *testing.T) {
	c := newTestCart(t)

	a := boardLine(1)
	a.Customizations = &domain.LineCustomization{
		Finishes:       []string{domain.FinishPremium, domain.FinishRounded},
		AdditionalCost: dec("45"),
	}
	b := boardLine(1)
	b.Customizations = &domain.LineCustomization{
		Finishes:       []string{domain.FinishRounded, domain.FinishPremium},
		AdditionalCost: dec("45"),
	}

	c.AddItem(a)
	c.AddItem(b)

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestCart_AddItem_NormalizesQuantityToOne(t *testing.T) {
	c := newTestCart(t)
	added := c.AddItem(boardLine(0))
	assert.Equal(t, 1, added.Quantity)
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := newTestCart(t)
	line := c.AddItem(boardLine(1))

	c.UpdateQuantity(line.ID, 5)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	// Zero and negative both remove the line.
	c.UpdateQuantity(line.ID, 0)
	assert.Empty(t, c.Lines())

	line = c.AddItem(boardLine(1))
	c.UpdateQuantity(line.ID, -3)
	assert.Empty(t, c.Lines())

	// Absent id is a no-op.
	c.UpdateQuantity(12345, 2)
	assert.Empty(t, c.Lines())
}

func TestCart_RemoveItem_AbsentIsNoOp(t *testing.T) {
	c := newTestCart(t)
	line := c.AddItem(boardLine(2))

	c.RemoveItem(999999)
	require.Len(t, c.Lines(), 1)

	c.RemoveItem(line.ID)
	assert.Empty(t, c.Lines())
}

func TestCart_Totals(t *testing.T) {
	c := newTestCart(t)
	c.AddItem(boardLine(2)) // 179.80, below threshold

	assert.Equal(t, "179.80", c.Subtotal().StringFixed(2))
	assert.Equal(t, "15.00", c.Shipping().StringFixed(2))
	assert.Equal(t, "194.80", c.Total().StringFixed(2))

	kit := domain.CartLine{ProductID: 4, Name: "Kit Master Churrasco", UnitPrice: dec("199.90"), Quantity: 1}
	c.AddItem(kit) // subtotal 379.70, above threshold

	assert.Equal(t, "379.70", c.Subtotal().StringFixed(2))
	assert.Equal(t, "0.00", c.Shipping().StringFixed(2))
	assert.Equal(t, "379.70", c.Total().StringFixed(2))
}

func TestCart_ClearAndRestore(t *testing.T) {
	c := newTestCart(t)
	c.AddItem(boardLine(2))

	saved := c.Lines()
	c.Clear()
	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.ItemCount())

	c.Restore(saved)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 2, c.ItemCount())
}

func TestCart_SidebarToggle(t *testing.T) {
	c := newTestCart(t)
	assert.False(t, c.IsOpen())
	c.Toggle()
	assert.True(t, c.IsOpen())
	c.Toggle()
	assert.False(t, c.IsOpen())
	c.Toggle()
	c.CloseSidebar()
	assert.False(t, c.IsOpen())
}
