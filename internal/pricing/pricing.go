// Package pricing is the pure computation core: per-line and cart-level
// totals from base prices, customization surcharges and the free-shipping
// threshold rule. No function here has side effects.
package pricing

import (
	"github.com/shopspring/decimal"

	"spoiler-storefront/internal/domain"
)

// Config carries the business constants the engine computes with. The
// canonical free-shipping threshold is 200; the storefront once shipped a
// divergent 100 in a secondary checkout script, which is why the value is
// configuration rather than a constant.
type Config struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	EngravingFee          decimal.Decimal
	SizeFee               decimal.Decimal
	FinishFee             decimal.Decimal
}

// DefaultConfig returns the canonical storefront constants.
func DefaultConfig() Config {
	return Config{
		FreeShippingThreshold: decimal.NewFromInt(200),
		ShippingFee:           decimal.NewFromInt(15),
		EngravingFee:          decimal.NewFromInt(25),
		SizeFee:               decimal.NewFromInt(35),
		FinishFee:             decimal.NewFromInt(45),
	}
}

// LineTotal computes (unitPrice + customization surcharge) * quantity.
func LineTotal(line domain.CartLine) decimal.Decimal {
	unit := line.UnitPrice
	if line.Customizations != nil {
		unit = unit.Add(line.Customizations.AdditionalCost)
	}
	return unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// Subtotal sums LineTotal over all lines.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(LineTotal(line))
	}
	return sum
}

// Shipping is zero when the subtotal strictly exceeds the free-shipping
// threshold, otherwise the flat fee.
func (c Config) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(c.FreeShippingThreshold) {
		return decimal.Zero
	}
	return c.ShippingFee
}

// Total is subtotal plus shipping over that subtotal.
func (c Config) Total(lines []domain.CartLine) decimal.Decimal {
	subtotal := Subtotal(lines)
	return subtotal.Add(c.Shipping(subtotal))
}

// Surcharge computes the flat-tier additive customization cost: one tier per
// dimension, regardless of how many options inside a dimension are selected
// (three finishes still contribute the finish fee once).
func (c Config) Surcharge(engraving, customSize, anyFinish bool) decimal.Decimal {
	cost := decimal.Zero
	if engraving {
		cost = cost.Add(c.EngravingFee)
	}
	if customSize {
		cost = cost.Add(c.SizeFee)
	}
	if anyFinish {
		cost = cost.Add(c.FinishFee)
	}
	return cost
}
