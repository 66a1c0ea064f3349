package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Finish names selectable on a customized line. Any combination may be
// chosen; the finish surcharge tier applies once regardless of how many.
const (
	FinishPremium = "premium"
	FinishRounded = "rounded"
	FinishSupport = "support"
)

var knownFinishes = map[string]bool{
	FinishPremium: true,
	FinishRounded: true,
	FinishSupport: true,
}

// Dimensions is a custom size override in centimeters.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LineCustomization is the value object attached to a cart line or order item
// at the moment of customization: the chosen instantiation of the catalog
// offers, with the surcharge captured as a snapshot in AdditionalCost.
// AdditionalCost is derived by the pricing engine, never user-entered.
type LineCustomization struct {
	Engraving      string          `json:"engraving,omitempty"`
	Size           *Dimensions     `json:"size,omitempty"`
	Finishes       []string        `json:"finishes,omitempty"`
	Instructions   string          `json:"instructions,omitempty"`
	AdditionalCost decimal.Decimal `json:"additionalCost"`
}

// Key returns the canonical identity of the customization payload, used for
// cart-line merge decisions. Finish order is normalized so structurally equal
// payloads always produce the same key; a nil customization keys to "".
// AdditionalCost is part of the identity: an engraving selection with empty
// text carries no content but still differs from "no customization" by cost.
func (c *LineCustomization) Key() string {
	if c == nil {
		return ""
	}
	finishes := append([]string(nil), c.Finishes...)
	sort.Strings(finishes)

	var b strings.Builder
	fmt.Fprintf(&b, "engraving=%s|", c.Engraving)
	if c.Size != nil {
		fmt.Fprintf(&b, "size=%dx%d|", c.Size.Width, c.Size.Height)
	} else {
		b.WriteString("size=|")
	}
	fmt.Fprintf(&b, "finishes=%s|", strings.Join(finishes, ","))
	fmt.Fprintf(&b, "instructions=%s|", c.Instructions)
	b.WriteString("cost=" + c.AdditionalCost.String())
	return b.String()
}

// Validate checks the customization is well-formed before it is persisted on
// an order item. A nil customization is valid (no customization).
func (c *LineCustomization) Validate() error {
	if c == nil {
		return nil
	}
	if c.Size != nil && (c.Size.Width <= 0 || c.Size.Height <= 0) {
		return errors.New("domain: size dimensions must be positive")
	}
	for _, f := range c.Finishes {
		if !knownFinishes[f] {
			return fmt.Errorf("domain: unknown finish %q", f)
		}
	}
	if c.AdditionalCost.IsNegative() {
		return errors.New("domain: additional cost cannot be negative")
	}
	return nil
}

// Serialize renders the customization as its canonical JSON form (finishes
// sorted) for opaque-text persistence on an order item row.
func (c *LineCustomization) Serialize() (string, error) {
	if c == nil {
		return "", nil
	}
	normalized := *c
	if len(c.Finishes) > 0 {
		normalized.Finishes = append([]string(nil), c.Finishes...)
		sort.Strings(normalized.Finishes)
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("domain: serialize customization: %w", err)
	}
	return string(data), nil
}

// ParseLineCustomization is the inverse of Serialize. An empty string parses
// to nil (no customization).
func ParseLineCustomization(s string) (*LineCustomization, error) {
	if s == "" {
		return nil, nil
	}
	var c LineCustomization
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return nil, fmt.Errorf("domain: parse customization: %w", err)
	}
	return &c, nil
}
