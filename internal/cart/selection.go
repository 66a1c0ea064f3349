package cart

import (
	"github.com/shopspring/decimal"

	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/pricing"
)

// EngravingType is the engraving dimension of a customization selection.
type EngravingType string

const (
	EngravingNone EngravingType = "none"
	EngravingText EngravingType = "text"
	EngravingLogo EngravingType = "logo"
)

// Default size-override dimensions in centimeters.
const (
	DefaultWidth  = 60
	DefaultHeight = 40
)

// Selection is the UI-facing customization state: three independent
// dimensions that are not mutually exclusive. Building the final value object
// collapses it into a domain.LineCustomization with the surcharge snapshot
// taken at build time.
type Selection struct {
	Engraving     EngravingType
	EngravingText string

	SizeEnabled bool
	Width       int
	Height      int

	Premium bool
	Rounded bool
	Support bool

	Instructions string
}

// NewSelection returns the initial state: no engraving, size override
// disabled with the default dimensions, no finishes.
func NewSelection() Selection {
	return Selection{
		Engraving: EngravingNone,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
	}
}

func (s Selection) engravingSelected() bool {
	return s.Engraving != "" && s.Engraving != EngravingNone
}

func (s Selection) anyFinish() bool {
	return s.Premium || s.Rounded || s.Support
}

func (s Selection) empty() bool {
	return !s.engravingSelected() && !s.SizeEnabled && !s.anyFinish() && s.Instructions == ""
}

// AdditionalCost computes the flat-tier surcharge for the current state.
// Toggling an already-selected finish off and on again never changes the
// result: the finish tier contributes once, not per finish.
func (s Selection) AdditionalCost(cfg pricing.Config) decimal.Decimal {
	return cfg.Surcharge(s.engravingSelected(), s.SizeEnabled, s.anyFinish())
}

// Build collapses the selection into the persistable value object. An empty
// selection builds to nil so that it is structurally equal to "no
// customization" for cart merging. The surcharge is captured as a snapshot
// and is not recomputed later even if tier prices change.
func (s Selection) Build(cfg pricing.Config) *domain.LineCustomization {
	if s.empty() {
		return nil
	}
	cust := &domain.LineCustomization{
		Instructions:   s.Instructions,
		AdditionalCost: s.AdditionalCost(cfg),
	}
	if s.engravingSelected() {
		cust.Engraving = s.EngravingText
	}
	if s.SizeEnabled {
		cust.Size = &domain.Dimensions{Width: s.Width, Height: s.Height}
	}
	if s.Premium {
		cust.Finishes = append(cust.Finishes, domain.FinishPremium)
	}
	if s.Rounded {
		cust.Finishes = append(cust.Finishes, domain.FinishRounded)
	}
	if s.Support {
		cust.Finishes = append(cust.Finishes, domain.FinishSupport)
	}
	return cust
}
