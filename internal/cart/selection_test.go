package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/pricing"
)

func TestNewSelection_Defaults(t *testing.T) {
	s := NewSelection()
	assert.Equal(t, EngravingNone, s.Engraving)
	assert.False(t, s.SizeEnabled)
	assert.Equal(t, DefaultWidth, s.Width)
	assert.Equal(t, DefaultHeight, s.Height)
	assert.False(t, s.Premium)
	assert.False(t, s.Rounded)
	assert.False(t, s.Support)
}

func TestSelection_AdditionalCost_Tiers(t *testing.T) {
	cfg := pricing.DefaultConfig()

	s := NewSelection()
	assert.Equal(t, "0.00", s.AdditionalCost(cfg).StringFixed(2))

	s.Engraving = EngravingText
	s.EngravingText = "João"
	assert.Equal(t, "25.00", s.AdditionalCost(cfg).StringFixed(2))

	s.SizeEnabled = true
	assert.Equal(t, "60.00", s.AdditionalCost(cfg).StringFixed(2))

	s.Premium = true
	assert.Equal(t, "105.00", s.AdditionalCost(cfg).StringFixed(2))

	// A second and third finish never stack the finish tier.
	s.Rounded = true
	s.Support = true
	assert.Equal(t, "105.00", s.AdditionalCost(cfg).StringFixed(2))
}

func TestSelection_FinishToggleIdempotent(t *testing.T) {
	cfg := pricing.DefaultConfig()
	s := NewSelection()

	s.Premium = true
	costOn := s.AdditionalCost(cfg)
	s.Premium = false
	s.Premium = true
	assert.True(t, costOn.Equal(s.AdditionalCost(cfg)))
}

func TestSelection_Build_EmptyIsNil(t *testing.T) {
	s := NewSelection()
	assert.Nil(t, s.Build(pricing.DefaultConfig()))

	// Engraving explicitly set to none counts as empty.
	s.Engraving = EngravingNone
	assert.Nil(t, s.Build(pricing.DefaultConfig()))
}

func TestSelection_Build_FullSelection(t *testing.T) {
	cfg := pricing.DefaultConfig()
	s := NewSelection()
	s.Engraving = EngravingLogo
	s.EngravingText = "Churrasco do Zé"
	s.SizeEnabled = true
	s.Width = 50
	s.Height = 35
	s.Premium = true
	s.Support = true
	s.Instructions = "Entregar embalado para presente"

	cust := s.Build(cfg)
	require.NotNil(t, cust)
	assert.Equal(t, "Churrasco do Zé", cust.Engraving)
	require.NotNil(t, cust.Size)
	assert.Equal(t, domain.Dimensions{Width: 50, Height: 35}, *cust.Size)
	assert.Equal(t, []string{domain.FinishPremium, domain.FinishSupport}, cust.Finishes)
	assert.Equal(t, "Entregar embalado para presente", cust.Instructions)
	assert.Equal(t, "105.00", cust.AdditionalCost.StringFixed(2))
	assert.NoError(t, cust.Validate())
}

func TestSelection_Build_InstructionsOnly(t *testing.T) {
	s := NewSelection()
	s.Instructions = "Sem verniz"

	cust := s.Build(pricing.DefaultConfig())
	require.NotNil(t, cust)
	assert.Empty(t, cust.Engraving)
	assert.Nil(t, cust.Size)
	assert.Empty(t, cust.Finishes)
	assert.Equal(t, "0.00", cust.AdditionalCost.StringFixed(2))
}
