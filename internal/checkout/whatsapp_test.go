package checkout

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/pricing"
)

func TestSummary_RendersOrderMessage(t *testing.T) {
	customer := CustomerInfo{
		Name:    "João Silva",
		Phone:   "11988887777",
		Address: "Rua das Brasas, 42 - São Paulo",
	}
	lines := []domain.CartLine{
		{
			ProductID: 1,
			Name:      "Tábua Rústica Grande",
			UnitPrice: dec("89.90"),
			Quantity:  2,
		},
	}

	msg := Summary(customer, lines, pricing.DefaultConfig())

	assert.Contains(t, msg, "*🔥 NOVO PEDIDO - SPOILER CHURRASCO 🔥*")
	assert.Contains(t, msg, "*Nome:* João Silva")
	assert.Contains(t, msg, "*Telefone:* 11988887777")
	assert.Contains(t, msg, "*Endereço:* Rua das Brasas, 42 - São Paulo")
	assert.Contains(t, msg, "1. *Tábua Rústica Grande*")
	assert.Contains(t, msg, "Quantidade: 2")
	assert.Contains(t, msg, "Preço unitário: R$ 89,90")
	assert.Contains(t, msg, "Subtotal: R$ 179,80")
	assert.Contains(t, msg, "Frete: R$ 15,00")
	assert.Contains(t, msg, "*TOTAL: R$ 194,80*")
	assert.True(t, strings.HasSuffix(msg, "_Pedido realizado através do site_"))
}

func TestSummary_FreeShippingRendersGratis(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: 4, Name: "Kit Master Churrasco", UnitPrice: dec("199.90"), Quantity: 2},
	}

	msg := Summary(CustomerInfo{Name: "Maria"}, lines, pricing.DefaultConfig())

	assert.Contains(t, msg, "Frete: Grátis")
	assert.Contains(t, msg, "*TOTAL: R$ 399,80*")
}

func TestSummary_CustomizedLineUsesSurchargedSubtotal(t *testing.T) {
	lines := []domain.CartLine{
		{
			ProductID: 1,
			Name:      "Tábua Rústica Grande",
			UnitPrice: dec("89.90"),
			Quantity:  1,
			Customizations: &domain.LineCustomization{
				Engraving:      "Família Silva",
				AdditionalCost: dec("25"),
			},
		},
	}

	msg := Summary(CustomerInfo{Name: "Zé"}, lines, pricing.DefaultConfig())

	// The per-line subtotal includes the surcharge, the unit price does not.
	assert.Contains(t, msg, "Preço unitário: R$ 89,90")
	assert.Contains(t, msg, "Subtotal: R$ 114,90")
}

func TestDeepLink_EscapesMessage(t *testing.T) {
	link := DeepLink("5511999999999", "*🔥 NOVO PEDIDO*\nFrete: Grátis")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511999999999?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "*🔥 NOVO PEDIDO*\nFrete: Grátis", parsed.Query().Get("text"))
}
