package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/money"
	"spoiler-storefront/internal/pricing"
)

// CustomerInfo is the checkout-form contact data rendered into the WhatsApp
// order message.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
}

// Summary renders the WhatsApp order message for a priced cart: customer
// data, one block per line, and the financial summary with comma-decimal
// R$ formatting.
func Summary(customer CustomerInfo, lines []domain.CartLine, cfg pricing.Config) string {
	subtotal := pricing.Subtotal(lines)
	shipping := cfg.Shipping(subtotal)
	total := subtotal.Add(shipping)

	var b strings.Builder
	b.WriteString("*🔥 NOVO PEDIDO - SPOILER CHURRASCO 🔥*\n\n")
	b.WriteString("*👤 DADOS DO CLIENTE*\n")
	fmt.Fprintf(&b, "*Nome:* %s\n", customer.Name)
	fmt.Fprintf(&b, "*Telefone:* %s\n", customer.Phone)
	fmt.Fprintf(&b, "*Endereço:* %s\n\n", customer.Address)

	b.WriteString("*🛒 ITENS DO PEDIDO*\n")
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, line.Name)
		fmt.Fprintf(&b, "   Quantidade: %d\n", line.Quantity)
		fmt.Fprintf(&b, "   Preço unitário: %s\n", money.FormatBRL(line.UnitPrice))
		fmt.Fprintf(&b, "   Subtotal: %s\n\n", money.FormatBRL(pricing.LineTotal(line)))
	}

	b.WriteString("*💰 RESUMO FINANCEIRO*\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", money.FormatBRL(subtotal))
	fmt.Fprintf(&b, "Frete: %s\n", money.FormatShipping(shipping))
	fmt.Fprintf(&b, "*TOTAL: %s*\n\n", money.FormatBRL(total))
	b.WriteString("_Pedido realizado através do site_")
	return b.String()
}

// DeepLink builds the wa.me checkout URL for a rendered message.
func DeepLink(number, message string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}
