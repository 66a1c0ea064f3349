// Package mailer sends storefront notification mail. Delivery is a
// best-effort side effect: callers log failures and never fail the request
// that triggered the mail.
package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/money"
)

// Mailer is the outbound notification contract.
type Mailer interface {
	SendOrderConfirmation(order *domain.Order, items []domain.OrderItem) error
	SendContactNotification(contact *domain.Contact) error
}

// Noop discards all mail. Used whenever SMTP is not configured.
type Noop struct{}

func (Noop) SendOrderConfirmation(*domain.Order, []domain.OrderItem) error { return nil }
func (Noop) SendContactNotification(*domain.Contact) error                 { return nil }

// SMTP sends mail through a gomail dialer.
type SMTP struct {
	dialer   *gomail.Dialer
	from     string
	notifyTo string
}

// NewSMTP builds an SMTP mailer. notifyTo receives internal notifications
// such as new contact submissions.
func NewSMTP(host string, port int, username, password, from, notifyTo string) *SMTP {
	return &SMTP{
		dialer:   gomail.NewDialer(host, port, username, password),
		from:     from,
		notifyTo: notifyTo,
	}
}

func (s *SMTP) SendOrderConfirmation(order *domain.Order, items []domain.OrderItem) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Pedido #%d recebido</h2>", order.ID)
	fmt.Fprintf(&b, "<p>Olá, %s! Recebemos seu pedido e ele já está em produção.</p>", order.CustomerName)
	b.WriteString("<ul>")
	for _, item := range items {
		fmt.Fprintf(&b, "<li>%dx item — %s", item.Quantity, money.FormatBRL(item.UnitPrice))
		if item.Customizations != nil {
			b.WriteString(" (personalizado)")
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p><strong>Total: %s</strong></p>", money.FormatBRL(order.Total))

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", order.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Pedido #%d recebido - Spoiler do Churrasco", order.ID))
	m.SetBody("text/html", b.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mailer: order confirmation: %w", err)
	}
	return nil
}

func (s *SMTP) SendContactNotification(contact *domain.Contact) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Novo contato: %s</h2>", contact.Subject)
	fmt.Fprintf(&b, "<p><strong>%s</strong> &lt;%s&gt;</p>", contact.Name, contact.Email)
	if contact.Phone != nil {
		fmt.Fprintf(&b, "<p>Telefone: %s</p>", *contact.Phone)
	}
	fmt.Fprintf(&b, "<p>%s</p>", contact.Message)

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.notifyTo)
	m.SetHeader("Subject", "Novo contato: "+contact.Subject)
	m.SetBody("text/html", b.String())

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("mailer: contact notification: %w", err)
	}
	return nil
}
