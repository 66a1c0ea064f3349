// Package checkout converts a priced cart into a persisted order with line
// items: envelope validation, an optional price-integrity check, and an
// atomic order+items create through the repository.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/mailer"
	"spoiler-storefront/internal/pricing"
	"spoiler-storefront/internal/store"
)

// ErrPriceIntegrity marks a client-supplied total that does not match the
// submitted line items. Only returned when total verification is enabled.
var ErrPriceIntegrity = errors.New("checkout: order total does not match its items")

// FieldError names one offending field of a rejected submission.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the full list of offending fields; a submission is
// never partially silently accepted.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "checkout: validation failed on " + strings.Join(names, ", ")
}

// OrderItemInput is one cart line of the order-creation request.
type OrderItemInput struct {
	ProductID      *int64                    `json:"productId" validate:"omitempty,gt=0"`
	Quantity       int                       `json:"quantity" validate:"required,gte=1"`
	UnitPrice      decimal.Decimal           `json:"unitPrice" validate:"required,gte=0"`
	Customizations *domain.LineCustomization `json:"customizations"`
}

// PlaceOrderInput is the inbound order envelope. Status defaults server-side
// to processing when omitted.
type PlaceOrderInput struct {
	CustomerName  string           `json:"customerName" validate:"required"`
	CustomerEmail string           `json:"customerEmail" validate:"required,email"`
	CustomerPhone *string          `json:"customerPhone" validate:"omitempty"`
	Status        *string          `json:"status" validate:"omitempty,oneof=processing production shipped delivered"`
	Total         decimal.Decimal  `json:"total" validate:"required"`
	Items         []OrderItemInput `json:"items" validate:"omitempty,dive"`
}

// Service is the order-placement workflow.
type Service struct {
	orders       store.OrderStorer
	cfg          pricing.Config
	verifyTotals bool
	mailer       mailer.Mailer
	validate     *validator.Validate
}

// NewService wires the workflow. When verifyTotals is false the legacy
// behavior is preserved: the client-computed total is accepted verbatim.
func NewService(orders store.OrderStorer, cfg pricing.Config, verifyTotals bool, m mailer.Mailer) *Service {
	return &Service{
		orders:       orders,
		cfg:          cfg,
		verifyTotals: verifyTotals,
		mailer:       m,
		validate:     NewValidator(),
	}
}

// NewValidator builds a validator that reports API field names (json tags)
// and treats decimal.Decimal values as plain numbers.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// FieldErrors converts a validator error into the full offending-field list.
func FieldErrors(err error) *ValidationError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		ve := &ValidationError{}
		for _, fe := range verrs {
			ve.Fields = append(ve.Fields, FieldError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("failed on the %q rule", fe.Tag()),
			})
		}
		return ve
	}
	return &ValidationError{Fields: []FieldError{{Field: "body", Message: err.Error()}}}
}

// PlaceOrder validates the envelope and every item, optionally verifies the
// client-computed total, then creates the order and its items as one atomic
// unit. The created order is returned without embedded items; the caller is
// responsible for clearing its cart only after a success response.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, []domain.OrderItem, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, nil, FieldErrors(err)
	}
	for i, item := range in.Items {
		if err := item.Customizations.Validate(); err != nil {
			return nil, nil, &ValidationError{Fields: []FieldError{{
				Field:   fmt.Sprintf("items[%d].customizations", i),
				Message: err.Error(),
			}}}
		}
	}

	if s.verifyTotals {
		if err := s.verifyTotal(in); err != nil {
			return nil, nil, err
		}
	}

	status := domain.StatusProcessing
	if in.Status != nil && *in.Status != "" {
		status = *in.Status
	}
	order := &domain.Order{
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		Status:        status,
		Total:         in.Total,
	}
	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, domain.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			Customizations: it.Customizations,
		})
	}

	created, createdItems, err := s.orders.CreateOrderWithItems(ctx, order, items)
	if err != nil {
		return nil, nil, err
	}

	if err := s.mailer.SendOrderConfirmation(created, createdItems); err != nil {
		log.Printf("WARN: order %d confirmation mail failed: %v", created.ID, err)
	}
	return created, createdItems, nil
}

// verifyTotal recomputes Σ(unitPrice × quantity) plus shipping and rejects
// mismatching client totals. Item unit prices already carry customization
// surcharges baked in.
func (s *Service) verifyTotal(in PlaceOrderInput) error {
	subtotal := decimal.Zero
	for _, item := range in.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	expected := subtotal.Add(s.cfg.Shipping(subtotal))
	if !expected.Equal(in.Total) {
		return fmt.Errorf("%w: got %s, want %s", ErrPriceIntegrity, in.Total.StringFixed(2), expected.StringFixed(2))
	}
	return nil
}
