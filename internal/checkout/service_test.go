package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spoiler-storefront/internal/domain"
	"spoiler-storefront/internal/mailer"
	"spoiler-storefront/internal/pricing"
	"spoiler-storefront/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestService(t *testing.T, verifyTotals bool) (*Service, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	svc := NewService(st, pricing.DefaultConfig(), verifyTotals, mailer.Noop{})
	return svc, st
}

func ptrTo[T any](v T) *T {
	return &v
}

func TestService_PlaceOrder_Success(t *testing.T) {
	svc, st := newTestService(t, false)

	productID := int64(1)
	in := PlaceOrderInput{
		CustomerName:  "João Silva",
		CustomerEmail: "joao@example.com",
		CustomerPhone: ptrTo("11988887777"),
		Total:         dec("194.80"),
		Items: []OrderItemInput{
			{ProductID: &productID, Quantity: 2, UnitPrice: dec("89.90")},
		},
	}

	order, items, err := svc.PlaceOrder(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, domain.StatusProcessing, order.Status)
	assert.True(t, order.Total.Equal(dec("194.80")))
	require.Len(t, items, 1)
	require.NotNil(t, items[0].OrderID)
	assert.Equal(t, order.ID, *items[0].OrderID)

	persisted, err := st.GetOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "João Silva", persisted.CustomerName)
}

func TestService_PlaceOrder_ExplicitStatus(t *testing.T) {
	svc, _ := newTestService(t, false)

	in := PlaceOrderInput{
		CustomerName:  "Maria",
		CustomerEmail: "maria@example.com",
		Status:        ptrTo(domain.StatusProduction),
		Total:         dec("69.90"),
	}

	order, _, err := svc.PlaceOrder(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProduction, order.Status)
}

func TestService_PlaceOrder_ValidationListsAllFields(t *testing.T) {
	svc, st := newTestService(t, false)

	in := PlaceOrderInput{
		CustomerName:  "",
		CustomerEmail: "not-an-email",
		// Total omitted
	}

	_, _, err := svc.PlaceOrder(context.Background(), in)
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make(map[string]bool)
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["customerName"], "customerName should be reported")
	assert.True(t, fields["customerEmail"], "customerEmail should be reported")
	assert.True(t, fields["total"], "total should be reported")

	// Nothing was persisted.
	orders, err := st.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestService_PlaceOrder_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t, false)

	in := PlaceOrderInput{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		Status:        ptrTo("cancelled"),
		Total:         dec("69.90"),
	}

	_, _, err := svc.PlaceOrder(context.Background(), in)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Fields[0].Field)
}

func TestService_PlaceOrder_RejectsInvalidItemCustomization(t *testing.T) {
	svc, _ := newTestService(t, false)

	in := PlaceOrderInput{
		CustomerName:  "Bia",
		CustomerEmail: "bia@example.com",
		Total:         dec("89.90"),
		Items: []OrderItemInput{
			{
				Quantity:  1,
				UnitPrice: dec("89.90"),
				Customizations: &domain.LineCustomization{
					Finishes: []string{"glitter"},
				},
			},
		},
	}

	_, _, err := svc.PlaceOrder(context.Background(), in)
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "items[0].customizations", verr.Fields[0].Field)
}

func TestService_PlaceOrder_VerifyTotals_RejectsMismatch(t *testing.T) {
	svc, st := newTestService(t, true)

	in := PlaceOrderInput{
		CustomerName:  "Carlos",
		CustomerEmail: "carlos@example.com",
		Total:         dec("179.80"), // forgot shipping
		Items: []OrderItemInput{
			{Quantity: 2, UnitPrice: dec("89.90")},
		},
	}

	_, _, err := svc.PlaceOrder(context.Background(), in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPriceIntegrity))

	orders, err := st.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestService_PlaceOrder_VerifyTotals_AcceptsCorrectTotal(t *testing.T) {
	svc, _ := newTestService(t, true)

	// Subtotal 179.80 is below the threshold, shipping 15 applies.
	in := PlaceOrderInput{
		CustomerName:  "Carlos",
		CustomerEmail: "carlos@example.com",
		Total:         dec("194.80"),
		Items: []OrderItemInput{
			{Quantity: 2, UnitPrice: dec("89.90")},
		},
	}

	order, _, err := svc.PlaceOrder(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(dec("194.80")))
}

func TestService_PlaceOrder_VerifyTotals_FreeShippingAboveThreshold(t *testing.T) {
	svc, _ := newTestService(t, true)

	// Subtotal 399.80 exceeds the threshold, so no shipping is expected.
	in := PlaceOrderInput{
		CustomerName:  "Duda",
		CustomerEmail: "duda@example.com",
		Total:         dec("399.80"),
		Items: []OrderItemInput{
			{Quantity: 2, UnitPrice: dec("199.90")},
		},
	}

	_, _, err := svc.PlaceOrder(context.Background(), in)
	require.NoError(t, err)
}

func TestService_PlaceOrder_VerifyDisabled_AcceptsClientTotal(t *testing.T) {
	svc, _ := newTestService(t, false)

	in := PlaceOrderInput{
		CustomerName:  "Eva",
		CustomerEmail: "eva@example.com",
		Total:         dec("1.00"), // wildly wrong, but verification is off
		Items: []OrderItemInput{
			{Quantity: 2, UnitPrice: dec("89.90")},
		},
	}

	order, _, err := svc.PlaceOrder(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(dec("1.00")))
}
