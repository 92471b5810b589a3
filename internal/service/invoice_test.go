package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
	"rentalops-backend/internal/store/memory"
)

func TestInvoiceCreateEnforcesTotal(t *testing.T) {
	svc := NewInvoiceService(memory.New())
	ctx := context.Background()

	inv := &domain.Invoice{
		RentalID: "r1", CustomerID: "c1",
		BaseFee: 150, InsuranceFee: 45, TaxAmount: 25.35,
		TotalAmount: 999,
	}
	err := svc.Create(ctx, inv)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "total_amount", validationErr.Field)
}

func TestInvoiceCreateAcceptsConsistentTotal(t *testing.T) {
	st := memory.New()
	svc := NewInvoiceService(st)
	ctx := context.Background()

	inv := &domain.Invoice{
		RentalID: "r1", CustomerID: "c1",
		BaseFee: 150, InsuranceFee: 45, TaxAmount: 25.35,
		DamageFee: 80, TotalAmount: 300.35,
		Status: domain.InvoiceStatusIssued,
	}
	require.NoError(t, svc.Create(ctx, inv))
	assert.NotEmpty(t, inv.ID)

	got, err := svc.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.InDelta(t, 300.35, got.TotalAmount, 1e-9)
	assert.True(t, got.TotalConsistent())
}

func TestInvoiceListResolvesRentalInfo(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	cust, err := st.Create(ctx, store.Customers, store.Fields{"first_name": "Maria", "last_name": "Garcia"})
	require.NoError(t, err)
	veh, err := st.Create(ctx, store.Vehicles, store.Fields{"make": "BMW", "model": "530i", "year": 2023})
	require.NoError(t, err)
	rental, err := st.Create(ctx, store.Rentals, store.Fields{"customer_id": cust.ID(), "vehicle_id": veh.ID()})
	require.NoError(t, err)
	_, err = st.Create(ctx, store.Invoices, store.Fields{
		"rental_id": rental.ID(), "customer_id": cust.ID(), "total_amount": 220.35, "status": "issued"})
	require.NoError(t, err)

	invoices, err := NewInvoiceService(st).List(ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	assert.Equal(t, "Maria Garcia", invoices[0].CustomerName)
	assert.Equal(t, "BMW 530i (2023)", invoices[0].RentalInfo)
}

func TestInvoicePatchCannotTouchAmounts(t *testing.T) {
	// The patch type only carries due date and status; amounts are fixed at
	// creation. This guards the wire mapping.
	f := invoicePatchFields(domain.InvoicePatch{})
	assert.Empty(t, f)

	status := domain.InvoiceStatusCancelled
	f = invoicePatchFields(domain.InvoicePatch{Status: &status})
	assert.Equal(t, store.Fields{"status": "cancelled"}, f)
}
