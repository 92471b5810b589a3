package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
	"rentalops-backend/internal/store/memory"
)

func TestReservationCreateDefaults(t *testing.T) {
	st := memory.New()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := &reservationService{store: st, now: func() time.Time { return now }}

	res := &domain.Reservation{
		CustomerID: "c1",
		CategoryID: "cat1",
		PickupDate: now.Add(24 * time.Hour),
		ReturnDate: now.Add(96 * time.Hour),
	}
	require.NoError(t, svc.Create(context.Background(), res))

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, domain.ReservationStatusPending, res.Status)
	assert.Equal(t, now, res.ReservationDate)
}

func TestReservationCreateValidation(t *testing.T) {
	svc := NewReservationService(memory.New())
	ctx := context.Background()
	var validationErr *domain.ValidationError

	err := svc.Create(ctx, &domain.Reservation{CategoryID: "cat1"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "customer_id", validationErr.Field)

	err = svc.Create(ctx, &domain.Reservation{CustomerID: "c1"})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "category_id", validationErr.Field)

	pickup := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
	err = svc.Create(ctx, &domain.Reservation{
		CustomerID: "c1", CategoryID: "cat1",
		PickupDate: pickup, ReturnDate: pickup,
	})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "return_date", validationErr.Field)
}

func TestReservationListResolvesNames(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	cust, err := st.Create(ctx, store.Customers, store.Fields{"first_name": "John", "last_name": "Smith"})
	require.NoError(t, err)
	cat, err := st.Create(ctx, store.VehicleCategories, store.Fields{"name": "SUV"})
	require.NoError(t, err)

	_, err = st.Create(ctx, store.Reservations, store.Fields{
		"customer_id": cust.ID(), "category_id": cat.ID(), "status": "pending"})
	require.NoError(t, err)
	_, err = st.Create(ctx, store.Reservations, store.Fields{
		"customer_id": "ghost", "category_id": "ghost", "status": "pending"})
	require.NoError(t, err)

	reservations, err := NewReservationService(st).List(ctx)
	require.NoError(t, err)
	require.Len(t, reservations, 2)

	byCustomer := make(map[string]domain.Reservation)
	for _, r := range reservations {
		byCustomer[r.CustomerID] = r
	}
	assert.Equal(t, "John Smith", byCustomer[cust.ID()].CustomerName)
	assert.Equal(t, "SUV", byCustomer[cust.ID()].CategoryName)
	assert.Equal(t, domain.UnknownCustomer, byCustomer["ghost"].CustomerName)
	assert.Equal(t, domain.UnknownCategory, byCustomer["ghost"].CategoryName)
}
