package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalops-backend/internal/store"
	"rentalops-backend/internal/store/memory"
)

func TestDashboardSummary(t *testing.T) {
	st := memory.New()
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	mustCreate := func(c store.Collection, f store.Fields) {
		t.Helper()
		_, err := st.Create(ctx, c, f)
		require.NoError(t, err)
	}

	mustCreate(store.Rentals, store.Fields{"status": "active"})
	mustCreate(store.Rentals, store.Fields{"status": "active"})
	mustCreate(store.Rentals, store.Fields{"status": "completed"})

	mustCreate(store.Reservations, store.Fields{"status": "pending", "pickup_date": now.Add(24 * time.Hour)})
	mustCreate(store.Reservations, store.Fields{"status": "confirmed", "pickup_date": now.Add(48 * time.Hour)})
	// Past pickup, not upcoming.
	mustCreate(store.Reservations, store.Fields{"status": "pending", "pickup_date": now.Add(-24 * time.Hour)})
	// Cancelled never counts.
	mustCreate(store.Reservations, store.Fields{"status": "cancelled", "pickup_date": now.Add(24 * time.Hour)})

	mustCreate(store.Vehicles, store.Fields{"status": "available"})
	mustCreate(store.Vehicles, store.Fields{"status": "available"})
	mustCreate(store.Vehicles, store.Fields{"status": "maintenance"})
	mustCreate(store.Vehicles, store.Fields{"status": "rented"})

	mustCreate(store.Payments, store.Fields{"status": "completed", "amount": 220.35, "payment_date": now.Add(-2 * time.Hour)})
	mustCreate(store.Payments, store.Fields{"status": "completed", "amount": 100.0, "payment_date": now.AddDate(0, 0, -10)})
	// Outside the month.
	mustCreate(store.Payments, store.Fields{"status": "completed", "amount": 500.0, "payment_date": now.AddDate(0, -1, 0)})
	// Not completed.
	mustCreate(store.Payments, store.Fields{"status": "pending", "amount": 999.0, "payment_date": now})

	svc := &dashboardService{store: st, now: func() time.Time { return now }}
	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.ActiveRentals)
	assert.Equal(t, 2, summary.UpcomingReservations)
	assert.Equal(t, 1, summary.VehiclesInMaintenance)
	assert.Equal(t, 2, summary.AvailableVehicles)
	assert.InDelta(t, 220.35, summary.TodayRevenue, 1e-9)
	assert.InDelta(t, 320.35, summary.MonthRevenue, 1e-9)
}
