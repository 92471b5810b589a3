package service

import (
	"context"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
)

type dashboardService struct {
	store store.Store
	now   func() time.Time
}

func NewDashboardService(st store.Store) DashboardService {
	return &dashboardService{store: st, now: time.Now}
}

// Summary aggregates the landing-page counters. Revenue counts completed
// payments only, bucketed by payment date in the server's local time.
func (s *dashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	now := s.now()
	sum := &domain.DashboardSummary{}

	active, err := s.store.List(ctx, store.Rentals, store.Filter{"status": string(domain.RentalStatusActive)})
	if err != nil {
		return nil, fmt.Errorf("dashboard rentals: %w", err)
	}
	sum.ActiveRentals = len(active)

	for _, status := range []domain.ReservationStatus{domain.ReservationStatusPending, domain.ReservationStatusConfirmed} {
		recs, err := s.store.List(ctx, store.Reservations, store.Filter{"status": string(status)})
		if err != nil {
			return nil, fmt.Errorf("dashboard reservations: %w", err)
		}
		for _, r := range recs {
			if asTime(r["pickup_date"]).After(now) {
				sum.UpcomingReservations++
			}
		}
	}

	inShop, err := s.store.List(ctx, store.Vehicles, store.Filter{"status": string(domain.VehicleStatusMaintenance)})
	if err != nil {
		return nil, fmt.Errorf("dashboard vehicles: %w", err)
	}
	sum.VehiclesInMaintenance = len(inShop)

	available, err := s.store.List(ctx, store.Vehicles, store.Filter{"status": string(domain.VehicleStatusAvailable)})
	if err != nil {
		return nil, fmt.Errorf("dashboard vehicles: %w", err)
	}
	sum.AvailableVehicles = len(available)

	payments, err := s.store.List(ctx, store.Payments, store.Filter{"status": string(domain.PaymentStatusCompleted)})
	if err != nil {
		return nil, fmt.Errorf("dashboard payments: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, p := range payments {
		paidAt := asTime(p["payment_date"])
		amount := asFloat(p["amount"])
		if !paidAt.Before(monthStart) {
			sum.MonthRevenue += amount
		}
		if !paidAt.Before(dayStart) {
			sum.TodayRevenue += amount
		}
	}
	return sum, nil
}
