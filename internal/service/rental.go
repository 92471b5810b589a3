package service

import (
	"context"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
)

type rentalService struct {
	store store.Store
	now   func() time.Time
}

func NewRentalService(st store.Store) RentalService {
	return &rentalService{store: st, now: time.Now}
}

func (s *rentalService) List(ctx context.Context) ([]domain.Rental, error) {
	recs, err := s.store.GetAll(ctx, store.Rentals)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	return s.decorate(ctx, recs), nil
}

func (s *rentalService) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	recs, err := s.store.List(ctx, store.Rentals, store.Filter{"status": string(status)})
	if err != nil {
		return nil, fmt.Errorf("list rentals by status %s: %w", status, err)
	}
	return s.decorate(ctx, recs), nil
}

func (s *rentalService) decorate(ctx context.Context, recs []store.Record) []domain.Rental {
	out := make([]domain.Rental, 0, len(recs))
	var customerIDs, vehicleIDs []string
	for _, r := range recs {
		rental := RentalFromRecord(r)
		customerIDs = append(customerIDs, rental.CustomerID)
		vehicleIDs = append(vehicleIDs, rental.VehicleID)
		out = append(out, rental)
	}

	now := s.now()
	customers := customerNames(ctx, s.store, customerIDs)
	vehicles := vehicleInfos(ctx, s.store, vehicleIDs)
	for i := range out {
		out[i].DisplayStatus = out[i].DeriveDisplayStatus(now)
		out[i].CustomerName = pick(customers, out[i].CustomerID, domain.UnknownCustomer)
		out[i].VehicleInfo = pick(vehicles, out[i].VehicleID, domain.UnknownVehicle)
	}
	return out
}

func (s *rentalService) Get(ctx context.Context, id string) (*domain.Rental, error) {
	rec, err := s.store.GetByID(ctx, store.Rentals, id)
	if err != nil {
		return nil, fmt.Errorf("get rental %s: %w", id, err)
	}
	rental := RentalFromRecord(rec)
	rental.DisplayStatus = rental.DeriveDisplayStatus(s.now())
	return &rental, nil
}

func (s *rentalService) Create(ctx context.Context, r *domain.Rental) error {
	if r.ReservationID == "" {
		return domain.NewValidationError("reservation_id", "reservation is required")
	}
	if r.CustomerID == "" {
		return domain.NewValidationError("customer_id", "customer is required")
	}
	if r.VehicleID == "" {
		return domain.NewValidationError("vehicle_id", "vehicle is required")
	}
	if r.Status == "" {
		r.Status = domain.RentalStatusActive
	}
	if r.Status == domain.RentalStatusOverdue {
		return domain.NewValidationError("status", "overdue is a derived state and cannot be stored")
	}
	rec, err := s.store.Create(ctx, store.Rentals, rentalFields(r))
	if err != nil {
		return fmt.Errorf("create rental: %w", err)
	}
	r.ID = rec.ID()
	return nil
}

func (s *rentalService) Update(ctx context.Context, id string, patch domain.RentalPatch) (*domain.Rental, error) {
	if patch.Status != nil && *patch.Status == domain.RentalStatusOverdue {
		return nil, domain.NewValidationError("status", "overdue is a derived state and cannot be stored")
	}
	rec, err := s.store.Update(ctx, store.Rentals, id, rentalPatchFields(patch))
	if err != nil {
		return nil, fmt.Errorf("update rental %s: %w", id, err)
	}
	rental := RentalFromRecord(rec)
	rental.DisplayStatus = rental.DeriveDisplayStatus(s.now())
	return &rental, nil
}

func (s *rentalService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.Rentals, id); err != nil {
		return fmt.Errorf("delete rental %s: %w", id, err)
	}
	return nil
}
