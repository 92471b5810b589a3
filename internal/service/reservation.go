package service

import (
	"context"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
)

type reservationService struct {
	store store.Store
	now   func() time.Time
}

func NewReservationService(st store.Store) ReservationService {
	return &reservationService{store: st, now: time.Now}
}

func (s *reservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	recs, err := s.store.GetAll(ctx, store.Reservations)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	out := make([]domain.Reservation, 0, len(recs))
	var customerIDs, categoryIDs, vehicleIDs []string
	for _, r := range recs {
		res := ReservationFromRecord(r)
		customerIDs = append(customerIDs, res.CustomerID)
		categoryIDs = append(categoryIDs, res.CategoryID)
		vehicleIDs = append(vehicleIDs, res.VehicleID)
		out = append(out, res)
	}

	customers := customerNames(ctx, s.store, customerIDs)
	categories := categoryNames(ctx, s.store, categoryIDs)
	vehicles := vehicleInfos(ctx, s.store, vehicleIDs)
	for i := range out {
		out[i].CustomerName = pick(customers, out[i].CustomerID, domain.UnknownCustomer)
		out[i].CategoryName = pick(categories, out[i].CategoryID, domain.UnknownCategory)
		if out[i].VehicleID != "" {
			out[i].VehicleInfo = pick(vehicles, out[i].VehicleID, domain.UnknownVehicle)
		}
	}
	return out, nil
}

func (s *reservationService) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	rec, err := s.store.GetByID(ctx, store.Reservations, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation %s: %w", id, err)
	}
	res := ReservationFromRecord(rec)
	return &res, nil
}

func (s *reservationService) Create(ctx context.Context, r *domain.Reservation) error {
	if r.CustomerID == "" {
		return domain.NewValidationError("customer_id", "customer is required")
	}
	if r.CategoryID == "" {
		return domain.NewValidationError("category_id", "vehicle category is required")
	}
	if !r.ReturnDate.After(r.PickupDate) {
		return domain.NewValidationError("return_date", "return date must be after pickup date")
	}
	if r.Status == "" {
		r.Status = domain.ReservationStatusPending
	}
	if r.ReservationDate.IsZero() {
		r.ReservationDate = s.now()
	}

	rec, err := s.store.Create(ctx, store.Reservations, reservationFields(r))
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	r.ID = rec.ID()
	return nil
}

func (s *reservationService) Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	rec, err := s.store.Update(ctx, store.Reservations, id, reservationPatchFields(patch))
	if err != nil {
		return nil, fmt.Errorf("update reservation %s: %w", id, err)
	}
	res := ReservationFromRecord(rec)
	return &res, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.Reservations, id); err != nil {
		return fmt.Errorf("delete reservation %s: %w", id, err)
	}
	return nil
}
