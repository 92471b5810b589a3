package service

import (
	"context"
	"fmt"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
)

type vehicleService struct {
	store store.Store
}

func NewVehicleService(st store.Store) VehicleService {
	return &vehicleService{store: st}
}

func (s *vehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	recs, err := s.store.GetAll(ctx, store.Vehicles)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return s.decorate(ctx, recs), nil
}

func (s *vehicleService) ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	recs, err := s.store.List(ctx, store.Vehicles, store.Filter{"status": string(status)})
	if err != nil {
		return nil, fmt.Errorf("list vehicles by status %s: %w", status, err)
	}
	return s.decorate(ctx, recs), nil
}

func (s *vehicleService) decorate(ctx context.Context, recs []store.Record) []domain.Vehicle {
	out := make([]domain.Vehicle, 0, len(recs))
	var categoryIDs []string
	for _, r := range recs {
		v := VehicleFromRecord(r)
		categoryIDs = append(categoryIDs, v.CategoryID)
		out = append(out, v)
	}

	names := categoryNames(ctx, s.store, categoryIDs)
	for i := range out {
		out[i].CategoryName = pick(names, out[i].CategoryID, domain.UnknownCategory)
	}
	return out
}

func (s *vehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	rec, err := s.store.GetByID(ctx, store.Vehicles, id)
	if err != nil {
		return nil, fmt.Errorf("get vehicle %s: %w", id, err)
	}
	v := VehicleFromRecord(rec)

	names := categoryNames(ctx, s.store, []string{v.CategoryID})
	v.CategoryName = pick(names, v.CategoryID, domain.UnknownCategory)
	return &v, nil
}

func (s *vehicleService) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.VIN == "" {
		return domain.NewValidationError("vin", "vin is required")
	}
	if v.CategoryID == "" {
		return domain.NewValidationError("category_id", "category is required")
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}

	rec, err := s.store.Create(ctx, store.Vehicles, vehicleFields(v))
	if err != nil {
		return fmt.Errorf("create vehicle: %w", err)
	}
	v.ID = rec.ID()
	return nil
}

// Update applies fleet-data edits. Status is absent from VehiclePatch on
// purpose: the reservation, check-in and maintenance workflows own it.
func (s *vehicleService) Update(ctx context.Context, id string, patch domain.VehiclePatch) (*domain.Vehicle, error) {
	rec, err := s.store.Update(ctx, store.Vehicles, id, vehiclePatchFields(patch))
	if err != nil {
		return nil, fmt.Errorf("update vehicle %s: %w", id, err)
	}
	v := VehicleFromRecord(rec)
	return &v, nil
}

func (s *vehicleService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.Vehicles, id); err != nil {
		return fmt.Errorf("delete vehicle %s: %w", id, err)
	}
	return nil
}
