package service

import (
	"context"
	"fmt"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
)

type categoryService struct {
	store store.Store
}

func NewVehicleCategoryService(st store.Store) VehicleCategoryService {
	return &categoryService{store: st}
}

func (s *categoryService) List(ctx context.Context) ([]domain.VehicleCategory, error) {
	recs, err := s.store.GetAll(ctx, store.VehicleCategories)
	if err != nil {
		return nil, fmt.Errorf("list vehicle categories: %w", err)
	}

	out := make([]domain.VehicleCategory, 0, len(recs))
	for _, r := range recs {
		out = append(out, CategoryFromRecord(r))
	}
	return out, nil
}

func (s *categoryService) Get(ctx context.Context, id string) (*domain.VehicleCategory, error) {
	rec, err := s.store.GetByID(ctx, store.VehicleCategories, id)
	if err != nil {
		return nil, fmt.Errorf("get vehicle category %s: %w", id, err)
	}
	c := CategoryFromRecord(rec)
	return &c, nil
}

func (s *categoryService) Create(ctx context.Context, c *domain.VehicleCategory) error {
	if c.Name == "" {
		return domain.NewValidationError("name", "category name is required")
	}
	if c.BaseRentalRate < 0 || c.InsuranceRate < 0 {
		return domain.NewValidationError("base_rental_rate", "rates must not be negative")
	}

	rec, err := s.store.Create(ctx, store.VehicleCategories, categoryFields(c))
	if err != nil {
		return fmt.Errorf("create vehicle category: %w", err)
	}
	c.ID = rec.ID()
	return nil
}

func (s *categoryService) Update(ctx context.Context, id string, patch domain.VehicleCategoryPatch) (*domain.VehicleCategory, error) {
	rec, err := s.store.Update(ctx, store.VehicleCategories, id, categoryPatchFields(patch))
	if err != nil {
		return nil, fmt.Errorf("update vehicle category %s: %w", id, err)
	}
	c := CategoryFromRecord(rec)
	return &c, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.VehicleCategories, id); err != nil {
		return fmt.Errorf("delete vehicle category %s: %w", id, err)
	}
	return nil
}
