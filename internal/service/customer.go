package service

import (
	"context"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/store"
)

type customerService struct {
	store store.Store
	now   func() time.Time
}

func NewCustomerService(st store.Store) CustomerService {
	return &customerService{store: st, now: time.Now}
}

func (s *customerService) List(ctx context.Context) ([]domain.Customer, error) {
	recs, err := s.store.GetAll(ctx, store.Customers)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	out := make([]domain.Customer, 0, len(recs))
	for _, r := range recs {
		out = append(out, CustomerFromRecord(r))
	}
	return out, nil
}

func (s *customerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	rec, err := s.store.GetByID(ctx, store.Customers, id)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	c := CustomerFromRecord(rec)
	return &c, nil
}

func (s *customerService) Create(ctx context.Context, c *domain.Customer) error {
	if c.FirstName == "" && c.LastName == "" {
		return domain.NewValidationError("first_name", "customer name is required")
	}
	if c.CustomerType == "" {
		c.CustomerType = domain.CustomerTypeIndividual
	}
	c.CreatedAt = s.now()

	rec, err := s.store.Create(ctx, store.Customers, customerFields(c))
	if err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	c.ID = rec.ID()
	return nil
}

func (s *customerService) Update(ctx context.Context, id string, patch domain.CustomerPatch) (*domain.Customer, error) {
	rec, err := s.store.Update(ctx, store.Customers, id, customerPatchFields(patch))
	if err != nil {
		return nil, fmt.Errorf("update customer %s: %w", id, err)
	}
	c := CustomerFromRecord(rec)
	return &c, nil
}

// Delete removes the customer and every dependent record, walking the chain
// payments -> invoices -> rentals -> reservations -> customer. There is no
// transaction across the gateway: a mid-chain failure aborts the remaining
// steps and leaves the already-deleted records gone. The error names the
// failing stage so the caller can retry; retried stages skip records that no
// longer exist.
func (s *customerService) Delete(ctx context.Context, id string) error {
	fail := func(stage string, err error) error {
		return &DeleteFailedError{Entity: "customer", ID: id, Stage: stage, Err: err}
	}

	reservations, err := s.store.List(ctx, store.Reservations, store.Filter{"customer_id": id})
	if err != nil {
		return fail("list reservations", err)
	}

	for _, res := range reservations {
		rentals, err := s.store.List(ctx, store.Rentals, store.Filter{"reservation_id": res.ID()})
		if err != nil {
			return fail("list rentals", err)
		}

		for _, rental := range rentals {
			invoices, err := s.store.List(ctx, store.Invoices, store.Filter{"rental_id": rental.ID()})
			if err != nil {
				return fail("list invoices", err)
			}

			for _, inv := range invoices {
				payments, err := s.store.List(ctx, store.Payments, store.Filter{"invoice_id": inv.ID()})
				if err != nil {
					return fail("list payments", err)
				}
				for _, p := range payments {
					if err := s.store.Delete(ctx, store.Payments, p.ID()); err != nil {
						return fail("delete payments", err)
					}
				}
				if err := s.store.Delete(ctx, store.Invoices, inv.ID()); err != nil {
					return fail("delete invoices", err)
				}
			}

			if err := s.store.Delete(ctx, store.Rentals, rental.ID()); err != nil {
				return fail("delete rentals", err)
			}
		}

		if err := s.store.Delete(ctx, store.Reservations, res.ID()); err != nil {
			return fail("delete reservations", err)
		}
	}

	if err := s.store.Delete(ctx, store.Customers, id); err != nil {
		return fail("delete customer", err)
	}

	logger.Info("customer deleted", "customer_id", id, "reservations_removed", len(reservations))
	return nil
}
