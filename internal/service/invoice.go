package service

import (
	"context"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/store"
)

type invoiceService struct {
	store store.Store
	now   func() time.Time
}

func NewInvoiceService(st store.Store) InvoiceService {
	return &invoiceService{store: st, now: time.Now}
}

func (s *invoiceService) List(ctx context.Context) ([]domain.Invoice, error) {
	recs, err := s.store.GetAll(ctx, store.Invoices)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	out := make([]domain.Invoice, 0, len(recs))
	var customerIDs, rentalIDs []string
	for _, r := range recs {
		inv := InvoiceFromRecord(r)
		customerIDs = append(customerIDs, inv.CustomerID)
		rentalIDs = append(rentalIDs, inv.RentalID)
		out = append(out, inv)
	}

	customers := customerNames(ctx, s.store, customerIDs)
	rentals := s.rentalInfos(ctx, rentalIDs)
	for i := range out {
		out[i].CustomerName = pick(customers, out[i].CustomerID, domain.UnknownCustomer)
		out[i].RentalInfo = pick(rentals, out[i].RentalID, domain.UnknownVehicle)
	}
	return out, nil
}

// rentalInfos renders each rental as its vehicle's display string. Two
// batched lookups: rentals by id, then their vehicles.
func (s *invoiceService) rentalInfos(ctx context.Context, rentalIDs []string) map[string]string {
	rentalIDs = distinct(rentalIDs)
	if len(rentalIDs) == 0 {
		return nil
	}

	recs, err := s.store.ListIn(ctx, store.Rentals, "id", rentalIDs)
	if err != nil {
		logger.Warn("display lookup failed", "collection", store.Rentals, "error", err)
		return nil
	}

	vehicleByRental := make(map[string]string, len(recs))
	var vehicleIDs []string
	for _, r := range recs {
		rental := RentalFromRecord(r)
		vehicleByRental[rental.ID] = rental.VehicleID
		vehicleIDs = append(vehicleIDs, rental.VehicleID)
	}

	vehicles := vehicleInfos(ctx, s.store, vehicleIDs)
	out := make(map[string]string, len(vehicleByRental))
	for rentalID, vehicleID := range vehicleByRental {
		out[rentalID] = pick(vehicles, vehicleID, domain.UnknownVehicle)
	}
	return out
}

func (s *invoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	rec, err := s.store.GetByID(ctx, store.Invoices, id)
	if err != nil {
		return nil, fmt.Errorf("get invoice %s: %w", id, err)
	}
	inv := InvoiceFromRecord(rec)
	return &inv, nil
}

func (s *invoiceService) Create(ctx context.Context, i *domain.Invoice) error {
	if i.RentalID == "" {
		return domain.NewValidationError("rental_id", "rental is required")
	}
	if i.CustomerID == "" {
		return domain.NewValidationError("customer_id", "customer is required")
	}
	if !i.TotalConsistent() {
		return domain.NewValidationError("total_amount", "total does not match the sum of fees and tax")
	}
	if i.Status == "" {
		i.Status = domain.InvoiceStatusDraft
	}
	if i.InvoiceDate.IsZero() {
		i.InvoiceDate = s.now()
	}

	rec, err := s.store.Create(ctx, store.Invoices, invoiceFields(i))
	if err != nil {
		return fmt.Errorf("create invoice: %w", err)
	}
	i.ID = rec.ID()
	return nil
}

func (s *invoiceService) Update(ctx context.Context, id string, patch domain.InvoicePatch) (*domain.Invoice, error) {
	rec, err := s.store.Update(ctx, store.Invoices, id, invoicePatchFields(patch))
	if err != nil {
		return nil, fmt.Errorf("update invoice %s: %w", id, err)
	}
	inv := InvoiceFromRecord(rec)
	return &inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.Invoices, id); err != nil {
		return fmt.Errorf("delete invoice %s: %w", id, err)
	}
	return nil
}
