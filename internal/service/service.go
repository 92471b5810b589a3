package service

import (
	"context"
	"time"

	"rentalops-backend/internal/domain"
)

type CustomerService interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, id string, patch domain.CustomerPatch) (*domain.Customer, error)
	// Delete cascades through the customer's reservations, rentals,
	// invoices and payments, deepest first.
	Delete(ctx context.Context, id string) error
}

type VehicleCategoryService interface {
	List(ctx context.Context) ([]domain.VehicleCategory, error)
	Get(ctx context.Context, id string) (*domain.VehicleCategory, error)
	Create(ctx context.Context, c *domain.VehicleCategory) error
	Update(ctx context.Context, id string, patch domain.VehicleCategoryPatch) (*domain.VehicleCategory, error)
	Delete(ctx context.Context, id string) error
}

type VehicleService interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]domain.Vehicle, error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle) error
	Update(ctx context.Context, id string, patch domain.VehiclePatch) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type ReservationService interface {
	List(ctx context.Context) ([]domain.Reservation, error)
	Get(ctx context.Context, id string) (*domain.Reservation, error)
	Create(ctx context.Context, r *domain.Reservation) error
	Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error)
	Delete(ctx context.Context, id string) error
}

type RentalService interface {
	List(ctx context.Context) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	Get(ctx context.Context, id string) (*domain.Rental, error)
	Create(ctx context.Context, r *domain.Rental) error
	Update(ctx context.Context, id string, patch domain.RentalPatch) (*domain.Rental, error)
	Delete(ctx context.Context, id string) error
}

type InvoiceService interface {
	List(ctx context.Context) ([]domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	// Create enforces the total invariant: TotalAmount must equal the sum
	// of the fee components plus tax.
	Create(ctx context.Context, i *domain.Invoice) error
	Update(ctx context.Context, id string, patch domain.InvoicePatch) (*domain.Invoice, error)
	Delete(ctx context.Context, id string) error
}

type PaymentService interface {
	List(ctx context.Context) ([]domain.Payment, error)
	Get(ctx context.Context, id string) (*domain.Payment, error)
	// Create and Update promote the referenced invoice to paid when the
	// completed payments against it reach its total.
	Create(ctx context.Context, p *domain.Payment) error
	Update(ctx context.Context, id string, patch domain.PaymentPatch) (*domain.Payment, error)
	Delete(ctx context.Context, id string) error
}

type MaintenanceService interface {
	List(ctx context.Context) ([]domain.MaintenanceRecord, error)
	Get(ctx context.Context, id string) (*domain.MaintenanceRecord, error)
	Create(ctx context.Context, m *domain.MaintenanceRecord) error
	Update(ctx context.Context, id string, patch domain.MaintenanceRecordPatch) (*domain.MaintenanceRecord, error)
	Delete(ctx context.Context, id string) error
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

type DashboardService interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}

// EmailService sends customer notifications. Callers treat every send as
// best-effort: a failure is logged and never fails the triggering operation.
type EmailService interface {
	SendInvoiceIssued(ctx context.Context, toEmail, customerName, invoiceRef string, total float64, dueDate time.Time) error
	SendPaymentReceipt(ctx context.Context, toEmail, customerName, invoiceRef string, amount float64) error
}
