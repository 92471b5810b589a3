package service

import (
	"context"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/store"
)

type paymentService struct {
	store store.Store
	email EmailService
	now   func() time.Time
}

func NewPaymentService(st store.Store, email EmailService) PaymentService {
	return &paymentService{store: st, email: email, now: time.Now}
}

func (s *paymentService) List(ctx context.Context) ([]domain.Payment, error) {
	recs, err := s.store.GetAll(ctx, store.Payments)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	out := make([]domain.Payment, 0, len(recs))
	var customerIDs []string
	for _, r := range recs {
		p := PaymentFromRecord(r)
		customerIDs = append(customerIDs, p.CustomerID)
		out = append(out, p)
	}

	customers := customerNames(ctx, s.store, customerIDs)
	for i := range out {
		out[i].CustomerName = pick(customers, out[i].CustomerID, domain.UnknownCustomer)
		out[i].InvoiceInfo = domain.InvoiceRef(out[i].InvoiceID)
	}
	return out, nil
}

func (s *paymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	rec, err := s.store.GetByID(ctx, store.Payments, id)
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", id, err)
	}
	p := PaymentFromRecord(rec)
	p.InvoiceInfo = domain.InvoiceRef(p.InvoiceID)
	return &p, nil
}

func (s *paymentService) Create(ctx context.Context, p *domain.Payment) error {
	if p.InvoiceID == "" {
		return domain.NewValidationError("invoice_id", "invoice is required")
	}
	if p.Amount <= 0 {
		return domain.NewValidationError("amount", "amount must be positive")
	}
	if p.Status == "" {
		p.Status = domain.PaymentStatusPending
	}
	if p.PaymentDate.IsZero() {
		p.PaymentDate = s.now()
	}

	rec, err := s.store.Create(ctx, store.Payments, paymentFields(p))
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	p.ID = rec.ID()

	if p.Status == domain.PaymentStatusCompleted {
		s.settleInvoice(ctx, p.InvoiceID)
	}
	return nil
}

func (s *paymentService) Update(ctx context.Context, id string, patch domain.PaymentPatch) (*domain.Payment, error) {
	rec, err := s.store.Update(ctx, store.Payments, id, paymentPatchFields(patch))
	if err != nil {
		return nil, fmt.Errorf("update payment %s: %w", id, err)
	}
	p := PaymentFromRecord(rec)

	if patch.Status != nil && *patch.Status == domain.PaymentStatusCompleted {
		s.settleInvoice(ctx, p.InvoiceID)
	}
	return &p, nil
}

func (s *paymentService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, store.Payments, id); err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return nil
}

// settleInvoice promotes the invoice to paid once the completed payments
// against it cover the total. The roll-up is one-directional: a later
// refund or deletion never demotes a paid invoice. Failures here are logged
// and do not fail the payment write that triggered them.
func (s *paymentService) settleInvoice(ctx context.Context, invoiceID string) {
	rec, err := s.store.GetByID(ctx, store.Invoices, invoiceID)
	if err != nil {
		logger.Warn("invoice settle check failed", "invoice_id", invoiceID, "error", err)
		return
	}
	inv := InvoiceFromRecord(rec)
	if inv.Status == domain.InvoiceStatusPaid || inv.Status == domain.InvoiceStatusCancelled {
		return
	}

	completed, err := s.store.List(ctx, store.Payments, store.Filter{
		"invoice_id": invoiceID,
		"status":     string(domain.PaymentStatusCompleted),
	})
	if err != nil {
		logger.Warn("invoice settle check failed", "invoice_id", invoiceID, "error", err)
		return
	}

	var sum float64
	for _, p := range completed {
		sum += asFloat(p["amount"])
	}
	if !inv.SettledBy(sum) {
		return
	}

	if _, err := s.store.Update(ctx, store.Invoices, invoiceID, store.Fields{
		"status": string(domain.InvoiceStatusPaid),
	}); err != nil {
		logger.Error("invoice paid promotion failed", "invoice_id", invoiceID, "error", err)
		return
	}
	logger.Info("invoice paid", "invoice_id", invoiceID, "paid_total", sum)

	s.sendReceipt(ctx, &inv, sum)
}

func (s *paymentService) sendReceipt(ctx context.Context, inv *domain.Invoice, amount float64) {
	if s.email == nil {
		return
	}
	rec, err := s.store.GetByID(ctx, store.Customers, inv.CustomerID)
	if err != nil {
		logger.Warn("receipt lookup failed", "customer_id", inv.CustomerID, "error", err)
		return
	}
	c := CustomerFromRecord(rec)
	if c.Email == "" {
		return
	}
	if err := s.email.SendPaymentReceipt(ctx, c.Email, c.FullName(), domain.InvoiceRef(inv.ID), amount); err != nil {
		logger.Warn("receipt send failed", "invoice_id", inv.ID, "error", err)
	}
}
