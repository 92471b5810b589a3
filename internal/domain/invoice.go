package domain

import (
	"math"
	"time"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// invoiceTotalTolerance bounds the floating-point drift allowed between
// TotalAmount and the sum of the fee components.
const invoiceTotalTolerance = 1e-6

// Invoice is a billing document. TotalAmount is fixed at creation and must
// equal the sum of the seven fee components plus tax; it is never recomputed.
type Invoice struct {
	ID              string        `json:"id"`
	RentalID        string        `json:"rental_id"`
	CustomerID      string        `json:"customer_id"`
	InvoiceDate     time.Time     `json:"invoice_date"`
	DueDate         time.Time     `json:"due_date"`
	BaseFee         float64       `json:"base_fee"`
	InsuranceFee    float64       `json:"insurance_fee"`
	ExtraMileageFee float64       `json:"extra_mileage_fee"`
	FuelFee         float64       `json:"fuel_fee"`
	DamageFee       float64       `json:"damage_fee"`
	LateFee         float64       `json:"late_fee"`
	TaxAmount       float64       `json:"tax_amount"`
	TotalAmount     float64       `json:"total_amount"`
	Status          InvoiceStatus `json:"status"`

	// Resolved on read paths.
	CustomerName string `json:"customer_name,omitempty"`
	RentalInfo   string `json:"rental_info,omitempty"`
}

// ComponentSum returns the sum of all fee components plus tax.
func (i *Invoice) ComponentSum() float64 {
	return i.BaseFee + i.InsuranceFee + i.ExtraMileageFee + i.FuelFee + i.DamageFee + i.LateFee + i.TaxAmount
}

// TotalConsistent reports whether TotalAmount matches the component sum.
func (i *Invoice) TotalConsistent() bool {
	return math.Abs(i.TotalAmount-i.ComponentSum()) <= invoiceTotalTolerance
}

// SettledBy reports whether the given sum of completed payments covers the
// invoice total, within tolerance.
func (i *Invoice) SettledBy(sum float64) bool {
	return sum >= i.TotalAmount-invoiceTotalTolerance
}

// InvoicePatch deliberately omits the fee components and total: once an
// invoice exists its amounts are immutable.
type InvoicePatch struct {
	DueDate *time.Time     `json:"due_date,omitempty"`
	Status  *InvoiceStatus `json:"status,omitempty"`
}
