package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCredit       PaymentMethod = "credit"
	PaymentMethodDebit        PaymentMethod = "debit"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Payment applies against an invoice. Multiple payments may apply to one
// invoice; completed payments roll up to promote the invoice to paid.
type Payment struct {
	ID                   string        `json:"id"`
	InvoiceID            string        `json:"invoice_id"`
	CustomerID           string        `json:"customer_id"`
	PaymentDate          time.Time     `json:"payment_date"`
	Amount               float64       `json:"amount"`
	PaymentMethod        PaymentMethod `json:"payment_method"`
	TransactionReference string        `json:"transaction_reference"`
	Status               PaymentStatus `json:"status"`
	ProcessedBy          string        `json:"processed_by"`

	// Resolved on read paths.
	CustomerName string `json:"customer_name,omitempty"`
	InvoiceInfo  string `json:"invoice_info,omitempty"`
}

type PaymentPatch struct {
	PaymentDate          *time.Time     `json:"payment_date,omitempty"`
	Amount               *float64       `json:"amount,omitempty"`
	PaymentMethod        *PaymentMethod `json:"payment_method,omitempty"`
	TransactionReference *string        `json:"transaction_reference,omitempty"`
	Status               *PaymentStatus `json:"status,omitempty"`
	ProcessedBy          *string        `json:"processed_by,omitempty"`
}
