package domain

import "fmt"

// Placeholder display strings shown when a referenced record cannot be
// resolved, e.g. the customer has since been deleted.
const (
	UnknownCustomer   = "Unknown Customer"
	UnknownVehicle    = "Unknown Vehicle"
	UnknownCategory   = "Unknown Category"
	UnknownTechnician = "Unknown Technician"
	UnknownInvoice    = "Unknown Invoice"
)

func vehicleInfo(make, model string, year int) string {
	return fmt.Sprintf("%s %s (%d)", make, model, year)
}

// InvoiceRef renders the short invoice reference shown on payments,
// e.g. "INV-3f8a2c1b".
func InvoiceRef(invoiceID string) string {
	if len(invoiceID) > 8 {
		invoiceID = invoiceID[:8]
	}
	return "INV-" + invoiceID
}
