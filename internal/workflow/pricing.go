package workflow

import (
	"math"
	"time"

	"rentalops-backend/internal/domain"
)

// Flat checkout pricing. Every booking is charged the same daily rates
// regardless of vehicle category; category rates remain available through
// QuoteByCategory for ahead-of-time estimates.
const (
	baseDailyRate      = 50.0
	insuranceDailyRate = 15.0
	taxRate            = 0.13
)

// Fees is the priced breakdown of a booking, matching the invoice fields.
type Fees struct {
	BaseFee      float64
	InsuranceFee float64
	TaxAmount    float64
	Total        float64
}

// RentalDays converts a pickup/return span into billable days. Partial days
// round up and every booking bills at least one day.
func RentalDays(pickup, returnDate time.Time) int {
	span := returnDate.Sub(pickup)
	if span <= 0 {
		return 0
	}
	days := int(math.Ceil(span.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// ComputeFees prices a booking of the given length at the flat rates.
func ComputeFees(days int) Fees {
	base := float64(days) * baseDailyRate
	insurance := float64(days) * insuranceDailyRate
	tax := (base + insurance) * taxRate
	return Fees{
		BaseFee:      base,
		InsuranceFee: insurance,
		TaxAmount:    tax,
		Total:        base + insurance + tax,
	}
}

// QuoteByCategory estimates a booking using the category's own rates. This
// is a display-only estimate; checkout always bills through ComputeFees.
func QuoteByCategory(cat *domain.VehicleCategory, days int) Fees {
	base := float64(days) * cat.BaseRentalRate
	insurance := float64(days) * cat.InsuranceRate
	tax := (base + insurance) * taxRate
	return Fees{
		BaseFee:      base,
		InsuranceFee: insurance,
		TaxAmount:    tax,
		Total:        base + insurance + tax,
	}
}
