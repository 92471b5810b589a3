package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"rentalops-backend/internal/domain"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name   string
		pickup string
		ret    string
		want   int
	}{
		{"three full days", "2025-06-01", "2025-06-04", 3},
		{"single day", "2025-06-01", "2025-06-02", 1},
		{"same instant", "2025-06-01", "2025-06-01", 0},
		{"return before pickup", "2025-06-04", "2025-06-01", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(date(tt.pickup), date(tt.ret)))
		})
	}
}

func TestRentalDaysPartialDayRoundsUp(t *testing.T) {
	pickup := date("2025-06-01")
	ret := pickup.Add(26 * time.Hour)
	assert.Equal(t, 2, RentalDays(pickup, ret))
}

func TestComputeFees(t *testing.T) {
	fees := ComputeFees(3)

	assert.InDelta(t, 150.0, fees.BaseFee, 1e-9)
	assert.InDelta(t, 45.0, fees.InsuranceFee, 1e-9)
	assert.InDelta(t, 25.35, fees.TaxAmount, 1e-9)
	assert.InDelta(t, 220.35, fees.Total, 1e-9)
}

func TestComputeFeesTotalMatchesComponents(t *testing.T) {
	for days := 1; days <= 30; days++ {
		fees := ComputeFees(days)
		assert.InDelta(t, fees.BaseFee+fees.InsuranceFee+fees.TaxAmount, fees.Total, 1e-9)
	}
}

func TestQuoteByCategory(t *testing.T) {
	cat := &domain.VehicleCategory{Name: "Luxury", BaseRentalRate: 120, InsuranceRate: 35}

	quote := QuoteByCategory(cat, 2)
	assert.InDelta(t, 240.0, quote.BaseFee, 1e-9)
	assert.InDelta(t, 70.0, quote.InsuranceFee, 1e-9)
	assert.InDelta(t, 40.3, quote.TaxAmount, 1e-9)
	assert.InDelta(t, 350.3, quote.Total, 1e-9)
}
