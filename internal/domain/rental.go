package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusOverdue   RentalStatus = "overdue"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// Rental records physical vehicle possession from checkout to return.
//
// The stored Status never holds "overdue": an active rental past its expected
// return date keeps status "active" until check-in and is surfaced as overdue
// through DisplayStatus, which read paths populate.
type Rental struct {
	ID                 string       `json:"id"`
	ReservationID      string       `json:"reservation_id"`
	CustomerID         string       `json:"customer_id"`
	VehicleID          string       `json:"vehicle_id"`
	CheckoutEmployeeID string       `json:"checkout_employee_id"`
	CheckinEmployeeID  string       `json:"checkin_employee_id,omitempty"`
	CheckoutDate       time.Time    `json:"checkout_date"`
	ExpectedReturnDate time.Time    `json:"expected_return_date"`
	ActualReturnDate   *time.Time   `json:"actual_return_date,omitempty"`
	CheckoutMileage    int          `json:"checkout_mileage"`
	ReturnMileage      *int         `json:"return_mileage,omitempty"`
	Status             RentalStatus `json:"status"`

	// Resolved on read paths.
	DisplayStatus RentalStatus `json:"display_status,omitempty"`
	CustomerName  string       `json:"customer_name,omitempty"`
	VehicleInfo   string       `json:"vehicle_info,omitempty"`
}

// DeriveDisplayStatus returns the status to show for the rental at the given
// instant. Active rentals past their expected return date read as overdue;
// the stored status is left untouched.
func (r *Rental) DeriveDisplayStatus(now time.Time) RentalStatus {
	if r.Status == RentalStatusActive && now.After(r.ExpectedReturnDate) {
		return RentalStatusOverdue
	}
	return r.Status
}

type RentalPatch struct {
	CheckinEmployeeID  *string       `json:"checkin_employee_id,omitempty"`
	ExpectedReturnDate *time.Time    `json:"expected_return_date,omitempty"`
	ActualReturnDate   *time.Time    `json:"actual_return_date,omitempty"`
	ReturnMileage      *int          `json:"return_mileage,omitempty"`
	Status             *RentalStatus `json:"status,omitempty"`
}
