package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
)

// Reservation is a booking request for a vehicle category over a date range.
// VehicleID is empty until a specific vehicle is assigned. One reservation
// maps to at most one rental.
type Reservation struct {
	ID              string            `json:"id"`
	CustomerID      string            `json:"customer_id"`
	CategoryID      string            `json:"category_id"`
	VehicleID       string            `json:"vehicle_id,omitempty"`
	ReservationDate time.Time         `json:"reservation_date"`
	PickupDate      time.Time         `json:"pickup_date"`
	ReturnDate      time.Time         `json:"return_date"`
	Status          ReservationStatus `json:"status"`
	EmployeeID      string            `json:"employee_id"`

	// Resolved on read paths.
	CustomerName string `json:"customer_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	VehicleInfo  string `json:"vehicle_info,omitempty"`
}

type ReservationPatch struct {
	CustomerID *string            `json:"customer_id,omitempty"`
	CategoryID *string            `json:"category_id,omitempty"`
	VehicleID  *string            `json:"vehicle_id,omitempty"`
	PickupDate *time.Time         `json:"pickup_date,omitempty"`
	ReturnDate *time.Time         `json:"return_date,omitempty"`
	Status     *ReservationStatus `json:"status,omitempty"`
	EmployeeID *string            `json:"employee_id,omitempty"`
}
