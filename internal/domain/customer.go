package domain

import "time"

type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "Individual"
	CustomerTypeCorporate  CustomerType = "Corporate"
)

type Customer struct {
	ID            string       `json:"id"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Email         string       `json:"email"`
	Phone         string       `json:"phone"`
	Address       string       `json:"address"`
	DateOfBirth   string       `json:"date_of_birth"`
	LicenseNumber string       `json:"license_number"`
	LicenseExpiry string       `json:"license_expiry"`
	CustomerType  CustomerType `json:"customer_type"`
	CreatedAt     time.Time    `json:"created_at"`
}

// FullName is the display form used wherever a related record shows its customer.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CustomerPatch carries a partial update; nil fields are left untouched.
type CustomerPatch struct {
	FirstName     *string       `json:"first_name,omitempty"`
	LastName      *string       `json:"last_name,omitempty"`
	Email         *string       `json:"email,omitempty"`
	Phone         *string       `json:"phone,omitempty"`
	Address       *string       `json:"address,omitempty"`
	DateOfBirth   *string       `json:"date_of_birth,omitempty"`
	LicenseNumber *string       `json:"license_number,omitempty"`
	LicenseExpiry *string       `json:"license_expiry,omitempty"`
	CustomerType  *CustomerType `json:"customer_type,omitempty"`
}
