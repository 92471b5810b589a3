package domain

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusReserved    VehicleStatus = "reserved"
)

// VehicleCategory is read-mostly reference data. The configured rates are
// used for quotes; the reservation workflow prices invoices from its own
// fixed rates (see workflow package).
type VehicleCategory struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	BaseRentalRate float64 `json:"base_rental_rate"`
	InsuranceRate  float64 `json:"insurance_rate"`
}

type VehicleCategoryPatch struct {
	Name           *string  `json:"name,omitempty"`
	Description    *string  `json:"description,omitempty"`
	BaseRentalRate *float64 `json:"base_rental_rate,omitempty"`
	InsuranceRate  *float64 `json:"insurance_rate,omitempty"`
}

// Vehicle status is owned by the reservation/check-in/maintenance workflows
// and is never edited directly through the normal update path.
type Vehicle struct {
	ID           string        `json:"id"`
	VIN          string        `json:"vin"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	Year         int           `json:"year"`
	Color        string        `json:"color"`
	LicensePlate string        `json:"license_plate"`
	Mileage      int           `json:"mileage"`
	Status       VehicleStatus `json:"status"`
	CategoryID   string        `json:"category_id"`
	ImageURL     string        `json:"image_url,omitempty"`

	// Resolved on read paths.
	CategoryName string `json:"category_name,omitempty"`
}

// Info is the display form used wherever a related record shows its vehicle,
// e.g. "Toyota Camry (2022)".
func (v *Vehicle) Info() string {
	return vehicleInfo(v.Make, v.Model, v.Year)
}

type VehiclePatch struct {
	VIN          *string `json:"vin,omitempty"`
	Make         *string `json:"make,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty"`
	Color        *string `json:"color,omitempty"`
	LicensePlate *string `json:"license_plate,omitempty"`
	Mileage      *int    `json:"mileage,omitempty"`
	CategoryID   *string `json:"category_id,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
}
