package domain

import "time"

type MaintenanceStatus string

const (
	MaintenanceStatusScheduled  MaintenanceStatus = "scheduled"
	MaintenanceStatusInProgress MaintenanceStatus = "in-progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
)

// InService reports whether the record takes its vehicle out of circulation.
func (s MaintenanceStatus) InService() bool {
	return s == MaintenanceStatusScheduled || s == MaintenanceStatusInProgress
}

type MaintenanceRecord struct {
	ID              string            `json:"id"`
	VehicleID       string            `json:"vehicle_id"`
	MaintenanceType string            `json:"maintenance_type"`
	Description     string            `json:"description"`
	TechnicianID    string            `json:"technician_id"`
	MaintenanceDate time.Time         `json:"maintenance_date"`
	Mileage         int               `json:"mileage"`
	Cost            float64           `json:"cost"`
	Status          MaintenanceStatus `json:"status"`

	// Resolved on read paths.
	VehicleInfo    string `json:"vehicle_info,omitempty"`
	TechnicianName string `json:"technician_name,omitempty"`
}

type MaintenanceRecordPatch struct {
	MaintenanceType *string            `json:"maintenance_type,omitempty"`
	Description     *string            `json:"description,omitempty"`
	TechnicianID    *string            `json:"technician_id,omitempty"`
	MaintenanceDate *time.Time         `json:"maintenance_date,omitempty"`
	Mileage         *int               `json:"mileage,omitempty"`
	Cost            *float64           `json:"cost,omitempty"`
	Status          *MaintenanceStatus `json:"status,omitempty"`
}
