package store

import "context"

// Collection names the record sets the gateway serves. Records within a
// collection are flat field maps keyed by an opaque string id.
type Collection string

const (
	Customers          Collection = "customers"
	VehicleCategories  Collection = "vehicle_categories"
	Vehicles           Collection = "vehicles"
	Reservations       Collection = "reservations"
	Rentals            Collection = "rentals"
	Invoices           Collection = "invoices"
	Payments           Collection = "payments"
	MaintenanceRecords Collection = "maintenance_records"
	Users              Collection = "users"
)

// Record is a stored record as the backend returns it, keyed by field name.
// The "id" field is always present.
type Record map[string]any

// ID returns the record's opaque identifier.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Fields carries the values for a create or a partial update.
type Fields map[string]any

// Filter is a flat equality filter for list operations; all entries must
// match.
type Filter map[string]any

// Store is the record store gateway. All multi-record consistency is the
// caller's responsibility; no transaction spans more than one call, except
// that UpdateWhere applies its condition and mutation atomically on a single
// record.
type Store interface {
	// GetAll returns every record in the collection.
	GetAll(ctx context.Context, c Collection) ([]Record, error)

	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, c Collection, id string) (Record, error)

	// List returns the records matching the filter.
	List(ctx context.Context, c Collection, filter Filter) ([]Record, error)

	// ListIn returns the records whose field value is any of values. It is
	// the batched multi-get used to resolve referenced records without a
	// per-record round trip.
	ListIn(ctx context.Context, c Collection, field string, values []string) ([]Record, error)

	// Create inserts a new record. The gateway assigns the id and returns
	// the stored record.
	Create(ctx context.Context, c Collection, fields Fields) (Record, error)

	// Update applies a partial update and returns the stored record, or
	// ErrNotFound.
	Update(ctx context.Context, c Collection, id string, fields Fields) (Record, error)

	// UpdateWhere applies the update only if the record currently matches
	// cond, atomically. Returns ErrConditionFailed when the record exists
	// but the condition does not hold.
	UpdateWhere(ctx context.Context, c Collection, id string, fields Fields, cond Filter) (Record, error)

	// Delete removes the record, or returns ErrNotFound.
	Delete(ctx context.Context, c Collection, id string) error

	// Close releases backend resources.
	Close() error
}
