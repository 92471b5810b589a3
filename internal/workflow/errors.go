package workflow

import "fmt"

// Saga step names, in execution order.
const (
	StepValidate          = "validate"
	StepCreateReservation = "create_reservation"
	StepReserveVehicle    = "reserve_vehicle"
	StepCreateRental      = "create_rental"
	StepCreateInvoice     = "create_invoice"
)

// StepError reports which booking step failed. Compensated lists the undo
// actions that ran; CompensationErrs holds failures among them, parallel to
// Compensated, so operators can see exactly what was left behind.
type StepError struct {
	Step             string
	Err              error
	Compensated      []string
	CompensationErrs []error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("booking step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
