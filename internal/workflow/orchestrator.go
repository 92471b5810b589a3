package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/service"
	"rentalops-backend/internal/store"
)

const invoiceDueTerm = 30 * 24 * time.Hour

// BookingRequest is the input to the reservation saga.
type BookingRequest struct {
	CustomerID string    `json:"customer_id"`
	VehicleID  string    `json:"vehicle_id"`
	EmployeeID string    `json:"employee_id"`
	PickupDate time.Time `json:"pickup_date"`
	ReturnDate time.Time `json:"return_date"`
}

// BookingResult is everything the saga created.
type BookingResult struct {
	Reservation domain.Reservation `json:"reservation"`
	Rental      domain.Rental      `json:"rental"`
	Invoice     domain.Invoice     `json:"invoice"`
	Days        int                `json:"days"`
}

// Orchestrator runs the multi-step booking flows that span several
// collections. The gateway offers no cross-collection transactions, so each
// flow is a saga: steps run in order, and a failure triggers compensating
// deletes for everything already created, in reverse.
type Orchestrator struct {
	store store.Store
	email service.EmailService
	now   func() time.Time
}

func NewOrchestrator(st store.Store, email service.EmailService) *Orchestrator {
	return &Orchestrator{store: st, email: email, now: time.Now}
}

// CreateReservation books a vehicle end to end: reservation (confirmed),
// vehicle hold, rental (active) and invoice (issued, due in 30 days), priced
// by the flat formula. The vehicle hold is a conditional update from
// available, so two concurrent bookings of the same vehicle cannot both win.
func (o *Orchestrator) CreateReservation(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	days := RentalDays(req.PickupDate, req.ReturnDate)
	if days == 0 {
		return nil, &StepError{Step: StepValidate,
			Err: domain.NewValidationError("return_date", "return date must be after pickup date")}
	}

	custRec, err := o.store.GetByID(ctx, store.Customers, req.CustomerID)
	if err != nil {
		return nil, &StepError{Step: StepValidate, Err: fmt.Errorf("customer %s: %w", req.CustomerID, err)}
	}
	customer := service.CustomerFromRecord(custRec)

	vehRec, err := o.store.GetByID(ctx, store.Vehicles, req.VehicleID)
	if err != nil {
		return nil, &StepError{Step: StepValidate, Err: fmt.Errorf("vehicle %s: %w", req.VehicleID, err)}
	}
	vehicle := service.VehicleFromRecord(vehRec)

	saga := &sagaState{orchestrator: o}

	// Step 1: reservation, already confirmed since the vehicle is known.
	now := o.now()
	resRec, err := o.store.Create(ctx, store.Reservations, store.Fields{
		"customer_id":      req.CustomerID,
		"category_id":      vehicle.CategoryID,
		"vehicle_id":       req.VehicleID,
		"reservation_date": now,
		"pickup_date":      req.PickupDate,
		"return_date":      req.ReturnDate,
		"status":           string(domain.ReservationStatusConfirmed),
		"employee_id":      req.EmployeeID,
	})
	if err != nil {
		return nil, saga.fail(ctx, StepCreateReservation, err)
	}
	reservationID := resRec.ID()
	saga.push("delete reservation", func(ctx context.Context) error {
		return o.store.Delete(ctx, store.Reservations, reservationID)
	})

	// Step 2: hold the vehicle. Only an available vehicle can be taken.
	if _, err := o.store.UpdateWhere(ctx, store.Vehicles, req.VehicleID,
		store.Fields{"status": string(domain.VehicleStatusReserved)},
		store.Filter{"status": string(domain.VehicleStatusAvailable)},
	); err != nil {
		if errors.Is(err, store.ErrConditionFailed) {
			err = domain.NewValidationError("vehicle_id", "vehicle is not available")
		}
		return nil, saga.fail(ctx, StepReserveVehicle, err)
	}
	saga.push("release vehicle", func(ctx context.Context) error {
		_, err := o.store.UpdateWhere(ctx, store.Vehicles, req.VehicleID,
			store.Fields{"status": string(domain.VehicleStatusAvailable)},
			store.Filter{"status": string(domain.VehicleStatusReserved)})
		return err
	})

	// Step 3: rental, active from pickup.
	rentRec, err := o.store.Create(ctx, store.Rentals, store.Fields{
		"reservation_id":       reservationID,
		"customer_id":          req.CustomerID,
		"vehicle_id":           req.VehicleID,
		"checkout_employee_id": req.EmployeeID,
		"checkin_employee_id":  nil,
		"checkout_date":        req.PickupDate,
		"expected_return_date": req.ReturnDate,
		"actual_return_date":   nil,
		"checkout_mileage":     vehicle.Mileage,
		"return_mileage":       nil,
		"status":               string(domain.RentalStatusActive),
	})
	if err != nil {
		return nil, saga.fail(ctx, StepCreateRental, err)
	}
	rentalID := rentRec.ID()
	saga.push("delete rental", func(ctx context.Context) error {
		return o.store.Delete(ctx, store.Rentals, rentalID)
	})

	// Step 4: invoice at the flat rates, due in 30 days.
	fees := ComputeFees(days)
	invRec, err := o.store.Create(ctx, store.Invoices, store.Fields{
		"rental_id":         rentalID,
		"customer_id":       req.CustomerID,
		"invoice_date":      now,
		"due_date":          now.Add(invoiceDueTerm),
		"base_fee":          fees.BaseFee,
		"insurance_fee":     fees.InsuranceFee,
		"extra_mileage_fee": 0.0,
		"fuel_fee":          0.0,
		"damage_fee":        0.0,
		"late_fee":          0.0,
		"tax_amount":        fees.TaxAmount,
		"total_amount":      fees.Total,
		"status":            string(domain.InvoiceStatusIssued),
	})
	if err != nil {
		return nil, saga.fail(ctx, StepCreateInvoice, err)
	}

	result := &BookingResult{
		Reservation: service.ReservationFromRecord(resRec),
		Rental:      service.RentalFromRecord(rentRec),
		Invoice:     service.InvoiceFromRecord(invRec),
		Days:        days,
	}
	result.Reservation.Status = domain.ReservationStatusConfirmed

	logger.Info("booking created",
		"reservation_id", reservationID,
		"rental_id", rentalID,
		"invoice_id", result.Invoice.ID,
		"days", days,
		"total", fees.Total)

	o.notifyInvoiceIssued(ctx, &customer, &result.Invoice)
	return result, nil
}

// CheckIn closes an active rental: records the return, frees the vehicle and
// carries the return mileage onto the odometer.
func (o *Orchestrator) CheckIn(ctx context.Context, rentalID string, returnMileage int, checkinEmployeeID string) (*domain.Rental, error) {
	rec, err := o.store.GetByID(ctx, store.Rentals, rentalID)
	if err != nil {
		return nil, fmt.Errorf("get rental %s: %w", rentalID, err)
	}
	rental := service.RentalFromRecord(rec)

	if rental.Status != domain.RentalStatusActive {
		return nil, domain.NewValidationError("status", "only an active rental can be checked in")
	}
	if returnMileage < rental.CheckoutMileage {
		return nil, domain.NewValidationError("return_mileage", "return mileage cannot be below checkout mileage")
	}

	now := o.now()
	updated, err := o.store.Update(ctx, store.Rentals, rentalID, store.Fields{
		"status":              string(domain.RentalStatusCompleted),
		"actual_return_date":  now,
		"return_mileage":      returnMileage,
		"checkin_employee_id": checkinEmployeeID,
	})
	if err != nil {
		return nil, fmt.Errorf("check in rental %s: %w", rentalID, err)
	}

	// The rental is closed either way; a failed vehicle write is logged and
	// left for a manual fix.
	if _, err := o.store.Update(ctx, store.Vehicles, rental.VehicleID, store.Fields{
		"status":  string(domain.VehicleStatusAvailable),
		"mileage": returnMileage,
	}); err != nil {
		logger.Warn("vehicle release failed",
			"vehicle_id", rental.VehicleID, "rental_id", rentalID, "error", err)
	}

	out := service.RentalFromRecord(updated)
	out.DisplayStatus = out.DeriveDisplayStatus(now)
	return &out, nil
}

func (o *Orchestrator) notifyInvoiceIssued(ctx context.Context, customer *domain.Customer, inv *domain.Invoice) {
	if o.email == nil || customer.Email == "" {
		return
	}
	if err := o.email.SendInvoiceIssued(ctx, customer.Email, customer.FullName(),
		domain.InvoiceRef(inv.ID), inv.TotalAmount, inv.DueDate); err != nil {
		logger.Warn("invoice notification failed", "invoice_id", inv.ID, "error", err)
	}
}

// sagaState tracks the undo action for each completed step.
type sagaState struct {
	orchestrator *Orchestrator
	names        []string
	undos        []func(context.Context) error
}

func (s *sagaState) push(name string, undo func(context.Context) error) {
	s.names = append(s.names, name)
	s.undos = append(s.undos, undo)
}

// fail compensates completed steps in reverse and wraps the original error.
// A failing undo is recorded and the remaining undos still run.
func (s *sagaState) fail(ctx context.Context, step string, cause error) error {
	stepErr := &StepError{Step: step, Err: cause}
	for i := len(s.undos) - 1; i >= 0; i-- {
		err := s.undos[i](ctx)
		stepErr.Compensated = append(stepErr.Compensated, s.names[i])
		stepErr.CompensationErrs = append(stepErr.CompensationErrs, err)
		if err != nil {
			logger.Error("saga compensation failed",
				"step", step, "undo", s.names[i], "error", err)
		}
	}
	return stepErr
}
