package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
	"rentalops-backend/internal/store/memory"
)

func seedBooking(t *testing.T, st store.Store) (customerID, vehicleID string) {
	t.Helper()
	ctx := context.Background()

	cust, err := st.Create(ctx, store.Customers, store.Fields{
		"first_name": "John", "last_name": "Smith", "email": "john.smith@example.com",
	})
	require.NoError(t, err)

	veh, err := st.Create(ctx, store.Vehicles, store.Fields{
		"vin": "1HGBH41JXMN109186", "make": "Toyota", "model": "Camry", "year": 2023,
		"status": "available", "category_id": "cat1", "mileage": 12050,
	})
	require.NoError(t, err)

	return cust.ID(), veh.ID()
}

func fixedOrchestrator(st store.Store, at time.Time) *Orchestrator {
	o := NewOrchestrator(st, nil)
	o.now = func() time.Time { return at }
	return o
}

func TestCreateReservationHappyPath(t *testing.T) {
	st := memory.New()
	custID, vehID := seedBooking(t, st)
	now := date("2025-06-01")
	o := fixedOrchestrator(st, now)

	result, err := o.CreateReservation(context.Background(), BookingRequest{
		CustomerID: custID,
		VehicleID:  vehID,
		EmployeeID: "emp1",
		PickupDate: date("2025-06-01"),
		ReturnDate: date("2025-06-04"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Days)
	assert.Equal(t, domain.ReservationStatusConfirmed, result.Reservation.Status)
	assert.Equal(t, "cat1", result.Reservation.CategoryID)

	assert.Equal(t, domain.RentalStatusActive, result.Rental.Status)
	assert.Equal(t, 12050, result.Rental.CheckoutMileage)
	assert.Equal(t, result.Reservation.ID, result.Rental.ReservationID)

	inv := result.Invoice
	assert.Equal(t, domain.InvoiceStatusIssued, inv.Status)
	assert.InDelta(t, 150.0, inv.BaseFee, 1e-9)
	assert.InDelta(t, 45.0, inv.InsuranceFee, 1e-9)
	assert.InDelta(t, 25.35, inv.TaxAmount, 1e-9)
	assert.InDelta(t, 220.35, inv.TotalAmount, 1e-9)
	assert.True(t, inv.TotalConsistent())
	assert.Equal(t, now.Add(30*24*time.Hour), inv.DueDate)

	veh, err := st.GetByID(context.Background(), store.Vehicles, vehID)
	require.NoError(t, err)
	assert.Equal(t, "reserved", veh["status"])
}

func TestCreateReservationRejectsNonPositiveSpan(t *testing.T) {
	st := memory.New()
	custID, vehID := seedBooking(t, st)
	o := fixedOrchestrator(st, date("2025-06-01"))

	_, err := o.CreateReservation(context.Background(), BookingRequest{
		CustomerID: custID,
		VehicleID:  vehID,
		PickupDate: date("2025-06-04"),
		ReturnDate: date("2025-06-04"),
	})
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepValidate, stepErr.Step)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// Nothing was created.
	reservations, err := st.GetAll(context.Background(), store.Reservations)
	require.NoError(t, err)
	assert.Empty(t, reservations)
}

func TestCreateReservationVehicleNotAvailable(t *testing.T) {
	st := memory.New()
	custID, vehID := seedBooking(t, st)
	ctx := context.Background()

	_, err := st.Update(ctx, store.Vehicles, vehID, store.Fields{"status": "rented"})
	require.NoError(t, err)

	o := fixedOrchestrator(st, date("2025-06-01"))
	_, err = o.CreateReservation(ctx, BookingRequest{
		CustomerID: custID,
		VehicleID:  vehID,
		PickupDate: date("2025-06-01"),
		ReturnDate: date("2025-06-04"),
	})
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepReserveVehicle, stepErr.Step)
	assert.Equal(t, []string{"delete reservation"}, stepErr.Compensated)

	// The reservation created in step 1 was compensated away.
	reservations, err := st.GetAll(ctx, store.Reservations)
	require.NoError(t, err)
	assert.Empty(t, reservations)

	rentals, err := st.GetAll(ctx, store.Rentals)
	require.NoError(t, err)
	assert.Empty(t, rentals)
}

// invoiceFailStore breaks invoice creation to exercise compensation of all
// earlier steps.
type invoiceFailStore struct {
	store.Store
}

func (s *invoiceFailStore) Create(ctx context.Context, c store.Collection, fields store.Fields) (store.Record, error) {
	if c == store.Invoices {
		return nil, &store.StoreError{Op: "create", Collection: c, Err: errors.New("backend down")}
	}
	return s.Store.Create(ctx, c, fields)
}

func TestCreateReservationCompensatesOnInvoiceFailure(t *testing.T) {
	mem := memory.New()
	custID, vehID := seedBooking(t, mem)
	ctx := context.Background()

	o := fixedOrchestrator(&invoiceFailStore{Store: mem}, date("2025-06-01"))
	_, err := o.CreateReservation(ctx, BookingRequest{
		CustomerID: custID,
		VehicleID:  vehID,
		PickupDate: date("2025-06-01"),
		ReturnDate: date("2025-06-04"),
	})
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepCreateInvoice, stepErr.Step)
	assert.Equal(t, []string{"delete rental", "release vehicle", "delete reservation"}, stepErr.Compensated)
	for _, compErr := range stepErr.CompensationErrs {
		assert.NoError(t, compErr)
	}

	// All intermediate records are gone and the vehicle is free again.
	for _, c := range []store.Collection{store.Reservations, store.Rentals, store.Invoices} {
		recs, err := mem.GetAll(ctx, c)
		require.NoError(t, err)
		assert.Empty(t, recs, string(c))
	}
	veh, err := mem.GetByID(ctx, store.Vehicles, vehID)
	require.NoError(t, err)
	assert.Equal(t, "available", veh["status"])
}

func TestCheckIn(t *testing.T) {
	st := memory.New()
	custID, vehID := seedBooking(t, st)
	ctx := context.Background()

	o := fixedOrchestrator(st, date("2025-06-01"))
	result, err := o.CreateReservation(ctx, BookingRequest{
		CustomerID: custID,
		VehicleID:  vehID,
		EmployeeID: "emp1",
		PickupDate: date("2025-06-01"),
		ReturnDate: date("2025-06-04"),
	})
	require.NoError(t, err)

	returnTime := date("2025-06-04")
	o.now = func() time.Time { return returnTime }

	rental, err := o.CheckIn(ctx, result.Rental.ID, 12350, "emp2")
	require.NoError(t, err)

	assert.Equal(t, domain.RentalStatusCompleted, rental.Status)
	assert.Equal(t, domain.RentalStatusCompleted, rental.DisplayStatus)
	require.NotNil(t, rental.ActualReturnDate)
	assert.Equal(t, returnTime, *rental.ActualReturnDate)
	require.NotNil(t, rental.ReturnMileage)
	assert.Equal(t, 12350, *rental.ReturnMileage)
	assert.Equal(t, "emp2", rental.CheckinEmployeeID)

	veh, err := st.GetByID(ctx, store.Vehicles, vehID)
	require.NoError(t, err)
	assert.Equal(t, "available", veh["status"])
	assert.Equal(t, 12350, veh["mileage"])
}

func TestCheckInRejectsLowerMileage(t *testing.T) {
	st := memory.New()
	custID, vehID := seedBooking(t, st)
	ctx := context.Background()

	o := fixedOrchestrator(st, date("2025-06-01"))
	result, err := o.CreateReservation(ctx, BookingRequest{
		CustomerID: custID,
		VehicleID:  vehID,
		PickupDate: date("2025-06-01"),
		ReturnDate: date("2025-06-04"),
	})
	require.NoError(t, err)

	_, err = o.CheckIn(ctx, result.Rental.ID, 11000, "emp2")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "return_mileage", validationErr.Field)

	// Rental untouched.
	rec, err := st.GetByID(ctx, store.Rentals, result.Rental.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", rec["status"])
}

func TestCheckInRequiresActiveRental(t *testing.T) {
	st := memory.New()
	custID, vehID := seedBooking(t, st)
	ctx := context.Background()

	o := fixedOrchestrator(st, date("2025-06-01"))
	result, err := o.CreateReservation(ctx, BookingRequest{
		CustomerID: custID,
		VehicleID:  vehID,
		PickupDate: date("2025-06-01"),
		ReturnDate: date("2025-06-04"),
	})
	require.NoError(t, err)

	_, err = o.CheckIn(ctx, result.Rental.ID, 12350, "emp2")
	require.NoError(t, err)

	// A second check-in of the same rental is rejected.
	_, err = o.CheckIn(ctx, result.Rental.ID, 12400, "emp2")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "status", validationErr.Field)
}
