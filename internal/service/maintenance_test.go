package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/store"
	"rentalops-backend/internal/store/memory"
)

func seedVehicle(t *testing.T, st store.Store, status string) string {
	t.Helper()
	rec, err := st.Create(context.Background(), store.Vehicles, store.Fields{
		"make": "Honda", "model": "CR-V", "year": 2022, "status": status,
	})
	require.NoError(t, err)
	return rec.ID()
}

func vehicleStatus(t *testing.T, st store.Store, id string) string {
	t.Helper()
	rec, err := st.GetByID(context.Background(), store.Vehicles, id)
	require.NoError(t, err)
	status, _ := rec["status"].(string)
	return status
}

func TestMaintenanceCreateTakesVehicleOutOfService(t *testing.T) {
	st := memory.New()
	vehID := seedVehicle(t, st, "available")
	svc := NewMaintenanceService(st)

	m := &domain.MaintenanceRecord{VehicleID: vehID, MaintenanceType: "oil_change",
		Status: domain.MaintenanceStatusScheduled}
	require.NoError(t, svc.Create(context.Background(), m))

	assert.Equal(t, "maintenance", vehicleStatus(t, st, vehID))
}

func TestMaintenanceCompletionReleasesVehicle(t *testing.T) {
	st := memory.New()
	vehID := seedVehicle(t, st, "available")
	svc := NewMaintenanceService(st)
	ctx := context.Background()

	m := &domain.MaintenanceRecord{VehicleID: vehID, MaintenanceType: "brake_service",
		Status: domain.MaintenanceStatusInProgress}
	require.NoError(t, svc.Create(ctx, m))
	require.Equal(t, "maintenance", vehicleStatus(t, st, vehID))

	completed := domain.MaintenanceStatusCompleted
	_, err := svc.Update(ctx, m.ID, domain.MaintenanceRecordPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, "available", vehicleStatus(t, st, vehID))
}

func TestMaintenanceDeleteReleasesVehicle(t *testing.T) {
	st := memory.New()
	vehID := seedVehicle(t, st, "available")
	svc := NewMaintenanceService(st)
	ctx := context.Background()

	m := &domain.MaintenanceRecord{VehicleID: vehID, MaintenanceType: "inspection",
		Status: domain.MaintenanceStatusScheduled}
	require.NoError(t, svc.Create(ctx, m))
	require.Equal(t, "maintenance", vehicleStatus(t, st, vehID))

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, "available", vehicleStatus(t, st, vehID))
}

func TestMaintenanceDeleteOfCompletedRecordLeavesVehicleAlone(t *testing.T) {
	st := memory.New()
	vehID := seedVehicle(t, st, "rented")
	svc := NewMaintenanceService(st)
	ctx := context.Background()

	m := &domain.MaintenanceRecord{VehicleID: vehID, MaintenanceType: "inspection",
		Status: domain.MaintenanceStatusCompleted}
	require.NoError(t, svc.Create(ctx, m))
	require.Equal(t, "rented", vehicleStatus(t, st, vehID))

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.Equal(t, "rented", vehicleStatus(t, st, vehID))
}

func TestMaintenanceVehicleWriteFailureIsBestEffort(t *testing.T) {
	mem := memory.New()
	vehID := seedVehicle(t, mem, "available")

	// The vehicle write fails, the maintenance record still lands.
	svc := NewMaintenanceService(&blockUpdateStore{Store: mem, blocked: store.Vehicles})
	m := &domain.MaintenanceRecord{VehicleID: vehID, MaintenanceType: "oil_change",
		Status: domain.MaintenanceStatusScheduled}
	require.NoError(t, svc.Create(context.Background(), m))

	records, err := mem.GetAll(context.Background(), store.MaintenanceRecords)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "available", vehicleStatus(t, mem, vehID))
}

type blockUpdateStore struct {
	store.Store
	blocked store.Collection
}

func (s *blockUpdateStore) Update(ctx context.Context, c store.Collection, id string, fields store.Fields) (store.Record, error) {
	if c == s.blocked {
		return nil, &store.StoreError{Op: "update", Collection: c, ID: id, Err: store.ErrNotFound}
	}
	return s.Store.Update(ctx, c, id, fields)
}
