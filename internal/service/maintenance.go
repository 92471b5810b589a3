package service

import (
	"context"
	"fmt"
	"time"

	"rentalops-backend/internal/domain"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/store"
)

type maintenanceService struct {
	store store.Store
	now   func() time.Time
}

func NewMaintenanceService(st store.Store) MaintenanceService {
	return &maintenanceService{store: st, now: time.Now}
}

func (s *maintenanceService) List(ctx context.Context) ([]domain.MaintenanceRecord, error) {
	recs, err := s.store.GetAll(ctx, store.MaintenanceRecords)
	if err != nil {
		return nil, fmt.Errorf("list maintenance records: %w", err)
	}

	out := make([]domain.MaintenanceRecord, 0, len(recs))
	var vehicleIDs, technicianIDs []string
	for _, r := range recs {
		m := MaintenanceFromRecord(r)
		vehicleIDs = append(vehicleIDs, m.VehicleID)
		technicianIDs = append(technicianIDs, m.TechnicianID)
		out = append(out, m)
	}

	vehicles := vehicleInfos(ctx, s.store, vehicleIDs)
	technicians := userNames(ctx, s.store, technicianIDs)
	for i := range out {
		out[i].VehicleInfo = pick(vehicles, out[i].VehicleID, domain.UnknownVehicle)
		if out[i].TechnicianID != "" {
			out[i].TechnicianName = pick(technicians, out[i].TechnicianID, domain.UnknownTechnician)
		}
	}
	return out, nil
}

func (s *maintenanceService) Get(ctx context.Context, id string) (*domain.MaintenanceRecord, error) {
	rec, err := s.store.GetByID(ctx, store.MaintenanceRecords, id)
	if err != nil {
		return nil, fmt.Errorf("get maintenance record %s: %w", id, err)
	}
	m := MaintenanceFromRecord(rec)
	return &m, nil
}

func (s *maintenanceService) Create(ctx context.Context, m *domain.MaintenanceRecord) error {
	if m.VehicleID == "" {
		return domain.NewValidationError("vehicle_id", "vehicle is required")
	}
	if m.Status == "" {
		m.Status = domain.MaintenanceStatusScheduled
	}
	if m.MaintenanceDate.IsZero() {
		m.MaintenanceDate = s.now()
	}

	rec, err := s.store.Create(ctx, store.MaintenanceRecords, maintenanceFields(m))
	if err != nil {
		return fmt.Errorf("create maintenance record: %w", err)
	}
	m.ID = rec.ID()

	if m.Status.InService() {
		s.setVehicleStatus(ctx, m.VehicleID, domain.VehicleStatusMaintenance)
	}
	return nil
}

func (s *maintenanceService) Update(ctx context.Context, id string, patch domain.MaintenanceRecordPatch) (*domain.MaintenanceRecord, error) {
	rec, err := s.store.Update(ctx, store.MaintenanceRecords, id, maintenancePatchFields(patch))
	if err != nil {
		return nil, fmt.Errorf("update maintenance record %s: %w", id, err)
	}
	m := MaintenanceFromRecord(rec)

	if patch.Status != nil {
		if patch.Status.InService() {
			s.setVehicleStatus(ctx, m.VehicleID, domain.VehicleStatusMaintenance)
		} else {
			s.setVehicleStatus(ctx, m.VehicleID, domain.VehicleStatusAvailable)
		}
	}
	return &m, nil
}

func (s *maintenanceService) Delete(ctx context.Context, id string) error {
	rec, err := s.store.GetByID(ctx, store.MaintenanceRecords, id)
	if err != nil {
		return fmt.Errorf("delete maintenance record %s: %w", id, err)
	}
	m := MaintenanceFromRecord(rec)

	if err := s.store.Delete(ctx, store.MaintenanceRecords, id); err != nil {
		return fmt.Errorf("delete maintenance record %s: %w", id, err)
	}

	// The vehicle returns to circulation when its open maintenance record
	// goes away.
	if m.Status.InService() {
		s.setVehicleStatus(ctx, m.VehicleID, domain.VehicleStatusAvailable)
	}
	return nil
}

// setVehicleStatus applies the maintenance side effect on the vehicle. The
// write is best-effort: the maintenance record is already committed, so a
// failure here is logged rather than propagated.
func (s *maintenanceService) setVehicleStatus(ctx context.Context, vehicleID string, status domain.VehicleStatus) {
	if _, err := s.store.Update(ctx, store.Vehicles, vehicleID, store.Fields{
		"status": string(status),
	}); err != nil {
		logger.Warn("vehicle status update failed",
			"vehicle_id", vehicleID, "status", status, "error", err)
	}
}
