package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

var (
	ErrMaintenanceInProgress = errors.New("cannot delete a maintenance in progress")
	ErrMaintenanceCompleted  = errors.New("cannot modify a completed maintenance")
)

// RecordService coordinates maintenance-record writes with vehicle
// status updates: an in-progress maintenance pulls the vehicle into
// in-maintenance, a completed one stamps the last-maintenance markers
// and releases it.
type RecordService struct {
	records  db.MaintenanceCollection
	vehicles db.VehicleStore
	now      func() time.Time
}

// NewRecordService creates a maintenance-record service over the given
// repositories.
func NewRecordService(records db.MaintenanceCollection, vehicles db.VehicleStore) *RecordService {
	return &RecordService{
		records:  records,
		vehicles: vehicles,
		now:      time.Now,
	}
}

// Create persists a new maintenance record. If the record opens already
// in progress the vehicle is moved to in-maintenance.
func (s *RecordService) Create(ctx context.Context, m models.Maintenance) (*models.Maintenance, error) {
	if m.Status == "" {
		m.Status = models.MaintenancePlanned
	}
	if m.Priority == "" {
		m.Priority = models.PriorityNormal
	}

	snapshot, err := s.vehicles.FindSnapshot(ctx, m.VehicleKind, m.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("vehicle: %w", err)
	}
	if m.Odometer == 0 {
		m.Odometer = snapshot.Odometer
	}

	id, err := s.records.InsertMaintenance(ctx, m)
	if err != nil {
		return nil, err
	}

	if m.Status == models.MaintenanceInProgress {
		if err := s.vehicles.UpdateStatus(ctx, m.VehicleKind, m.VehicleID, models.VehicleInMaintenance); err != nil {
			return nil, fmt.Errorf("updating vehicle status: %w", err)
		}
	}

	return s.records.FindMaintenanceByID(ctx, id.Hex())
}

// StatusUpdate carries a PATCH /maintenances/:id/status request.
type StatusUpdate struct {
	Status   models.MaintenanceStatus `json:"status" binding:"required,oneof=planned in-progress completed canceled"`
	Odometer *float64                 `json:"odometer,omitempty"`
	Cost     *float64                 `json:"cost,omitempty"`
	Notes    *string                  `json:"notes,omitempty"`
}

// UpdateStatus applies a status change and its vehicle side effects,
// then returns the updated record.
func (s *RecordService) UpdateStatus(ctx context.Context, id string, req StatusUpdate) (*models.Maintenance, error) {
	record, err := s.records.FindMaintenanceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status == models.MaintenanceCompleted {
		return nil, ErrMaintenanceCompleted
	}

	update := bson.M{"status": req.Status}
	if req.Odometer != nil {
		update["odometer"] = *req.Odometer
	}
	if req.Cost != nil {
		update["cost"] = *req.Cost
	}
	if req.Notes != nil {
		update["notes"] = *req.Notes
	}

	switch req.Status {
	case models.MaintenanceInProgress:
		update["start_date"] = s.now()
		if err := s.vehicles.UpdateStatus(ctx, record.VehicleKind, record.VehicleID, models.VehicleInMaintenance); err != nil {
			return nil, fmt.Errorf("updating vehicle status: %w", err)
		}

	case models.MaintenanceCompleted:
		completedAt := s.now()
		update["end_date"] = completedAt

		odometer := record.Odometer
		if req.Odometer != nil {
			odometer = *req.Odometer
		}
		if err := s.vehicles.RecordMaintenance(ctx, record.VehicleKind, record.VehicleID, completedAt, odometer); err != nil {
			return nil, fmt.Errorf("recording maintenance on vehicle: %w", err)
		}

	case models.MaintenanceCanceled:
		if record.Status == models.MaintenanceInProgress {
			if err := s.vehicles.UpdateStatus(ctx, record.VehicleKind, record.VehicleID, models.VehicleAvailable); err != nil {
				return nil, fmt.Errorf("releasing vehicle: %w", err)
			}
		}
	}

	if err := s.records.UpdateMaintenance(ctx, id, update); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"maintenance": id,
		"status":      req.Status,
	}).Info("maintenance status updated")

	return s.records.FindMaintenanceByID(ctx, id)
}

// Update applies a general field update; completed records are immutable.
func (s *RecordService) Update(ctx context.Context, id string, update bson.M) (*models.Maintenance, error) {
	record, err := s.records.FindMaintenanceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status == models.MaintenanceCompleted {
		return nil, ErrMaintenanceCompleted
	}
	if err := s.records.UpdateMaintenance(ctx, id, update); err != nil {
		return nil, err
	}
	return s.records.FindMaintenanceByID(ctx, id)
}

// Delete removes a maintenance record. Deleting is forbidden while the
// work is in progress; deleting a planned record leaves the vehicle as is.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	record, err := s.records.FindMaintenanceByID(ctx, id)
	if err != nil {
		return err
	}
	if record.Status == models.MaintenanceInProgress {
		return ErrMaintenanceInProgress
	}
	return s.records.DeleteMaintenance(ctx, id)
}
