// Package trips implements the trip lifecycle: creation, the linear
// status state machine and the vehicle-availability side effects tied
// to each transition.
package trips

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
	ErrInvalidTransition  = errors.New("invalid trip status transition")
	ErrTripInProgress     = errors.New("cannot delete a trip in progress")
	ErrTripCompleted      = errors.New("cannot modify a completed trip")
	ErrOdometerRegression = errors.New("end odometer must be greater than or equal to start odometer")
)

// ValidateTransition checks a requested status change against the linear
// machine: to-do -> in-progress -> completed, no regression.
func ValidateTransition(current, next models.TripStatus) error {
	switch next {
	case models.TripInProgress:
		if current != models.TripToDo {
			return fmt.Errorf("%w: a trip can only start from %q", ErrInvalidTransition, models.TripToDo)
		}
	case models.TripCompleted:
		if current != models.TripInProgress {
			return fmt.Errorf("%w: a trip can only complete from %q", ErrInvalidTransition, models.TripInProgress)
		}
	default:
		return fmt.Errorf("%w: unknown target status %q", ErrInvalidTransition, next)
	}
	return nil
}

// Service coordinates trip writes with truck and trailer status updates.
type Service struct {
	trips    db.TripCollection
	vehicles db.VehicleStore
	now      func() time.Time
}

// NewService creates a trip service over the given repositories.
func NewService(trips db.TripCollection, vehicles db.VehicleStore) *Service {
	return &Service{
		trips:    trips,
		vehicles: vehicles,
		now:      time.Now,
	}
}

// Create persists a new trip and marks the linked truck, and trailer if
// any, in-service.
func (s *Service) Create(ctx context.Context, trip models.Trip) (*models.Trip, error) {
	if trip.Status == "" {
		trip.Status = models.TripToDo
	}

	if _, err := s.vehicles.FindSnapshot(ctx, models.KindTruck, trip.TruckID); err != nil {
		return nil, fmt.Errorf("truck: %w", err)
	}
	if trip.TrailerID != nil {
		if _, err := s.vehicles.FindSnapshot(ctx, models.KindTrailer, *trip.TrailerID); err != nil {
			return nil, fmt.Errorf("trailer: %w", err)
		}
	}

	id, err := s.trips.InsertTrip(ctx, trip)
	if err != nil {
		return nil, err
	}

	if err := s.setVehicleStatuses(ctx, &trip, models.VehicleInService); err != nil {
		return nil, err
	}

	return s.trips.FindTripByID(ctx, id.Hex())
}

// StatusUpdate carries a PATCH /trips/:id/status request. Fields other
// than Status are applied in the same write as the transition.
type StatusUpdate struct {
	Status        models.TripStatus `json:"status" binding:"required"`
	StartOdometer *float64          `json:"start_odometer,omitempty"`
	EndOdometer   *float64          `json:"end_odometer,omitempty"`
	FuelConsumed  *float64          `json:"fuel_consumed,omitempty"`
	FuelCost      *float64          `json:"fuel_cost,omitempty"`
	Notes         *string           `json:"notes,omitempty"`
}

// UpdateStatus validates and applies a status transition, including its
// side effects on the linked vehicles, then returns the updated trip.
func (s *Service) UpdateStatus(ctx context.Context, id string, req StatusUpdate) (*models.Trip, error) {
	trip, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(trip.Status, req.Status); err != nil {
		return nil, err
	}

	update := bson.M{"status": req.Status}
	if req.StartOdometer != nil {
		update["start_odometer"] = *req.StartOdometer
	}
	if req.FuelConsumed != nil {
		update["fuel_consumed"] = *req.FuelConsumed
	}
	if req.FuelCost != nil {
		update["fuel_cost"] = *req.FuelCost
	}
	if req.Notes != nil {
		update["notes"] = *req.Notes
	}

	if req.Status == models.TripCompleted {
		update["arrival_date"] = s.now()

		if req.EndOdometer != nil {
			start := trip.StartOdometer
			if req.StartOdometer != nil {
				start = *req.StartOdometer
			}
			if start > 0 && *req.EndOdometer < start {
				return nil, ErrOdometerRegression
			}
			update["end_odometer"] = *req.EndOdometer
		}

		if err := s.finalize(ctx, trip, req.EndOdometer); err != nil {
			return nil, err
		}
	}

	if err := s.trips.UpdateTrip(ctx, id, update); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"trip":   id,
		"status": req.Status,
	}).Info("trip status updated")

	return s.trips.FindTripByID(ctx, id)
}

// finalize applies the completion side effects. The trailer is always
// released; the truck only takes over the end odometer reading and
// returns to available when that reading was supplied.
func (s *Service) finalize(ctx context.Context, trip *models.Trip, endOdometer *float64) error {
	if err := s.propagateTruckCompletion(ctx, trip, endOdometer); err != nil {
		return err
	}

	if trip.TrailerID != nil {
		if err := s.vehicles.UpdateStatus(ctx, models.KindTrailer, *trip.TrailerID, models.VehicleAvailable); err != nil {
			return fmt.Errorf("releasing trailer: %w", err)
		}
	}
	return nil
}

func (s *Service) propagateTruckCompletion(ctx context.Context, trip *models.Trip, endOdometer *float64) error {
	if endOdometer == nil {
		return nil
	}
	if err := s.vehicles.SetOdometer(ctx, models.KindTruck, trip.TruckID, *endOdometer); err != nil {
		return fmt.Errorf("updating truck odometer: %w", err)
	}
	if err := s.vehicles.UpdateStatus(ctx, models.KindTruck, trip.TruckID, models.VehicleAvailable); err != nil {
		return fmt.Errorf("releasing truck: %w", err)
	}
	return nil
}

// Update applies a general field update; completed trips are immutable.
func (s *Service) Update(ctx context.Context, id string, update bson.M) (*models.Trip, error) {
	trip, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip.Status == models.TripCompleted {
		return nil, ErrTripCompleted
	}
	if err := s.trips.UpdateTrip(ctx, id, update); err != nil {
		return nil, err
	}
	return s.trips.FindTripByID(ctx, id)
}

// Delete removes a trip. Deleting is forbidden while the trip is in
// progress; deleting a trip that never completed releases its vehicles.
func (s *Service) Delete(ctx context.Context, id string) (*models.Trip, error) {
	trip, err := s.trips.FindTripByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if trip.Status == models.TripInProgress {
		return nil, ErrTripInProgress
	}

	if trip.Status != models.TripCompleted {
		if err := s.setVehicleStatuses(ctx, trip, models.VehicleAvailable); err != nil {
			return nil, err
		}
	}

	if err := s.trips.DeleteTrip(ctx, id); err != nil {
		return nil, err
	}
	return trip, nil
}

func (s *Service) setVehicleStatuses(ctx context.Context, trip *models.Trip, status models.VehicleStatus) error {
	if err := s.vehicles.UpdateStatus(ctx, models.KindTruck, trip.TruckID, status); err != nil {
		return fmt.Errorf("updating truck status: %w", err)
	}
	if trip.TrailerID != nil {
		if err := s.vehicles.UpdateStatus(ctx, models.KindTrailer, *trip.TrailerID, status); err != nil {
			return fmt.Errorf("updating trailer status: %w", err)
		}
	}
	return nil
}
