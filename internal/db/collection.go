package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/models"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when a unique field already exists.
var ErrDuplicate = errors.New("duplicate document")

// TruckCollection defines the interface for truck data operations.
type TruckCollection interface {
	InsertTruck(ctx context.Context, truck models.Truck) (primitive.ObjectID, error)
	FindTruckByID(ctx context.Context, id string) (*models.Truck, error)
	FindTruckByRegistration(ctx context.Context, registration string) (*models.Truck, error)
	FindTrucks(ctx context.Context, filter bson.M, page, limit int64) ([]models.Truck, int64, error)
	UpdateTruck(ctx context.Context, id string, update bson.M) error
	DeleteTruck(ctx context.Context, id string) error
}

// TrailerCollection defines the interface for trailer data operations.
type TrailerCollection interface {
	InsertTrailer(ctx context.Context, trailer models.Trailer) (primitive.ObjectID, error)
	FindTrailerByID(ctx context.Context, id string) (*models.Trailer, error)
	FindTrailerByRegistration(ctx context.Context, registration string) (*models.Trailer, error)
	FindTrailers(ctx context.Context, filter bson.M, page, limit int64) ([]models.Trailer, int64, error)
	UpdateTrailer(ctx context.Context, id string, update bson.M) error
	DeleteTrailer(ctx context.Context, id string) error
}

// VehicleStore is the kind-polymorphic view over trucks and trailers.
// It maps a vehicle kind to its backing collection so callers never
// branch on type strings.
type VehicleStore interface {
	// ListEligible returns snapshots of every vehicle of the given kind
	// whose status is not out-of-service.
	ListEligible(ctx context.Context, kind models.VehicleKind) ([]models.VehicleSnapshot, error)
	FindSnapshot(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID) (*models.VehicleSnapshot, error)
	UpdateStatus(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID, status models.VehicleStatus) error
	SetOdometer(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID, odometer float64) error
	// RecordMaintenance stamps the last-maintenance date and odometer and
	// releases the vehicle back to available.
	RecordMaintenance(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID, when time.Time, odometer float64) error
}

// RuleCollection defines the interface for maintenance-rule data operations.
type RuleCollection interface {
	InsertRule(ctx context.Context, rule models.MaintenanceRule) (primitive.ObjectID, error)
	FindRuleByID(ctx context.Context, id string) (*models.MaintenanceRule, error)
	FindRuleByName(ctx context.Context, name string) (*models.MaintenanceRule, error)
	FindRules(ctx context.Context, filter bson.M, page, limit int64) ([]models.MaintenanceRule, int64, error)
	FindActiveRules(ctx context.Context) ([]models.MaintenanceRule, error)
	UpdateRule(ctx context.Context, id string, update bson.M) error
	DeleteRule(ctx context.Context, id string) error
}

// AlertCollection defines the interface for maintenance-alert data operations.
type AlertCollection interface {
	InsertAlert(ctx context.Context, alert models.MaintenanceAlert) (primitive.ObjectID, error)
	FindAlertByID(ctx context.Context, id string) (*models.MaintenanceAlert, error)
	FindAlerts(ctx context.Context, filter bson.M, page, limit int64) ([]models.MaintenanceAlert, int64, error)
	// HasUntreatedAlert reports whether an untreated alert already exists
	// for the (vehicle, rule) pair.
	HasUntreatedAlert(ctx context.Context, kind models.VehicleKind, vehicleID, ruleID primitive.ObjectID) (bool, error)
	UpdateAlert(ctx context.Context, id string, update bson.M) error
	DeleteAlert(ctx context.Context, id string) error
	AlertStats(ctx context.Context) (*models.AlertStats, error)
}

// MaintenanceCollection defines the interface for maintenance-record data operations.
type MaintenanceCollection interface {
	InsertMaintenance(ctx context.Context, m models.Maintenance) (primitive.ObjectID, error)
	FindMaintenanceByID(ctx context.Context, id string) (*models.Maintenance, error)
	FindMaintenances(ctx context.Context, filter bson.M, page, limit int64) ([]models.Maintenance, int64, error)
	FindMaintenancesByVehicle(ctx context.Context, kind models.VehicleKind, vehicleID primitive.ObjectID) ([]models.Maintenance, error)
	AllMaintenances(ctx context.Context, filter bson.M) ([]models.Maintenance, error)
	UpdateMaintenance(ctx context.Context, id string, update bson.M) error
	DeleteMaintenance(ctx context.Context, id string) error
}

// TripCollection defines the interface for trip data operations.
type TripCollection interface {
	InsertTrip(ctx context.Context, trip models.Trip) (primitive.ObjectID, error)
	FindTripByID(ctx context.Context, id string) (*models.Trip, error)
	FindTrips(ctx context.Context, filter bson.M, page, limit int64) ([]models.Trip, int64, error)
	UpdateTrip(ctx context.Context, id string, update bson.M) error
	DeleteTrip(ctx context.Context, id string) error
	TripStats(ctx context.Context, filter bson.M) (*models.TripStats, error)
}

// TireCollection defines the interface for tire data operations.
type TireCollection interface {
	InsertTire(ctx context.Context, tire models.Tire) (primitive.ObjectID, error)
	FindTireByID(ctx context.Context, id string) (*models.Tire, error)
	FindTires(ctx context.Context, filter bson.M, page, limit int64) ([]models.Tire, int64, error)
	FindTiresByVehicle(ctx context.Context, kind models.VehicleKind, vehicleID primitive.ObjectID) ([]models.Tire, error)
	UpdateTire(ctx context.Context, id string, update bson.M) error
	DeleteTire(ctx context.Context, id string) error
}

// UserCollection defines the interface for user data operations.
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) (primitive.ObjectID, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUsers(ctx context.Context, filter bson.M, page, limit int64) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, id string, update bson.M) error
	DeleteUser(ctx context.Context, id string) error
	UpdateLastLogin(ctx context.Context, id string) error
}
