package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleKind discriminates the two vehicle variants sharing tire,
// maintenance and trip associations.
type VehicleKind string

const (
	KindTruck   VehicleKind = "truck"
	KindTrailer VehicleKind = "trailer"
)

// IsValidVehicleKind checks if a vehicle kind is valid
func IsValidVehicleKind(kind VehicleKind) bool {
	return kind == KindTruck || kind == KindTrailer
}

// VehicleStatus is the operational status shared by trucks and trailers.
type VehicleStatus string

const (
	VehicleAvailable     VehicleStatus = "available"
	VehicleInService     VehicleStatus = "in-service"
	VehicleInMaintenance VehicleStatus = "in-maintenance"
	VehicleOutOfService  VehicleStatus = "out-of-service"
)

// Truck represents a fleet truck.
type Truck struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Registration      string               `bson:"registration" json:"registration"`
	Make              string               `bson:"make" json:"make"`
	Model             string               `bson:"model" json:"model"`
	Year              int                  `bson:"year,omitempty" json:"year,omitempty"`
	Odometer          float64              `bson:"odometer" json:"odometer"` // in kilometers
	LoadCapacity      float64              `bson:"load_capacity" json:"load_capacity"`
	Status            VehicleStatus        `bson:"status" json:"status"`
	Tires             []primitive.ObjectID `bson:"tires,omitempty" json:"tires,omitempty"`
	LastMaintenance   *time.Time           `bson:"last_maintenance,omitempty" json:"last_maintenance,omitempty"`
	LastMaintenanceKm float64              `bson:"last_maintenance_km" json:"last_maintenance_km"`
	NextMaintenance   *time.Time           `bson:"next_maintenance,omitempty" json:"next_maintenance,omitempty"`
	Notes             string               `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updated_at"`
}

// TrailerType is the body type of a trailer.
type TrailerType string

const (
	TrailerRefrigerated TrailerType = "refrigerated"
	TrailerTarpaulin    TrailerType = "tarpaulin"
	TrailerFlatbed      TrailerType = "flatbed"
	TrailerTanker       TrailerType = "tanker"
)

// Trailer represents a fleet trailer.
type Trailer struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Registration      string               `bson:"registration" json:"registration"`
	Make              string               `bson:"make,omitempty" json:"make,omitempty"`
	Model             string               `bson:"model,omitempty" json:"model,omitempty"`
	Year              int                  `bson:"year,omitempty" json:"year,omitempty"`
	Type              TrailerType          `bson:"type" json:"type"`
	Capacity          float64              `bson:"capacity" json:"capacity"`
	LoadCapacity      float64              `bson:"load_capacity,omitempty" json:"load_capacity,omitempty"`
	FuelType          string               `bson:"fuel_type,omitempty" json:"fuel_type,omitempty"` // "diesel", "gasoline", "electric", "hybrid"
	AcquisitionDate   *time.Time           `bson:"acquisition_date,omitempty" json:"acquisition_date,omitempty"`
	Status            VehicleStatus        `bson:"status" json:"status"`
	Tires             []primitive.ObjectID `bson:"tires,omitempty" json:"tires,omitempty"`
	Odometer          float64              `bson:"odometer" json:"odometer"`
	LastMaintenance   *time.Time           `bson:"last_maintenance,omitempty" json:"last_maintenance,omitempty"`
	LastMaintenanceKm float64              `bson:"last_maintenance_km" json:"last_maintenance_km"`
	NextMaintenance   *time.Time           `bson:"next_maintenance,omitempty" json:"next_maintenance,omitempty"`
	Notes             string               `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updated_at"`
}

// VehicleSnapshot is the maintenance-relevant view of a vehicle, shared by
// both kinds so rule evaluation does not care which variant produced it.
type VehicleSnapshot struct {
	ID                primitive.ObjectID
	Kind              VehicleKind
	Registration      string
	Odometer          float64
	LastMaintenance   *time.Time
	LastMaintenanceKm float64
}

// Snapshot returns the maintenance view of the truck.
func (t *Truck) Snapshot() VehicleSnapshot {
	return VehicleSnapshot{
		ID:                t.ID,
		Kind:              KindTruck,
		Registration:      t.Registration,
		Odometer:          t.Odometer,
		LastMaintenance:   t.LastMaintenance,
		LastMaintenanceKm: t.LastMaintenanceKm,
	}
}

// Snapshot returns the maintenance view of the trailer.
func (t *Trailer) Snapshot() VehicleSnapshot {
	return VehicleSnapshot{
		ID:                t.ID,
		Kind:              KindTrailer,
		Registration:      t.Registration,
		Odometer:          t.Odometer,
		LastMaintenance:   t.LastMaintenance,
		LastMaintenanceKm: t.LastMaintenanceKm,
	}
}
