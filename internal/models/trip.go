package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TripStatus is the lifecycle status of a trip. Transitions are linear:
// to-do -> in-progress -> completed, with no regression.
type TripStatus string

const (
	TripToDo       TripStatus = "to-do"
	TripInProgress TripStatus = "in-progress"
	TripCompleted  TripStatus = "completed"
)

// Trip represents a haul from an origin to a destination by a driver,
// a truck and optionally a trailer.
type Trip struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DriverID        primitive.ObjectID  `bson:"driver_id" json:"driver_id"`
	TruckID         primitive.ObjectID  `bson:"truck_id" json:"truck_id"`
	TrailerID       *primitive.ObjectID `bson:"trailer_id,omitempty" json:"trailer_id,omitempty"`
	Origin          string              `bson:"origin" json:"origin"`
	Destination     string              `bson:"destination" json:"destination"`
	DepartureDate   time.Time           `bson:"departure_date" json:"departure_date"`
	ArrivalDate     *time.Time          `bson:"arrival_date,omitempty" json:"arrival_date,omitempty"`
	PlannedDistance float64             `bson:"planned_distance,omitempty" json:"planned_distance,omitempty"` // in kilometers
	StartOdometer   float64             `bson:"start_odometer,omitempty" json:"start_odometer,omitempty"`
	EndOdometer     float64             `bson:"end_odometer,omitempty" json:"end_odometer,omitempty"`
	FuelConsumed    float64             `bson:"fuel_consumed,omitempty" json:"fuel_consumed,omitempty"` // in liters
	FuelCost        float64             `bson:"fuel_cost,omitempty" json:"fuel_cost,omitempty"`
	Status          TripStatus          `bson:"status" json:"status"`
	Cargo           string              `bson:"cargo,omitempty" json:"cargo,omitempty"`
	CargoWeight     float64             `bson:"cargo_weight,omitempty" json:"cargo_weight,omitempty"` // in kilograms
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// DistanceTraveled returns end minus start odometer, or 0 when either
// reading is missing.
func (t *Trip) DistanceTraveled() float64 {
	if t.StartOdometer > 0 && t.EndOdometer > 0 {
		return t.EndOdometer - t.StartOdometer
	}
	return 0
}

// TripStats summarizes trips for list and report responses.
type TripStats struct {
	Total         int64   `json:"total"`
	ToDo          int64   `json:"to_do"`
	InProgress    int64   `json:"in_progress"`
	Completed     int64   `json:"completed"`
	TotalDistance float64 `json:"total_distance,omitempty"`
	TotalFuel     float64 `json:"total_fuel,omitempty"`
	TotalFuelCost float64 `json:"total_fuel_cost,omitempty"`
}
