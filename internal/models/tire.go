package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TirePosition is where the tire is mounted on the vehicle.
type TirePosition string

const (
	TireFrontLeft  TirePosition = "front-left"
	TireFrontRight TirePosition = "front-right"
	TireRearLeft   TirePosition = "rear-left"
	TireRearRight  TirePosition = "rear-right"
	TireSpare      TirePosition = "spare"
)

// TireCondition tracks wear from new to replacement-due.
type TireCondition string

const (
	TireNew     TireCondition = "new"
	TireGood    TireCondition = "good"
	TireFair    TireCondition = "fair"
	TireWorn    TireCondition = "worn"
	TireReplace TireCondition = "replace"
)

// Tire represents a tire mounted on a truck or trailer.
type Tire struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference           string             `bson:"reference" json:"reference"`
	Brand               string             `bson:"brand" json:"brand"`
	Dimension           string             `bson:"dimension" json:"dimension"`
	Position            TirePosition       `bson:"position" json:"position"`
	VehicleKind         VehicleKind        `bson:"vehicle_kind" json:"vehicle_kind"`
	VehicleID           primitive.ObjectID `bson:"vehicle_id" json:"vehicle_id"`
	InstallationDate    time.Time          `bson:"installation_date" json:"installation_date"`
	InstallationKm      float64            `bson:"installation_km" json:"installation_km"`
	Condition           TireCondition      `bson:"condition" json:"condition"`
	RecommendedPressure float64            `bson:"recommended_pressure" json:"recommended_pressure"` // in bar
	Notes               string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}
