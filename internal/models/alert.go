package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceAlert is a generated notification that a vehicle is due, or
// overdue, for maintenance according to a specific rule. Alerts are never
// auto-deleted; operators mark them read and treated.
type MaintenanceAlert struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VehicleKind   VehicleKind         `bson:"vehicle_kind" json:"vehicle_kind"`
	VehicleID     primitive.ObjectID  `bson:"vehicle_id" json:"vehicle_id"`
	RuleID        primitive.ObjectID  `bson:"rule_id" json:"rule_id"`
	AlertType     AlertType           `bson:"alert_type" json:"alert_type"`
	Message       string              `bson:"message" json:"message"`
	Odometer      float64             `bson:"odometer" json:"odometer"`           // at generation time
	DueOdometer   float64             `bson:"due_odometer" json:"due_odometer"`   // projected km at which maintenance is due
	GeneratedAt   time.Time           `bson:"generated_at" json:"generated_at"`
	Deadline      *time.Time          `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Urgent        bool                `bson:"urgent" json:"urgent"`
	Read          bool                `bson:"read" json:"read"`
	Treated       bool                `bson:"treated" json:"treated"`
	TreatedAt     *time.Time          `bson:"treated_at,omitempty" json:"treated_at,omitempty"`
	MaintenanceID *primitive.ObjectID `bson:"maintenance_id,omitempty" json:"maintenance_id,omitempty"`
}

// AlertStats summarizes the alert collection for list responses.
type AlertStats struct {
	Total     int64 `json:"total"`
	Unread    int64 `json:"unread"`
	Untreated int64 `json:"untreated"`
	Urgent    int64 `json:"urgent"`
}
