package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceType classifies what kind of work a maintenance covers.
type MaintenanceType string

const (
	MaintenanceTires      MaintenanceType = "tires"
	MaintenanceOilChange  MaintenanceType = "oil-change"
	MaintenanceInspection MaintenanceType = "inspection"
	MaintenanceRepair     MaintenanceType = "repair"
)

// AlertType says which threshold family a rule watches.
type AlertType string

const (
	AlertDistance AlertType = "distance"
	AlertTime     AlertType = "time"
	AlertMixed    AlertType = "mixed"
)

var (
	ErrRuleNoInterval      = errors.New("at least one interval (km or days) must be set")
	ErrRuleThresholdTooBig = errors.New("alert threshold must be smaller than its interval")
)

// MaintenanceRule is a configured maintenance-due policy. A rule with an
// empty VehicleKinds list applies to every kind.
type MaintenanceRule struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Type              MaintenanceType    `bson:"type" json:"type"`
	AlertType         AlertType          `bson:"alert_type" json:"alert_type"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	DistanceInterval  float64            `bson:"distance_interval_km" json:"distance_interval_km"`
	TimeInterval      int                `bson:"time_interval_days" json:"time_interval_days"`
	DistanceThreshold float64            `bson:"distance_threshold_km" json:"distance_threshold_km"`
	TimeThreshold     int                `bson:"time_threshold_days" json:"time_threshold_days"`
	VehicleKinds      []VehicleKind      `bson:"vehicle_kinds" json:"vehicle_kinds"`
	Active            bool               `bson:"active" json:"active"`
	CreatedBy         primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate enforces the rule invariants: at least one interval must be
// positive, and a configured distance threshold stays below its interval.
func (r *MaintenanceRule) Validate() error {
	if r.DistanceInterval <= 0 && r.TimeInterval <= 0 {
		return ErrRuleNoInterval
	}
	if r.DistanceInterval > 0 && r.DistanceThreshold >= r.DistanceInterval {
		return ErrRuleThresholdTooBig
	}
	if r.TimeInterval > 0 && r.TimeThreshold >= r.TimeInterval {
		return ErrRuleThresholdTooBig
	}
	return nil
}

// AppliesTo reports whether the rule covers the given vehicle kind.
func (r *MaintenanceRule) AppliesTo(kind VehicleKind) bool {
	if len(r.VehicleKinds) == 0 {
		return true
	}
	for _, k := range r.VehicleKinds {
		if k == kind {
			return true
		}
	}
	return false
}
