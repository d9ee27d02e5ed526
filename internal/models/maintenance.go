package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceStatus is the lifecycle status of a maintenance record.
type MaintenanceStatus string

const (
	MaintenancePlanned    MaintenanceStatus = "planned"
	MaintenanceInProgress MaintenanceStatus = "in-progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
	MaintenanceCanceled   MaintenanceStatus = "canceled"
)

// MaintenancePriority ranks how soon a maintenance should happen.
type MaintenancePriority string

const (
	PriorityLow      MaintenancePriority = "low"
	PriorityNormal   MaintenancePriority = "normal"
	PriorityHigh     MaintenancePriority = "high"
	PriorityCritical MaintenancePriority = "critical"
)

// Part is one spare part line on a maintenance record.
type Part struct {
	Name      string  `bson:"name" json:"name" binding:"required"`
	Quantity  int     `bson:"quantity" json:"quantity" binding:"required,min=1"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price" binding:"min=0"`
}

// Maintenance represents a vehicle maintenance record.
type Maintenance struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	VehicleKind VehicleKind         `bson:"vehicle_kind" json:"vehicle_kind"`
	VehicleID   primitive.ObjectID  `bson:"vehicle_id" json:"vehicle_id"`
	Type        MaintenanceType     `bson:"type" json:"type"`
	Description string              `bson:"description" json:"description"`
	Status      MaintenanceStatus   `bson:"status" json:"status"`
	Priority    MaintenancePriority `bson:"priority" json:"priority"`
	Odometer    float64             `bson:"odometer" json:"odometer"` // vehicle km when the record was opened
	PlannedDate time.Time           `bson:"planned_date" json:"planned_date"`
	StartDate   *time.Time          `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate     *time.Time          `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Cost        float64             `bson:"cost" json:"cost"` // flat cost on top of parts and labor
	Parts       []Part              `bson:"parts,omitempty" json:"parts,omitempty"`
	LaborCost   float64             `bson:"labor_cost" json:"labor_cost"`
	Technician  string              `bson:"technician,omitempty" json:"technician,omitempty"`
	Garage      string              `bson:"garage,omitempty" json:"garage,omitempty"`
	Notes       string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy   primitive.ObjectID  `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updated_at"`
}

// TotalCost derives the full cost: parts (quantity x unit price), labor
// and the flat cost component.
func (m *Maintenance) TotalCost() float64 {
	total := m.LaborCost + m.Cost
	for _, p := range m.Parts {
		total += float64(p.Quantity) * p.UnitPrice
	}
	return total
}
