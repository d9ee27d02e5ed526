package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/maintenance"
	"github.com/elouannasse/fleet-management/internal/middleware"
	"github.com/elouannasse/fleet-management/internal/models"
)

// MaintenanceHandler handles maintenance-record requests.
type MaintenanceHandler struct {
	records db.MaintenanceCollection
	service *maintenance.RecordService
}

// NewMaintenanceHandler creates a new maintenance-record handler.
func NewMaintenanceHandler(records db.MaintenanceCollection, service *maintenance.RecordService) *MaintenanceHandler {
	return &MaintenanceHandler{records: records, service: service}
}

// MaintenanceRequest is the create payload for a maintenance record.
type MaintenanceRequest struct {
	VehicleKind string        `json:"vehicle_kind" binding:"required,oneof=truck trailer"`
	VehicleID   string        `json:"vehicle_id" binding:"required"`
	Type        string        `json:"type" binding:"required,oneof=tires oil-change inspection repair"`
	Description string        `json:"description" binding:"required"`
	Status      string        `json:"status" binding:"omitempty,oneof=planned in-progress completed canceled"`
	Priority    string        `json:"priority" binding:"omitempty,oneof=low normal high critical"`
	Odometer    float64       `json:"odometer" binding:"min=0"`
	PlannedDate time.Time     `json:"planned_date" binding:"required"`
	Cost        float64       `json:"cost" binding:"min=0"`
	Parts       []models.Part `json:"parts,omitempty"`
	LaborCost   float64       `json:"labor_cost" binding:"min=0"`
	Technician  string        `json:"technician,omitempty"`
	Garage      string        `json:"garage,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

// List returns maintenance records with optional status/type filters.
func (h *MaintenanceHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if mType := c.Query("type"); mType != "" {
		filter["type"] = mType
	}

	records, total, err := h.records.FindMaintenances(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"maintenances": records,
		"pagination":   newPagination(page, limit, total),
	}, "maintenances retrieved")
}

// Stats returns record counts per status and the aggregate cost.
func (h *MaintenanceHandler) Stats(c *gin.Context) {
	records, err := h.records.AllMaintenances(c.Request.Context(), bson.M{})
	if err != nil {
		respondError(c, err)
		return
	}

	byStatus := map[models.MaintenanceStatus]int{}
	var totalCost float64
	for i := range records {
		byStatus[records[i].Status]++
		if records[i].Status == models.MaintenanceCompleted {
			totalCost += records[i].TotalCost()
		}
	}

	respondOK(c, gin.H{
		"stats": gin.H{
			"total":       len(records),
			"planned":     byStatus[models.MaintenancePlanned],
			"in_progress": byStatus[models.MaintenanceInProgress],
			"completed":   byStatus[models.MaintenanceCompleted],
			"canceled":    byStatus[models.MaintenanceCanceled],
			"total_cost":  totalCost,
		},
	}, "maintenance stats retrieved")
}

// ByVehicle returns all records for one vehicle, newest first.
func (h *MaintenanceHandler) ByVehicle(c *gin.Context) {
	kind := models.VehicleKind(c.Param("kind"))
	if !models.IsValidVehicleKind(kind) {
		respondBadRequest(c, "invalid vehicle kind")
		return
	}
	vehicleID, err := primitive.ObjectIDFromHex(c.Param("vehicleId"))
	if err != nil {
		respondBadRequest(c, "invalid vehicle id")
		return
	}

	records, err := h.records.FindMaintenancesByVehicle(c.Request.Context(), kind, vehicleID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"maintenances": records}, "vehicle maintenances retrieved")
}

// Get returns one record by id.
func (h *MaintenanceHandler) Get(c *gin.Context) {
	record, err := h.records.FindMaintenanceByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"maintenance": record}, "maintenance retrieved")
}

// Create opens a new maintenance record.
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	vehicleID, err := primitive.ObjectIDFromHex(req.VehicleID)
	if err != nil {
		respondBadRequest(c, "invalid vehicle id")
		return
	}

	record := models.Maintenance{
		VehicleKind: models.VehicleKind(req.VehicleKind),
		VehicleID:   vehicleID,
		Type:        models.MaintenanceType(req.Type),
		Description: req.Description,
		Status:      models.MaintenanceStatus(req.Status),
		Priority:    models.MaintenancePriority(req.Priority),
		Odometer:    req.Odometer,
		PlannedDate: req.PlannedDate,
		Cost:        req.Cost,
		Parts:       req.Parts,
		LaborCost:   req.LaborCost,
		Technician:  req.Technician,
		Garage:      req.Garage,
		Notes:       req.Notes,
	}

	if claims, ok := middleware.GetClaims(c); ok {
		if creator, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			record.CreatedBy = creator
		}
	}

	created, err := h.service.Create(c.Request.Context(), record)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, gin.H{"maintenance": created}, "maintenance created")
}

// MaintenanceUpdateRequest is the partial-update payload.
type MaintenanceUpdateRequest struct {
	Type        *string        `json:"type,omitempty" binding:"omitempty,oneof=tires oil-change inspection repair"`
	Description *string        `json:"description,omitempty"`
	Priority    *string        `json:"priority,omitempty" binding:"omitempty,oneof=low normal high critical"`
	Odometer    *float64       `json:"odometer,omitempty"`
	PlannedDate *time.Time     `json:"planned_date,omitempty"`
	Cost        *float64       `json:"cost,omitempty"`
	Parts       *[]models.Part `json:"parts,omitempty"`
	LaborCost   *float64       `json:"labor_cost,omitempty"`
	Technician  *string        `json:"technician,omitempty"`
	Garage      *string        `json:"garage,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
}

// Update modifies an open record; completed records are rejected.
func (h *MaintenanceHandler) Update(c *gin.Context) {
	var req MaintenanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	update := bson.M{}
	if req.Type != nil {
		update["type"] = *req.Type
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Priority != nil {
		update["priority"] = *req.Priority
	}
	if req.Odometer != nil {
		update["odometer"] = *req.Odometer
	}
	if req.PlannedDate != nil {
		update["planned_date"] = *req.PlannedDate
	}
	if req.Cost != nil {
		update["cost"] = *req.Cost
	}
	if req.Parts != nil {
		update["parts"] = *req.Parts
	}
	if req.LaborCost != nil {
		update["labor_cost"] = *req.LaborCost
	}
	if req.Technician != nil {
		update["technician"] = *req.Technician
	}
	if req.Garage != nil {
		update["garage"] = *req.Garage
	}
	if req.Notes != nil {
		update["notes"] = *req.Notes
	}
	if len(update) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"maintenance": updated}, "maintenance updated")
}

// UpdateStatus transitions a record and applies the vehicle side effects.
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	var req maintenance.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"maintenance": updated}, "maintenance status updated")
}

// Delete removes a record that is not in progress.
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "maintenance deleted")
}
