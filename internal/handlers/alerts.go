package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/maintenance"
)

// AlertHandler handles maintenance-alert requests.
type AlertHandler struct {
	alerts    db.AlertCollection
	generator *maintenance.Generator
}

// NewAlertHandler creates a new maintenance-alert handler.
func NewAlertHandler(alerts db.AlertCollection, generator *maintenance.Generator) *AlertHandler {
	return &AlertHandler{alerts: alerts, generator: generator}
}

// List returns alerts filtered by read/treated/urgent flags or vehicle.
func (h *AlertHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := bson.M{}
	for _, flag := range []string{"read", "treated", "urgent"} {
		if v := c.Query(flag); v != "" {
			filter[flag] = v == "true"
		}
	}
	if kind := c.Query("vehicle_kind"); kind != "" {
		filter["vehicle_kind"] = kind
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		id, err := primitive.ObjectIDFromHex(vehicleID)
		if err != nil {
			respondBadRequest(c, "invalid vehicle id")
			return
		}
		filter["vehicle_id"] = id
	}

	alerts, total, err := h.alerts.FindAlerts(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"alerts":     alerts,
		"pagination": newPagination(page, limit, total),
	}, "alerts retrieved")
}

// Stats returns alert counters for the dashboard.
func (h *AlertHandler) Stats(c *gin.Context) {
	stats, err := h.alerts.AlertStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"stats": stats}, "alert stats retrieved")
}

// Get returns one alert by id.
func (h *AlertHandler) Get(c *gin.Context) {
	alert, err := h.alerts.FindAlertByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"alert": alert}, "alert retrieved")
}

// Check runs the rule evaluation over the whole fleet and reports how
// many alerts were generated.
func (h *AlertHandler) Check(c *gin.Context) {
	created, err := h.generator.GenerateAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"generated": created}, "maintenance check completed")
}

// MarkRead flags an alert as read.
func (h *AlertHandler) MarkRead(c *gin.Context) {
	if err := h.alerts.UpdateAlert(c.Request.Context(), c.Param("id"), bson.M{"read": true}); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "alert marked as read")
}

// MarkTreatedRequest optionally links the maintenance that resolved the alert.
type MarkTreatedRequest struct {
	MaintenanceID string `json:"maintenance_id,omitempty"`
}

// MarkTreated flags an alert as treated. Once treated the alert no
// longer blocks regeneration for its (vehicle, rule) pair.
func (h *AlertHandler) MarkTreated(c *gin.Context) {
	var req MarkTreatedRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err.Error())
			return
		}
	}

	update := bson.M{
		"treated":    true,
		"read":       true,
		"treated_at": time.Now(),
	}
	if req.MaintenanceID != "" {
		maintenanceID, err := primitive.ObjectIDFromHex(req.MaintenanceID)
		if err != nil {
			respondBadRequest(c, "invalid maintenance id")
			return
		}
		update["maintenance_id"] = maintenanceID
	}

	if err := h.alerts.UpdateAlert(c.Request.Context(), c.Param("id"), update); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "alert marked as treated")
}

// Delete removes an alert.
func (h *AlertHandler) Delete(c *gin.Context) {
	if err := h.alerts.DeleteAlert(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "alert deleted")
}
