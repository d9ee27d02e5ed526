package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/middleware"
	"github.com/elouannasse/fleet-management/internal/models"
)

// RuleHandler handles maintenance-rule CRUD requests.
type RuleHandler struct {
	rules db.RuleCollection
}

// NewRuleHandler creates a new maintenance-rule handler.
func NewRuleHandler(rules db.RuleCollection) *RuleHandler {
	return &RuleHandler{rules: rules}
}

// RuleRequest is the create/update payload for a maintenance rule.
// Interval invariants are enforced by a struct-level validation, see
// RegisterValidations.
type RuleRequest struct {
	Name              string   `json:"name" binding:"required"`
	Type              string   `json:"type" binding:"required,oneof=tires oil-change inspection repair"`
	AlertType         string   `json:"alert_type" binding:"required,oneof=distance time mixed"`
	Description       string   `json:"description,omitempty"`
	DistanceInterval  float64  `json:"distance_interval_km" binding:"min=0"`
	TimeInterval      int      `json:"time_interval_days" binding:"min=0"`
	DistanceThreshold float64  `json:"distance_threshold_km" binding:"min=0"`
	TimeThreshold     int      `json:"time_threshold_days" binding:"min=0"`
	VehicleKinds      []string `json:"vehicle_kinds" binding:"omitempty,dive,oneof=truck trailer"`
	Active            *bool    `json:"active,omitempty"`
}

func (r *RuleRequest) toModel() models.MaintenanceRule {
	distanceThreshold := r.DistanceThreshold
	if distanceThreshold == 0 && r.DistanceInterval > 0 {
		distanceThreshold = 1000
	}
	timeThreshold := r.TimeThreshold
	if timeThreshold == 0 && r.TimeInterval > 0 {
		timeThreshold = 7
	}

	kinds := make([]models.VehicleKind, 0, len(r.VehicleKinds))
	for _, k := range r.VehicleKinds {
		kinds = append(kinds, models.VehicleKind(k))
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return models.MaintenanceRule{
		Name:              r.Name,
		Type:              models.MaintenanceType(r.Type),
		AlertType:         models.AlertType(r.AlertType),
		Description:       r.Description,
		DistanceInterval:  r.DistanceInterval,
		TimeInterval:      r.TimeInterval,
		DistanceThreshold: distanceThreshold,
		TimeThreshold:     timeThreshold,
		VehicleKinds:      kinds,
		Active:            active,
	}
}

// List returns rules, optionally filtered by alert type or active flag.
func (h *RuleHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := bson.M{}
	if alertType := c.Query("alert_type"); alertType != "" {
		filter["alert_type"] = alertType
	}
	if active := c.Query("active"); active != "" {
		filter["active"] = active == "true"
	}

	rules, total, err := h.rules.FindRules(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"rules":      rules,
		"pagination": newPagination(page, limit, total),
	}, "rules retrieved")
}

// Get returns one rule by id.
func (h *RuleHandler) Get(c *gin.Context) {
	rule, err := h.rules.FindRuleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"rule": rule}, "rule retrieved")
}

// Create registers a new maintenance rule.
func (h *RuleHandler) Create(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	rule := req.toModel()
	if err := rule.Validate(); err != nil {
		respondError(c, err)
		return
	}

	if claims, ok := middleware.GetClaims(c); ok {
		if creator, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
			rule.CreatedBy = creator
		}
	}

	id, err := h.rules.InsertRule(c.Request.Context(), rule)
	if err != nil {
		respondError(c, err)
		return
	}
	rule.ID = id

	respondCreated(c, gin.H{"rule": rule}, "rule created")
}

// Update modifies an existing rule.
func (h *RuleHandler) Update(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	rule := req.toModel()
	if err := rule.Validate(); err != nil {
		respondError(c, err)
		return
	}

	update := bson.M{
		"name":                  rule.Name,
		"type":                  rule.Type,
		"alert_type":            rule.AlertType,
		"description":           rule.Description,
		"distance_interval_km":  rule.DistanceInterval,
		"time_interval_days":    rule.TimeInterval,
		"distance_threshold_km": rule.DistanceThreshold,
		"time_threshold_days":   rule.TimeThreshold,
		"vehicle_kinds":         rule.VehicleKinds,
		"active":                rule.Active,
	}

	if err := h.rules.UpdateRule(c.Request.Context(), c.Param("id"), update); err != nil {
		respondError(c, err)
		return
	}

	updated, err := h.rules.FindRuleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"rule": updated}, "rule updated")
}

// Toggle flips the active flag of a rule.
func (h *RuleHandler) Toggle(c *gin.Context) {
	rule, err := h.rules.FindRuleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.rules.UpdateRule(c.Request.Context(), c.Param("id"), bson.M{"active": !rule.Active}); err != nil {
		respondError(c, err)
		return
	}

	rule.Active = !rule.Active
	respondOK(c, gin.H{"rule": rule}, "rule toggled")
}

// Delete removes a rule.
func (h *RuleHandler) Delete(c *gin.Context) {
	if err := h.rules.DeleteRule(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "rule deleted")
}
