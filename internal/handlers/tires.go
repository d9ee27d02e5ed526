package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

// TireHandler handles tire CRUD requests.
type TireHandler struct {
	tires db.TireCollection
}

// NewTireHandler creates a new tire handler.
func NewTireHandler(tires db.TireCollection) *TireHandler {
	return &TireHandler{tires: tires}
}

// TireRequest is the create/update payload for a tire.
type TireRequest struct {
	Reference           string  `json:"reference" binding:"required"`
	Brand               string  `json:"brand" binding:"required"`
	Dimension           string  `json:"dimension" binding:"required"`
	Position            string  `json:"position" binding:"required,oneof=front-left front-right rear-left rear-right spare"`
	VehicleKind         string  `json:"vehicle_kind" binding:"required,oneof=truck trailer"`
	VehicleID           string  `json:"vehicle_id" binding:"required"`
	InstallationKm      float64 `json:"installation_km" binding:"min=0"`
	Condition           string  `json:"condition,omitempty" binding:"omitempty,oneof=new good fair worn replace"`
	RecommendedPressure float64 `json:"recommended_pressure" binding:"required,min=0"`
	Notes               string  `json:"notes,omitempty"`
}

// List returns tires, optionally filtered by condition.
func (h *TireHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := bson.M{}
	if condition := c.Query("condition"); condition != "" {
		filter["condition"] = condition
	}

	tires, total, err := h.tires.FindTires(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"tires":      tires,
		"pagination": newPagination(page, limit, total),
	}, "tires retrieved")
}

// ByVehicle returns every tire mounted on one vehicle.
func (h *TireHandler) ByVehicle(c *gin.Context) {
	kind := models.VehicleKind(c.Param("kind"))
	if !models.IsValidVehicleKind(kind) {
		respondBadRequest(c, "vehicle kind must be truck or trailer")
		return
	}

	vehicleID, err := primitive.ObjectIDFromHex(c.Param("vehicleId"))
	if err != nil {
		respondError(c, db.ErrNotFound)
		return
	}

	tires, err := h.tires.FindTiresByVehicle(c.Request.Context(), kind, vehicleID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"tires": tires}, "vehicle tires retrieved")
}

// Get returns one tire by id.
func (h *TireHandler) Get(c *gin.Context) {
	tire, err := h.tires.FindTireByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"tire": tire}, "tire retrieved")
}

// Create registers a new tire on a vehicle.
func (h *TireHandler) Create(c *gin.Context) {
	var req TireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	vehicleID, err := primitive.ObjectIDFromHex(req.VehicleID)
	if err != nil {
		respondBadRequest(c, "invalid vehicle id")
		return
	}

	condition := models.TireCondition(req.Condition)
	if condition == "" {
		condition = models.TireNew
	}

	tire := models.Tire{
		Reference:           req.Reference,
		Brand:               req.Brand,
		Dimension:           req.Dimension,
		Position:            models.TirePosition(req.Position),
		VehicleKind:         models.VehicleKind(req.VehicleKind),
		VehicleID:           vehicleID,
		InstallationDate:    time.Now(),
		InstallationKm:      req.InstallationKm,
		Condition:           condition,
		RecommendedPressure: req.RecommendedPressure,
		Notes:               req.Notes,
	}

	id, err := h.tires.InsertTire(c.Request.Context(), tire)
	if err != nil {
		respondError(c, err)
		return
	}
	tire.ID = id

	respondCreated(c, gin.H{"tire": tire}, "tire created")
}

// Update modifies an existing tire.
func (h *TireHandler) Update(c *gin.Context) {
	var req TireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	update := bson.M{
		"reference":            req.Reference,
		"brand":                req.Brand,
		"dimension":            req.Dimension,
		"position":             req.Position,
		"installation_km":      req.InstallationKm,
		"recommended_pressure": req.RecommendedPressure,
		"notes":                req.Notes,
	}
	if req.Condition != "" {
		update["condition"] = req.Condition
	}

	if err := h.tires.UpdateTire(c.Request.Context(), c.Param("id"), update); err != nil {
		respondError(c, err)
		return
	}

	tire, err := h.tires.FindTireByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"tire": tire}, "tire updated")
}

// UpdateCondition changes just the wear condition of a tire.
func (h *TireHandler) UpdateCondition(c *gin.Context) {
	var req struct {
		Condition string `json:"condition" binding:"required,oneof=new good fair worn replace"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.tires.UpdateTire(c.Request.Context(), c.Param("id"), bson.M{"condition": req.Condition}); err != nil {
		respondError(c, err)
		return
	}

	tire, err := h.tires.FindTireByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"tire": tire}, "tire condition updated")
}

// Delete removes a tire.
func (h *TireHandler) Delete(c *gin.Context) {
	if err := h.tires.DeleteTire(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "tire deleted")
}
