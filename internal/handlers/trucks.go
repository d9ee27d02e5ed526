package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

// TruckHandler handles truck CRUD requests.
type TruckHandler struct {
	trucks db.TruckCollection
}

// NewTruckHandler creates a new truck handler.
func NewTruckHandler(trucks db.TruckCollection) *TruckHandler {
	return &TruckHandler{trucks: trucks}
}

// TruckRequest is the create/update payload for a truck.
type TruckRequest struct {
	Registration string     `json:"registration" binding:"required"`
	Make         string     `json:"make" binding:"required"`
	Model        string     `json:"model" binding:"required"`
	Year         int        `json:"year,omitempty" binding:"omitempty,min=1990"`
	Odometer     float64    `json:"odometer" binding:"min=0"`
	LoadCapacity float64    `json:"load_capacity" binding:"required,min=0"`
	Status       string     `json:"status,omitempty"`
	NextService  *time.Time `json:"next_maintenance,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// List returns trucks, optionally filtered by status.
func (h *TruckHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	trucks, total, err := h.trucks.FindTrucks(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"trucks":     trucks,
		"pagination": newPagination(page, limit, total),
	}, "trucks retrieved")
}

// Available returns trucks with status available, unpaginated.
func (h *TruckHandler) Available(c *gin.Context) {
	trucks, _, err := h.trucks.FindTrucks(c.Request.Context(), bson.M{"status": models.VehicleAvailable}, 1, 100)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"trucks": trucks}, "available trucks retrieved")
}

// Get returns one truck by id.
func (h *TruckHandler) Get(c *gin.Context) {
	truck, err := h.trucks.FindTruckByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"truck": truck}, "truck retrieved")
}

// Create registers a new truck.
func (h *TruckHandler) Create(c *gin.Context) {
	var req TruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	status := models.VehicleStatus(req.Status)
	if status == "" {
		status = models.VehicleAvailable
	}

	truck := models.Truck{
		Registration:    req.Registration,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		Odometer:        req.Odometer,
		LoadCapacity:    req.LoadCapacity,
		Status:          status,
		NextMaintenance: req.NextService,
		Notes:           req.Notes,
	}

	id, err := h.trucks.InsertTruck(c.Request.Context(), truck)
	if err != nil {
		respondError(c, err)
		return
	}
	truck.ID = id

	respondCreated(c, gin.H{"truck": truck}, "truck created")
}

// Update modifies an existing truck.
func (h *TruckHandler) Update(c *gin.Context) {
	var req TruckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	update := bson.M{
		"registration":  req.Registration,
		"make":          req.Make,
		"model":         req.Model,
		"odometer":      req.Odometer,
		"load_capacity": req.LoadCapacity,
		"notes":         req.Notes,
	}
	if req.Year > 0 {
		update["year"] = req.Year
	}
	if req.Status != "" {
		update["status"] = req.Status
	}
	if req.NextService != nil {
		update["next_maintenance"] = req.NextService
	}

	if err := h.trucks.UpdateTruck(c.Request.Context(), c.Param("id"), update); err != nil {
		respondError(c, err)
		return
	}

	truck, err := h.trucks.FindTruckByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"truck": truck}, "truck updated")
}

// Delete removes a truck.
func (h *TruckHandler) Delete(c *gin.Context) {
	if err := h.trucks.DeleteTruck(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "truck deleted")
}
