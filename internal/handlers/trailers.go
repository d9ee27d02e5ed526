package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

// TrailerHandler handles trailer CRUD requests.
type TrailerHandler struct {
	trailers db.TrailerCollection
}

// NewTrailerHandler creates a new trailer handler.
func NewTrailerHandler(trailers db.TrailerCollection) *TrailerHandler {
	return &TrailerHandler{trailers: trailers}
}

// TrailerRequest is the create/update payload for a trailer.
type TrailerRequest struct {
	Registration    string     `json:"registration" binding:"required"`
	Make            string     `json:"make,omitempty"`
	Model           string     `json:"model,omitempty"`
	Year            int        `json:"year,omitempty" binding:"omitempty,min=1990"`
	Type            string     `json:"type" binding:"required,oneof=refrigerated tarpaulin flatbed tanker"`
	Capacity        float64    `json:"capacity" binding:"required,min=0"`
	LoadCapacity    float64    `json:"load_capacity,omitempty" binding:"omitempty,min=0"`
	FuelType        string     `json:"fuel_type,omitempty" binding:"omitempty,oneof=diesel gasoline electric hybrid"`
	AcquisitionDate *time.Time `json:"acquisition_date,omitempty"`
	Status          string     `json:"status,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// List returns trailers, optionally filtered by status or type.
func (h *TrailerHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if trailerType := c.Query("type"); trailerType != "" {
		filter["type"] = trailerType
	}

	trailers, total, err := h.trailers.FindTrailers(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"trailers":   trailers,
		"pagination": newPagination(page, limit, total),
	}, "trailers retrieved")
}

// Available returns trailers with status available, unpaginated.
func (h *TrailerHandler) Available(c *gin.Context) {
	trailers, _, err := h.trailers.FindTrailers(c.Request.Context(), bson.M{"status": models.VehicleAvailable}, 1, 100)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"trailers": trailers}, "available trailers retrieved")
}

// Get returns one trailer by id.
func (h *TrailerHandler) Get(c *gin.Context) {
	trailer, err := h.trailers.FindTrailerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"trailer": trailer}, "trailer retrieved")
}

// Create registers a new trailer.
func (h *TrailerHandler) Create(c *gin.Context) {
	var req TrailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	status := models.VehicleStatus(req.Status)
	if status == "" {
		status = models.VehicleAvailable
	}

	trailer := models.Trailer{
		Registration:    req.Registration,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		Type:            models.TrailerType(req.Type),
		Capacity:        req.Capacity,
		LoadCapacity:    req.LoadCapacity,
		FuelType:        req.FuelType,
		AcquisitionDate: req.AcquisitionDate,
		Status:          status,
		Notes:           req.Notes,
	}

	id, err := h.trailers.InsertTrailer(c.Request.Context(), trailer)
	if err != nil {
		respondError(c, err)
		return
	}
	trailer.ID = id

	respondCreated(c, gin.H{"trailer": trailer}, "trailer created")
}

// Update modifies an existing trailer.
func (h *TrailerHandler) Update(c *gin.Context) {
	var req TrailerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	update := bson.M{
		"registration": req.Registration,
		"type":         req.Type,
		"capacity":     req.Capacity,
		"notes":        req.Notes,
	}
	if req.Make != "" {
		update["make"] = req.Make
	}
	if req.Model != "" {
		update["model"] = req.Model
	}
	if req.Year > 0 {
		update["year"] = req.Year
	}
	if req.LoadCapacity > 0 {
		update["load_capacity"] = req.LoadCapacity
	}
	if req.FuelType != "" {
		update["fuel_type"] = req.FuelType
	}
	if req.AcquisitionDate != nil {
		update["acquisition_date"] = req.AcquisitionDate
	}
	if req.Status != "" {
		update["status"] = req.Status
	}

	if err := h.trailers.UpdateTrailer(c.Request.Context(), c.Param("id"), update); err != nil {
		respondError(c, err)
		return
	}

	trailer, err := h.trailers.FindTrailerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"trailer": trailer}, "trailer updated")
}

// Delete removes a trailer.
func (h *TrailerHandler) Delete(c *gin.Context) {
	if err := h.trailers.DeleteTrailer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "trailer deleted")
}
