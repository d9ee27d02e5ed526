package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/middleware"
	"github.com/elouannasse/fleet-management/internal/models"
	"github.com/elouannasse/fleet-management/internal/trips"
)

// TripHandler handles trip requests. Drivers only ever see their own
// trips; admins see the whole fleet.
type TripHandler struct {
	trips   db.TripCollection
	service *trips.Service
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(collection db.TripCollection, service *trips.Service) *TripHandler {
	return &TripHandler{trips: collection, service: service}
}

// TripRequest is the create payload for a trip.
type TripRequest struct {
	DriverID        string    `json:"driver_id" binding:"required"`
	TruckID         string    `json:"truck_id" binding:"required"`
	TrailerID       string    `json:"trailer_id,omitempty"`
	Origin          string    `json:"origin" binding:"required"`
	Destination     string    `json:"destination" binding:"required"`
	DepartureDate   time.Time `json:"departure_date" binding:"required"`
	PlannedDistance float64   `json:"planned_distance" binding:"min=0"`
	StartOdometer   float64   `json:"start_odometer" binding:"min=0"`
	Cargo           string    `json:"cargo,omitempty"`
	CargoWeight     float64   `json:"cargo_weight" binding:"min=0"`
	Notes           string    `json:"notes,omitempty"`
}

// scopeFilter restricts a query to the caller's own trips unless the
// caller is an admin.
func scopeFilter(c *gin.Context, filter bson.M) bson.M {
	claims, ok := middleware.GetClaims(c)
	if !ok || claims.Role == models.RoleAdmin {
		return filter
	}
	if driverID, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
		filter["driver_id"] = driverID
	}
	return filter
}

// List returns trips visible to the caller, with optional filters.
func (h *TripHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if driverID := c.Query("driver_id"); driverID != "" {
		id, err := primitive.ObjectIDFromHex(driverID)
		if err != nil {
			respondBadRequest(c, "invalid driver id")
			return
		}
		filter["driver_id"] = id
	}
	filter = scopeFilter(c, filter)

	result, total, err := h.trips.FindTrips(c.Request.Context(), filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"trips":      result,
		"pagination": newPagination(page, limit, total),
	}, "trips retrieved")
}

// My returns the caller's own trips regardless of role.
func (h *TripHandler) My(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		respondUnauthorized(c, "missing credentials")
		return
	}
	driverID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		respondBadRequest(c, "invalid user id in token")
		return
	}

	page, limit := parsePagination(c)
	result, total, err := h.trips.FindTrips(c.Request.Context(), bson.M{"driver_id": driverID}, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"trips":      result,
		"pagination": newPagination(page, limit, total),
	}, "trips retrieved")
}

// Stats returns aggregate trip figures scoped to the caller.
func (h *TripHandler) Stats(c *gin.Context) {
	filter := scopeFilter(c, bson.M{})
	stats, err := h.trips.TripStats(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"stats": stats}, "trip stats retrieved")
}

// Get returns one trip. Drivers cannot read other drivers' trips.
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.trips.FindTripByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if claims, ok := middleware.GetClaims(c); ok && claims.Role != models.RoleAdmin {
		if trip.DriverID.Hex() != claims.UserID {
			respondError(c, db.ErrNotFound)
			return
		}
	}

	respondOK(c, gin.H{"trip": trip}, "trip retrieved")
}

// Create plans a new trip and reserves its vehicles.
func (h *TripHandler) Create(c *gin.Context) {
	var req TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	driverID, err := primitive.ObjectIDFromHex(req.DriverID)
	if err != nil {
		respondBadRequest(c, "invalid driver id")
		return
	}
	truckID, err := primitive.ObjectIDFromHex(req.TruckID)
	if err != nil {
		respondBadRequest(c, "invalid truck id")
		return
	}

	trip := models.Trip{
		DriverID:        driverID,
		TruckID:         truckID,
		Origin:          req.Origin,
		Destination:     req.Destination,
		DepartureDate:   req.DepartureDate,
		PlannedDistance: req.PlannedDistance,
		StartOdometer:   req.StartOdometer,
		Cargo:           req.Cargo,
		CargoWeight:     req.CargoWeight,
		Notes:           req.Notes,
	}
	if req.TrailerID != "" {
		trailerID, err := primitive.ObjectIDFromHex(req.TrailerID)
		if err != nil {
			respondBadRequest(c, "invalid trailer id")
			return
		}
		trip.TrailerID = &trailerID
	}

	created, err := h.service.Create(c.Request.Context(), trip)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, gin.H{"trip": created}, "trip created")
}

// TripUpdateRequest is the partial-update payload for a trip.
type TripUpdateRequest struct {
	Origin          *string    `json:"origin,omitempty"`
	Destination     *string    `json:"destination,omitempty"`
	DepartureDate   *time.Time `json:"departure_date,omitempty"`
	PlannedDistance *float64   `json:"planned_distance,omitempty"`
	Cargo           *string    `json:"cargo,omitempty"`
	CargoWeight     *float64   `json:"cargo_weight,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// Update modifies a trip that has not completed yet.
func (h *TripHandler) Update(c *gin.Context) {
	var req TripUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	update := bson.M{}
	if req.Origin != nil {
		update["origin"] = *req.Origin
	}
	if req.Destination != nil {
		update["destination"] = *req.Destination
	}
	if req.DepartureDate != nil {
		update["departure_date"] = *req.DepartureDate
	}
	if req.PlannedDistance != nil {
		update["planned_distance"] = *req.PlannedDistance
	}
	if req.Cargo != nil {
		update["cargo"] = *req.Cargo
	}
	if req.CargoWeight != nil {
		update["cargo_weight"] = *req.CargoWeight
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
	respondOK(c, gin.H{"trip": updated}, "trip updated")
}

// UpdateStatus advances a trip through its lifecycle.
func (h *TripHandler) UpdateStatus(c *gin.Context) {
	var req trips.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"trip": updated}, "trip status updated")
}

// Delete removes a trip that is not in progress.
func (h *TripHandler) Delete(c *gin.Context) {
	if _, err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil, "trip deleted")
}
