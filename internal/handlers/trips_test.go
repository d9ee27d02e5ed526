package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/middleware"
	"github.com/elouannasse/fleet-management/internal/models"
	"github.com/elouannasse/fleet-management/internal/trips"
)

func setupTripRouter(tripsColl *MockTripCollection, vehicles *MockVehicleStore, claims *models.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewTripHandler(tripsColl, trips.NewService(tripsColl, vehicles))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ClaimsContextKey, claims)
		}
	})
	r.GET("/api/trips", handler.List)
	r.GET("/api/trips/:id", handler.Get)
	r.PATCH("/api/trips/:id/status", handler.UpdateStatus)
	return r
}

func TestTripHandler_List_DriverSeesOnlyOwnTrips(t *testing.T) {
	tripsColl := new(MockTripCollection)
	driverID := primitive.NewObjectID()
	router := setupTripRouter(tripsColl, new(MockVehicleStore), &models.Claims{
		UserID: driverID.Hex(),
		Role:   models.RoleDriver,
	})

	tripsColl.On("FindTrips", mock.Anything, bson.M{"driver_id": driverID}, int64(1), int64(10)).
		Return([]models.Trip{}, int64(0), nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/trips", nil)
	w := performRequest(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	tripsColl.AssertExpectations(t)
}

func TestTripHandler_List_AdminSeesEverything(t *testing.T) {
	tripsColl := new(MockTripCollection)
	router := setupTripRouter(tripsColl, new(MockVehicleStore), &models.Claims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   models.RoleAdmin,
	})

	tripsColl.On("FindTrips", mock.Anything, bson.M{}, int64(1), int64(10)).
		Return([]models.Trip{}, int64(0), nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/trips", nil)
	w := performRequest(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	tripsColl.AssertExpectations(t)
}

func TestTripHandler_Get_DriverCannotReadOthersTrip(t *testing.T) {
	tripsColl := new(MockTripCollection)
	router := setupTripRouter(tripsColl, new(MockVehicleStore), &models.Claims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   models.RoleDriver,
	})

	tripID := primitive.NewObjectID()
	tripsColl.On("FindTripByID", mock.Anything, tripID.Hex()).Return(&models.Trip{
		ID:       tripID,
		DriverID: primitive.NewObjectID(),
	}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/trips/"+tripID.Hex(), nil)
	w := performRequest(router, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTripHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	tripsColl := new(MockTripCollection)
	router := setupTripRouter(tripsColl, new(MockVehicleStore), &models.Claims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   models.RoleAdmin,
	})

	tripID := primitive.NewObjectID()
	tripsColl.On("FindTripByID", mock.Anything, tripID.Hex()).Return(&models.Trip{
		ID:     tripID,
		Status: models.TripToDo,
	}, nil)

	w := performJSON(router, http.MethodPatch, "/api/trips/"+tripID.Hex()+"/status", gin.H{
		"status": "completed",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	tripsColl.AssertNotCalled(t, "UpdateTrip", mock.Anything, mock.Anything, mock.Anything)
}

func TestTripHandler_UpdateStatus_StartTrip(t *testing.T) {
	tripsColl := new(MockTripCollection)
	router := setupTripRouter(tripsColl, new(MockVehicleStore), &models.Claims{
		UserID: primitive.NewObjectID().Hex(),
		Role:   models.RoleAdmin,
	})

	tripID := primitive.NewObjectID()
	trip := &models.Trip{
		ID:     tripID,
		Status: models.TripToDo,
	}
	tripsColl.On("FindTripByID", mock.Anything, tripID.Hex()).Return(trip, nil)
	tripsColl.On("UpdateTrip", mock.Anything, tripID.Hex(), mock.MatchedBy(func(u bson.M) bool {
		return u["status"] == models.TripInProgress && u["start_odometer"] == 58000.0
	})).Return(nil)

	w := performJSON(router, http.MethodPatch, "/api/trips/"+tripID.Hex()+"/status", gin.H{
		"status":         "in-progress",
		"start_odometer": 58000,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	tripsColl.AssertExpectations(t)
}
