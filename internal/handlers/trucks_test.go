package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

func setupTruckRouter(trucks *MockTruckCollection) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewTruckHandler(trucks)

	r := gin.New()
	r.GET("/api/trucks", handler.List)
	r.GET("/api/trucks/:id", handler.Get)
	r.POST("/api/trucks", handler.Create)
	r.DELETE("/api/trucks/:id", handler.Delete)
	return r
}

func TestTruckHandler_List_Pagination(t *testing.T) {
	trucks := new(MockTruckCollection)
	router := setupTruckRouter(trucks)

	trucks.On("FindTrucks", mock.Anything, bson.M{}, int64(2), int64(5)).
		Return([]models.Truck{{Registration: "AB-123-CD"}}, int64(11), nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/trucks?page=2&limit=5", nil)
	w := performRequest(router, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Pagination Pagination `json:"pagination"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(11), body.Data.Pagination.Total)
	assert.Equal(t, int64(3), body.Data.Pagination.Pages)
}

func TestTruckHandler_List_StatusFilter(t *testing.T) {
	trucks := new(MockTruckCollection)
	router := setupTruckRouter(trucks)

	trucks.On("FindTrucks", mock.Anything, bson.M{"status": "available"}, int64(1), int64(10)).
		Return([]models.Truck{}, int64(0), nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/trucks?status=available", nil)
	w := performRequest(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	trucks.AssertExpectations(t)
}

func TestTruckHandler_Get_NotFound(t *testing.T) {
	trucks := new(MockTruckCollection)
	router := setupTruckRouter(trucks)

	trucks.On("FindTruckByID", mock.Anything, "missing").Return(nil, db.ErrNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/api/trucks/missing", nil)
	w := performRequest(router, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTruckHandler_Create_DuplicateRegistration(t *testing.T) {
	trucks := new(MockTruckCollection)
	router := setupTruckRouter(trucks)

	trucks.On("InsertTruck", mock.Anything, mock.Anything).Return(primitive.NilObjectID, db.ErrDuplicate)

	w := performJSON(router, http.MethodPost, "/api/trucks", gin.H{
		"registration":  "AB-123-CD",
		"make":          "Volvo",
		"model":         "FH16",
		"odometer":      50000,
		"load_capacity": 20000,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTruckHandler_Create_MissingRegistration(t *testing.T) {
	trucks := new(MockTruckCollection)
	router := setupTruckRouter(trucks)

	w := performJSON(router, http.MethodPost, "/api/trucks", gin.H{
		"make":  "Volvo",
		"model": "FH16",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	trucks.AssertNotCalled(t, "InsertTruck", mock.Anything, mock.Anything)
}
