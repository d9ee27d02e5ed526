package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/models"
)

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performJSON(router *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	return performRequest(router, req)
}

// MockUserCollection is a mock implementation of db.UserCollection
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUsers(ctx context.Context, filter bson.M, page, limit int64) ([]models.User, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, id string, update bson.M) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockUserCollection) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTruckCollection is a mock implementation of db.TruckCollection
type MockTruckCollection struct {
	mock.Mock
}

func (m *MockTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) (primitive.ObjectID, error) {
	args := m.Called(ctx, truck)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) FindTruckByRegistration(ctx context.Context, registration string) (*models.Truck, error) {
	args := m.Called(ctx, registration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Truck), args.Error(1)
}

func (m *MockTruckCollection) FindTrucks(ctx context.Context, filter bson.M, page, limit int64) ([]models.Truck, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).([]models.Truck), args.Get(1).(int64), args.Error(2)
}

func (m *MockTruckCollection) UpdateTruck(ctx context.Context, id string, update bson.M) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockTruckCollection) DeleteTruck(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRuleCollection is a mock implementation of db.RuleCollection
type MockRuleCollection struct {
	mock.Mock
}

func (m *MockRuleCollection) InsertRule(ctx context.Context, rule models.MaintenanceRule) (primitive.ObjectID, error) {
	args := m.Called(ctx, rule)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockRuleCollection) FindRuleByID(ctx context.Context, id string) (*models.MaintenanceRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRule), args.Error(1)
}

func (m *MockRuleCollection) FindRuleByName(ctx context.Context, name string) (*models.MaintenanceRule, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceRule), args.Error(1)
}

func (m *MockRuleCollection) FindRules(ctx context.Context, filter bson.M, page, limit int64) ([]models.MaintenanceRule, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).([]models.MaintenanceRule), args.Get(1).(int64), args.Error(2)
}

func (m *MockRuleCollection) FindActiveRules(ctx context.Context) ([]models.MaintenanceRule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.MaintenanceRule), args.Error(1)
}

func (m *MockRuleCollection) UpdateRule(ctx context.Context, id string, update bson.M) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockRuleCollection) DeleteRule(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAlertCollection is a mock implementation of db.AlertCollection
type MockAlertCollection struct {
	mock.Mock
}

func (m *MockAlertCollection) InsertAlert(ctx context.Context, alert models.MaintenanceAlert) (primitive.ObjectID, error) {
	args := m.Called(ctx, alert)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockAlertCollection) FindAlertByID(ctx context.Context, id string) (*models.MaintenanceAlert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MaintenanceAlert), args.Error(1)
}

func (m *MockAlertCollection) FindAlerts(ctx context.Context, filter bson.M, page, limit int64) ([]models.MaintenanceAlert, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).([]models.MaintenanceAlert), args.Get(1).(int64), args.Error(2)
}

func (m *MockAlertCollection) HasUntreatedAlert(ctx context.Context, kind models.VehicleKind, vehicleID, ruleID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, kind, vehicleID, ruleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertCollection) UpdateAlert(ctx context.Context, id string, update bson.M) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockAlertCollection) DeleteAlert(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAlertCollection) AlertStats(ctx context.Context) (*models.AlertStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AlertStats), args.Error(1)
}

// MockVehicleStore is a mock implementation of db.VehicleStore
type MockVehicleStore struct {
	mock.Mock
}

func (m *MockVehicleStore) ListEligible(ctx context.Context, kind models.VehicleKind) ([]models.VehicleSnapshot, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).([]models.VehicleSnapshot), args.Error(1)
}

func (m *MockVehicleStore) FindSnapshot(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID) (*models.VehicleSnapshot, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleSnapshot), args.Error(1)
}

func (m *MockVehicleStore) UpdateStatus(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID, status models.VehicleStatus) error {
	args := m.Called(ctx, kind, id, status)
	return args.Error(0)
}

func (m *MockVehicleStore) SetOdometer(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID, odometer float64) error {
	args := m.Called(ctx, kind, id, odometer)
	return args.Error(0)
}

func (m *MockVehicleStore) RecordMaintenance(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID, when time.Time, odometer float64) error {
	args := m.Called(ctx, kind, id, when, odometer)
	return args.Error(0)
}

// MockTripCollection is a mock implementation of db.TripCollection
type MockTripCollection struct {
	mock.Mock
}

func (m *MockTripCollection) InsertTrip(ctx context.Context, trip models.Trip) (primitive.ObjectID, error) {
	args := m.Called(ctx, trip)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockTripCollection) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripCollection) FindTrips(ctx context.Context, filter bson.M, page, limit int64) ([]models.Trip, int64, error) {
	args := m.Called(ctx, filter, page, limit)
	return args.Get(0).([]models.Trip), args.Get(1).(int64), args.Error(2)
}

func (m *MockTripCollection) UpdateTrip(ctx context.Context, id string, update bson.M) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockTripCollection) DeleteTrip(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTripCollection) TripStats(ctx context.Context, filter bson.M) (*models.TripStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TripStats), args.Error(1)
}
