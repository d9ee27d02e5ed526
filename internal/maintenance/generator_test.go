package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// MockVehicleStore is a mock implementation of db.VehicleStore
type MockVehicleStore struct {
	mock.Mock
}

func (m *MockVehicleStore) ListEligible(ctx context.Context, kind models.VehicleKind) ([]models.VehicleSnapshot, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

func newTestGenerator(rules *MockRuleCollection, vehicles *MockVehicleStore, alerts *MockAlertCollection) *Generator {
	g := NewGenerator(rules, vehicles, alerts)
	g.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return g
}

func dueRule() models.MaintenanceRule {
	return models.MaintenanceRule{
		ID:                primitive.NewObjectID(),
		Name:              "Oil change",
		Type:              models.MaintenanceOilChange,
		AlertType:         models.AlertDistance,
		DistanceInterval:  10000,
		DistanceThreshold: 1000,
		Active:            true,
	}
}

func TestGenerator_NoActiveRules(t *testing.T) {
	rules := new(MockRuleCollection)
	vehicles := new(MockVehicleStore)
	alerts := new(MockAlertCollection)

	rules.On("FindActiveRules", mock.Anything).Return([]models.MaintenanceRule{}, nil)

	generated, err := newTestGenerator(rules, vehicles, alerts).GenerateAlerts(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, generated)

	// Vehicles are never loaded when there is nothing to evaluate
	vehicles.AssertNotCalled(t, "ListEligible", mock.Anything, mock.Anything)
}

func TestGenerator_GeneratesAlertForDueVehicle(t *testing.T) {
	rules := new(MockRuleCollection)
	vehicles := new(MockVehicleStore)
	alerts := new(MockAlertCollection)

	rule := dueRule()
	truck := models.VehicleSnapshot{
		ID:                primitive.NewObjectID(),
		Kind:              models.KindTruck,
		Registration:      "AB-123-CD",
		Odometer:          59500,
		LastMaintenanceKm: 50000,
	}

	rules.On("FindActiveRules", mock.Anything).Return([]models.MaintenanceRule{rule}, nil)
	vehicles.On("ListEligible", mock.Anything, models.KindTruck).Return([]models.VehicleSnapshot{truck}, nil)
	vehicles.On("ListEligible", mock.Anything, models.KindTrailer).Return([]models.VehicleSnapshot{}, nil)
	alerts.On("HasUntreatedAlert", mock.Anything, models.KindTruck, truck.ID, rule.ID).Return(false, nil)
	alerts.On("InsertAlert", mock.Anything, mock.MatchedBy(func(a models.MaintenanceAlert) bool {
		return a.VehicleID == truck.ID && a.RuleID == rule.ID && a.Urgent
	})).Return(primitive.NewObjectID(), nil)

	generated, err := newTestGenerator(rules, vehicles, alerts).GenerateAlerts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, generated)
	alerts.AssertExpectations(t)
}

func TestGenerator_SkipsPairWithUntreatedAlert(t *testing.T) {
	rules := new(MockRuleCollection)
	vehicles := new(MockVehicleStore)
	alerts := new(MockAlertCollection)

	rule := dueRule()
	truck := models.VehicleSnapshot{
		ID:                primitive.NewObjectID(),
		Kind:              models.KindTruck,
		Odometer:          59500,
		LastMaintenanceKm: 50000,
	}

	rules.On("FindActiveRules", mock.Anything).Return([]models.MaintenanceRule{rule}, nil)
	vehicles.On("ListEligible", mock.Anything, models.KindTruck).Return([]models.VehicleSnapshot{truck}, nil)
	vehicles.On("ListEligible", mock.Anything, models.KindTrailer).Return([]models.VehicleSnapshot{}, nil)
	alerts.On("HasUntreatedAlert", mock.Anything, models.KindTruck, truck.ID, rule.ID).Return(true, nil)

	generated, err := newTestGenerator(rules, vehicles, alerts).GenerateAlerts(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, generated)

	alerts.AssertNotCalled(t, "InsertAlert", mock.Anything, mock.Anything)
}

func TestGenerator_RespectsVehicleKindScope(t *testing.T) {
	rules := new(MockRuleCollection)
	vehicles := new(MockVehicleStore)
	alerts := new(MockAlertCollection)

	rule := dueRule()
	rule.VehicleKinds = []models.VehicleKind{models.KindTrailer}

	truck := models.VehicleSnapshot{
		ID:                primitive.NewObjectID(),
		Kind:              models.KindTruck,
		Odometer:          59500,
		LastMaintenanceKm: 50000,
	}

	rules.On("FindActiveRules", mock.Anything).Return([]models.MaintenanceRule{rule}, nil)
	vehicles.On("ListEligible", mock.Anything, models.KindTruck).Return([]models.VehicleSnapshot{truck}, nil)
	vehicles.On("ListEligible", mock.Anything, models.KindTrailer).Return([]models.VehicleSnapshot{}, nil)

	generated, err := newTestGenerator(rules, vehicles, alerts).GenerateAlerts(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, generated)

	// A trailer-only rule never even checks truck alerts
	alerts.AssertNotCalled(t, "HasUntreatedAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerator_ConcurrentDuplicateIsNotAnError(t *testing.T) {
	rules := new(MockRuleCollection)
	vehicles := new(MockVehicleStore)
	alerts := new(MockAlertCollection)

	rule := dueRule()
	truck := models.VehicleSnapshot{
		ID:                primitive.NewObjectID(),
		Kind:              models.KindTruck,
		Odometer:          59500,
		LastMaintenanceKm: 50000,
	}

	rules.On("FindActiveRules", mock.Anything).Return([]models.MaintenanceRule{rule}, nil)
	vehicles.On("ListEligible", mock.Anything, models.KindTruck).Return([]models.VehicleSnapshot{truck}, nil)
	vehicles.On("ListEligible", mock.Anything, models.KindTrailer).Return([]models.VehicleSnapshot{}, nil)
	alerts.On("HasUntreatedAlert", mock.Anything, models.KindTruck, truck.ID, rule.ID).Return(false, nil)
	alerts.On("InsertAlert", mock.Anything, mock.Anything).Return(primitive.NilObjectID, db.ErrDuplicate)

	generated, err := newTestGenerator(rules, vehicles, alerts).GenerateAlerts(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, generated)
}

func TestGenerator_BuildAlertMessages(t *testing.T) {
	g := newTestGenerator(new(MockRuleCollection), new(MockVehicleStore), new(MockAlertCollection))

	rule := dueRule()

	// Overdue vehicle: immediate message with the overdue distance
	overdue := models.VehicleSnapshot{Odometer: 60500, LastMaintenanceKm: 50000}
	alert := g.buildAlert(overdue, &rule)
	assert.Equal(t, "Oil change: maintenance required immediately (500 km overdue)", alert.Message)
	assert.True(t, alert.Urgent)
	assert.Equal(t, 60000.0, alert.DueOdometer)

	// Inside the threshold window but above half of it: not urgent yet
	approaching := models.VehicleSnapshot{Odometer: 59200, LastMaintenanceKm: 50000}
	alert = g.buildAlert(approaching, &rule)
	assert.Equal(t, "Oil change: maintenance required within 800 km", alert.Message)
	assert.False(t, alert.Urgent)

	// At half the threshold the alert turns urgent
	nearly := models.VehicleSnapshot{Odometer: 59500, LastMaintenanceKm: 50000}
	alert = g.buildAlert(nearly, &rule)
	assert.True(t, alert.Urgent)
}

func TestGenerator_BuildAlertDeadline(t *testing.T) {
	g := newTestGenerator(new(MockRuleCollection), new(MockVehicleStore), new(MockAlertCollection))

	rule := models.MaintenanceRule{
		Name:          "Annual inspection",
		AlertType:     models.AlertTime,
		TimeInterval:  365,
		TimeThreshold: 7,
	}
	last := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	v := models.VehicleSnapshot{Odometer: 80000, LastMaintenance: &last}

	alert := g.buildAlert(v, &rule)
	assert.NotNil(t, alert.Deadline)
	assert.Equal(t, last.AddDate(0, 0, 365), *alert.Deadline)

	// No distance interval means the remaining distance is negative, so
	// a time-only alert always reads as overdue and urgent.
	assert.Equal(t, "Annual inspection: maintenance required immediately (80000 km overdue)", alert.Message)
	assert.True(t, alert.Urgent)
}

func TestGenerator_BuildAlertOutsideThresholdWindow(t *testing.T) {
	g := newTestGenerator(new(MockRuleCollection), new(MockVehicleStore), new(MockAlertCollection))

	// Mixed rule that fired on the time branch while the distance still
	// has plenty of margin: no distance text is appended.
	rule := dueRule()
	rule.TimeInterval = 180
	rule.TimeThreshold = 7
	last := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	v := models.VehicleSnapshot{Odometer: 52000, LastMaintenanceKm: 50000, LastMaintenance: &last}

	alert := g.buildAlert(v, &rule)
	assert.Equal(t, "Oil change: ", alert.Message)
	assert.False(t, alert.Urgent)
}
