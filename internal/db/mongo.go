package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	CollTrucks       = "trucks"
	CollTrailers     = "trailers"
	CollTires        = "tires"
	CollRules        = "maintenance_rules"
	CollAlerts       = "maintenance_alerts"
	CollMaintenances = "maintenances"
	CollTrips        = "trips"
	CollUsers        = "users"
)

// ConnectMongo connects to MongoDB and verifies the connection.
func ConnectMongo(uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// Stores bundles every repository backed by a single database.
type Stores struct {
	Trucks       TruckCollection
	Trailers     TrailerCollection
	Vehicles     VehicleStore
	Rules        RuleCollection
	Alerts       AlertCollection
	Maintenances MaintenanceCollection
	Trips        TripCollection
	Tires        TireCollection
	Users        UserCollection
}

// NewStores wires the Mongo-backed repositories over a database handle.
func NewStores(database *mongo.Database) *Stores {
	trucks := database.Collection(CollTrucks)
	trailers := database.Collection(CollTrailers)
	return &Stores{
		Trucks:   &MongoTruckCollection{Collection: trucks},
		Trailers: &MongoTrailerCollection{Collection: trailers},
		Vehicles: &MongoVehicleStore{Collections: map[string]*mongo.Collection{
			"truck":   trucks,
			"trailer": trailers,
		}},
		Rules:        &MongoRuleCollection{Collection: database.Collection(CollRules)},
		Alerts:       &MongoAlertCollection{Collection: database.Collection(CollAlerts)},
		Maintenances: &MongoMaintenanceCollection{Collection: database.Collection(CollMaintenances)},
		Trips:        &MongoTripCollection{Collection: database.Collection(CollTrips)},
		Tires:        &MongoTireCollection{Collection: database.Collection(CollTires)},
		Users:        &MongoUserCollection{Collection: database.Collection(CollUsers)},
	}
}

// EnsureIndexes creates the unique and query indexes the application
// relies on. The partial unique index on alerts closes the race where two
// concurrent generator runs insert the same (vehicle, rule) alert.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		coll  string
		model mongo.IndexModel
	}{
		{CollTrucks, mongo.IndexModel{Keys: bson.D{{Key: "registration", Value: 1}}, Options: unique}},
		{CollTrailers, mongo.IndexModel{Keys: bson.D{{Key: "registration", Value: 1}}, Options: unique}},
		{CollUsers, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{CollRules, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique}},
		{CollRules, mongo.IndexModel{Keys: bson.D{{Key: "type", Value: 1}, {Key: "active", Value: 1}}}},
		{CollAlerts, mongo.IndexModel{
			Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "rule_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"treated": false}),
		}},
		{CollAlerts, mongo.IndexModel{Keys: bson.D{{Key: "generated_at", Value: -1}}}},
		{CollTrips, mongo.IndexModel{Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "status", Value: 1}}}},
		{CollTrips, mongo.IndexModel{Keys: bson.D{{Key: "departure_date", Value: -1}}}},
		{CollMaintenances, mongo.IndexModel{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "planned_date", Value: 1}}}},
	}

	for _, idx := range indexes {
		if _, err := database.Collection(idx.coll).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("creating index on %s: %w", idx.coll, err)
		}
	}
	return nil
}

// parseID converts a hex string into an ObjectID, mapping bad input to
// ErrNotFound so handlers treat malformed ids like missing documents.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// isDuplicateKey reports whether err is a Mongo unique-index violation.
func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
