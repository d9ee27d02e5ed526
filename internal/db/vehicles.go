package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/elouannasse/fleet-management/internal/models"
)

// MongoVehicleStore implements VehicleStore over the truck and trailer
// collections, keyed by vehicle kind.
type MongoVehicleStore struct {
	Collections map[string]*mongo.Collection
}

func (s *MongoVehicleStore) collection(kind models.VehicleKind) (*mongo.Collection, error) {
	coll, ok := s.Collections[string(kind)]
	if !ok {
		return nil, fmt.Errorf("unknown vehicle kind %q", kind)
	}
	return coll, nil
}

// vehicleDoc holds the fields every vehicle kind shares. Both trucks and
// trailers decode into it for snapshot reads.
type vehicleDoc struct {
	ID                primitive.ObjectID   `bson:"_id"`
	Registration      string               `bson:"registration"`
	Odometer          float64              `bson:"odometer"`
	LastMaintenance   *time.Time           `bson:"last_maintenance,omitempty"`
	LastMaintenanceKm float64              `bson:"last_maintenance_km"`
	Status            models.VehicleStatus `bson:"status"`
}

func (d *vehicleDoc) snapshot(kind models.VehicleKind) models.VehicleSnapshot {
	return models.VehicleSnapshot{
		ID:                d.ID,
		Kind:              kind,
		Registration:      d.Registration,
		Odometer:          d.Odometer,
		LastMaintenance:   d.LastMaintenance,
		LastMaintenanceKm: d.LastMaintenanceKm,
	}
}

// ListEligible returns snapshots of vehicles whose status is not
// out-of-service.
func (s *MongoVehicleStore) ListEligible(ctx context.Context, kind models.VehicleKind) ([]models.VehicleSnapshot, error) {
	coll, err := s.collection(kind)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.M{"status": bson.M{"$ne": models.VehicleOutOfService}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []vehicleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	snapshots := make([]models.VehicleSnapshot, 0, len(docs))
	for i := range docs {
		snapshots = append(snapshots, docs[i].snapshot(kind))
	}
	return snapshots, nil
}

// FindSnapshot returns the maintenance view of a single vehicle.
func (s *MongoVehicleStore) FindSnapshot(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID) (*models.VehicleSnapshot, error) {
	coll, err := s.collection(kind)
	if err != nil {
		return nil, err
	}
	var doc vehicleDoc
	err = coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	snap := doc.snapshot(kind)
	return &snap, nil
}

// UpdateStatus sets the operational status of a vehicle.
func (s *MongoVehicleStore) UpdateStatus(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID, status models.VehicleStatus) error {
	coll, err := s.collection(kind)
	if err != nil {
		return err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetOdometer writes a new odometer reading for a vehicle.
func (s *MongoVehicleStore) SetOdometer(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID, odometer float64) error {
	coll, err := s.collection(kind)
	if err != nil {
		return err
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"odometer":   odometer,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordMaintenance stamps the last-maintenance fields and releases the
// vehicle back to available.
func (s *MongoVehicleStore) RecordMaintenance(ctx context.Context, kind models.VehicleKind, id primitive.ObjectID, when time.Time, odometer float64) error {
	coll, err := s.collection(kind)
	if err != nil {
		return err
	}
	set := bson.M{
		"status":           models.VehicleAvailable,
		"last_maintenance": when,
		"updated_at":       time.Now(),
	}
	if odometer > 0 {
		set["last_maintenance_km"] = odometer
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
