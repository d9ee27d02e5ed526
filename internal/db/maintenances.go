package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elouannasse/fleet-management/internal/models"
)

// MongoMaintenanceCollection wraps the maintenances collection.
type MongoMaintenanceCollection struct {
	Collection *mongo.Collection
}

// InsertMaintenance inserts a maintenance record.
func (c *MongoMaintenanceCollection) InsertMaintenance(ctx context.Context, m models.Maintenance) (primitive.ObjectID, error) {
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	res, err := c.Collection.InsertOne(ctx, m)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindMaintenanceByID finds a maintenance record by its ID.
func (c *MongoMaintenanceCollection) FindMaintenanceByID(ctx context.Context, id string) (*models.Maintenance, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var m models.Maintenance
	err = c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindMaintenances queries maintenance records with pagination, most
// recently planned first.
func (c *MongoMaintenanceCollection) FindMaintenances(ctx context.Context, filter bson.M, page, limit int64) ([]models.Maintenance, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "planned_date", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	records := []models.Maintenance{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// FindMaintenancesByVehicle returns the maintenance history of one vehicle.
func (c *MongoMaintenanceCollection) FindMaintenancesByVehicle(ctx context.Context, kind models.VehicleKind, vehicleID primitive.ObjectID) ([]models.Maintenance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "planned_date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{
		"vehicle_kind": kind,
		"vehicle_id":   vehicleID,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.Maintenance{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// AllMaintenances returns every record matching the filter, for report
// aggregation where the cost math happens in Go.
func (c *MongoMaintenanceCollection) AllMaintenances(ctx context.Context, filter bson.M) ([]models.Maintenance, error) {
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.Maintenance{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateMaintenance applies a partial update to a record by its ID.
func (c *MongoMaintenanceCollection) UpdateMaintenance(ctx context.Context, id string, update bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	update["updated_at"] = time.Now()
	res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMaintenance deletes a record by its ID.
func (c *MongoMaintenanceCollection) DeleteMaintenance(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
