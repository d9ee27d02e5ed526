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

// MongoTireCollection wraps the tires collection.
type MongoTireCollection struct {
	Collection *mongo.Collection
}

// InsertTire inserts a tire record.
func (c *MongoTireCollection) InsertTire(ctx context.Context, tire models.Tire) (primitive.ObjectID, error) {
	tire.CreatedAt = time.Now()
	tire.UpdatedAt = tire.CreatedAt
	res, err := c.Collection.InsertOne(ctx, tire)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindTireByID finds a tire by its ID.
func (c *MongoTireCollection) FindTireByID(ctx context.Context, id string) (*models.Tire, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var tire models.Tire
	err = c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&tire)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tire, nil
}

// FindTires queries tires with pagination, newest first.
func (c *MongoTireCollection) FindTires(ctx context.Context, filter bson.M, page, limit int64) ([]models.Tire, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	tires := []models.Tire{}
	if err := cursor.All(ctx, &tires); err != nil {
		return nil, 0, err
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return tires, total, nil
}

// FindTiresByVehicle returns every tire mounted on one vehicle.
func (c *MongoTireCollection) FindTiresByVehicle(ctx context.Context, kind models.VehicleKind, vehicleID primitive.ObjectID) ([]models.Tire, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{
		"vehicle_kind": kind,
		"vehicle_id":   vehicleID,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tires := []models.Tire{}
	if err := cursor.All(ctx, &tires); err != nil {
		return nil, err
	}
	return tires, nil
}

// UpdateTire applies a partial update to a tire by its ID.
func (c *MongoTireCollection) UpdateTire(ctx context.Context, id string, update bson.M) error {
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

// DeleteTire deletes a tire by its ID.
func (c *MongoTireCollection) DeleteTire(ctx context.Context, id string) error {
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
