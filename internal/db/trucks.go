package db

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elouannasse/fleet-management/internal/models"
)

// MongoTruckCollection wraps the trucks collection.
type MongoTruckCollection struct {
	Collection *mongo.Collection
}

// InsertTruck inserts a truck record into the collection.
func (c *MongoTruckCollection) InsertTruck(ctx context.Context, truck models.Truck) (primitive.ObjectID, error) {
	truck.Registration = strings.ToUpper(strings.TrimSpace(truck.Registration))
	truck.CreatedAt = time.Now()
	truck.UpdatedAt = truck.CreatedAt
	res, err := c.Collection.InsertOne(ctx, truck)
	if err != nil {
		if isDuplicateKey(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindTruckByID finds a truck by its ID.
func (c *MongoTruckCollection) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var truck models.Truck
	err = c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&truck)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &truck, nil
}

// FindTruckByRegistration finds a truck by its registration plate.
func (c *MongoTruckCollection) FindTruckByRegistration(ctx context.Context, registration string) (*models.Truck, error) {
	var truck models.Truck
	reg := strings.ToUpper(strings.TrimSpace(registration))
	err := c.Collection.FindOne(ctx, bson.M{"registration": reg}).Decode(&truck)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &truck, nil
}

// FindTrucks queries truck records with pagination, newest first.
func (c *MongoTruckCollection) FindTrucks(ctx context.Context, filter bson.M, page, limit int64) ([]models.Truck, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	trucks := []models.Truck{}
	if err := cursor.All(ctx, &trucks); err != nil {
		return nil, 0, err
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return trucks, total, nil
}

// UpdateTruck applies a partial update to a truck by its ID.
func (c *MongoTruckCollection) UpdateTruck(ctx context.Context, id string, update bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	update["updated_at"] = time.Now()
	res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTruck deletes a truck by its ID.
func (c *MongoTruckCollection) DeleteTruck(ctx context.Context, id string) error {
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
