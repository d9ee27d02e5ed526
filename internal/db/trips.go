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

// MongoTripCollection wraps the trips collection.
type MongoTripCollection struct {
	Collection *mongo.Collection
}

// InsertTrip inserts a trip record.
func (c *MongoTripCollection) InsertTrip(ctx context.Context, trip models.Trip) (primitive.ObjectID, error) {
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = trip.CreatedAt
	res, err := c.Collection.InsertOne(ctx, trip)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindTripByID finds a trip by its ID.
func (c *MongoTripCollection) FindTripByID(ctx context.Context, id string) (*models.Trip, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var trip models.Trip
	err = c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&trip)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// FindTrips queries trips with pagination, latest departure first.
func (c *MongoTripCollection) FindTrips(ctx context.Context, filter bson.M, page, limit int64) ([]models.Trip, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "departure_date", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	trips := []models.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, 0, err
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

// UpdateTrip applies a partial update to a trip by its ID.
func (c *MongoTripCollection) UpdateTrip(ctx context.Context, id string, update bson.M) error {
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

// DeleteTrip deletes a trip by its ID.
func (c *MongoTripCollection) DeleteTrip(ctx context.Context, id string) error {
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

// TripStats counts trips per status and aggregates distance, fuel and
// fuel cost over completed trips matching the filter.
func (c *MongoTripCollection) TripStats(ctx context.Context, filter bson.M) (*models.TripStats, error) {
	stats := &models.TripStats{}

	var err error
	if stats.Total, err = c.Collection.CountDocuments(ctx, filter); err != nil {
		return nil, err
	}
	if stats.ToDo, err = c.countStatus(ctx, filter, models.TripToDo); err != nil {
		return nil, err
	}
	if stats.InProgress, err = c.countStatus(ctx, filter, models.TripInProgress); err != nil {
		return nil, err
	}
	if stats.Completed, err = c.countStatus(ctx, filter, models.TripCompleted); err != nil {
		return nil, err
	}

	match := bson.M{"status": models.TripCompleted}
	for k, v := range filter {
		match[k] = v
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"distance":  bson.M{"$sum": bson.M{"$subtract": bson.A{"$end_odometer", "$start_odometer"}}},
			"fuel":      bson.M{"$sum": "$fuel_consumed"},
			"fuel_cost": bson.M{"$sum": "$fuel_cost"},
		}}},
	}
	cursor, err := c.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var totals []struct {
		Distance float64 `bson:"distance"`
		Fuel     float64 `bson:"fuel"`
		FuelCost float64 `bson:"fuel_cost"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}
	if len(totals) > 0 {
		stats.TotalDistance = totals[0].Distance
		stats.TotalFuel = totals[0].Fuel
		stats.TotalFuelCost = totals[0].FuelCost
	}
	return stats, nil
}

func (c *MongoTripCollection) countStatus(ctx context.Context, filter bson.M, status models.TripStatus) (int64, error) {
	f := bson.M{"status": status}
	for k, v := range filter {
		if k == "status" {
			continue
		}
		f[k] = v
	}
	return c.Collection.CountDocuments(ctx, f)
}
