package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elouannasse/fleet-management/internal/models"
)

// MongoAlertCollection wraps the maintenance_alerts collection.
type MongoAlertCollection struct {
	Collection *mongo.Collection
}

// InsertAlert inserts a maintenance alert.
func (c *MongoAlertCollection) InsertAlert(ctx context.Context, alert models.MaintenanceAlert) (primitive.ObjectID, error) {
	res, err := c.Collection.InsertOne(ctx, alert)
	if err != nil {
		if isDuplicateKey(err) {
			// Concurrent generator run won the partial unique index race.
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindAlertByID finds an alert by its ID.
func (c *MongoAlertCollection) FindAlertByID(ctx context.Context, id string) (*models.MaintenanceAlert, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var alert models.MaintenanceAlert
	err = c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// FindAlerts queries alerts with pagination, newest generated first.
func (c *MongoAlertCollection) FindAlerts(ctx context.Context, filter bson.M, page, limit int64) ([]models.MaintenanceAlert, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	alerts := []models.MaintenanceAlert{}
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, 0, err
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

// HasUntreatedAlert reports whether an untreated alert exists for the
// (vehicle, rule) pair.
func (c *MongoAlertCollection) HasUntreatedAlert(ctx context.Context, kind models.VehicleKind, vehicleID, ruleID primitive.ObjectID) (bool, error) {
	count, err := c.Collection.CountDocuments(ctx, bson.M{
		"vehicle_kind": kind,
		"vehicle_id":   vehicleID,
		"rule_id":      ruleID,
		"treated":      false,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateAlert applies a partial update to an alert by its ID.
func (c *MongoAlertCollection) UpdateAlert(ctx context.Context, id string, update bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := c.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAlert deletes an alert by its ID.
func (c *MongoAlertCollection) DeleteAlert(ctx context.Context, id string) error {
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

// AlertStats counts alerts by flag for list responses.
func (c *MongoAlertCollection) AlertStats(ctx context.Context) (*models.AlertStats, error) {
	total, err := c.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	unread, err := c.Collection.CountDocuments(ctx, bson.M{"read": false})
	if err != nil {
		return nil, err
	}
	untreated, err := c.Collection.CountDocuments(ctx, bson.M{"treated": false})
	if err != nil {
		return nil, err
	}
	urgent, err := c.Collection.CountDocuments(ctx, bson.M{"urgent": true})
	if err != nil {
		return nil, err
	}
	return &models.AlertStats{
		Total:     total,
		Unread:    unread,
		Untreated: untreated,
		Urgent:    urgent,
	}, nil
}
