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

// MongoRuleCollection wraps the maintenance_rules collection.
type MongoRuleCollection struct {
	Collection *mongo.Collection
}

// InsertRule inserts a maintenance rule.
func (c *MongoRuleCollection) InsertRule(ctx context.Context, rule models.MaintenanceRule) (primitive.ObjectID, error) {
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = rule.CreatedAt
	res, err := c.Collection.InsertOne(ctx, rule)
	if err != nil {
		if isDuplicateKey(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindRuleByID finds a rule by its ID.
func (c *MongoRuleCollection) FindRuleByID(ctx context.Context, id string) (*models.MaintenanceRule, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var rule models.MaintenanceRule
	err = c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindRuleByName finds a rule by its unique name.
func (c *MongoRuleCollection) FindRuleByName(ctx context.Context, name string) (*models.MaintenanceRule, error) {
	var rule models.MaintenanceRule
	err := c.Collection.FindOne(ctx, bson.M{"name": name}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// FindRules queries rules with pagination, newest first.
func (c *MongoRuleCollection) FindRules(ctx context.Context, filter bson.M, page, limit int64) ([]models.MaintenanceRule, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	rules := []models.MaintenanceRule{}
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, 0, err
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return rules, total, nil
}

// FindActiveRules returns every rule with active = true.
func (c *MongoRuleCollection) FindActiveRules(ctx context.Context) ([]models.MaintenanceRule, error) {
	cursor, err := c.Collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rules := []models.MaintenanceRule{}
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// UpdateRule applies a partial update to a rule by its ID.
func (c *MongoRuleCollection) UpdateRule(ctx context.Context, id string, update bson.M) error {
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

// DeleteRule deletes a rule by its ID.
func (c *MongoRuleCollection) DeleteRule(ctx context.Context, id string) error {
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
