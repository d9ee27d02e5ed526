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

// MongoUserCollection wraps the users collection.
type MongoUserCollection struct {
	Collection *mongo.Collection
}

// InsertUser inserts a user record.
func (c *MongoUserCollection) InsertUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	res, err := c.Collection.InsertOne(ctx, user)
	if err != nil {
		if isDuplicateKey(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindUserByID finds a user by their ID.
func (c *MongoUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail finds a user by their email.
func (c *MongoUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := c.Collection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindUsers queries users with pagination, newest first.
func (c *MongoUserCollection) FindUsers(ctx context.Context, filter bson.M, page, limit int64) ([]models.User, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// UpdateUser applies a partial update to a user by their ID.
func (c *MongoUserCollection) UpdateUser(ctx context.Context, id string, update bson.M) error {
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

// DeleteUser deletes a user by their ID.
func (c *MongoUserCollection) DeleteUser(ctx context.Context, id string) error {
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

// UpdateLastLogin stamps the user's last login time.
func (c *MongoUserCollection) UpdateLastLogin(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	_, err = c.Collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"last_login": time.Now(),
	}})
	return err
}
