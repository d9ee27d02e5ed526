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

// MongoTrailerCollection wraps the trailers collection.
type MongoTrailerCollection struct {
	Collection *mongo.Collection
}

// InsertTrailer inserts a trailer record into the collection.
func (c *MongoTrailerCollection) InsertTrailer(ctx context.Context, trailer models.Trailer) (primitive.ObjectID, error) {
	trailer.Registration = strings.ToUpper(strings.TrimSpace(trailer.Registration))
	trailer.CreatedAt = time.Now()
	trailer.UpdatedAt = trailer.CreatedAt
	res, err := c.Collection.InsertOne(ctx, trailer)
	if err != nil {
		if isDuplicateKey(err) {
			return primitive.NilObjectID, ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindTrailerByID finds a trailer by its ID.
func (c *MongoTrailerCollection) FindTrailerByID(ctx context.Context, id string) (*models.Trailer, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var trailer models.Trailer
	err = c.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&trailer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trailer, nil
}

// FindTrailerByRegistration finds a trailer by its registration plate.
func (c *MongoTrailerCollection) FindTrailerByRegistration(ctx context.Context, registration string) (*models.Trailer, error) {
	var trailer models.Trailer
	reg := strings.ToUpper(strings.TrimSpace(registration))
	err := c.Collection.FindOne(ctx, bson.M{"registration": reg}).Decode(&trailer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trailer, nil
}

// FindTrailers queries trailer records with pagination, newest first.
func (c *MongoTrailerCollection) FindTrailers(ctx context.Context, filter bson.M, page, limit int64) ([]models.Trailer, int64, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := c.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	trailers := []models.Trailer{}
	if err := cursor.All(ctx, &trailers); err != nil {
		return nil, 0, err
	}

	total, err := c.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return trailers, total, nil
}

// UpdateTrailer applies a partial update to a trailer by its ID.
func (c *MongoTrailerCollection) UpdateTrailer(ctx context.Context, id string, update bson.M) error {
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

// DeleteTrailer deletes a trailer by its ID.
func (c *MongoTrailerCollection) DeleteTrailer(ctx context.Context, id string) error {
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
