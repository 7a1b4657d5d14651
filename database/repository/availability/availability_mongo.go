package availabilityRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"glowbook/database"
	"glowbook/models"
)

// ErrNotSaved indicates no template document exists yet.
var ErrNotSaved = errors.New("no availability template saved")

// templateDocID keys the single template document.
const templateDocID = "weekly"

type availabilityDoc struct {
	ID   string                     `bson:"_id"`
	Days map[string]map[string]bool `bson:"days"`
}

// MongoAvailabilityRepo implements Repository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo creates a Repository backed by the availability
// collection.
func NewMongoAvailabilityRepo() Repository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("availability")
	return &MongoAvailabilityRepo{coll: coll}
}

func (r *MongoAvailabilityRepo) Load(ctx context.Context) (models.WeeklyAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc availabilityDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": templateDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotSaved
		}
		return nil, fmt.Errorf("failed to load availability template: %w", err)
	}
	return models.WeeklyAvailability(doc.Days), nil
}

func (r *MongoAvailabilityRepo) Save(ctx context.Context, avail models.WeeklyAvailability) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := availabilityDoc{ID: templateDocID, Days: avail}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": templateDocID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save availability template: %w", err)
	}
	return nil
}
