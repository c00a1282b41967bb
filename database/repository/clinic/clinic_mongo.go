package clinicRepo

import (
	"context"
	"fmt"
	"time"

	"ayursutra/database"
	"ayursutra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClinicRepo implements ClinicRepository using MongoDB.
type MongoClinicRepo struct {
	coll *mongo.Collection
}

// NewMongoClinicRepo creates a new instance of ClinicRepository using MongoDB.
func NewMongoClinicRepo() ClinicRepository {
	coll := database.DB().Collection("clinics")
	return &MongoClinicRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoClinicRepo) GetByID(id string) (*models.Clinic, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var clinic models.Clinic
	filter := bson.M{"id": id}
	err := r.coll.FindOne(ctx, filter).Decode(&clinic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch clinic with id %s: %w", id, err)
	}
	return &clinic, nil
}

func (r *MongoClinicRepo) GetByOwner(ownerID string) (*models.Clinic, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var clinic models.Clinic
	filter := bson.M{"owner_id": ownerID}
	err := r.coll.FindOne(ctx, filter).Decode(&clinic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch clinic for owner %s: %w", ownerID, err)
	}
	return &clinic, nil
}

func (r *MongoClinicRepo) List(limit int64) ([]models.Clinic, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	opts := options.Find().SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve clinics: %w", err)
	}
	defer cursor.Close(ctx)
	var clinics []models.Clinic
	for cursor.Next(ctx) {
		var c models.Clinic
		if err := cursor.Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode clinic: %w", err)
		}
		clinics = append(clinics, c)
	}
	return clinics, nil
}

func (r *MongoClinicRepo) Create(clinic *models.Clinic) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, clinic); err != nil {
		return fmt.Errorf("failed to create clinic: %w", err)
	}
	return nil
}

func (r *MongoClinicRepo) Update(clinic *models.Clinic) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	filter := bson.M{"id": clinic.ID}
	update := bson.M{"$set": clinic}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update clinic with id %s: %w", clinic.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("clinic with id %s not found", clinic.ID)
	}
	return nil
}
