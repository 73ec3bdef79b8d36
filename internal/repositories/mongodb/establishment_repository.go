package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure EstablishmentRepository implements the interface
var _ repositories.EstablishmentRepository = (*EstablishmentRepository)(nil)

// EstablishmentRepository handles MongoDB operations for Establishment
type EstablishmentRepository struct {
	collection *mongo.Collection
}

// NewEstablishmentRepository creates a new EstablishmentRepository
func NewEstablishmentRepository(db *mongo.Database) *EstablishmentRepository {
	return &EstablishmentRepository{
		collection: db.Collection("establishments"),
	}
}

// Create inserts a new establishment
func (r *EstablishmentRepository) Create(ctx context.Context, establishment *models.Establishment) error {
	establishment.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, establishment)
	return err
}

// FindByID finds an establishment by ID
func (r *EstablishmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Establishment, error) {
	var establishment models.Establishment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&establishment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &establishment, nil
}

// Update replaces an establishment document
func (r *EstablishmentRepository) Update(ctx context.Context, establishment *models.Establishment) error {
	establishment.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": establishment.ID}, establishment)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetActive flips the soft-delete flag
func (r *EstablishmentRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	update := bson.M{"$set": bson.M{"active": active, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// FindActive finds all active establishments, newest first
func (r *EstablishmentRepository) FindActive(ctx context.Context) ([]*models.Establishment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var establishments []*models.Establishment
	if err = cursor.All(ctx, &establishments); err != nil {
		return nil, err
	}
	if establishments == nil {
		establishments = []*models.Establishment{}
	}
	return establishments, nil
}
