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

// Compile-time check to ensure OfferRepository implements the interface
var _ repositories.OfferRepository = (*OfferRepository)(nil)

// OfferRepository handles MongoDB operations for Offer
type OfferRepository struct {
	collection *mongo.Collection
}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository(db *mongo.Database) *OfferRepository {
	return &OfferRepository{
		collection: db.Collection("offers"),
	}
}

// Create inserts a new offer
func (r *OfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	offer.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, offer)
	return err
}

// FindByID finds an offer by ID
func (r *OfferRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	var offer models.Offer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&offer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// Update replaces an offer document
func (r *OfferRepository) Update(ctx context.Context, offer *models.Offer) error {
	offer.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": offer.ID}, offer)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// SetActive flips the soft-delete flag
func (r *OfferRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
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

// FindActiveByEstablishment finds all active offers for one establishment
func (r *OfferRepository) FindActiveByEstablishment(ctx context.Context, establishmentID primitive.ObjectID) ([]*models.Offer, error) {
	filter := bson.M{"establishmentId": establishmentID, "active": true}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offers []*models.Offer
	if err = cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []*models.Offer{}
	}
	return offers, nil
}
