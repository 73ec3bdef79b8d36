package mongodb

import (
	"context"
	"errors"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure ProgressRepository implements the interface
var _ repositories.ProgressRepository = (*ProgressRepository)(nil)

// ProgressRepository handles MongoDB operations for ProgressRecord. The
// collection holds at most one document per (account, establishment, offer)
// triple; Upsert keys on that triple so concurrent first scans collapse to
// one document under the transaction.
type ProgressRepository struct {
	collection *mongo.Collection
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *mongo.Database) *ProgressRepository {
	return &ProgressRepository{
		collection: db.Collection("userPoints"),
	}
}

func tripleFilter(accountID, establishmentID, offerID primitive.ObjectID) bson.M {
	return bson.M{
		"accountId":       accountID,
		"establishmentId": establishmentID,
		"offerId":         offerID,
	}
}

// FindByTriple finds the progress record for one (account, establishment,
// offer) triple
func (r *ProgressRepository) FindByTriple(ctx context.Context, accountID, establishmentID, offerID primitive.ObjectID) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	err := r.collection.FindOne(ctx, tripleFilter(accountID, establishmentID, offerID)).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Upsert writes the progress record, creating it when the triple has never
// been scanned before
func (r *ProgressRepository) Upsert(ctx context.Context, record *models.ProgressRecord) error {
	filter := tripleFilter(record.AccountID, record.EstablishmentID, record.OfferID)
	update := bson.M{"$set": bson.M{
		"accountId":       record.AccountID,
		"establishmentId": record.EstablishmentID,
		"offerId":         record.OfferID,
		"progress":        record.Progress,
		"totalScans":      record.TotalScans,
		"rewardsReceived": record.RewardsReceived,
		"updatedAt":       record.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByAccount finds all progress records for one account, most recently
// updated first
func (r *ProgressRepository) FindByAccount(ctx context.Context, accountID primitive.ObjectID) ([]*models.ProgressRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"accountId": accountID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*models.ProgressRecord
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []*models.ProgressRecord{}
	}
	return records, nil
}
