package mongodb

import (
	"context"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure LedgerRepository implements the interface
var _ repositories.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository handles MongoDB operations for LedgerEntry. The ledger is
// append-only: there are no update or delete operations on purpose.
type LedgerRepository struct {
	collection *mongo.Collection
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{
		collection: db.Collection("pointsHistory"),
	}
}

// Create appends a new ledger entry
func (r *LedgerRepository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	entry.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *LedgerRepository) find(ctx context.Context, filter bson.M, limit int) ([]*models.LedgerEntry, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.LedgerEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.LedgerEntry{}
	}
	return entries, nil
}

// FindRecent finds the most recent entries system-wide, newest first
func (r *LedgerRepository) FindRecent(ctx context.Context, limit int) ([]*models.LedgerEntry, error) {
	return r.find(ctx, bson.M{}, limit)
}

// FindByAccount finds the most recent entries for one account, newest first
func (r *LedgerRepository) FindByAccount(ctx context.Context, accountID primitive.ObjectID, limit int) ([]*models.LedgerEntry, error) {
	return r.find(ctx, bson.M{"accountId": accountID}, limit)
}
