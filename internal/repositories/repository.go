package repositories

import (
	"context"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountRepository defines the interface for account data operations
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error
	AddManagedCafe(ctx context.Context, id, establishmentID primitive.ObjectID) error
	RemoveManagedCafe(ctx context.Context, id, establishmentID primitive.ObjectID) error
	FindAll(ctx context.Context, page, limit int) ([]*models.Account, error)
	Count(ctx context.Context) (int64, error)
}

// EstablishmentRepository defines the interface for establishment data operations
type EstablishmentRepository interface {
	Create(ctx context.Context, establishment *models.Establishment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Establishment, error)
	Update(ctx context.Context, establishment *models.Establishment) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	FindActive(ctx context.Context) ([]*models.Establishment, error)
}

// OfferRepository defines the interface for offer data operations
type OfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error)
	Update(ctx context.Context, offer *models.Offer) error
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	FindActiveByEstablishment(ctx context.Context, establishmentID primitive.ObjectID) ([]*models.Offer, error)
}

// ProgressRepository defines the interface for progress record operations.
// Records are keyed by the (account, establishment, offer) triple.
type ProgressRepository interface {
	FindByTriple(ctx context.Context, accountID, establishmentID, offerID primitive.ObjectID) (*models.ProgressRecord, error)
	Upsert(ctx context.Context, record *models.ProgressRecord) error
	FindByAccount(ctx context.Context, accountID primitive.ObjectID) ([]*models.ProgressRecord, error)
}

// LedgerRepository defines the interface for the append-only scan ledger
type LedgerRepository interface {
	Create(ctx context.Context, entry *models.LedgerEntry) error
	FindRecent(ctx context.Context, limit int) ([]*models.LedgerEntry, error)
	FindByAccount(ctx context.Context, accountID primitive.ObjectID, limit int) ([]*models.LedgerEntry, error)
}

// TxnRunner executes fn inside one store transaction. Every repository call
// made with the context passed to fn joins that transaction; the writes
// commit together or not at all. A commit lost to concurrent modification
// surfaces as ErrTransactionConflict and the caller decides whether to retry.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
