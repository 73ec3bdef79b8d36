package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// Compile-time check to ensure TxnRunner implements the interface
var _ repositories.TxnRunner = (*TxnRunner)(nil)

// TxnRunner runs functions inside a MongoDB multi-document transaction with
// snapshot reads and majority writes. Transient commit failures are mapped
// to repositories.ErrTransactionConflict so the service layer owns the retry
// policy; the driver's own open-ended retry loop is deliberately not used.
type TxnRunner struct {
	client *mongo.Client
}

// NewTxnRunner creates a new TxnRunner
func NewTxnRunner(client *mongo.Client) *TxnRunner {
	return &TxnRunner{client: client}
}

// WithTransaction runs fn inside one transaction. Repository calls made with
// the session context passed to fn join the transaction and commit together
// or not at all.
func (t *TxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", repositories.ErrUnavailable)
	}
	defer session.EndSession(ctx)

	txnOptions := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	err = mongo.WithSession(ctx, session, func(sc mongo.SessionContext) error {
		if err := session.StartTransaction(txnOptions); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			// Best effort; the session is discarded either way.
			_ = session.AbortTransaction(sc)
			return err
		}
		return session.CommitTransaction(sc)
	})
	return mapTxnError(err)
}

// mapTxnError translates driver errors into the repository taxonomy.
func mapTxnError(err error) error {
	if err == nil {
		return nil
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		if serverErr.HasErrorLabel("TransientTransactionError") ||
			serverErr.HasErrorLabel("UnknownTransactionCommitResult") {
			return fmt.Errorf("%v: %w", err, repositories.ErrTransactionConflict)
		}
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%v: %w", err, repositories.ErrUnavailable)
	}
	return err
}
