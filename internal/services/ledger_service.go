package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// History view bounds. Staff see a system-wide window, everyone else only
// their own entries.
const (
	historyLimitStaff = 100
	historyLimitSelf  = 50
)

// LedgerService records scan events and serves the audit history. It is the
// one place in the system where state is mutated on a scan: a progress
// counter update and a ledger append, committed in a single transaction.
type LedgerService interface {
	// RecordScan translates one scan of accountID's QR code against offerID,
	// performed by actorID, into a progress increment and a ledger entry.
	// It reports whether the scan unlocked the reward.
	RecordScan(ctx context.Context, actorID, accountID, offerID primitive.ObjectID) (*models.ScanResult, error)

	// ListHistory returns the ledger view the caller is entitled to: staff
	// get recent entries system-wide, everyone else their own.
	ListHistory(ctx context.Context, callerID primitive.ObjectID) ([]*models.LedgerEntry, error)

	// ListProgress returns the caller's progress records across all offers.
	ListProgress(ctx context.Context, accountID primitive.ObjectID) ([]*models.ProgressRecord, error)
}

type ledgerService struct {
	accountRepo  repositories.AccountRepository
	offerRepo    repositories.OfferRepository
	progressRepo repositories.ProgressRepository
	ledgerRepo   repositories.LedgerRepository
	txn          repositories.TxnRunner

	maxTxnAttempts int
	txnBackoff     time.Duration
}

// NewLedgerService creates a new LedgerService. maxTxnAttempts bounds the
// retry loop on transaction conflicts; txnBackoff is the initial delay,
// doubled per attempt.
func NewLedgerService(
	accountRepo repositories.AccountRepository,
	offerRepo repositories.OfferRepository,
	progressRepo repositories.ProgressRepository,
	ledgerRepo repositories.LedgerRepository,
	txn repositories.TxnRunner,
	maxTxnAttempts int,
	txnBackoff time.Duration,
) LedgerService {
	if maxTxnAttempts < 1 {
		maxTxnAttempts = 1
	}
	return &ledgerService{
		accountRepo:    accountRepo,
		offerRepo:      offerRepo,
		progressRepo:   progressRepo,
		ledgerRepo:     ledgerRepo,
		txn:            txn,
		maxTxnAttempts: maxTxnAttempts,
		txnBackoff:     txnBackoff,
	}
}

// RecordScan checks the actor's scanning rights for the offer's
// establishment, then runs the read-increment-write-append sequence inside
// one store transaction. Conflicting commits are retried with exponential
// backoff; past the budget the failure surfaces as ErrUnavailable.
func (s *ledgerService) RecordScan(ctx context.Context, actorID, accountID, offerID primitive.ObjectID) (*models.ScanResult, error) {
	actor, err := s.accountRepo.FindByID(ctx, actorID)
	if err != nil {
		// Privilege fails closed when the actor cannot be resolved.
		return nil, ErrUnauthorized
	}

	offer, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	if !offer.Active {
		return nil, repositories.ErrNotFound
	}

	if !actor.CanScan(offer.EstablishmentID) {
		return nil, ErrUnauthorized
	}

	var result *models.ScanResult
	backoff := s.txnBackoff
	for attempt := 0; attempt < s.maxTxnAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
			record, err := s.progressRepo.FindByTriple(ctx, accountID, offer.EstablishmentID, offer.ID)
			if errors.Is(err, repositories.ErrNotFound) {
				record = &models.ProgressRecord{
					AccountID:       accountID,
					EstablishmentID: offer.EstablishmentID,
					OfferID:         offer.ID,
				}
			} else if err != nil {
				return err
			}

			newProgress := record.Progress + 1
			rewardAchieved := newProgress >= offer.ScaleSize
			finalProgress := newProgress
			if rewardAchieved {
				finalProgress = 0
			}

			now := time.Now()
			record.Progress = finalProgress
			record.TotalScans++
			if rewardAchieved {
				record.RewardsReceived++
			}
			record.UpdatedAt = now

			if err := s.progressRepo.Upsert(ctx, record); err != nil {
				return err
			}

			entry := &models.LedgerEntry{
				AccountID:       accountID,
				AdminID:         actorID,
				EstablishmentID: offer.EstablishmentID,
				OfferID:         offer.ID,
				Description:     scanDescription(offer, newProgress, rewardAchieved),
				Progress:        finalProgress,
				RewardIssued:    rewardAchieved,
				CreatedAt:       now,
			}
			if err := s.ledgerRepo.Create(ctx, entry); err != nil {
				return err
			}

			result = &models.ScanResult{
				RewardAchieved:  rewardAchieved,
				Progress:        finalProgress,
				ScaleSize:       offer.ScaleSize,
				TotalScans:      record.TotalScans,
				RewardsReceived: record.RewardsReceived,
			}
			return nil
		})
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, repositories.ErrTransactionConflict) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("scan did not commit after %d attempts: %w", s.maxTxnAttempts, repositories.ErrUnavailable)
}

// ListHistory never rejects a caller; an unresolvable account just gets the
// least privileged view of its own entries.
func (s *ledgerService) ListHistory(ctx context.Context, callerID primitive.ObjectID) ([]*models.LedgerEntry, error) {
	caller, err := s.accountRepo.FindByID(ctx, callerID)
	if err != nil || !caller.IsStaff() {
		return s.ledgerRepo.FindByAccount(ctx, callerID, historyLimitSelf)
	}
	return s.ledgerRepo.FindRecent(ctx, historyLimitStaff)
}

func (s *ledgerService) ListProgress(ctx context.Context, accountID primitive.ObjectID) ([]*models.ProgressRecord, error) {
	return s.progressRepo.FindByAccount(ctx, accountID)
}

func scanDescription(offer *models.Offer, newProgress int, rewardAchieved bool) string {
	if rewardAchieved {
		return fmt.Sprintf("Reward unlocked: %s", offer.Name)
	}
	return fmt.Sprintf("Stamp %d of %d: %s", newProgress, offer.ScaleSize, offer.Name)
}
