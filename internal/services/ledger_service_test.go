package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ledgerFixture struct {
	svc      LedgerService
	accounts *fakeAccountRepo
	offers   *fakeOfferRepo
	progress *fakeProgressRepo
	ledger   *fakeLedgerRepo
	txn      *fakeTxnRunner

	superAdmin *models.Account
	admin      *models.Account
	user       *models.Account
	cafe       primitive.ObjectID
	offer      *models.Offer
}

// newLedgerFixture builds a service over fakes with one cafe, one offer of
// threshold scale, a super admin, an admin managing the cafe, and a customer.
func newLedgerFixture(t *testing.T, scale int) *ledgerFixture {
	t.Helper()

	f := &ledgerFixture{
		accounts: newFakeAccountRepo(),
		offers:   newFakeOfferRepo(),
		progress: newFakeProgressRepo(),
		ledger:   newFakeLedgerRepo(),
		txn:      &fakeTxnRunner{},
		cafe:     primitive.NewObjectID(),
	}

	f.superAdmin = f.accounts.put(&models.Account{Email: "owner@cafestamp.io", Role: models.RoleSuperAdmin})
	f.admin = f.accounts.put(&models.Account{
		Email:        "barista@cafestamp.io",
		Role:         models.RoleAdmin,
		ManagedCafes: []primitive.ObjectID{f.cafe},
	})
	f.user = f.accounts.put(&models.Account{Email: "customer@example.com", Role: models.RoleUser})

	f.offer = &models.Offer{
		EstablishmentID: f.cafe,
		Name:            "Free flat white",
		ScaleSize:       scale,
		Active:          true,
	}
	require.NoError(t, f.offers.Create(context.Background(), f.offer))

	f.svc = NewLedgerService(f.accounts, f.offers, f.progress, f.ledger, f.txn, 5, time.Millisecond)
	return f
}

func TestRecordScan_ThresholdCycle(t *testing.T) {
	f := newLedgerFixture(t, 10)
	ctx := context.Background()

	for i := 1; i <= 9; i++ {
		result, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
		require.NoError(t, err, "scan %d", i)
		assert.False(t, result.RewardAchieved, "scan %d", i)
		assert.Equal(t, i, result.Progress, "scan %d", i)
		assert.Equal(t, 0, result.RewardsReceived, "scan %d", i)
	}

	result, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
	require.NoError(t, err)
	assert.True(t, result.RewardAchieved)
	assert.Equal(t, 0, result.Progress)
	assert.Equal(t, 10, result.TotalScans)
	assert.Equal(t, 1, result.RewardsReceived)
}

func TestRecordScan_CountersOverManyScans(t *testing.T) {
	// 23 scans at threshold 5: 4 rewards, 3 stamps left on the card.
	f := newLedgerFixture(t, 5)
	ctx := context.Background()

	var last *models.ScanResult
	for i := 0; i < 23; i++ {
		var err error
		last, err = f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, 23, last.TotalScans)
	assert.Equal(t, 4, last.RewardsReceived)
	assert.Equal(t, 3, last.Progress)
	assert.Equal(t, 23, f.ledger.count())
	assert.Equal(t, 4, f.ledger.countRewards())
}

func TestRecordScan_ReplayIsNotDeduplicated(t *testing.T) {
	// There is no dedup key: scanning the same card twice is two scans.
	f := newLedgerFixture(t, 10)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, f.ledger.count())
	rec, err := f.progress.FindByTriple(ctx, f.user.ID, f.cafe, f.offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.TotalScans)
}

func TestRecordScan_UserRoleIsUnauthorized(t *testing.T) {
	f := newLedgerFixture(t, 10)

	_, err := f.svc.RecordScan(context.Background(), f.user.ID, f.user.ID, f.offer.ID)
	require.ErrorIs(t, err, ErrUnauthorized)

	// No state may be mutated by a rejected scan.
	assert.Equal(t, 0, f.ledger.count())
	assert.Equal(t, 0, f.progress.count())
}

func TestRecordScan_AdminOfOtherEstablishmentIsUnauthorized(t *testing.T) {
	f := newLedgerFixture(t, 10)
	otherAdmin := f.accounts.put(&models.Account{
		Email:        "other@cafestamp.io",
		Role:         models.RoleAdmin,
		ManagedCafes: []primitive.ObjectID{primitive.NewObjectID()},
	})

	_, err := f.svc.RecordScan(context.Background(), otherAdmin.ID, f.user.ID, f.offer.ID)
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, f.ledger.count())
}

func TestRecordScan_SuperAdminScansAnywhere(t *testing.T) {
	f := newLedgerFixture(t, 10)

	result, err := f.svc.RecordScan(context.Background(), f.superAdmin.ID, f.user.ID, f.offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Progress)
}

func TestRecordScan_UnknownActorFailsClosed(t *testing.T) {
	f := newLedgerFixture(t, 10)

	_, err := f.svc.RecordScan(context.Background(), primitive.NewObjectID(), f.user.ID, f.offer.ID)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRecordScan_MissingOffer(t *testing.T) {
	f := newLedgerFixture(t, 10)

	_, err := f.svc.RecordScan(context.Background(), f.admin.ID, f.user.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRecordScan_InactiveOffer(t *testing.T) {
	f := newLedgerFixture(t, 10)
	require.NoError(t, f.offers.SetActive(context.Background(), f.offer.ID, false))

	_, err := f.svc.RecordScan(context.Background(), f.admin.ID, f.user.ID, f.offer.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRecordScan_RetriesConflictThenCommits(t *testing.T) {
	f := newLedgerFixture(t, 10)
	f.txn.conflicts = 2

	result, err := f.svc.RecordScan(context.Background(), f.admin.ID, f.user.ID, f.offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Progress)
	assert.Equal(t, 3, f.txn.calls)
	assert.Equal(t, 1, f.ledger.count())
}

func TestRecordScan_ConflictBudgetExhausted(t *testing.T) {
	f := newLedgerFixture(t, 10)
	f.txn.conflicts = 100

	_, err := f.svc.RecordScan(context.Background(), f.admin.ID, f.user.ID, f.offer.ID)
	require.ErrorIs(t, err, repositories.ErrUnavailable)
	assert.Equal(t, 5, f.txn.calls)
	assert.Equal(t, 0, f.ledger.count())
	assert.Equal(t, 0, f.progress.count())
}

func TestRecordScan_ConcurrentScansLoseNoIncrement(t *testing.T) {
	// The classic lost-update check: K concurrent scans of the same triple
	// must all land, serialized by the transaction runner.
	const k = 50
	f := newLedgerFixture(t, 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rec, err := f.progress.FindByTriple(ctx, f.user.ID, f.cafe, f.offer.ID)
	require.NoError(t, err)
	assert.Equal(t, k, rec.TotalScans)
	assert.Equal(t, k/10, rec.RewardsReceived)
	assert.Equal(t, k%10, rec.Progress)
	assert.Equal(t, k, f.ledger.count())
}

func TestRecordScan_IndependentTriplesDoNotInterfere(t *testing.T) {
	f := newLedgerFixture(t, 3)
	ctx := context.Background()
	other := f.accounts.put(&models.Account{Email: "second@example.com", Role: models.RoleUser})

	for i := 0; i < 3; i++ {
		_, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
		require.NoError(t, err)
	}
	_, err := f.svc.RecordScan(ctx, f.admin.ID, other.ID, f.offer.ID)
	require.NoError(t, err)

	first, err := f.progress.FindByTriple(ctx, f.user.ID, f.cafe, f.offer.ID)
	require.NoError(t, err)
	second, err := f.progress.FindByTriple(ctx, other.ID, f.cafe, f.offer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.RewardsReceived)
	assert.Equal(t, 1, second.Progress)
	assert.Equal(t, 0, second.RewardsReceived)
}

func TestRecordScan_ThresholdChangeIsNotReconciled(t *testing.T) {
	// Lowering the threshold below accrued progress unlocks on the next
	// scan; older records are never rewritten.
	f := newLedgerFixture(t, 10)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
		require.NoError(t, err)
	}

	f.offer.ScaleSize = 5
	require.NoError(t, f.offers.Update(ctx, f.offer))

	result, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
	require.NoError(t, err)
	assert.True(t, result.RewardAchieved)
	assert.Equal(t, 0, result.Progress)
}

func TestListHistory_UserSeesOwnEntriesOnly(t *testing.T) {
	f := newLedgerFixture(t, 1000)
	ctx := context.Background()
	other := f.accounts.put(&models.Account{Email: "second@example.com", Role: models.RoleUser})

	// 60 scans for the caller, interleaved with somebody else's.
	for i := 0; i < 60; i++ {
		_, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
		require.NoError(t, err)
		_, err = f.svc.RecordScan(ctx, f.admin.ID, other.ID, f.offer.ID)
		require.NoError(t, err)
	}

	entries, err := f.svc.ListHistory(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 50, "self view is capped at 50")
	for i, e := range entries {
		assert.Equal(t, f.user.ID, e.AccountID, "entry %d", i)
	}
	// Newest first: the first entry reflects the latest progress value.
	assert.Equal(t, 60, entries[0].Progress)
	assert.Equal(t, 11, entries[len(entries)-1].Progress)
}

func TestListHistory_StaffSeesSystemWide(t *testing.T) {
	f := newLedgerFixture(t, 1000)
	ctx := context.Background()
	other := f.accounts.put(&models.Account{Email: "second@example.com", Role: models.RoleUser})

	for i := 0; i < 70; i++ {
		_, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
		require.NoError(t, err)
		_, err = f.svc.RecordScan(ctx, f.admin.ID, other.ID, f.offer.ID)
		require.NoError(t, err)
	}

	entries, err := f.svc.ListHistory(ctx, f.admin.ID)
	require.NoError(t, err)
	require.Len(t, entries, 100, "staff view is capped at 100")

	seen := map[primitive.ObjectID]bool{}
	for _, e := range entries {
		seen[e.AccountID] = true
	}
	assert.True(t, seen[f.user.ID])
	assert.True(t, seen[other.ID])
}

func TestListHistory_UnknownCallerGetsSelfView(t *testing.T) {
	f := newLedgerFixture(t, 10)

	entries, err := f.svc.ListHistory(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListProgress(t *testing.T) {
	f := newLedgerFixture(t, 10)
	ctx := context.Background()

	secondOffer := &models.Offer{
		EstablishmentID: f.cafe,
		Name:            "Free croissant",
		ScaleSize:       3,
		Active:          true,
	}
	require.NoError(t, f.offers.Create(ctx, secondOffer))

	_, err := f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, f.offer.ID)
	require.NoError(t, err)
	_, err = f.svc.RecordScan(ctx, f.admin.ID, f.user.ID, secondOffer.ID)
	require.NoError(t, err)

	records, err := f.svc.ListProgress(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	offers := map[primitive.ObjectID]int{}
	for _, r := range records {
		offers[r.OfferID] = r.Progress
	}
	assert.Equal(t, map[primitive.ObjectID]int{f.offer.ID: 1, secondOffer.ID: 1}, offers)
}

func TestScanDescription(t *testing.T) {
	offer := &models.Offer{Name: "Free flat white", ScaleSize: 10}
	assert.Equal(t, "Stamp 3 of 10: Free flat white", scanDescription(offer, 3, false))
	assert.Equal(t, fmt.Sprintf("Reward unlocked: %s", offer.Name), scanDescription(offer, 10, true))
}
