package services

import (
	"context"
	"sync"

	"github.com/cafestamp/cafestamp-backend/internal/models"
	"github.com/cafestamp/cafestamp-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests. They mimic the
// store contract the services rely on: not-found maps to
// repositories.ErrNotFound, reads hand out copies, and list results come
// back newest first.

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[primitive.ObjectID]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[primitive.ObjectID]*models.Account)}
}

func (r *fakeAccountRepo) put(a *models.Account) *models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	cp := *a
	r.accounts[a.ID] = &cp
	return a
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	r.put(account)
	return nil
}

func (r *fakeAccountRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) Update(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a.Role = role
	return nil
}

func (r *fakeAccountRepo) AddManagedCafe(ctx context.Context, id, establishmentID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	for _, e := range a.ManagedCafes {
		if e == establishmentID {
			return nil
		}
	}
	a.ManagedCafes = append(a.ManagedCafes, establishmentID)
	return nil
}

func (r *fakeAccountRepo) RemoveManagedCafe(ctx context.Context, id, establishmentID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	kept := a.ManagedCafes[:0]
	for _, e := range a.ManagedCafes {
		if e != establishmentID {
			kept = append(kept, e)
		}
	}
	a.ManagedCafes = kept
	return nil
}

func (r *fakeAccountRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAccountRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.accounts)), nil
}

type fakeEstablishmentRepo struct {
	mu             sync.Mutex
	establishments map[primitive.ObjectID]*models.Establishment
}

func newFakeEstablishmentRepo() *fakeEstablishmentRepo {
	return &fakeEstablishmentRepo{establishments: make(map[primitive.ObjectID]*models.Establishment)}
}

func (r *fakeEstablishmentRepo) Create(ctx context.Context, e *models.Establishment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	cp := *e
	r.establishments[e.ID] = &cp
	return nil
}

func (r *fakeEstablishmentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Establishment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.establishments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEstablishmentRepo) Update(ctx context.Context, e *models.Establishment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.establishments[e.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *e
	r.establishments[e.ID] = &cp
	return nil
}

func (r *fakeEstablishmentRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.establishments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	e.Active = active
	return nil
}

func (r *fakeEstablishmentRepo) FindActive(ctx context.Context) ([]*models.Establishment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Establishment
	for _, e := range r.establishments {
		if e.Active {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeOfferRepo struct {
	mu     sync.Mutex
	offers map[primitive.ObjectID]*models.Offer
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{offers: make(map[primitive.ObjectID]*models.Offer)}
}

func (r *fakeOfferRepo) Create(ctx context.Context, o *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	cp := *o
	r.offers[o.ID] = &cp
	return nil
}

func (r *fakeOfferRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOfferRepo) Update(ctx context.Context, o *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[o.ID]; !ok {
		return repositories.ErrNotFound
	}
	cp := *o
	r.offers[o.ID] = &cp
	return nil
}

func (r *fakeOfferRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.offers[id]
	if !ok {
		return repositories.ErrNotFound
	}
	o.Active = active
	return nil
}

func (r *fakeOfferRepo) FindActiveByEstablishment(ctx context.Context, establishmentID primitive.ObjectID) ([]*models.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Offer
	for _, o := range r.offers {
		if o.Active && o.EstablishmentID == establishmentID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

type tripleKey struct {
	account, establishment, offer primitive.ObjectID
}

type fakeProgressRepo struct {
	mu      sync.Mutex
	records map[tripleKey]*models.ProgressRecord
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{records: make(map[tripleKey]*models.ProgressRecord)}
}

func (r *fakeProgressRepo) FindByTriple(ctx context.Context, accountID, establishmentID, offerID primitive.ObjectID) (*models.ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[tripleKey{accountID, establishmentID, offerID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeProgressRepo) Upsert(ctx context.Context, record *models.ProgressRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *record
	r.records[tripleKey{record.AccountID, record.EstablishmentID, record.OfferID}] = &cp
	return nil
}

func (r *fakeProgressRepo) FindByAccount(ctx context.Context, accountID primitive.ObjectID) ([]*models.ProgressRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.ProgressRecord
	for _, rec := range r.records {
		if rec.AccountID == accountID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeLedgerRepo struct {
	mu      sync.Mutex
	entries []*models.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{}
}

func (r *fakeLedgerRepo) Create(ctx context.Context, entry *models.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	r.entries = append(r.entries, &cp)
	return nil
}

// find returns matching entries newest first, newest meaning appended last.
func (r *fakeLedgerRepo) find(match func(*models.LedgerEntry) bool, limit int) []*models.LedgerEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.LedgerEntry{}
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if match(r.entries[i]) {
			cp := *r.entries[i]
			out = append(out, &cp)
		}
	}
	return out
}

func (r *fakeLedgerRepo) FindRecent(ctx context.Context, limit int) ([]*models.LedgerEntry, error) {
	return r.find(func(*models.LedgerEntry) bool { return true }, limit), nil
}

func (r *fakeLedgerRepo) FindByAccount(ctx context.Context, accountID primitive.ObjectID, limit int) ([]*models.LedgerEntry, error) {
	return r.find(func(e *models.LedgerEntry) bool { return e.AccountID == accountID }, limit), nil
}

func (r *fakeLedgerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *fakeLedgerRepo) countRewards() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.RewardIssued {
			n++
		}
	}
	return n
}

// fakeTxnRunner serializes transactions with a mutex, which gives the
// per-triple serializability the real store provides. A positive conflicts
// value makes the next calls fail with ErrTransactionConflict before fn
// runs, to exercise the retry loop.
type fakeTxnRunner struct {
	mu        sync.Mutex
	conflicts int
	calls     int
}

func (t *fakeTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	if t.conflicts > 0 {
		t.conflicts--
		return repositories.ErrTransactionConflict
	}
	return fn(ctx)
}
