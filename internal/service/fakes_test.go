package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/limiter"
	"github.com/and161185/bookstore/internal/model"
	"github.com/and161185/bookstore/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// clone deep-copies through JSON, the way documents round-trip the store.
func clone[T any](v *T) *T {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

type storedAccount struct {
	doc  *model.Account
	hash []byte
	ver  int64
}

type fakeAccounts struct {
	byID map[uuid.UUID]*storedAccount

	// conflicts makes the next N updates fail as if another writer won.
	conflicts   int
	updateCalls int
	listErr     error
}

var _ repository.AccountRepository = (*fakeAccounts)(nil)

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byID: map[uuid.UUID]*storedAccount{}}
}

func (f *fakeAccounts) load(s *storedAccount) *model.Account {
	a := clone(s.doc)
	a.PwdHash = append([]byte(nil), s.hash...)
	a.Ver = s.ver
	return a
}

func (f *fakeAccounts) clash(a *model.Account) bool {
	for id, s := range f.byID {
		if id != a.ID && (s.doc.Username == a.Username || s.doc.Mobile == a.Mobile) {
			return true
		}
	}
	return false
}

func (f *fakeAccounts) Create(_ context.Context, a *model.Account) error {
	if f.clash(a) {
		return errs.ErrAlreadyExists
	}
	f.byID[a.ID] = &storedAccount{doc: clone(a), hash: a.PwdHash, ver: 1}
	a.Ver = 1
	return nil
}

func (f *fakeAccounts) GetByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return f.load(s), nil
}

func (f *fakeAccounts) find(match func(*model.Account) bool) (*model.Account, error) {
	for _, s := range f.byID {
		if match(s.doc) {
			return f.load(s), nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeAccounts) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	return f.find(func(a *model.Account) bool { return a.Username == username })
}

func (f *fakeAccounts) GetByMobile(_ context.Context, mobile string) (*model.Account, error) {
	return f.find(func(a *model.Account) bool { return a.Mobile == mobile })
}

func (f *fakeAccounts) Update(_ context.Context, a *model.Account) error {
	f.updateCalls++
	s, ok := f.byID[a.ID]
	if !ok {
		return errs.ErrVersionConflict
	}
	if f.conflicts > 0 {
		f.conflicts--
		s.ver++
		return errs.ErrVersionConflict
	}
	if s.ver != a.Ver {
		return errs.ErrVersionConflict
	}
	if f.clash(a) {
		return errs.ErrAlreadyExists
	}
	s.doc = clone(a)
	s.ver++
	a.Ver = s.ver
	return nil
}

func (f *fakeAccounts) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAccounts) List(_ context.Context) ([]model.Account, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []model.Account{}
	for _, s := range f.byID {
		out = append(out, *f.load(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeAccounts) ListLoggedInSince(ctx context.Context, cutoff time.Time) ([]model.Account, error) {
	all, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Account{}
	for _, a := range all {
		if a.LoginsSince(cutoff) > 0 {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	doc *model.Catalog
	ver int64

	conflicts int
	saves     int
	loadErr   error
}

var _ repository.CatalogRepository = (*fakeCatalog)(nil)

func (f *fakeCatalog) Load(context.Context) (*model.Catalog, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.doc == nil {
		return nil, errs.ErrNotFound
	}
	c := clone(f.doc)
	c.Ver = f.ver
	return c, nil
}

func (f *fakeCatalog) Create(_ context.Context, c *model.Catalog) error {
	if f.doc != nil {
		return errs.ErrVersionConflict
	}
	f.doc = clone(c)
	f.ver = 1
	c.Ver = 1
	return nil
}

func (f *fakeCatalog) Save(_ context.Context, c *model.Catalog) error {
	f.saves++
	if f.conflicts > 0 {
		f.conflicts--
		f.ver++
		return errs.ErrVersionConflict
	}
	if f.doc == nil || c.Ver != f.ver {
		return errs.ErrVersionConflict
	}
	f.doc = clone(c)
	f.ver++
	c.Ver = f.ver
	return nil
}

type fakePurchases struct {
	byID map[uuid.UUID]*model.Purchase
}

var _ repository.PurchaseRepository = (*fakePurchases)(nil)

func (f *fakePurchases) Create(_ context.Context, p *model.Purchase) error {
	if f.byID == nil {
		f.byID = map[uuid.UUID]*model.Purchase{}
	}
	f.byID[p.ID] = clone(p)
	return nil
}

func (f *fakePurchases) GetByID(_ context.Context, id uuid.UUID) (*model.Purchase, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return clone(p), nil
}

func (f *fakePurchases) Update(_ context.Context, id uuid.UUID, d model.PurchaseDetails) (*model.Purchase, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	p.BookTitle, p.BookImageURL, p.Author = d.BookTitle, d.BookImageURL, d.Author
	p.Price, p.Quantity, p.TotalPrice, p.PurchasedDate = d.Price, d.Quantity, d.TotalPrice, d.PurchasedDate
	return clone(p), nil
}

func (f *fakePurchases) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePurchases) List(_ context.Context) ([]model.Purchase, error) {
	out := []model.Purchase{}
	for _, p := range f.byID {
		out = append(out, *clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchasedDate.Before(out[j].PurchasedDate) })
	return out, nil
}

func (f *fakePurchases) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	all, _ := f.List(ctx)
	out := []model.Purchase{}
	for _, p := range all {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAddresses struct {
	items []model.Address
}

var _ repository.AddressRepository = (*fakeAddresses)(nil)

func (f *fakeAddresses) Create(_ context.Context, a *model.Address) error {
	f.items = append(f.items, *a)
	return nil
}

func (f *fakeAddresses) Update(_ context.Context, id uuid.UUID, fl model.AddressFields) (*model.Address, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].AddressFields = fl
			a := f.items[i]
			return &a, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeAddresses) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errs.ErrNotFound
}

func (f *fakeAddresses) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Address, error) {
	out := []model.Address{}
	for _, a := range f.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeFeedback struct{ items []model.Feedback }

var _ repository.FeedbackRepository = (*fakeFeedback)(nil)

func (f *fakeFeedback) Create(_ context.Context, fb *model.Feedback) error {
	f.items = append(f.items, *fb)
	return nil
}

func (f *fakeFeedback) List(context.Context) ([]model.Feedback, error) {
	return append([]model.Feedback{}, f.items...), nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, time.Minute, l.allowErr
}
func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return nil
}
func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, nil
}
