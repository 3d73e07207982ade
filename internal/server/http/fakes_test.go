package httpserver

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/bookstore/internal/model"
	"github.com/and161185/bookstore/internal/service"
)

type fakeAccounts struct {
	err error

	account   *model.Account
	lastIP    string
	lastLogin string
	lastUser  uuid.UUID
	lastBook  uuid.UUID
	favorites []uuid.UUID
}

var _ service.AccountService = (*fakeAccounts)(nil)

func (f *fakeAccounts) Register(_ context.Context, in model.Registration) (*model.Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Account{
		ID: uuid.Must(uuid.NewV4()), Name: in.Name, Username: in.Username,
		PwdHash: []byte("secret-hash"), Role: model.RoleUser,
	}, nil
}

func (f *fakeAccounts) Login(_ context.Context, username, _, ip string) (*model.Account, error) {
	f.lastLogin, f.lastIP = username, ip
	if f.err != nil {
		return nil, f.err
	}
	return f.account, nil
}

func (f *fakeAccounts) Logout(_ context.Context, userID uuid.UUID) error {
	f.lastUser = userID
	return f.err
}

func (f *fakeAccounts) GetAccount(_ context.Context, id uuid.UUID) (*model.Account, error) {
	f.lastUser = id
	return f.account, f.err
}

func (f *fakeAccounts) Username(_ context.Context, id uuid.UUID) (string, error) {
	f.lastUser = id
	if f.err != nil {
		return "", f.err
	}
	return f.account.Username, nil
}

func (f *fakeAccounts) UpdateProfile(_ context.Context, id uuid.UUID, in model.ProfileUpdate) (*model.Account, error) {
	f.lastUser = id
	if f.err != nil {
		return nil, f.err
	}
	a := *f.account
	a.Username = in.Username
	return &a, nil
}

func (f *fakeAccounts) DeleteAccount(_ context.Context, id uuid.UUID) error {
	f.lastUser = id
	return f.err
}

func (f *fakeAccounts) LoginTimes(context.Context) ([]model.AccountActivity, error) {
	return []model.AccountActivity{}, f.err
}

func (f *fakeAccounts) AddFavorite(_ context.Context, userID, bookID uuid.UUID) ([]uuid.UUID, error) {
	f.lastUser, f.lastBook = userID, bookID
	if f.err != nil {
		return nil, f.err
	}
	f.favorites = append(f.favorites, bookID)
	return f.favorites, nil
}

func (f *fakeAccounts) RemoveFavorite(_ context.Context, userID, bookID uuid.UUID) ([]uuid.UUID, error) {
	f.lastUser, f.lastBook = userID, bookID
	return []uuid.UUID{}, f.err
}

func (f *fakeAccounts) ListFavorites(_ context.Context, userID uuid.UUID) ([]model.BookEntry, error) {
	f.lastUser = userID
	return []model.BookEntry{}, f.err
}

type fakeCatalog struct {
	err error

	root    *model.Catalog
	added   model.NewBook
	patched model.BookPatch
	books   []model.BookEntry
	authors []string
}

var _ service.CatalogService = (*fakeCatalog)(nil)

func (f *fakeCatalog) AddBook(_ context.Context, in model.NewBook) (model.BookEntry, error) {
	f.added = in
	if f.err != nil {
		return model.BookEntry{}, f.err
	}
	return model.BookEntry{
		Book:      model.Book{ID: uuid.Must(uuid.NewV4()), Title: in.Title, CopiesAvailable: in.TotalCopies},
		Author:    in.AuthorName,
		Publisher: in.PublisherName,
	}, nil
}

func (f *fakeCatalog) ListBooks(context.Context) ([]model.BookEntry, error) {
	return f.books, f.err
}

func (f *fakeCatalog) GetBook(_ context.Context, id uuid.UUID) (model.BookEntry, error) {
	return model.BookEntry{Book: model.Book{ID: id}}, f.err
}

func (f *fakeCatalog) UpdateBook(_ context.Context, id uuid.UUID, patch model.BookPatch) (model.BookEntry, error) {
	f.patched = patch
	return model.BookEntry{Book: model.Book{ID: id}}, f.err
}

func (f *fakeCatalog) DeleteBook(context.Context, uuid.UUID) error { return f.err }

func (f *fakeCatalog) PublisherNames(context.Context) ([]string, error) {
	return []string{"Penguin", "Vintage"}, f.err
}

func (f *fakeCatalog) AuthorNames(context.Context, string) ([]string, error) {
	return f.authors, f.err
}

func (f *fakeCatalog) Catalog(context.Context) (*model.Catalog, error) {
	if f.root == nil {
		return &model.Catalog{Publishers: []model.Publisher{}}, f.err
	}
	return f.root, f.err
}

type fakePurchases struct {
	err error

	lastUser    uuid.UUID
	lastDetails model.PurchaseDetails
}

var _ service.PurchaseService = (*fakePurchases)(nil)

func (f *fakePurchases) Record(_ context.Context, userID uuid.UUID, d model.PurchaseDetails) (*model.Purchase, error) {
	f.lastUser, f.lastDetails = userID, d
	if f.err != nil {
		return nil, f.err
	}
	return &model.Purchase{ID: uuid.Must(uuid.NewV4()), UserID: userID, Username: "alice", BookTitle: d.BookTitle}, nil
}

func (f *fakePurchases) ListAll(context.Context) ([]model.Purchase, error) {
	return []model.Purchase{}, f.err
}

func (f *fakePurchases) ListForUser(_ context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	f.lastUser = userID
	return []model.Purchase{}, f.err
}

func (f *fakePurchases) Update(_ context.Context, id uuid.UUID, d model.PurchaseDetails) (*model.Purchase, error) {
	f.lastDetails = d
	if f.err != nil {
		return nil, f.err
	}
	return &model.Purchase{ID: id, BookTitle: d.BookTitle}, nil
}

func (f *fakePurchases) Delete(context.Context, uuid.UUID) error { return f.err }

type fakeAddresses struct {
	err error

	lastUser   uuid.UUID
	lastFields model.AddressFields
}

var _ service.AddressService = (*fakeAddresses)(nil)

func (f *fakeAddresses) Create(_ context.Context, userID uuid.UUID, fl model.AddressFields) (*model.Address, error) {
	f.lastUser, f.lastFields = userID, fl
	if f.err != nil {
		return nil, f.err
	}
	return &model.Address{ID: uuid.Must(uuid.NewV4()), UserID: userID, AddressFields: fl}, nil
}

func (f *fakeAddresses) ListForUser(_ context.Context, userID uuid.UUID) ([]model.Address, error) {
	f.lastUser = userID
	return []model.Address{}, f.err
}

func (f *fakeAddresses) Update(_ context.Context, id uuid.UUID, fl model.AddressFields) (*model.Address, error) {
	f.lastFields = fl
	if f.err != nil {
		return nil, f.err
	}
	return &model.Address{ID: id, AddressFields: fl}, nil
}

func (f *fakeAddresses) Delete(context.Context, uuid.UUID) error { return f.err }

type fakeFeedback struct {
	err  error
	last model.Feedback
}

var _ service.FeedbackService = (*fakeFeedback)(nil)

func (f *fakeFeedback) Submit(_ context.Context, fb model.Feedback) (*model.Feedback, error) {
	f.last = fb
	fb.CreatedAt = time.Now()
	return &fb, f.err
}

func (f *fakeFeedback) ListAll(context.Context) ([]model.Feedback, error) {
	return []model.Feedback{}, f.err
}

type fakeActivity struct {
	err   error
	calls []string
}

var _ service.ActivityService = (*fakeActivity)(nil)

func (f *fakeActivity) list(name string) ([]model.Account, error) {
	f.calls = append(f.calls, name)
	return []model.Account{{Username: name}}, f.err
}

func (f *fakeActivity) ListActive(context.Context) ([]model.Account, error) {
	return f.list("active")
}

func (f *fakeActivity) ListFrequent(context.Context) ([]model.Account, error) {
	return f.list("frequent")
}

func (f *fakeActivity) ListInactive(context.Context) ([]model.Account, error) {
	return f.list("inactive")
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }
