package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"

	pkgcrypto "github.com/and161185/bookstore/internal/crypto"
	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/limiter"
	"github.com/and161185/bookstore/internal/model"
	"github.com/and161185/bookstore/internal/repository"
)

// AccountService defines account lifecycle, profile and favorites operations.
type AccountService interface {
	// Register creates a user account with a bcrypt password hash.
	Register(ctx context.Context, in model.Registration) (*model.Account, error)
	// Login checks credentials with rate limiting by (username, ip) and opens a session.
	Login(ctx context.Context, username, password, ip string) (*model.Account, error)
	// Logout closes the most recent session if it is still open.
	Logout(ctx context.Context, userID uuid.UUID) error
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	Username(ctx context.Context, id uuid.UUID) (string, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in model.ProfileUpdate) (*model.Account, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	// LoginTimes projects every account onto its login history.
	LoginTimes(ctx context.Context) ([]model.AccountActivity, error)
	AddFavorite(ctx context.Context, userID, bookID uuid.UUID) ([]uuid.UUID, error)
	RemoveFavorite(ctx context.Context, userID, bookID uuid.UUID) ([]uuid.UUID, error)
	// ListFavorites resolves favorite ids through the catalog, skipping removed books.
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.BookEntry, error)
}

type AccountServiceImpl struct {
	accounts   repository.AccountRepository
	catalog    repository.CatalogRepository
	lim        limiter.Limiter
	bcryptCost int
	now        func() time.Time
}

// NewAccountService constructs AccountService with required dependencies.
func NewAccountService(
	accounts repository.AccountRepository,
	catalog repository.CatalogRepository,
	lim limiter.Limiter,
	bcryptCost int,
) *AccountServiceImpl {
	return &AccountServiceImpl{
		accounts:   accounts,
		catalog:    catalog,
		lim:        lim,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

// mutate reloads the account, applies fn and writes it back when fn reports a change.
func (s *AccountServiceImpl) mutate(
	ctx context.Context, id uuid.UUID, fn func(a *model.Account) (bool, error),
) (*model.Account, error) {
	var out *model.Account
	err := withCAS(ctx, func() error {
		a, err := s.accounts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		changed, err := fn(a)
		if err != nil {
			return err
		}
		if changed {
			if err := s.accounts.Update(ctx, a); err != nil {
				return err
			}
		}
		out = a
		return nil
	})
	return out, err
}

// taken reports whether lookup finds an existing account.
func taken(a *model.Account, err error) (bool, error) {
	switch {
	case err == nil:
		return a != nil, nil
	case errors.Is(err, errs.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Register validates input, checks uniqueness and stores the account with role user.
func (s *AccountServiceImpl) Register(ctx context.Context, in model.Registration) (*model.Account, error) {
	if err := required(
		field{"name", in.Name != ""},
		field{"mobile", in.Mobile != ""},
		field{"email", in.Email != ""},
		field{"username", in.Username != ""},
		field{"password", in.Password != ""},
	); err != nil {
		return nil, err
	}

	if dup, err := taken(s.accounts.GetByUsername(ctx, in.Username)); err != nil {
		return nil, err
	} else if dup {
		return nil, fmt.Errorf("%w: username already exists", errs.ErrAlreadyExists)
	}
	if dup, err := taken(s.accounts.GetByMobile(ctx, in.Mobile)); err != nil {
		return nil, err
	} else if dup {
		return nil, fmt.Errorf("%w: phone number already exists", errs.ErrAlreadyExists)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	hash, err := pkgcrypto.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	a := &model.Account{
		ID:        id,
		Name:      in.Name,
		Mobile:    in.Mobile,
		Email:     in.Email,
		Username:  in.Username,
		PwdHash:   hash,
		Role:      model.RoleUser,
		Sessions:  []model.Session{},
		Favorites: []uuid.UUID{},
		CreatedAt: s.now().UTC(),
	}
	// the unique index still catches a concurrent registration
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login authenticates and appends an open session.
func (s *AccountServiceImpl) Login(ctx context.Context, username, password, ip string) (*model.Account, error) {
	if err := required(field{"username", username != ""}, field{"password", password != ""}); err != nil {
		return nil, err
	}
	ipHash := limiter.HashIP(ip)

	allowed, wait, err := s.lim.Allow(ctx, username, ipHash)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: retry in %s", errs.ErrRateLimited, wait.Round(time.Second))
	}

	a, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !pkgcrypto.VerifyPassword(a.PwdHash, password) {
		// best-effort; the block applies from the next attempt
		_, _, _ = s.lim.Failure(ctx, username, ipHash)
		return nil, errs.ErrUnauthorized
	}

	a, err = s.mutate(ctx, a.ID, func(a *model.Account) (bool, error) {
		a.OpenSession(s.now().UTC())
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	_ = s.lim.Success(ctx, username, ipHash)
	return a, nil
}

// Logout is idempotent: without an open session nothing is written.
func (s *AccountServiceImpl) Logout(ctx context.Context, userID uuid.UUID) error {
	_, err := s.mutate(ctx, userID, func(a *model.Account) (bool, error) {
		return a.CloseSession(s.now().UTC()), nil
	})
	return err
}

// GetAccount loads an account by id.
func (s *AccountServiceImpl) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// Username returns only the username of an account.
func (s *AccountServiceImpl) Username(ctx context.Context, id uuid.UUID) (string, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return a.Username, nil
}

// UpdateProfile replaces the non-empty fields of in.
func (s *AccountServiceImpl) UpdateProfile(ctx context.Context, id uuid.UUID, in model.ProfileUpdate) (*model.Account, error) {
	if in.Username == "" && in.Email == "" && in.Mobile == "" {
		return nil, fmt.Errorf("%w: nothing to update", errs.ErrValidation)
	}
	return s.mutate(ctx, id, func(a *model.Account) (bool, error) {
		if in.Username != "" {
			a.Username = in.Username
		}
		if in.Email != "" {
			a.Email = in.Email
		}
		if in.Mobile != "" {
			a.Mobile = in.Mobile
		}
		return true, nil
	})
}

// DeleteAccount removes the account. Purchases and addresses keep their user id.
func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.accounts.Delete(ctx, id)
}

// LoginTimes lists the login history of every account.
func (s *AccountServiceImpl) LoginTimes(ctx context.Context) ([]model.AccountActivity, error) {
	all, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.AccountActivity, 0, len(all))
	for _, a := range all {
		out = append(out, model.AccountActivity{
			ID:       a.ID,
			Username: a.Username,
			Email:    a.Email,
			Mobile:   a.Mobile,
			Sessions: a.Sessions,
		})
	}
	return out, nil
}

func favorites(a *model.Account) []uuid.UUID {
	if a.Favorites == nil {
		return []uuid.UUID{}
	}
	return a.Favorites
}

// AddFavorite adds bookID to the set; adding twice is a no-op.
func (s *AccountServiceImpl) AddFavorite(ctx context.Context, userID, bookID uuid.UUID) ([]uuid.UUID, error) {
	if bookID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing bookId", errs.ErrValidation)
	}
	a, err := s.mutate(ctx, userID, func(a *model.Account) (bool, error) {
		return a.AddFavorite(bookID), nil
	})
	if err != nil {
		return nil, err
	}
	return favorites(a), nil
}

// RemoveFavorite drops bookID from the set; removing an absent id is a no-op.
func (s *AccountServiceImpl) RemoveFavorite(ctx context.Context, userID, bookID uuid.UUID) ([]uuid.UUID, error) {
	a, err := s.mutate(ctx, userID, func(a *model.Account) (bool, error) {
		return a.RemoveFavorite(bookID), nil
	})
	if err != nil {
		return nil, err
	}
	return favorites(a), nil
}

// ListFavorites returns the favorite books that still exist in the catalog.
func (s *AccountServiceImpl) ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.BookEntry, error) {
	a, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, err := loadCatalog(ctx, s.catalog)
	if err != nil {
		return nil, err
	}
	out := make([]model.BookEntry, 0, len(a.Favorites))
	for _, id := range a.Favorites {
		if e, ok := c.FindBook(id); ok {
			out = append(out, e)
		}
	}
	return out, nil
}
