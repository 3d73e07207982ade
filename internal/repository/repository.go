// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"
	"time"

	"github.com/and161185/bookstore/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AccountRepository stores accounts as versioned documents.
type AccountRepository interface {
	// Create inserts a new account; ErrAlreadyExists on username or mobile collision.
	Create(ctx context.Context, a *model.Account) error
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// GetByUsername loads an account by username.
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	// GetByMobile loads an account by mobile number.
	GetByMobile(ctx context.Context, mobile string) (*model.Account, error)
	// Update replaces the account if a.Ver still matches the stored version, then bumps a.Ver.
	// ErrVersionConflict when the row changed or vanished.
	Update(ctx context.Context, a *model.Account) error
	// Delete removes the account permanently.
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns every account in creation order.
	List(ctx context.Context) ([]model.Account, error)
	// ListLoggedInSince returns accounts with at least one login at or after cutoff.
	ListLoggedInSince(ctx context.Context, cutoff time.Time) ([]model.Account, error)
}

// CatalogRepository stores the singleton catalog document.
type CatalogRepository interface {
	// Load returns the catalog or ErrNotFound when none exists yet.
	Load(ctx context.Context) (*model.Catalog, error)
	// Create inserts the first catalog; ErrVersionConflict if another writer got there first.
	Create(ctx context.Context, c *model.Catalog) error
	// Save replaces the catalog if c.Ver still matches, then bumps c.Ver.
	Save(ctx context.Context, c *model.Catalog) error
}

// PurchaseRepository stores purchase records.
type PurchaseRepository interface {
	Create(ctx context.Context, p *model.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	// Update overwrites the editable fields and returns the stored record.
	Update(ctx context.Context, id uuid.UUID, d model.PurchaseDetails) (*model.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List and ListByUser order by purchase date.
	List(ctx context.Context) ([]model.Purchase, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error)
}

// AddressRepository stores shipping addresses.
type AddressRepository interface {
	Create(ctx context.Context, a *model.Address) error
	Update(ctx context.Context, id uuid.UUID, f model.AddressFields) (*model.Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
}

// FeedbackRepository stores feedback entries.
type FeedbackRepository interface {
	Create(ctx context.Context, f *model.Feedback) error
	// List returns entries oldest first.
	List(ctx context.Context) ([]model.Feedback, error)
}
