package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/bookstore/internal/model"
	"github.com/and161185/bookstore/internal/repository"
)

// PurchaseService records and edits purchases.
type PurchaseService interface {
	// Record stores a purchase with the buyer's current username.
	Record(ctx context.Context, userID uuid.UUID, d model.PurchaseDetails) (*model.Purchase, error)
	ListAll(ctx context.Context) ([]model.Purchase, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error)
	Update(ctx context.Context, id uuid.UUID, d model.PurchaseDetails) (*model.Purchase, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PurchaseServiceImpl struct {
	purchases repository.PurchaseRepository
	accounts  repository.AccountRepository
}

// NewPurchaseService constructs PurchaseService.
func NewPurchaseService(purchases repository.PurchaseRepository, accounts repository.AccountRepository) *PurchaseServiceImpl {
	return &PurchaseServiceImpl{purchases: purchases, accounts: accounts}
}

func validatePurchase(d model.PurchaseDetails) error {
	return required(
		field{"bookTitle", d.BookTitle != ""},
		field{"bookImageUrl", d.BookImageURL != ""},
		field{"author", d.Author != ""},
		field{"price", d.Price > 0},
		field{"quantity", d.Quantity > 0},
		field{"totalPrice", d.TotalPrice > 0},
		field{"purchasedDate", !d.PurchasedDate.IsZero()},
	)
}

// Record validates the purchase and resolves the username once, at write time.
func (s *PurchaseServiceImpl) Record(ctx context.Context, userID uuid.UUID, d model.PurchaseDetails) (*model.Purchase, error) {
	if err := required(field{"userId", userID != uuid.Nil}); err != nil {
		return nil, err
	}
	if err := validatePurchase(d); err != nil {
		return nil, err
	}
	a, err := s.accounts.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	p := &model.Purchase{
		ID:            id,
		UserID:        userID,
		Username:      a.Username,
		BookTitle:     d.BookTitle,
		BookImageURL:  d.BookImageURL,
		Author:        d.Author,
		Price:         d.Price,
		Quantity:      d.Quantity,
		TotalPrice:    d.TotalPrice,
		PurchasedDate: d.PurchasedDate.UTC(),
	}
	if err := s.purchases.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListAll returns every purchase ordered by date.
func (s *PurchaseServiceImpl) ListAll(ctx context.Context) ([]model.Purchase, error) {
	return s.purchases.List(ctx)
}

// ListForUser returns one user's purchases ordered by date.
func (s *PurchaseServiceImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	return s.purchases.ListByUser(ctx, userID)
}

// Update replaces the editable fields; all of them are required.
func (s *PurchaseServiceImpl) Update(ctx context.Context, id uuid.UUID, d model.PurchaseDetails) (*model.Purchase, error) {
	if err := validatePurchase(d); err != nil {
		return nil, err
	}
	d.PurchasedDate = d.PurchasedDate.UTC()
	return s.purchases.Update(ctx, id, d)
}

// Delete removes a purchase.
func (s *PurchaseServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.purchases.Delete(ctx, id)
}
