package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/model"
	"github.com/and161185/bookstore/internal/repository"
)

// AddressService manages shipping addresses.
type AddressService interface {
	Create(ctx context.Context, userID uuid.UUID, f model.AddressFields) (*model.Address, error)
	// ListForUser fails with ErrNotFound when the user has no addresses.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
	Update(ctx context.Context, id uuid.UUID, f model.AddressFields) (*model.Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type AddressServiceImpl struct {
	repo repository.AddressRepository
}

// NewAddressService constructs AddressService.
func NewAddressService(repo repository.AddressRepository) *AddressServiceImpl {
	return &AddressServiceImpl{repo: repo}
}

func validateAddress(f model.AddressFields) error {
	return required(
		field{"street", f.Street != ""},
		field{"landmark", f.Landmark != ""},
		field{"city", f.City != ""},
		field{"state", f.State != ""},
		field{"postalCode", f.PostalCode != ""},
		field{"country", f.Country != ""},
	)
}

// Create stores a new address for userID. The user is not looked up.
func (s *AddressServiceImpl) Create(ctx context.Context, userID uuid.UUID, f model.AddressFields) (*model.Address, error) {
	if err := required(field{"userId", userID != uuid.Nil}); err != nil {
		return nil, err
	}
	if err := validateAddress(f); err != nil {
		return nil, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	a := &model.Address{ID: id, UserID: userID, AddressFields: f}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListForUser returns the user's addresses in creation order.
func (s *AddressServiceImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no addresses found for this user", errs.ErrNotFound)
	}
	return list, nil
}

// Update replaces every field of an address.
func (s *AddressServiceImpl) Update(ctx context.Context, id uuid.UUID, f model.AddressFields) (*model.Address, error) {
	if err := validateAddress(f); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, f)
}

// Delete removes an address.
func (s *AddressServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
