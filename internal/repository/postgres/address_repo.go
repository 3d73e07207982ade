package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AddressRepo implements AddressRepository using PostgreSQL.
type AddressRepo struct{ db *DB }

// NewAddressRepo constructs an address repository.
func NewAddressRepo(db *DB) *AddressRepo { return &AddressRepo{db: db} }

// Create inserts an address.
func (r *AddressRepo) Create(ctx context.Context, a *model.Address) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return err
	}
	const q = `INSERT INTO addresses (id, user_id, doc) VALUES ($1, $2, $3)`
	_, err = r.db.Pool.Exec(ctx, q, a.ID, a.UserID, doc)
	return err
}

// Update merges the address fields into the stored document.
func (r *AddressRepo) Update(ctx context.Context, id uuid.UUID, f model.AddressFields) (*model.Address, error) {
	patch, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE addresses SET doc = doc || $2::jsonb WHERE id=$1 RETURNING doc`
	var raw []byte
	if err := r.db.Pool.QueryRow(ctx, q, id, patch).Scan(&raw); err != nil {
		return nil, notFound(err, "address")
	}
	return decodeDoc[model.Address](raw)
}

// Delete removes an address.
func (r *AddressRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM addresses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("address %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// ListByUser returns the addresses of one user in creation order.
func (r *AddressRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	const q = `SELECT doc FROM addresses WHERE user_id=$1 ORDER BY created_at, id`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return collectDocs[model.Address](rows)
}
