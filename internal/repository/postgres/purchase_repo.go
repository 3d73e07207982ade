package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/model"
	"github.com/gofrs/uuid/v5"
)

// PurchaseRepo implements PurchaseRepository using PostgreSQL.
type PurchaseRepo struct{ db *DB }

// NewPurchaseRepo constructs a purchase repository.
func NewPurchaseRepo(db *DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

// Create inserts a purchase record.
func (r *PurchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return err
	}
	const q = `INSERT INTO purchases (id, user_id, purchased_at, doc) VALUES ($1, $2, $3, $4)`
	_, err = r.db.Pool.Exec(ctx, q, p.ID, p.UserID, p.PurchasedDate, doc)
	return err
}

// GetByID selects a purchase by ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var raw []byte
	if err := r.db.Pool.QueryRow(ctx, `SELECT doc FROM purchases WHERE id=$1`, id).Scan(&raw); err != nil {
		return nil, notFound(err, "purchase")
	}
	return decodeDoc[model.Purchase](raw)
}

// Update merges the editable fields into the stored document in one statement,
// leaving id, userId and username untouched.
func (r *PurchaseRepo) Update(ctx context.Context, id uuid.UUID, d model.PurchaseDetails) (*model.Purchase, error) {
	patch, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	const q = `
UPDATE purchases
SET purchased_at=$2, doc = doc || $3::jsonb
WHERE id=$1
RETURNING doc`
	var raw []byte
	if err := r.db.Pool.QueryRow(ctx, q, id, d.PurchasedDate, patch).Scan(&raw); err != nil {
		return nil, notFound(err, "purchase")
	}
	return decodeDoc[model.Purchase](raw)
}

// Delete removes a purchase record.
func (r *PurchaseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM purchases WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("purchase %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// List returns every purchase ordered by purchase date.
func (r *PurchaseRepo) List(ctx context.Context) ([]model.Purchase, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT doc FROM purchases ORDER BY purchased_at, id`)
	if err != nil {
		return nil, err
	}
	return collectDocs[model.Purchase](rows)
}

// ListByUser returns the purchases of one user ordered by purchase date.
func (r *PurchaseRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Purchase, error) {
	const q = `SELECT doc FROM purchases WHERE user_id=$1 ORDER BY purchased_at, id`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	return collectDocs[model.Purchase](rows)
}
