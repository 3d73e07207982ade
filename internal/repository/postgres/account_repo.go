package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements AccountRepository using PostgreSQL.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

const accountCols = `pwd_hash, doc, ver`

func scanAccount(row pgx.Row) (*model.Account, error) {
	var (
		hash []byte
		raw  []byte
		ver  int64
	)
	if err := row.Scan(&hash, &raw, &ver); err != nil {
		return nil, err
	}
	a, err := decodeDoc[model.Account](raw)
	if err != nil {
		return nil, err
	}
	a.PwdHash = hash
	a.Ver = ver
	return a, nil
}

func (r *AccountRepo) list(ctx context.Context, q string, args ...any) ([]model.Account, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// Create inserts a new account row with version 1.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO accounts (id, username, mobile, pwd_hash, doc, ver, created_at)
VALUES ($1, $2, $3, $4, $5, 1, $6)`
	_, err = r.db.Pool.Exec(ctx, q, a.ID, a.Username, a.Mobile, a.PwdHash, doc, a.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("account %q: %w", a.Username, errs.ErrAlreadyExists)
	}
	if err != nil {
		return err
	}
	a.Ver = 1
	return nil
}

// GetByID selects an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts WHERE id=$1`
	a, err := scanAccount(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, notFound(err, "account")
	}
	return a, nil
}

// GetByUsername selects an account by username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts WHERE username=$1`
	a, err := scanAccount(r.db.Pool.QueryRow(ctx, q, username))
	if err != nil {
		return nil, notFound(err, "account")
	}
	return a, nil
}

// GetByMobile selects an account by mobile number.
func (r *AccountRepo) GetByMobile(ctx context.Context, mobile string) (*model.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts WHERE mobile=$1`
	a, err := scanAccount(r.db.Pool.QueryRow(ctx, q, mobile))
	if err != nil {
		return nil, notFound(err, "account")
	}
	return a, nil
}

// Update writes the whole document guarded by the version token.
func (r *AccountRepo) Update(ctx context.Context, a *model.Account) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return err
	}
	const q = `
UPDATE accounts
SET username=$3, mobile=$4, doc=$5, ver=ver+1
WHERE id=$1 AND ver=$2`
	tag, err := r.db.Pool.Exec(ctx, q, a.ID, a.Ver, a.Username, a.Mobile, doc)
	if isUniqueViolation(err) {
		return fmt.Errorf("account %q: %w", a.Username, errs.ErrAlreadyExists)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrVersionConflict
	}
	a.Ver++
	return nil
}

// Delete removes an account row.
func (r *AccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM accounts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, errs.ErrNotFound)
	}
	return nil
}

// List returns every account ordered by creation time.
func (r *AccountRepo) List(ctx context.Context) ([]model.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM accounts ORDER BY created_at, id`
	return r.list(ctx, q)
}

// ListLoggedInSince filters on the session array inside the document.
func (r *AccountRepo) ListLoggedInSince(ctx context.Context, cutoff time.Time) ([]model.Account, error) {
	const q = `
SELECT ` + accountCols + `
FROM accounts a
WHERE EXISTS (
  SELECT 1
  FROM jsonb_array_elements(
    CASE WHEN jsonb_typeof(a.doc->'loginTimes') = 'array' THEN a.doc->'loginTimes' ELSE '[]'::jsonb END
  ) s
  WHERE (s->>'login')::timestamptz >= $1
)
ORDER BY created_at, id`
	return r.list(ctx, q, cutoff)
}
