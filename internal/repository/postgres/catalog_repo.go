package postgres

import (
	"context"
	"encoding/json"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/model"
)

// CatalogRepo implements CatalogRepository. The table holds at most one row,
// enforced by a unique always-true column.
type CatalogRepo struct{ db *DB }

// NewCatalogRepo constructs a catalog repository.
func NewCatalogRepo(db *DB) *CatalogRepo { return &CatalogRepo{db: db} }

// Load returns the stored catalog with its version.
func (r *CatalogRepo) Load(ctx context.Context) (*model.Catalog, error) {
	const q = `SELECT doc, ver FROM catalog WHERE singleton`
	var (
		raw []byte
		ver int64
	)
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&raw, &ver); err != nil {
		return nil, notFound(err, "catalog")
	}
	c, err := decodeDoc[model.Catalog](raw)
	if err != nil {
		return nil, err
	}
	c.Ver = ver
	return c, nil
}

// Create inserts the catalog row with version 1.
func (r *CatalogRepo) Create(ctx context.Context, c *model.Catalog) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	const q = `INSERT INTO catalog (id, doc, ver) VALUES ($1, $2, 1)`
	if _, err := r.db.Pool.Exec(ctx, q, c.ID, doc); err != nil {
		if isUniqueViolation(err) {
			return errs.ErrVersionConflict
		}
		return err
	}
	c.Ver = 1
	return nil
}

// Save replaces the document when the stored version equals c.Ver.
func (r *CatalogRepo) Save(ctx context.Context, c *model.Catalog) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return err
	}
	const q = `UPDATE catalog SET doc=$3, ver=ver+1 WHERE id=$1 AND ver=$2`
	tag, err := r.db.Pool.Exec(ctx, q, c.ID, c.Ver, doc)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrVersionConflict
	}
	c.Ver++
	return nil
}
