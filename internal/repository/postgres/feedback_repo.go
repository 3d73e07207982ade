package postgres

import (
	"context"
	"encoding/json"

	"github.com/and161185/bookstore/internal/model"
)

// FeedbackRepo implements FeedbackRepository using PostgreSQL.
type FeedbackRepo struct{ db *DB }

// NewFeedbackRepo constructs a feedback repository.
func NewFeedbackRepo(db *DB) *FeedbackRepo { return &FeedbackRepo{db: db} }

// Create inserts a feedback entry.
func (r *FeedbackRepo) Create(ctx context.Context, f *model.Feedback) error {
	doc, err := json.Marshal(f)
	if err != nil {
		return err
	}
	const q = `INSERT INTO feedback (id, created_at, doc) VALUES ($1, $2, $3)`
	_, err = r.db.Pool.Exec(ctx, q, f.ID, f.CreatedAt, doc)
	return err
}

// List returns every entry oldest first.
func (r *FeedbackRepo) List(ctx context.Context) ([]model.Feedback, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT doc FROM feedback ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return collectDocs[model.Feedback](rows)
}
