package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/bookstore/internal/model"
	"github.com/and161185/bookstore/internal/repository"
)

// FeedbackService is an append-only inbox.
type FeedbackService interface {
	// Submit stores the message as given, stamping id and time.
	Submit(ctx context.Context, f model.Feedback) (*model.Feedback, error)
	ListAll(ctx context.Context) ([]model.Feedback, error)
}

type FeedbackServiceImpl struct {
	repo repository.FeedbackRepository
	now  func() time.Time
}

// NewFeedbackService constructs FeedbackService.
func NewFeedbackService(repo repository.FeedbackRepository) *FeedbackServiceImpl {
	return &FeedbackServiceImpl{repo: repo, now: time.Now}
}

func (s *FeedbackServiceImpl) Submit(ctx context.Context, f model.Feedback) (*model.Feedback, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	f.ID = id
	f.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FeedbackServiceImpl) ListAll(ctx context.Context) ([]model.Feedback, error) {
	return s.repo.List(ctx)
}
