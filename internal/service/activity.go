package service

import (
	"context"
	"time"

	"github.com/and161185/bookstore/internal/model"
	"github.com/and161185/bookstore/internal/repository"
)

// InactiveRule selects how inactive accounts are recognized.
type InactiveRule string

const (
	// InactiveLastLogin: no sessions, or the most recent login predates the cutoff.
	InactiveLastLogin InactiveRule = "last-login"
	// InactiveLegacy: no sessions, or any login predates the cutoff. An account
	// that also logged in recently still matches.
	InactiveLegacy InactiveRule = "legacy"
)

// ActivityConfig parameterizes the classifier. Zero values take defaults.
type ActivityConfig struct {
	Window            time.Duration // default 10 days
	FrequentThreshold int           // default 5
	InactiveRule      InactiveRule  // default InactiveLastLogin
}

// ActivityService classifies accounts by login history.
type ActivityService interface {
	// ListActive returns accounts with a login inside the window.
	ListActive(ctx context.Context) ([]model.Account, error)
	// ListFrequent returns accounts with at least the threshold of logins inside the window.
	ListFrequent(ctx context.Context) ([]model.Account, error)
	// ListInactive returns accounts matching the configured inactive rule.
	ListInactive(ctx context.Context) ([]model.Account, error)
}

type ActivityServiceImpl struct {
	accounts repository.AccountRepository
	cfg      ActivityConfig
	now      func() time.Time
}

// NewActivityService constructs ActivityService. now defaults to time.Now.
func NewActivityService(accounts repository.AccountRepository, cfg ActivityConfig, now func() time.Time) *ActivityServiceImpl {
	if cfg.Window <= 0 {
		cfg.Window = 10 * 24 * time.Hour
	}
	if cfg.FrequentThreshold <= 0 {
		cfg.FrequentThreshold = 5
	}
	if cfg.InactiveRule == "" {
		cfg.InactiveRule = InactiveLastLogin
	}
	if now == nil {
		now = time.Now
	}
	return &ActivityServiceImpl{accounts: accounts, cfg: cfg, now: now}
}

func (s *ActivityServiceImpl) cutoff() time.Time { return s.now().Add(-s.cfg.Window) }

func (s *ActivityServiceImpl) ListActive(ctx context.Context) ([]model.Account, error) {
	return s.accounts.ListLoggedInSince(ctx, s.cutoff())
}

// ListFrequent narrows the active set by counting in-window logins.
func (s *ActivityServiceImpl) ListFrequent(ctx context.Context) ([]model.Account, error) {
	cutoff := s.cutoff()
	active, err := s.accounts.ListLoggedInSince(ctx, cutoff)
	if err != nil {
		return nil, err
	}
	out := make([]model.Account, 0, len(active))
	for _, a := range active {
		if a.LoginsSince(cutoff) >= s.cfg.FrequentThreshold {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *ActivityServiceImpl) ListInactive(ctx context.Context) ([]model.Account, error) {
	cutoff := s.cutoff()
	all, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Account, 0, len(all))
	for _, a := range all {
		if s.inactive(&a, cutoff) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *ActivityServiceImpl) inactive(a *model.Account, cutoff time.Time) bool {
	if len(a.Sessions) == 0 {
		return true
	}
	if s.cfg.InactiveRule == InactiveLegacy {
		return a.LoggedInBefore(cutoff)
	}
	last, _ := a.LastLogin()
	return last.Before(cutoff)
}
