package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/and161185/bookstore/internal/model"
	"github.com/gofrs/uuid/v5"
)

var activityNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) time.Time { return activityNow.AddDate(0, 0, -d) }

func seedAccount(t *testing.T, f *fakeAccounts, name string, created int, logins ...int) {
	t.Helper()
	a := &model.Account{
		ID:        uuid.Must(uuid.NewV4()),
		Username:  name,
		Mobile:    name,
		Sessions:  []model.Session{},
		CreatedAt: daysAgo(100 - created),
	}
	for _, d := range logins {
		a.OpenSession(daysAgo(d))
	}
	if err := f.Create(context.Background(), a); err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
}

func names(list []model.Account) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Username)
	}
	return out
}

func equalNames(got []model.Account, want ...string) bool {
	g := names(got)
	if len(g) != len(want) {
		return false
	}
	for i := range want {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func seedActivity(t *testing.T) *fakeAccounts {
	t.Helper()
	f := newFakeAccounts()
	seedAccount(t, f, "never", 1)
	seedAccount(t, f, "mixed", 2, 15, 2)    // old and recent logins
	seedAccount(t, f, "stale", 3, 30, 20)   // only old logins
	seedAccount(t, f, "busy", 4, 1, 2, 3, 4, 5)
	seedAccount(t, f, "edge", 5, 10, 9, 8, 7) // 10 days ago sits exactly on the cutoff
	return f
}

func TestActivity_ListActive(t *testing.T) {
	t.Parallel()
	s := NewActivityService(seedActivity(t), ActivityConfig{}, func() time.Time { return activityNow })

	got, err := s.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if !equalNames(got, "mixed", "busy", "edge") {
		t.Fatalf("active: %v", names(got))
	}
}

func TestActivity_ListFrequent(t *testing.T) {
	t.Parallel()
	accounts := seedActivity(t)
	s := NewActivityService(accounts, ActivityConfig{}, func() time.Time { return activityNow })

	got, err := s.ListFrequent(context.Background())
	if err != nil {
		t.Fatalf("ListFrequent: %v", err)
	}
	if !equalNames(got, "busy") {
		t.Fatalf("frequent(5): %v", names(got))
	}

	s = NewActivityService(accounts, ActivityConfig{FrequentThreshold: 4}, func() time.Time { return activityNow })
	got, _ = s.ListFrequent(context.Background())
	if !equalNames(got, "busy", "edge") {
		t.Fatalf("frequent(4): %v", names(got))
	}
}

func TestActivity_ListInactive_Rules(t *testing.T) {
	t.Parallel()
	accounts := seedActivity(t)

	s := NewActivityService(accounts, ActivityConfig{}, func() time.Time { return activityNow })
	got, err := s.ListInactive(context.Background())
	if err != nil {
		t.Fatalf("ListInactive: %v", err)
	}
	if !equalNames(got, "never", "stale") {
		t.Fatalf("inactive(last-login): %v", names(got))
	}

	s = NewActivityService(accounts, ActivityConfig{InactiveRule: InactiveLegacy}, func() time.Time { return activityNow })
	got, _ = s.ListInactive(context.Background())
	if !equalNames(got, "never", "mixed", "stale") {
		t.Fatalf("inactive(legacy): %v", names(got))
	}
}

func TestActivity_WindowIsConfigurable(t *testing.T) {
	t.Parallel()
	s := NewActivityService(seedActivity(t), ActivityConfig{Window: 3 * 24 * time.Hour}, func() time.Time { return activityNow })

	got, _ := s.ListActive(context.Background())
	if !equalNames(got, "mixed", "busy") {
		t.Fatalf("active(3d): %v", names(got))
	}
}

func TestActivity_StoreErrorPropagates(t *testing.T) {
	t.Parallel()
	boom := errors.New("db down")
	f := newFakeAccounts()
	f.listErr = boom
	s := NewActivityService(f, ActivityConfig{}, nil)

	if _, err := s.ListInactive(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want store error, got %v", err)
	}
	if _, err := s.ListFrequent(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want store error, got %v", err)
	}
}
