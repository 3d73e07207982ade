// Package model defines domain entities used by services and repositories.
package model

import (
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Role is an account's privilege level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is one login/logout timestamp pair.
type Session struct {
	Login  time.Time  `json:"login"`
	Logout *time.Time `json:"logout,omitempty"`
}

// Account is a registered customer or administrator. The password hash is kept
// out of the JSON document and stored in its own column.
type Account struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Mobile    string      `json:"mobile"`   // unique
	Email     string      `json:"email"`
	Username  string      `json:"username"` // unique
	PwdHash   []byte      `json:"-"`
	Role      Role        `json:"role"`
	Sessions  []Session   `json:"loginTimes"`
	Favorites []uuid.UUID `json:"favorites"`
	CreatedAt time.Time   `json:"createdAt"`
	Ver       int64       `json:"-"` // optimistic concurrency token
}

// OpenSession appends a new open session started at now.
func (a *Account) OpenSession(now time.Time) {
	a.Sessions = append(a.Sessions, Session{Login: now})
}

// CloseSession sets the logout time of the most recent session if it is still open.
// It reports whether anything changed.
func (a *Account) CloseSession(now time.Time) bool {
	if len(a.Sessions) == 0 {
		return false
	}
	last := &a.Sessions[len(a.Sessions)-1]
	if last.Logout != nil {
		return false
	}
	t := now
	last.Logout = &t
	return true
}

// LastLogin returns the latest login time, if any.
func (a *Account) LastLogin() (time.Time, bool) {
	var latest time.Time
	for _, s := range a.Sessions {
		if s.Login.After(latest) {
			latest = s.Login
		}
	}
	return latest, len(a.Sessions) > 0
}

// LoginsSince counts sessions that started at or after cutoff.
func (a *Account) LoginsSince(cutoff time.Time) int {
	n := 0
	for _, s := range a.Sessions {
		if !s.Login.Before(cutoff) {
			n++
		}
	}
	return n
}

// LoggedInBefore reports whether any session started before cutoff.
func (a *Account) LoggedInBefore(cutoff time.Time) bool {
	for _, s := range a.Sessions {
		if s.Login.Before(cutoff) {
			return true
		}
	}
	return false
}

// AddFavorite adds bookID unless already present. It reports whether the set changed.
func (a *Account) AddFavorite(bookID uuid.UUID) bool {
	if slices.Contains(a.Favorites, bookID) {
		return false
	}
	a.Favorites = append(a.Favorites, bookID)
	return true
}

// RemoveFavorite drops bookID from favorites. It reports whether the set changed.
func (a *Account) RemoveFavorite(bookID uuid.UUID) bool {
	n := len(a.Favorites)
	a.Favorites = slices.DeleteFunc(a.Favorites, func(id uuid.UUID) bool { return id == bookID })
	return len(a.Favorites) != n
}

// Registration is the input of account creation.
type Registration struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileUpdate carries replaceable profile fields; empty values are left untouched.
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// AccountActivity is the login-history projection of an account.
type AccountActivity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Mobile   string    `json:"mobile"`
	Sessions []Session `json:"loginTimes"`
}

// Purchase is a ledger record. Username is captured at purchase time and never re-synced.
type Purchase struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"userId"`
	Username      string    `json:"username"`
	BookTitle     string    `json:"bookTitle"`
	BookImageURL  string    `json:"bookImageUrl"`
	Author        string    `json:"author"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	TotalPrice    float64   `json:"totalPrice"`
	PurchasedDate time.Time `json:"purchasedDate"`
}

// PurchaseDetails holds the editable part of a purchase.
type PurchaseDetails struct {
	BookTitle     string    `json:"bookTitle"`
	BookImageURL  string    `json:"bookImageUrl"`
	Author        string    `json:"author"`
	Price         float64   `json:"price"`
	Quantity      int       `json:"quantity"`
	TotalPrice    float64   `json:"totalPrice"`
	PurchasedDate time.Time `json:"purchasedDate"`
}

// Address is a shipping address linked to an account by id only.
type Address struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	AddressFields
}

// AddressFields holds the editable part of an address.
type AddressFields struct {
	Street     string `json:"street"`
	Landmark   string `json:"landmark"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Feedback is a free-form message. UserID is stored as given.
type Feedback struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	UserID    string    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
