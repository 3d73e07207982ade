// Package convert maps HTTP request payloads onto domain types.
package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/model"
)

// --- scalars ---

// ParseID parses a path or body identifier; what names it in the error.
func ParseID(s, what string) (uuid.UUID, error) {
	id, err := uuid.FromString(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", what, s, errs.ErrValidation)
	}
	return id, nil
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate accepts RFC 3339 timestamps and plain calendar dates (UTC).
// An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: %w", s, errs.ErrValidation)
}

func parseOptionalDate(s string) (*time.Time, error) {
	t, err := ParseDate(s)
	if err != nil || t.IsZero() {
		return nil, err
	}
	return &t, nil
}

// FlexString decodes from either a JSON string or a JSON number.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("want string or number: %w", errs.ErrValidation)
	}
	*f = FlexString(n.String())
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// --- catalog ---

// BookRequest is the body of POST /books.
type BookRequest struct {
	Title         string  `json:"title"`
	Summary       string  `json:"summary"`
	ImageURL      string  `json:"imageUrl"`
	Price         float64 `json:"price"`
	TotalCopies   int     `json:"totalCopies"`
	PublisherName string  `json:"publisherName"`
	AuthorName    string  `json:"authorName"`
	Bio           string  `json:"bio"`
	Genre         string  `json:"genre"`
	PublishedDate string  `json:"publishedDate"`
}

// NewBook converts the request into the catalog insertion input.
func (r BookRequest) NewBook() (model.NewBook, error) {
	published, err := parseOptionalDate(r.PublishedDate)
	if err != nil {
		return model.NewBook{}, err
	}
	return model.NewBook{
		Title:         strings.TrimSpace(r.Title),
		Summary:       r.Summary,
		ImageURL:      r.ImageURL,
		Price:         r.Price,
		TotalCopies:   r.TotalCopies,
		PublisherName: strings.TrimSpace(r.PublisherName),
		AuthorName:    strings.TrimSpace(r.AuthorName),
		Bio:           r.Bio,
		Genre:         r.Genre,
		PublishedDate: published,
	}, nil
}

// BookPatchRequest is the body of PUT /books/{id}; absent fields are kept.
type BookPatchRequest struct {
	Title           *string  `json:"title"`
	Summary         *string  `json:"summary"`
	ImageURL        *string  `json:"imageUrl"`
	Price           *float64 `json:"price"`
	TotalCopies     *int     `json:"totalCopies"`
	CopiesAvailable *int     `json:"copiesAvailable"`
	Genre           *string  `json:"genre"`
	PublishedDate   *string  `json:"publishedDate"`
}

// Patch converts the request into a catalog patch.
func (r BookPatchRequest) Patch() (model.BookPatch, error) {
	p := model.BookPatch{
		Title:           r.Title,
		Summary:         r.Summary,
		ImageURL:        r.ImageURL,
		Price:           r.Price,
		TotalCopies:     r.TotalCopies,
		CopiesAvailable: r.CopiesAvailable,
		Genre:           r.Genre,
	}
	if r.PublishedDate != nil {
		t, err := parseOptionalDate(*r.PublishedDate)
		if err != nil {
			return model.BookPatch{}, err
		}
		p.PublishedDate = t
	}
	return p, nil
}

// --- purchases ---

// PurchaseRequest is the body of POST and PUT /purchase. The image URL is
// accepted under every spelling older clients send.
type PurchaseRequest struct {
	UserID        string  `json:"userId"`
	BookTitle     string  `json:"bookTitle"`
	BookImageURL  string  `json:"bookImageUrl"`
	BookImageLow  string  `json:"bookimageUrl"`
	BookImage     string  `json:"bookImage"`
	Author        string  `json:"author"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	TotalPrice    float64 `json:"totalPrice"`
	PurchasedDate string  `json:"purchasedDate"`
}

// Details converts the editable part of the request.
func (r PurchaseRequest) Details() (model.PurchaseDetails, error) {
	at, err := ParseDate(r.PurchasedDate)
	if err != nil {
		return model.PurchaseDetails{}, err
	}
	return model.PurchaseDetails{
		BookTitle:     r.BookTitle,
		BookImageURL:  firstNonEmpty(r.BookImageURL, r.BookImageLow, r.BookImage),
		Author:        r.Author,
		Price:         r.Price,
		Quantity:      r.Quantity,
		TotalPrice:    r.TotalPrice,
		PurchasedDate: at,
	}, nil
}

// --- addresses ---

// AddressRequest is the body of POST and PUT /address.
type AddressRequest struct {
	UserID     string     `json:"userId"`
	Street     string     `json:"street"`
	Landmark   string     `json:"landmark"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	PostalCode FlexString `json:"postalCode"`
	Country    string     `json:"country"`
}

// Fields converts the editable part of the request.
func (r AddressRequest) Fields() model.AddressFields {
	return model.AddressFields{
		Street:     r.Street,
		Landmark:   r.Landmark,
		City:       r.City,
		State:      r.State,
		PostalCode: string(r.PostalCode),
		Country:    r.Country,
	}
}
