package model

import (
	"fmt"
	"time"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/gofrs/uuid/v5"
)

// Book is a title nested under an author inside the catalog.
type Book struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary"`
	ImageURL        string     `json:"imageUrl"`
	Price           float64    `json:"price"`
	TotalCopies     int        `json:"totalCopies"`
	CopiesAvailable int        `json:"copiesAvailable"` // 0 <= CopiesAvailable <= TotalCopies
	Genre           string     `json:"genre,omitempty"`
	PublishedDate   *time.Time `json:"publishedDate,omitempty"`
}

// Author groups books; Name is the key within a publisher.
type Author struct {
	Name  string `json:"authorName"`
	Bio   string `json:"bio,omitempty"`
	Books []Book `json:"books"`
}

// Publisher groups authors; Name is the key within the catalog.
type Publisher struct {
	Name    string   `json:"publisherName"`
	Authors []Author `json:"authors"`
}

// Catalog is the singleton aggregate holding every publisher, author and book.
type Catalog struct {
	ID         uuid.UUID   `json:"id"`
	Publishers []Publisher `json:"publishers"`
	Ver        int64       `json:"-"` // 0 means not persisted yet
}

// BookEntry is a flattened book annotated with its owners.
type BookEntry struct {
	Book
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
}

// NewBook is the input of catalog insertion.
type NewBook struct {
	Title         string     `json:"title"`
	Summary       string     `json:"summary"`
	ImageURL      string     `json:"imageUrl"`
	Price         float64    `json:"price"`
	TotalCopies   int        `json:"totalCopies"`
	PublisherName string     `json:"publisherName"`
	AuthorName    string     `json:"authorName"`
	Bio           string     `json:"bio"`
	Genre         string     `json:"genre"`
	PublishedDate *time.Time `json:"publishedDate"`
}

// BookPatch lists the book fields to change; nil fields are kept.
type BookPatch struct {
	Title           *string    `json:"title"`
	Summary         *string    `json:"summary"`
	ImageURL        *string    `json:"imageUrl"`
	Price           *float64   `json:"price"`
	TotalCopies     *int       `json:"totalCopies"`
	CopiesAvailable *int       `json:"copiesAvailable"`
	Genre           *string    `json:"genre"`
	PublishedDate   *time.Time `json:"publishedDate"`
}

// firstIndex maps each key to the position of its first occurrence.
func firstIndex[T any](items []T, key func(T) string) map[string]int {
	idx := make(map[string]int, len(items))
	for i, it := range items {
		if _, ok := idx[key(it)]; !ok {
			idx[key(it)] = i
		}
	}
	return idx
}

func publisherName(p Publisher) string { return p.Name }
func authorName(a Author) string       { return a.Name }
func bookTitle(b Book) string          { return b.Title }

// AddBook files b under publisher/author, creating either node when missing.
// The bio is used only when the author is created. The book gets a fresh ID and
// all of its copies available.
func (c *Catalog) AddBook(publisher, author, bio string, b Book) (Book, error) {
	pi, ok := firstIndex(c.Publishers, publisherName)[publisher]
	if !ok {
		c.Publishers = append(c.Publishers, Publisher{Name: publisher, Authors: []Author{}})
		pi = len(c.Publishers) - 1
	}
	p := &c.Publishers[pi]

	ai, ok := firstIndex(p.Authors, authorName)[author]
	if !ok {
		p.Authors = append(p.Authors, Author{Name: author, Bio: bio, Books: []Book{}})
		ai = len(p.Authors) - 1
	}
	a := &p.Authors[ai]

	if _, dup := firstIndex(a.Books, bookTitle)[b.Title]; dup {
		return Book{}, fmt.Errorf("%q by %q: %w", b.Title, author, errs.ErrDuplicateBook)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return Book{}, err
	}
	b.ID = id
	b.CopiesAvailable = b.TotalCopies
	a.Books = append(a.Books, b)
	return b, nil
}

type bookPos struct{ p, a, b int }

func (c *Catalog) locate(id uuid.UUID) (bookPos, bool) {
	for pi := range c.Publishers {
		for ai := range c.Publishers[pi].Authors {
			for bi := range c.Publishers[pi].Authors[ai].Books {
				if c.Publishers[pi].Authors[ai].Books[bi].ID == id {
					return bookPos{pi, ai, bi}, true
				}
			}
		}
	}
	return bookPos{}, false
}

func (c *Catalog) entryAt(pos bookPos) BookEntry {
	p := &c.Publishers[pos.p]
	a := &p.Authors[pos.a]
	return BookEntry{Book: a.Books[pos.b], Author: a.Name, Publisher: p.Name}
}

// FindBook returns the book with the given id.
func (c *Catalog) FindBook(id uuid.UUID) (BookEntry, bool) {
	pos, ok := c.locate(id)
	if !ok {
		return BookEntry{}, false
	}
	return c.entryAt(pos), true
}

// RemoveBook deletes the book with the given id and reports whether it existed.
func (c *Catalog) RemoveBook(id uuid.UUID) bool {
	pos, ok := c.locate(id)
	if !ok {
		return false
	}
	a := &c.Publishers[pos.p].Authors[pos.a]
	a.Books = append(a.Books[:pos.b], a.Books[pos.b+1:]...)
	return true
}

// UpdateBook applies patch to the book with the given id. Changing TotalCopies
// shifts CopiesAvailable by the same delta unless CopiesAvailable is patched too.
func (c *Catalog) UpdateBook(id uuid.UUID, patch BookPatch) (BookEntry, error) {
	pos, ok := c.locate(id)
	if !ok {
		return BookEntry{}, fmt.Errorf("book %s: %w", id, errs.ErrNotFound)
	}
	a := &c.Publishers[pos.p].Authors[pos.a]
	cur := a.Books[pos.b]
	next := cur

	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.Summary != nil {
		next.Summary = *patch.Summary
	}
	if patch.ImageURL != nil {
		next.ImageURL = *patch.ImageURL
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.Genre != nil {
		next.Genre = *patch.Genre
	}
	if patch.PublishedDate != nil {
		t := *patch.PublishedDate
		next.PublishedDate = &t
	}
	if patch.TotalCopies != nil {
		next.TotalCopies = *patch.TotalCopies
		next.CopiesAvailable = cur.CopiesAvailable + (next.TotalCopies - cur.TotalCopies)
	}
	if patch.CopiesAvailable != nil {
		next.CopiesAvailable = *patch.CopiesAvailable
	}

	switch {
	case next.Title == "":
		return BookEntry{}, fmt.Errorf("%w: title is required", errs.ErrValidation)
	case next.Price <= 0:
		return BookEntry{}, fmt.Errorf("%w: price must be positive", errs.ErrValidation)
	case next.TotalCopies < 0:
		return BookEntry{}, fmt.Errorf("%w: totalCopies must not be negative", errs.ErrValidation)
	case next.CopiesAvailable < 0 || next.CopiesAvailable > next.TotalCopies:
		return BookEntry{}, fmt.Errorf("%w: copiesAvailable %d outside [0, %d]",
			errs.ErrValidation, next.CopiesAvailable, next.TotalCopies)
	}
	if next.Title != cur.Title {
		if _, dup := firstIndex(a.Books, bookTitle)[next.Title]; dup {
			return BookEntry{}, fmt.Errorf("%q by %q: %w", next.Title, a.Name, errs.ErrDuplicateBook)
		}
	}

	a.Books[pos.b] = next
	return c.entryAt(pos), nil
}

// Books flattens the tree in publisher, author, book order.
func (c *Catalog) Books() []BookEntry {
	out := []BookEntry{}
	for _, p := range c.Publishers {
		for _, a := range p.Authors {
			for _, b := range a.Books {
				out = append(out, BookEntry{Book: b, Author: a.Name, Publisher: p.Name})
			}
		}
	}
	return out
}

// PublisherNames lists publisher names in catalog order.
func (c *Catalog) PublisherNames() []string {
	out := make([]string, 0, len(c.Publishers))
	for _, p := range c.Publishers {
		out = append(out, p.Name)
	}
	return out
}

// AuthorNames lists author names of the first publisher called name.
func (c *Catalog) AuthorNames(name string) ([]string, bool) {
	pi, ok := firstIndex(c.Publishers, publisherName)[name]
	if !ok {
		return nil, false
	}
	authors := c.Publishers[pi].Authors
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		out = append(out, a.Name)
	}
	return out, true
}
