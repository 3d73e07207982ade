package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/model"
	"github.com/and161185/bookstore/internal/repository"
)

// CatalogService manages the publisher/author/book tree.
type CatalogService interface {
	// AddBook files a new book, creating its publisher and author on demand.
	AddBook(ctx context.Context, in model.NewBook) (model.BookEntry, error)
	// ListBooks flattens the catalog in tree order.
	ListBooks(ctx context.Context) ([]model.BookEntry, error)
	GetBook(ctx context.Context, id uuid.UUID) (model.BookEntry, error)
	UpdateBook(ctx context.Context, id uuid.UUID, patch model.BookPatch) (model.BookEntry, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
	PublisherNames(ctx context.Context) ([]string, error)
	AuthorNames(ctx context.Context, publisher string) ([]string, error)
	// Catalog returns the whole tree; empty when nothing was added yet.
	Catalog(ctx context.Context) (*model.Catalog, error)
}

type CatalogServiceImpl struct {
	repo repository.CatalogRepository
}

// NewCatalogService constructs CatalogService over the catalog store.
func NewCatalogService(repo repository.CatalogRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{repo: repo}
}

// load returns the stored catalog or a fresh unsaved one (Ver == 0).
func (s *CatalogServiceImpl) load(ctx context.Context) (*model.Catalog, error) {
	return loadCatalog(ctx, s.repo)
}

func loadCatalog(ctx context.Context, repo repository.CatalogRepository) (*model.Catalog, error) {
	c, err := repo.Load(ctx)
	if errors.Is(err, errs.ErrNotFound) {
		return &model.Catalog{Publishers: []model.Publisher{}}, nil
	}
	return c, err
}

// mutate applies fn to a freshly loaded catalog and persists it under the
// version guard, retrying lost races.
func (s *CatalogServiceImpl) mutate(ctx context.Context, fn func(c *model.Catalog) error) error {
	return withCAS(ctx, func() error {
		c, err := s.load(ctx)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if c.Ver == 0 {
			if c.ID == uuid.Nil {
				if c.ID, err = uuid.NewV4(); err != nil {
					return err
				}
			}
			return s.repo.Create(ctx, c)
		}
		return s.repo.Save(ctx, c)
	})
}

// AddBook validates input and appends the book under publisher/author.
func (s *CatalogServiceImpl) AddBook(ctx context.Context, in model.NewBook) (model.BookEntry, error) {
	if err := required(
		field{"title", in.Title != ""},
		field{"summary", in.Summary != ""},
		field{"imageUrl", in.ImageURL != ""},
		field{"price", in.Price > 0},
		field{"totalCopies", in.TotalCopies > 0},
		field{"publisherName", in.PublisherName != ""},
		field{"authorName", in.AuthorName != ""},
	); err != nil {
		return model.BookEntry{}, err
	}

	var added model.Book
	err := s.mutate(ctx, func(c *model.Catalog) error {
		b, err := c.AddBook(in.PublisherName, in.AuthorName, in.Bio, model.Book{
			Title:         in.Title,
			Summary:       in.Summary,
			ImageURL:      in.ImageURL,
			Price:         in.Price,
			TotalCopies:   in.TotalCopies,
			Genre:         in.Genre,
			PublishedDate: in.PublishedDate,
		})
		added = b
		return err
	})
	if err != nil {
		return model.BookEntry{}, err
	}
	return model.BookEntry{Book: added, Author: in.AuthorName, Publisher: in.PublisherName}, nil
}

// ListBooks returns every book annotated with its author and publisher.
func (s *CatalogServiceImpl) ListBooks(ctx context.Context) ([]model.BookEntry, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Books(), nil
}

// GetBook finds a book anywhere in the tree.
func (s *CatalogServiceImpl) GetBook(ctx context.Context, id uuid.UUID) (model.BookEntry, error) {
	c, err := s.load(ctx)
	if err != nil {
		return model.BookEntry{}, err
	}
	e, ok := c.FindBook(id)
	if !ok {
		return model.BookEntry{}, fmt.Errorf("book %s: %w", id, errs.ErrNotFound)
	}
	return e, nil
}

// UpdateBook patches a book keeping 0 <= copiesAvailable <= totalCopies.
func (s *CatalogServiceImpl) UpdateBook(ctx context.Context, id uuid.UUID, patch model.BookPatch) (model.BookEntry, error) {
	var out model.BookEntry
	err := s.mutate(ctx, func(c *model.Catalog) error {
		e, err := c.UpdateBook(id, patch)
		out = e
		return err
	})
	return out, err
}

// DeleteBook removes a book from its author.
func (s *CatalogServiceImpl) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, func(c *model.Catalog) error {
		if !c.RemoveBook(id) {
			return fmt.Errorf("book %s: %w", id, errs.ErrNotFound)
		}
		return nil
	})
}

// PublisherNames lists publishers in catalog order.
func (s *CatalogServiceImpl) PublisherNames(ctx context.Context) ([]string, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.PublisherNames(), nil
}

// AuthorNames lists the authors of one publisher.
func (s *CatalogServiceImpl) AuthorNames(ctx context.Context, publisher string) ([]string, error) {
	if publisher == "" {
		return nil, fmt.Errorf("%w: missing publisherName", errs.ErrValidation)
	}
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	names, ok := c.AuthorNames(publisher)
	if !ok {
		return nil, fmt.Errorf("publisher %q: %w", publisher, errs.ErrNotFound)
	}
	return names, nil
}

// Catalog returns the full tree.
func (s *CatalogServiceImpl) Catalog(ctx context.Context) (*model.Catalog, error) {
	return s.load(ctx)
}
