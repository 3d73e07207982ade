package httpserver

import (
	"fmt"
	"net/http"

	"github.com/and161185/bookstore/internal/convert"
	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/model"
)

type publisherName struct {
	Name string `json:"publisherName"`
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var in convert.BookRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "add book", err)
		return
	}
	nb, err := in.NewBook()
	if err != nil {
		s.fail(w, r, "add book", err)
		return
	}
	e, err := s.svc.Catalog.AddBook(r.Context(), nb)
	if err != nil {
		s.fail(w, r, "add book", err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Message string          `json:"message"`
		Book    model.BookEntry `json:"book"`
	}{"Book added successfully", e})
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.svc.Catalog.ListBooks(r.Context())
	if err != nil {
		s.fail(w, r, "list books", err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "book id")
	if err != nil {
		s.fail(w, r, "get book", err)
		return
	}
	e, err := s.svc.Catalog.GetBook(r.Context(), id)
	if err != nil {
		s.fail(w, r, "get book", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "book id")
	if err != nil {
		s.fail(w, r, "update book", err)
		return
	}
	var in convert.BookPatchRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "update book", err)
		return
	}
	patch, err := in.Patch()
	if err != nil {
		s.fail(w, r, "update book", err)
		return
	}
	e, err := s.svc.Catalog.UpdateBook(r.Context(), id, patch)
	if err != nil {
		s.fail(w, r, "update book", err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message string          `json:"message"`
		Book    model.BookEntry `json:"book"`
	}{"Book updated successfully", e})
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "book id")
	if err != nil {
		s.fail(w, r, "delete book", err)
		return
	}
	if err := s.svc.Catalog.DeleteBook(r.Context(), id); err != nil {
		s.fail(w, r, "delete book", err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{"Book deleted successfully"})
}

func (s *Server) handlePublishers(w http.ResponseWriter, r *http.Request) {
	names, err := s.svc.Catalog.PublisherNames(r.Context())
	if err != nil {
		s.fail(w, r, "publishers", err)
		return
	}
	out := make([]publisherName, 0, len(names))
	for _, n := range names {
		out = append(out, publisherName{Name: n})
	}
	writeJSON(w, http.StatusOK, map[string][]publisherName{"publishers": out})
}

func (s *Server) handleAuthors(w http.ResponseWriter, r *http.Request) {
	publisher := r.URL.Query().Get("publisherName")
	if publisher == "" {
		s.fail(w, r, "authors", fmt.Errorf("%w: missing publisherName", errs.ErrValidation))
		return
	}
	names, err := s.svc.Catalog.AuthorNames(r.Context(), publisher)
	if err != nil {
		s.fail(w, r, "authors", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

// handleCatalog lists catalog roots; there is at most one, none before the first book.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.Catalog.Catalog(r.Context())
	if err != nil {
		s.fail(w, r, "catalog", err)
		return
	}
	roots := []*model.Catalog{}
	if c.Ver > 0 {
		roots = append(roots, c)
	}
	writeJSON(w, http.StatusOK, roots)
}
