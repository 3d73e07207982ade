// Package httpserver exposes the bookstore services over HTTP/JSON.
package httpserver

import (
	"context"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/and161185/bookstore/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the managers the handlers delegate to.
type Services struct {
	Accounts  service.AccountService
	Catalog   service.CatalogService
	Purchases service.PurchaseService
	Addresses service.AddressService
	Feedback  service.FeedbackService
	Activity  service.ActivityService
}

// Server maps HTTP routes onto service calls.
type Server struct {
	svc Services
	db  Pinger
	log *zap.Logger
}

// New constructs a Server. db may be nil, in which case /healthz skips the store check.
func New(svc Services, db Pinger, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, db: db, log: log}
}

// Handler returns the routed handler with logging and panic recovery applied.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(Logging(s.log), Recover(s.log))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "route not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
	})

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	// accounts; fixed /users/... paths go before /users/{id}
	r.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodPost)
	r.HandleFunc("/login-times", s.handleLoginTimes).Methods(http.MethodGet)
	r.HandleFunc("/users/active", s.handleActive).Methods(http.MethodGet)
	r.HandleFunc("/users/frequent", s.handleFrequent).Methods(http.MethodGet)
	r.HandleFunc("/users/inactive", s.handleInactive).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", s.handleGetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id}", s.handleUpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)
	r.HandleFunc("/username/{id}", s.handleUsername).Methods(http.MethodGet)

	// catalog
	r.HandleFunc("/books", s.handleAddBook).Methods(http.MethodPost)
	r.HandleFunc("/books", s.handleListBooks).Methods(http.MethodGet)
	r.HandleFunc("/books/{id}", s.handleGetBook).Methods(http.MethodGet)
	r.HandleFunc("/books/{id}", s.handleUpdateBook).Methods(http.MethodPut)
	r.HandleFunc("/books/{id}", s.handleDeleteBook).Methods(http.MethodDelete)
	r.HandleFunc("/publishers", s.handlePublishers).Methods(http.MethodGet)
	r.HandleFunc("/authors", s.handleAuthors).Methods(http.MethodGet)
	r.HandleFunc("/multiple-publishers", s.handleCatalog).Methods(http.MethodGet)

	// purchases
	r.HandleFunc("/purchase", s.handleRecordPurchase).Methods(http.MethodPost)
	r.HandleFunc("/purchase", s.handleListPurchases).Methods(http.MethodGet)
	r.HandleFunc("/purchase/{userId}", s.handleUserPurchases).Methods(http.MethodGet)
	r.HandleFunc("/purchase/{id}", s.handleUpdatePurchase).Methods(http.MethodPut)
	r.HandleFunc("/purchase/{id}", s.handleDeletePurchase).Methods(http.MethodDelete)

	// feedback
	r.HandleFunc("/feedback", s.handleSubmitFeedback).Methods(http.MethodPost)
	r.HandleFunc("/feedback", s.handleListFeedback).Methods(http.MethodGet)

	// addresses
	r.HandleFunc("/address", s.handleCreateAddress).Methods(http.MethodPost)
	r.HandleFunc("/address/{userId}", s.handleUserAddresses).Methods(http.MethodGet)
	r.HandleFunc("/address/{id}", s.handleUpdateAddress).Methods(http.MethodPut)
	r.HandleFunc("/address/{id}", s.handleDeleteAddress).Methods(http.MethodDelete)

	// favorites live under a bare user id, so they are registered last
	r.HandleFunc("/{userId}/favorites", s.handleListFavorites).Methods(http.MethodGet)
	r.HandleFunc("/{userId}/favorites", s.handleAddFavorite).Methods(http.MethodPost)
	r.HandleFunc("/{userId}/favorites/{bookId}", s.handleRemoveFavorite).Methods(http.MethodDelete)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.log.Warn("health: store ping failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "database unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// remoteIP strips the port from the peer address.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
