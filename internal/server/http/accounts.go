package httpserver

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/mux"

	"github.com/and161185/bookstore/internal/convert"
	"github.com/and161185/bookstore/internal/model"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string     `json:"message"`
	UserID  uuid.UUID  `json:"userId"`
	Role    model.Role `json:"role"`
}

type userIDRequest struct {
	UserID string `json:"userId"`
}

type bookIDRequest struct {
	BookID string `json:"bookId"`
}

func pathID(r *http.Request, key, what string) (uuid.UUID, error) {
	return convert.ParseID(mux.Vars(r)[key], what)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in model.Registration
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "register", err)
		return
	}
	a, err := s.svc.Accounts.Register(r.Context(), in)
	if err != nil {
		s.fail(w, r, "register", err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		Message  string         `json:"message"`
		Customer *model.Account `json:"customer"`
	}{"Registration successful", a})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "login", err)
		return
	}
	a, err := s.svc.Accounts.Login(r.Context(), in.Username, in.Password, remoteIP(r))
	if err != nil {
		s.fail(w, r, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", UserID: a.ID, Role: a.Role})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var in userIDRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "logout", err)
		return
	}
	id, err := convert.ParseID(in.UserID, "userId")
	if err != nil {
		s.fail(w, r, "logout", err)
		return
	}
	if err := s.svc.Accounts.Logout(r.Context(), id); err != nil {
		s.fail(w, r, "logout", err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{"Logout successful"})
}

func (s *Server) handleLoginTimes(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Accounts.LoginTimes(r.Context())
	if err != nil {
		s.fail(w, r, "login times", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "user id")
	if err != nil {
		s.fail(w, r, "get user", err)
		return
	}
	a, err := s.svc.Accounts.GetAccount(r.Context(), id)
	if err != nil {
		s.fail(w, r, "get user", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "user id")
	if err != nil {
		s.fail(w, r, "update user", err)
		return
	}
	var in model.ProfileUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "update user", err)
		return
	}
	a, err := s.svc.Accounts.UpdateProfile(r.Context(), id, in)
	if err != nil {
		s.fail(w, r, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message string         `json:"message"`
		User    *model.Account `json:"user"`
	}{"User updated successfully", a})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "user id")
	if err != nil {
		s.fail(w, r, "delete user", err)
		return
	}
	if err := s.svc.Accounts.DeleteAccount(r.Context(), id); err != nil {
		s.fail(w, r, "delete user", err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{"User and their login details deleted successfully"})
}

func (s *Server) handleUsername(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "user id")
	if err != nil {
		s.fail(w, r, "username", err)
		return
	}
	name, err := s.svc.Accounts.Username(r.Context(), id)
	if err != nil {
		s.fail(w, r, "username", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": name})
}

// --- favorites ---

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId", "user id")
	if err != nil {
		s.fail(w, r, "list favorites", err)
		return
	}
	books, err := s.svc.Accounts.ListFavorites(r.Context(), userID)
	if err != nil {
		s.fail(w, r, "list favorites", err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId", "user id")
	if err != nil {
		s.fail(w, r, "add favorite", err)
		return
	}
	var in bookIDRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "add favorite", err)
		return
	}
	bookID, err := convert.ParseID(in.BookID, "bookId")
	if err != nil {
		s.fail(w, r, "add favorite", err)
		return
	}
	ids, err := s.svc.Accounts.AddFavorite(r.Context(), userID, bookID)
	if err != nil {
		s.fail(w, r, "add favorite", err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId", "user id")
	if err != nil {
		s.fail(w, r, "remove favorite", err)
		return
	}
	bookID, err := pathID(r, "bookId", "book id")
	if err != nil {
		s.fail(w, r, "remove favorite", err)
		return
	}
	ids, err := s.svc.Accounts.RemoveFavorite(r.Context(), userID, bookID)
	if err != nil {
		s.fail(w, r, "remove favorite", err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// --- activity ---

func (s *Server) handleActive(w http.ResponseWriter, r *http.Request) {
	s.writeAccounts(w, r, "active users", s.svc.Activity.ListActive)
}

func (s *Server) handleFrequent(w http.ResponseWriter, r *http.Request) {
	s.writeAccounts(w, r, "frequent users", s.svc.Activity.ListFrequent)
}

func (s *Server) handleInactive(w http.ResponseWriter, r *http.Request) {
	s.writeAccounts(w, r, "inactive users", s.svc.Activity.ListInactive)
}

func (s *Server) writeAccounts(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	list func(ctx context.Context) ([]model.Account, error),
) {
	accounts, err := list(r.Context())
	if err != nil {
		s.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}
