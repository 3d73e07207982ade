package httpserver

import (
	"net/http"

	"github.com/and161185/bookstore/internal/convert"
	"github.com/and161185/bookstore/internal/model"
)

type addressResponse struct {
	Message string         `json:"message"`
	Address *model.Address `json:"address"`
}

func (s *Server) handleCreateAddress(w http.ResponseWriter, r *http.Request) {
	var in convert.AddressRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "create address", err)
		return
	}
	// older clients pass the owner as a query parameter
	raw := in.UserID
	if raw == "" {
		raw = r.URL.Query().Get("userId")
	}
	userID, err := convert.ParseID(raw, "userId")
	if err != nil {
		s.fail(w, r, "create address", err)
		return
	}
	a, err := s.svc.Addresses.Create(r.Context(), userID, in.Fields())
	if err != nil {
		s.fail(w, r, "create address", err)
		return
	}
	writeJSON(w, http.StatusCreated, addressResponse{"Address created successfully", a})
}

func (s *Server) handleUserAddresses(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId", "user id")
	if err != nil {
		s.fail(w, r, "user addresses", err)
		return
	}
	list, err := s.svc.Addresses.ListForUser(r.Context(), userID)
	if err != nil {
		s.fail(w, r, "user addresses", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "address id")
	if err != nil {
		s.fail(w, r, "update address", err)
		return
	}
	var in convert.AddressRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "update address", err)
		return
	}
	a, err := s.svc.Addresses.Update(r.Context(), id, in.Fields())
	if err != nil {
		s.fail(w, r, "update address", err)
		return
	}
	writeJSON(w, http.StatusOK, addressResponse{"Address updated successfully", a})
}

func (s *Server) handleDeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "address id")
	if err != nil {
		s.fail(w, r, "delete address", err)
		return
	}
	if err := s.svc.Addresses.Delete(r.Context(), id); err != nil {
		s.fail(w, r, "delete address", err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{"Address deleted successfully"})
}
