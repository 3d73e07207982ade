package httpserver

import (
	"net/http"

	"github.com/and161185/bookstore/internal/convert"
	"github.com/and161185/bookstore/internal/model"
)

type purchaseResponse struct {
	Message  string          `json:"message"`
	Purchase *model.Purchase `json:"purchase"`
}

func (s *Server) handleRecordPurchase(w http.ResponseWriter, r *http.Request) {
	var in convert.PurchaseRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "record purchase", err)
		return
	}
	userID, err := convert.ParseID(in.UserID, "userId")
	if err != nil {
		s.fail(w, r, "record purchase", err)
		return
	}
	d, err := in.Details()
	if err != nil {
		s.fail(w, r, "record purchase", err)
		return
	}
	p, err := s.svc.Purchases.Record(r.Context(), userID, d)
	if err != nil {
		s.fail(w, r, "record purchase", err)
		return
	}
	writeJSON(w, http.StatusCreated, purchaseResponse{"Purchase successful", p})
}

func (s *Server) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Purchases.ListAll(r.Context())
	if err != nil {
		s.fail(w, r, "list purchases", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUserPurchases(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId", "user id")
	if err != nil {
		s.fail(w, r, "user purchases", err)
		return
	}
	list, err := s.svc.Purchases.ListForUser(r.Context(), userID)
	if err != nil {
		s.fail(w, r, "user purchases", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdatePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "purchase id")
	if err != nil {
		s.fail(w, r, "update purchase", err)
		return
	}
	var in convert.PurchaseRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "update purchase", err)
		return
	}
	d, err := in.Details()
	if err != nil {
		s.fail(w, r, "update purchase", err)
		return
	}
	p, err := s.svc.Purchases.Update(r.Context(), id, d)
	if err != nil {
		s.fail(w, r, "update purchase", err)
		return
	}
	writeJSON(w, http.StatusOK, purchaseResponse{"Purchase updated successfully", p})
}

func (s *Server) handleDeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id", "purchase id")
	if err != nil {
		s.fail(w, r, "delete purchase", err)
		return
	}
	if err := s.svc.Purchases.Delete(r.Context(), id); err != nil {
		s.fail(w, r, "delete purchase", err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{"Purchase deleted successfully"})
}
