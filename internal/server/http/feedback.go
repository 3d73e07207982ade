package httpserver

import (
	"net/http"

	"github.com/and161185/bookstore/internal/model"
)

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var in model.Feedback
	if err := decodeJSON(w, r, &in); err != nil {
		s.fail(w, r, "submit feedback", err)
		return
	}
	if _, err := s.svc.Feedback.Submit(r.Context(), in); err != nil {
		s.fail(w, r, "submit feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{"Feedback submitted successfully"})
}

func (s *Server) handleListFeedback(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.Feedback.ListAll(r.Context())
	if err != nil {
		s.fail(w, r, "list feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
