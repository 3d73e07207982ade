package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/and161185/bookstore/internal/errs"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOf maps a service error onto an HTTP status code.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrAlreadyExists),
		errors.Is(err, errs.ErrDuplicateBook):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"error": ...}. Unknown errors are logged and hidden from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.log.Error(op,
			zap.Error(err),
			zap.String("request_id", RequestIDFromCtx(r.Context())),
		)
		writeJSON(w, code, errorBody{Error: "internal server error"})
		return
	}
	writeJSON(w, code, errorBody{Error: err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request payload", errs.ErrValidation)
	}
	return nil
}
