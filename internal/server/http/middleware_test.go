package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	if id := RequestIDFromCtx(context.Background()); id != "" {
		t.Fatalf("expected no request id in empty ctx, got %q", id)
	}
	ctx := WithRequestID(context.Background(), "abc")
	if got := RequestIDFromCtx(ctx); got != "abc" {
		t.Fatalf("mismatch: got %q", got)
	}
}

func TestLogging_RecordsRouteStatusAndRequestID(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	r := mux.NewRouter()
	r.Use(Logging(zap.New(core)))

	var seen string
	r.HandleFunc("/books/{id}", func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books/42", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("status passthrough: %d", rec.Code)
	}
	if seen == "" || rec.Header().Get(requestIDHeader) != seen {
		t.Fatalf("request id: ctx=%q header=%q", seen, rec.Header().Get(requestIDHeader))
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("want 1 log line, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["route"] != "/books/{id}" || fields["status"] != int64(http.StatusTeapot) || fields["request_id"] != seen {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestLogging_KeepsIncomingRequestID(t *testing.T) {
	t.Parallel()

	r := mux.NewRouter()
	r.Use(Logging(zaptest.NewLogger(t)))
	r.HandleFunc("/x", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(requestIDHeader, "upstream-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "upstream-1" {
		t.Fatalf("request id not propagated: %q", got)
	}
}

func TestRecover_CatchesPanic(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	r := mux.NewRouter()
	r.Use(Recover(zap.New(core)))
	r.HandleFunc("/panic", func(http.ResponseWriter, *http.Request) { panic("oh no") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
	if logs.FilterMessage("panic").Len() != 1 {
		t.Fatalf("panic not logged")
	}
}
