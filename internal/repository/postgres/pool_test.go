package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/and161185/bookstore/internal/errs"
	"github.com/and161185/bookstore/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

var (
	_ repository.AccountRepository  = (*AccountRepo)(nil)
	_ repository.CatalogRepository  = (*CatalogRepo)(nil)
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.AddressRepository  = (*AddressRepo)(nil)
	_ repository.FeedbackRepository = (*FeedbackRepo)(nil)
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, mock.ExpectationsWereMet()) })
	return &DB{Pool: mock}, mock
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("boom")))
	require.False(t, isUniqueViolation(nil))
}

func TestNotFound(t *testing.T) {
	require.ErrorIs(t, notFound(pgx.ErrNoRows, "x"), errs.ErrNotFound)
	other := errors.New("conn reset")
	require.Equal(t, other, notFound(other, "x"))
	require.ErrorIs(t, notFound(context.Canceled, "x"), context.Canceled)
}

func TestDecodeDoc_Malformed(t *testing.T) {
	_, err := decodeDoc[struct{ A int }]([]byte("{"))
	require.ErrorContains(t, err, "decode document")
}
