package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestSQLiteRepository_GetError(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectQuery(`SELECT value FROM kv WHERE key = \?`).
		WithArgs("agrilink_users").
		WillReturnError(errors.New("disk I/O error"))

	_, err := r.Get(context.Background(), "agrilink_users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get kv[agrilink_users]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_SetError(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO kv`).
		WithArgs("k", []byte("v")).
		WillReturnError(errors.New("readonly database"))

	err := r.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set kv[k]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_ListScanError(t *testing.T) {
	r, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"key"}).AddRow("only-one-column")
	mock.ExpectQuery(`SELECT key, value FROM kv`).WillReturnRows(rows)

	_, err := r.List(context.Background())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteRepository_DeleteAndClearErrors(t *testing.T) {
	r, mock := newMock(t)
	mock.ExpectExec(`DELETE FROM kv WHERE key = \?`).WithArgs("k").WillReturnError(errors.New("boom"))
	mock.ExpectExec(`DELETE FROM kv`).WillReturnError(errors.New("boom"))

	require.Error(t, r.Delete(context.Background(), "k"))
	require.Error(t, r.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
