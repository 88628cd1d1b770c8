package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockStore wires the store over sqlmock so individual statements can
// be forced to fail mid-transaction.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	return New(db, testLogger()), mock
}

// A failure after the cart insert must roll the whole reservation back:
// neither the cart row nor the stock decrement may survive.
func TestReserveRollsBackOnInsertFailure(t *testing.T) {
	s, mock := newMockStore(t)

	boom := errors.New("disk I/O error")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "article"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stock"}).AddRow(1, 5))
	mock.ExpectQuery(`INSERT INTO "cart"`).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := s.ReserveToCart(context.Background(), 1, 3, 29.97, 1)
	require.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A failure on the stock decrement likewise discards the cart insert.
func TestReserveRollsBackOnDecrementFailure(t *testing.T) {
	s, mock := newMockStore(t)

	boom := errors.New("database disk image is malformed")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "article"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stock"}).AddRow(1, 5))
	mock.ExpectQuery(`INSERT INTO "cart"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`UPDATE "article" SET`).
		WillReturnError(boom)
	mock.ExpectRollback()

	_, err := s.ReserveToCart(context.Background(), 1, 3, 29.97, 1)
	require.ErrorIs(t, err, ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Both writes commit together on the happy path.
func TestReserveCommitsBothWrites(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "article"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stock"}).AddRow(1, 5))
	mock.ExpectQuery(`INSERT INTO "cart"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(`UPDATE "article" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entryID, err := s.ReserveToCart(context.Background(), 1, 3, 29.97, 1)
	require.NoError(t, err)
	require.Equal(t, uint(7), entryID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A rejected reservation issues no writes at all.
func TestReserveInsufficientStockIssuesNoWrites(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "article"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "stock"}).AddRow(1, 2))
	mock.ExpectRollback()

	_, err := s.ReserveToCart(context.Background(), 1, 3, 29.97, 1)
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.NoError(t, mock.ExpectationsWereMet())
}
