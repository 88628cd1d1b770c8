package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	// ErrArticleNotFound is returned when an operation references an
	// article id with no matching row.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInsufficientStock is returned by ReserveToCart when the article
	// has less stock than the requested quantity. Nothing is mutated.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrCredentialMismatch is returned by Authenticate when no user row
	// matches both email and password exactly.
	ErrCredentialMismatch = errors.New("credential mismatch")

	// ErrStorage wraps unrecoverable engine failures (I/O, corruption,
	// constraint violations). Callers can distinguish it with errors.Is.
	ErrStorage = errors.New("storage failure")
)

// Store is the schema-owning data-access object over one embedded SQLite
// database file. It is constructed explicitly and passed to its callers;
// there is no package-level handle.
type Store struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// Open opens (or creates) the database file at path. The connection pool
// is capped at a single connection: SQLite serializes writers anyway, and
// one connection keeps in-memory databases coherent across calls.
func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w (%v)", path, ErrStorage, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB handle: %w (%v)", ErrStorage, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if log == nil {
		log = slog.Default()
	}
	return &Store{DB: db, Log: log}, nil
}

// New wraps an already-open gorm handle. Used by tests that inject their
// own connection.
func New(db *gorm.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{DB: db, Log: log}
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w (%v)", op, ErrStorage, err)
}
