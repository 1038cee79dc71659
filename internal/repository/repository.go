package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"bookcatalog/internal/models"
)

// ErrDuplicateKey marks a UNIQUE-constraint rejection (username or isbn).
// The store is the single arbiter of uniqueness: when two writers race on the
// same key, the second one gets this error.
var ErrDuplicateKey = errors.New("duplicate key")

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// Books persists catalog records. Lookups return (nil, nil) when no record
// has the given id; the service layer translates that into its not-found
// error.
type Books interface {
	Insert(ctx context.Context, b models.Book) error
	List(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	Update(ctx context.Context, id string, p models.BookPayload, updatedAt time.Time) (*models.Book, error)
	Delete(ctx context.Context, id string) (*models.Book, error)
}

type Repository struct {
	Auth  Authorization
	Books Books
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth:  NewUserRepository(db),
		Books: NewBookRepository(db),
	}
}

// isUniqueViolation detects SQLite's UNIQUE rejection without depending on
// driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
