package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookcatalog/internal/models"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

var _ Books = (*BookRepository)(nil)

const (
	insertBookSQL = `INSERT INTO books (id, title, author, year, isbn, publisher, category, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	selectBooksSQL    = `SELECT id, title, author, year, isbn, publisher, category, description, created_at, updated_at FROM books`
	selectBookByIDSQL = selectBooksSQL + ` WHERE id = ?`
	deleteBookSQL     = `DELETE FROM books WHERE id = ?`

	// SQLite TIMESTAMP format
	timestampLayout = "2006-01-02 15:04:05"
)

// nullable maps an empty string to NULL. Used for isbn so the UNIQUE index
// skips books without one, and for the other optional columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Insert stores a fully-populated book record. An isbn collision is reported
// as ErrDuplicateKey.
func (r *BookRepository) Insert(ctx context.Context, b models.Book) error {
	_, err := r.db.ExecContext(ctx, insertBookSQL,
		b.ID,
		b.Title,
		b.Author,
		b.Year,
		nullable(b.ISBN),
		nullable(b.Publisher),
		nullable(b.Category),
		nullable(b.Description),
		b.CreatedAt.UTC().Format(timestampLayout),
		b.UpdatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert book %q: %w", b.ID, ErrDuplicateKey)
		}
		return fmt.Errorf("insert book %q: %w", b.ID, err)
	}
	return nil
}

// List returns every book in insertion order (rowid order for SQLite).
func (r *BookRepository) List(ctx context.Context) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, selectBooksSQL)
	if err != nil {
		return nil, fmt.Errorf("select books: %w", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0, 16)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return out, nil
}

// GetByID fetches one book. Returns (nil, nil) if no record has the id.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	row := r.db.QueryRowContext(ctx, selectBookByIDSQL, id)
	b, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select book %q: %w", id, err)
	}
	return &b, nil
}

// Update applies only the fields present in p and always rewrites updated_at,
// so an empty partial payload still refreshes the timestamp. Returns the
// post-update record, or (nil, nil) if no record has the id.
func (r *BookRepository) Update(ctx context.Context, id string, p models.BookPayload, updatedAt time.Time) (*models.Book, error) {
	set := []string{"updated_at = ?"}
	args := []any{updatedAt.UTC().Format(timestampLayout)}

	if p.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Author != nil {
		set = append(set, "author = ?")
		args = append(args, *p.Author)
	}
	if p.Year != nil {
		set = append(set, "year = ?")
		args = append(args, *p.Year)
	}
	if p.ISBN != nil {
		set = append(set, "isbn = ?")
		args = append(args, nullable(*p.ISBN))
	}
	if p.Publisher != nil {
		set = append(set, "publisher = ?")
		args = append(args, nullable(*p.Publisher))
	}
	if p.Category != nil {
		set = append(set, "category = ?")
		args = append(args, nullable(*p.Category))
	}
	if p.Description != nil {
		set = append(set, "description = ?")
		args = append(args, nullable(*p.Description))
	}
	args = append(args, id)

	q := "UPDATE books SET " + strings.Join(set, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("update book %q: %w", id, ErrDuplicateKey)
		}
		return nil, fmt.Errorf("update book %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected for book %q: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes a book and returns the removed record, or (nil, nil) if no
// record has the id.
func (r *BookRepository) Delete(ctx context.Context, id string) (*models.Book, error) {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	if _, err := r.db.ExecContext(ctx, deleteBookSQL, id); err != nil {
		return nil, fmt.Errorf("delete book %q: %w", id, err)
	}
	return b, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBook(sc scanner) (models.Book, error) {
	var (
		b           models.Book
		isbn        sql.NullString
		publisher   sql.NullString
		category    sql.NullString
		description sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := sc.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &isbn, &publisher, &category, &description, &createdAt, &updatedAt); err != nil {
		return models.Book{}, err
	}
	b.ISBN = isbn.String
	b.Publisher = publisher.String
	b.Category = category.String
	b.Description = description.String
	b.CreatedAt = createdAt.UTC()
	b.UpdatedAt = updatedAt.UTC()
	return b, nil
}
