package service

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"bookcatalog/internal/models"
	"bookcatalog/internal/repository"

	"github.com/google/uuid"
)

// Domain errors for catalog flows.
var (
	ErrBookNotFound  = errors.New("book not found")
	ErrDuplicateISBN = errors.New("isbn already exists")
)

// BookService performs catalog CRUD against the books store.
type BookService struct {
	bookRepo repository.Books
}

func NewBookService(repo repository.Books) *BookService {
	return &BookService{bookRepo: repo}
}

// newRecordID returns a 24-hex-character record id derived from a fresh UUID.
func newRecordID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:12])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Create persists the payload as a new book, assigning the record id and both
// timestamps. Payloads reach this point already validated, so the only
// anticipated rejection is an isbn collision.
func (s *BookService) Create(ctx context.Context, p models.BookPayload) (models.Book, error) {
	now := time.Now().UTC().Truncate(time.Second)
	b := models.Book{
		ID:          newRecordID(),
		Title:       deref(p.Title),
		Author:      deref(p.Author),
		ISBN:        deref(p.ISBN),
		Publisher:   deref(p.Publisher),
		Category:    deref(p.Category),
		Description: deref(p.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Year != nil {
		b.Year = *p.Year
	}

	if err := s.bookRepo.Insert(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return models.Book{}, ErrDuplicateISBN
		}
		return models.Book{}, err
	}
	return b, nil
}

// List returns a single snapshot of the whole catalog.
func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	return s.bookRepo.List(ctx)
}

func (s *BookService) GetByID(ctx context.Context, id string) (models.Book, error) {
	b, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return models.Book{}, err
	}
	if b == nil {
		return models.Book{}, ErrBookNotFound
	}
	return *b, nil
}

// Update applies only the fields present in p and refreshes updatedAt, even
// when p is empty. Returns the post-update record.
func (s *BookService) Update(ctx context.Context, id string, p models.BookPayload) (models.Book, error) {
	b, err := s.bookRepo.Update(ctx, id, p, time.Now().UTC().Truncate(time.Second))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return models.Book{}, ErrDuplicateISBN
		}
		return models.Book{}, err
	}
	if b == nil {
		return models.Book{}, ErrBookNotFound
	}
	return *b, nil
}

// Delete removes the book and returns the removed record.
func (s *BookService) Delete(ctx context.Context, id string) (models.Book, error) {
	b, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return models.Book{}, err
	}
	if b == nil {
		return models.Book{}, ErrBookNotFound
	}
	return *b, nil
}
