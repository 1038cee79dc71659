package service

import (
	"context"

	"bookcatalog/internal/config"
	"bookcatalog/internal/models"
	"bookcatalog/internal/repository"
)

// Authorization covers registration, login and token verification.
type Authorization interface {
	Register(username, password string) (string, error)
	Login(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Books exposes the catalog CRUD operations.
type Books interface {
	Create(ctx context.Context, p models.BookPayload) (models.Book, error)
	List(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id string) (models.Book, error)
	Update(ctx context.Context, id string, p models.BookPayload) (models.Book, error)
	Delete(ctx context.Context, id string) (models.Book, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Books
}

// NewService wires the repository layer into concrete services. Token signing
// parameters come from the config struct built once at startup.
func NewService(repos *repository.Repository, cfg *config.Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, cfg.JWTSecret, cfg.TokenTTL),
		Books:         NewBookService(repos.Books),
	}
}
