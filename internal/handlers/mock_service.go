package handlers

import (
	"context"

	"bookcatalog/internal/models"
	"bookcatalog/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	parseID       int
	parseErr      error

	lastRegisterUsername string
	lastRegisterPassword string
	lastLoginUsername    string
	lastLoginPassword    string
	lastParseToken       string
}

func (m *mockAuth) Register(username, password string) (string, error) {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerToken, m.registerErr
}

func (m *mockAuth) Login(username, password string) (string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockBooks struct {
	createBook models.Book
	createErr  error
	listResp   []models.Book
	listErr    error
	getBook    models.Book
	getErr     error
	updateBook models.Book
	updateErr  error
	deleteBook models.Book
	deleteErr  error

	lastCreatePayload models.BookPayload
	lastGetID         string
	lastUpdateID      string
	lastUpdatePayload models.BookPayload
	lastDeleteID      string
}

func (m *mockBooks) Create(ctx context.Context, p models.BookPayload) (models.Book, error) {
	m.lastCreatePayload = p
	return m.createBook, m.createErr
}

func (m *mockBooks) List(ctx context.Context) ([]models.Book, error) {
	return m.listResp, m.listErr
}

func (m *mockBooks) GetByID(ctx context.Context, id string) (models.Book, error) {
	m.lastGetID = id
	return m.getBook, m.getErr
}

func (m *mockBooks) Update(ctx context.Context, id string, p models.BookPayload) (models.Book, error) {
	m.lastUpdateID = id
	m.lastUpdatePayload = p
	return m.updateBook, m.updateErr
}

func (m *mockBooks) Delete(ctx context.Context, id string) (models.Book, error) {
	m.lastDeleteID = id
	return m.deleteBook, m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
