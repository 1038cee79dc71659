package handlers

import (
	"errors"
	"net/http"

	"bookcatalog/internal/models"
	"bookcatalog/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListBooks   = "failed to list books"
	msgBookDeleted = "book deleted"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "requestId", c.GetString(ctxKeyRequestID)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// payloadFromContext returns the payload stashed by the validation middleware.
func payloadFromContext(c *gin.Context) models.BookPayload {
	return c.MustGet(ctxKeyPayload).(models.BookPayload)
}

// BookRequest documents the book payload for Swagger.
type BookRequest struct {
	Title  string `json:"title" example:"Laskar Pelangi"`
	Author string `json:"author" example:"Andrea Hirata"`
	// Publication year, 1000..current year
	Year int `json:"publicationYear" example:"2005"`
	// Optional, 10 or 13 decimal digits, unique across the catalog
	ISBN        string `json:"isbn,omitempty" example:"9789793062792"`
	Publisher   string `json:"publisher,omitempty" example:"Bentang Pustaka"`
	Category    string `json:"category,omitempty" example:"novel"`
	Description string `json:"description,omitempty"`
}

// @Summary      List all books
// @Tags         books
// @Produce      json
// @Success      200  {array}   models.Book
// @Failure      500  {object}  map[string]string
// @Router       /books/daftar [get]
func (h *Handler) listBooks(c *gin.Context) {
	books, err := h.services.Books.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListBooks, "books_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// @Summary      Get one book
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book id (24 hex chars)"
// @Success      200  {object}  models.Book
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /books/detail/{id} [get]
func (h *Handler) getBook(c *gin.Context) {
	id := c.Param("id")
	book, err := h.services.Books.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load book", "books_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, book)
}

// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        body  body      BookRequest  true  "Book payload"
// @Success      201   {object}  models.Book
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /books/tambah [post]
// @Security     BearerAuth
func (h *Handler) addBook(c *gin.Context) {
	book, err := h.services.Books.Create(c.Request.Context(), payloadFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrDuplicateISBN) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to add book", "books_add_failed", err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// @Summary      Update a book
// @Description  Applies only the fields present in the body; updatedAt is always refreshed.
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Book id (24 hex chars)"
// @Param        body  body      BookRequest  true  "Partial book payload"
// @Success      200   {object}  models.Book
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /books/ubah/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBook(c *gin.Context) {
	id := c.Param("id")
	book, err := h.services.Books.Update(c.Request.Context(), id, payloadFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateISBN):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to update book", "books_update_failed", err, "id", id)
		}
		return
	}
	c.JSON(http.StatusOK, book)
}

// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book id (24 hex chars)"
// @Success      200  {object}  map[string]string  "message"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /books/hapus/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBook(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.services.Books.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to delete book", "books_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgBookDeleted})
}
