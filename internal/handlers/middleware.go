package handlers

import (
	"errors"
	"net/http"
	"strings"

	"bookcatalog/internal/models"
	"bookcatalog/internal/service"
	"bookcatalog/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gin context keys set by the middlewares below.
const (
	ctxKeyUserID    = "userId"
	ctxKeyRequestID = "requestId"
	ctxKeyPayload   = "bookPayload"
)

const headerRequestID = "X-Request-ID"

// requestIDMiddleware tags every request with an id for log correlation,
// honoring an id supplied by the caller.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	rid := c.GetHeader(headerRequestID)
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Set(ctxKeyRequestID, rid)
	c.Writer.Header().Set(headerRequestID, rid)
	c.Next()
}

// userIdMiddleware gates protected routes on a bearer token. A missing token
// is 401, an expired one 401, anything that fails verification 403. On
// success the embedded user id is stored on the context.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "access token is required",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has expired"})
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
		return
	}

	c.Set(ctxKeyUserID, userID)
	c.Next()
}

// validateBookID rejects path ids that don't have the 24-hex record-id shape
// before any lookup happens.
func (h *Handler) validateBookID(c *gin.Context) {
	if !validation.ValidRecordID(c.Param("id")) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "invalid book id",
		})
		return
	}
	c.Next()
}

// bindPayload reads the request body into a BookPayload, rejecting malformed
// JSON or mistyped fields with a 400.
func (h *Handler) bindPayload(c *gin.Context) (models.BookPayload, bool) {
	var p models.BookPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		if h.log != nil {
			h.log.Infow("book_bad_request_body", "err", err, "requestId", c.GetString(ctxKeyRequestID))
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return models.BookPayload{}, false
	}
	return p, true
}

// validateNewBook runs full validation and stashes the accepted payload on
// the context for the handler.
func (h *Handler) validateNewBook(c *gin.Context) {
	p, ok := h.bindPayload(c)
	if !ok {
		return
	}
	if res := validation.ValidateNewBook(p); !res.OK {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  res.Errors,
		})
		return
	}
	c.Set(ctxKeyPayload, p)
	c.Next()
}

// validateBookUpdate runs partial validation for update payloads.
func (h *Handler) validateBookUpdate(c *gin.Context) {
	p, ok := h.bindPayload(c)
	if !ok {
		return
	}
	if res := validation.ValidateBookUpdate(p); !res.OK {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"errors":  res.Errors,
		})
		return
	}
	c.Set(ctxKeyPayload, p)
	c.Next()
}
