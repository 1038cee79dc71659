package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcatalog/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.Use(h.requestIDMiddleware)
	r.GET("/secure", h.userIdMiddleware, func(c *gin.Context) {
		uid, _ := c.Get(ctxKeyUserID)
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": uid})
	})
	return r
}

func TestUserIDMiddleware(t *testing.T) {
	type want struct {
		code   int
		errMsg string
	}
	cases := []struct {
		name     string
		header   string
		parseErr error
		want     want
	}{
		{
			name:   "missing header",
			header: "",
			want:   want{code: http.StatusUnauthorized, errMsg: "access token is required"},
		},
		{
			name:   "invalid scheme",
			header: "Token abc",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "bearer without token",
			header: "Bearer",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:     "expired token",
			header:   "Bearer expired",
			parseErr: service.ErrTokenExpired,
			want:     want{code: http.StatusUnauthorized, errMsg: "token has expired"},
		},
		{
			name:     "invalid token",
			header:   "Bearer garbage",
			parseErr: service.ErrInvalidToken,
			want:     want{code: http.StatusForbidden, errMsg: "invalid token"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseID: 9, parseErr: tc.parseErr}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.want.code {
				t.Fatalf("status=%d, want %d (body=%s)", w.Code, tc.want.code, w.Body.String())
			}
			var m map[string]any
			_ = json.Unmarshal(w.Body.Bytes(), &m)
			if m["error"] != tc.want.errMsg {
				t.Fatalf("error=%v, want %q", m["error"], tc.want.errMsg)
			}
		})
	}
}

func TestUserIDMiddleware_AttachesUserID(t *testing.T) {
	auth := &mockAuth{parseID: 9}
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["userId"].(float64)) != 9 {
		t.Fatalf("userId=%v, want 9", m["userId"])
	}
	if auth.lastParseToken != "good-token" {
		t.Fatalf("token not forwarded: %q", auth.lastParseToken)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newMiddlewareOnlyRouter(&service.Service{Authorization: &mockAuth{parseID: 1}})

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer tok")
		r.ServeHTTP(w, req)

		if w.Header().Get(headerRequestID) == "" {
			t.Fatal("expected a generated request id header")
		}
	})

	t.Run("honors a supplied id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		req.Header.Set("Authorization", "Bearer tok")
		req.Header.Set(headerRequestID, "req-123")
		r.ServeHTTP(w, req)

		if got := w.Header().Get(headerRequestID); got != "req-123" {
			t.Fatalf("request id = %q, want req-123", got)
		}
	})
}
