package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pitchcraft/internal/domain/models"
	"pitchcraft/internal/httputil"

	"github.com/golang-jwt/jwt/v5"
)

// stubVerifier accepts exactly one token and maps it to a fixed user id
type stubVerifier struct {
	token  string
	userID string
}

func (s *stubVerifier) VerifyToken(token string) (*models.AuthClaims, error) {
	if token != s.token {
		return nil, errors.New("bad token")
	}
	return &models.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: s.userID},
	}, nil
}

func (s *stubVerifier) Close() error { return nil }

func TestAuthMiddleware(t *testing.T) {
	verifier := &stubVerifier{token: "good-token", userID: "user-123"}

	var gotUserID string
	var handlerCalled bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		gotUserID = httputil.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
	protected := AuthMiddleware(verifier)(next)

	t.Run("missing header", func(t *testing.T) {
		handlerCalled = false
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest("GET", "/api/proposals", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if handlerCalled {
			t.Error("handler ran without credentials")
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		handlerCalled = false
		req := httptest.NewRequest("GET", "/api/proposals", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if handlerCalled {
			t.Error("handler ran with a non-bearer header")
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		handlerCalled = false
		req := httptest.NewRequest("GET", "/api/proposals", nil)
		req.Header.Set("Authorization", "Bearer forged")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if handlerCalled {
			t.Error("handler ran with an invalid token")
		}
	})

	t.Run("valid token attaches user id", func(t *testing.T) {
		handlerCalled = false
		req := httptest.NewRequest("GET", "/api/proposals", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if !handlerCalled {
			t.Fatal("handler not called")
		}
		if gotUserID != "user-123" {
			t.Errorf("user id = %q, want user-123", gotUserID)
		}
	})

	t.Run("health check bypasses auth", func(t *testing.T) {
		handlerCalled = false
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if !handlerCalled {
			t.Error("health check blocked by auth")
		}
	})
}
