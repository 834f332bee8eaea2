package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"htxagri/internal/auth"
)

func TestAuthRejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Token abc"},
		{name: "scheme only", header: "Bearer"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Auth("secret")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatalf("handler should not be called")
			}))
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected JSON error body, got content type %q", ct)
			}
		})
	}
}

func TestAuthWrongSecret(t *testing.T) {
	token, err := auth.GenerateToken("other-secret", "user-1", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	handler := Auth("secret")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatalf("handler should not be called")
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	token, err := auth.GenerateToken("secret", "user-1", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	called := false
	handler := Auth("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok || userID != "user-1" {
			t.Fatalf("expected user-1 in context, got %q (ok=%v)", userID, ok)
		}
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || !called {
		t.Fatalf("expected wrapped handler to run, got %d", rr.Code)
	}
}

func TestBearerToken(t *testing.T) {
	if token, ok := BearerToken("Bearer abc123"); !ok || token != "abc123" {
		t.Fatalf("expected abc123, got %q (ok=%v)", token, ok)
	}
	if token, ok := BearerToken("bearer abc123"); !ok || token != "abc123" {
		t.Fatalf("scheme match must be case-insensitive, got %q (ok=%v)", token, ok)
	}
	if _, ok := BearerToken("Basic abc123"); ok {
		t.Fatalf("expected rejection of non-bearer scheme")
	}
	if _, ok := BearerToken(""); ok {
		t.Fatalf("expected rejection of empty header")
	}
}
