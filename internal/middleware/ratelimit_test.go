package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddleware_GeneralWithinBudget(t *testing.T) {
	mw := NewRateLimitMiddleware(1000, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Handler(nextHandler)

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/api/v1/hosts", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestRateLimitMiddleware_LimitedAuth(t *testing.T) {
	mw := NewRateLimitMiddleware(1000, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Handler(nextHandler)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("POST", "/api/v1/auth/login", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	var limited bool
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/auth/login", nil))
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
			break
		}
	}
	assert.True(t, limited, "auth endpoint should rate limit")
}

func TestRateLimitMiddleware_PerClientIsolation(t *testing.T) {
	mw := NewRateLimitMiddleware(1000, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Handler(nextHandler)

	reqA := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	reqA.Header.Set("X-Forwarded-For", "10.0.0.1")
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, reqA)
	}

	reqB := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	reqB.Header.Set("X-Forwarded-For", "10.0.0.2")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, reqB)
	assert.Equal(t, http.StatusOK, rec.Code, "a different client should have its own budget")
}
