package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/diagnosis/local-hotel/internal/http/middleware"
)

type countingLimiter struct {
	hits map[string]int
	err  error
}

func (c *countingLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	c.hits[key]++
	return c.hits[key] <= limit, nil
}

func TestRateLimiter(t *testing.T) {
	store := &countingLimiter{hits: map[string]int{}}
	rl := middleware.NewRateLimiter(store, middleware.RateLimitConfig{
		Name: "login", Requests: 2, Window: time.Minute, TrustProxyHeaders: true,
	})
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/api/auth/login", nil)
		req.Header.Set("X-Forwarded-For", ip+", 10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("2.2.2.2"))
	assert.Equal(t, 3, store.hits["login:ip:1.1.1.1"])
}

func TestRateLimiter_IgnoresForwardedHeadersByDefault(t *testing.T) {
	store := &countingLimiter{hits: map[string]int{}}
	rl := middleware.NewRateLimiter(store, middleware.RateLimitConfig{Name: "login", Requests: 2, Window: time.Minute})
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/api/auth/login", nil)
		req.Header.Set("X-Forwarded-For", forwarded)
		req.Header.Set("X-Real-IP", forwarded)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("1.1.1.1"))
	assert.Equal(t, http.StatusOK, send("2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("3.3.3.3"))
	assert.Equal(t, 3, store.hits["login:ip:192.0.2.1"])
	assert.Zero(t, store.hits["login:ip:3.3.3.3"])
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	store := &countingLimiter{err: errors.New("redis down")}
	rl := middleware.NewRateLimiter(store, middleware.RateLimitConfig{Name: "login", Requests: 1, Window: time.Minute})
	h := rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
