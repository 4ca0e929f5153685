package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(0.001, 2, zerolog.Nop())
	handler := limiter.Middleware(okHandler(nil))

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001").Code)

	w := send("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, model.ErrCodeRateLimited, decodeError(t, w).Error)

	// Other clients keep their own budget.
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000").Code)
}

func TestRateLimiter_SessionKey(t *testing.T) {
	limiter := NewRateLimiter(0.001, 1, zerolog.Nop())
	handler := limiter.Middleware(okHandler(nil))

	first := auth.NewSession(model.RoleCustomer)
	second := auth.NewSession(model.RoleCustomer)

	send := func(s model.Session) int {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.RemoteAddr = "10.0.0.9:5000"
		req = req.WithContext(auth.WithSession(req.Context(), &s))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send(first))
	assert.Equal(t, http.StatusTooManyRequests, send(first))
	assert.Equal(t, http.StatusOK, send(second), "sessions behind one IP are limited separately")
}

func TestRateLimiter_Sweep(t *testing.T) {
	limiter := NewRateLimiter(1, 1, zerolog.Nop())
	limiter.getVisitor("ip:a")
	limiter.getVisitor("ip:b")
	limiter.visitors["ip:a"].lastSeen = time.Now().Add(-time.Hour)

	limiter.sweep(time.Now())

	assert.NotContains(t, limiter.visitors, "ip:a")
	assert.Contains(t, limiter.visitors, "ip:b")
}
