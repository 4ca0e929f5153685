package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "handler-test-secret-0123456789abcdef"
	testAdminKey = "admin-key-for-tests"
)

func newSessionHandler() (*SessionHandler, *auth.Issuer) {
	issuer := auth.NewIssuer(testSecret, time.Hour)
	return NewSessionHandler(issuer, testAdminKey, time.Hour, zerolog.Nop()), issuer
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) model.SessionResponse {
	t.Helper()
	var resp model.SessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestSessionHandler_Create(t *testing.T) {
	h, issuer := newSessionHandler()

	t.Run("new customer session", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Create(w, httptest.NewRequest(http.MethodPost, "/api/session", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		resp := decodeSession(t, w)
		assert.Equal(t, model.RoleCustomer, resp.Session.Role)

		parsed, err := issuer.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.Session.CartID, parsed.CartID)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("refresh keeps cart", func(t *testing.T) {
		existing := auth.NewSession(model.RoleCustomer)
		w := httptest.NewRecorder()
		h.Create(w, withSession(httptest.NewRequest(http.MethodPost, "/api/session", nil), existing))

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeSession(t, w)
		assert.Equal(t, existing.CartID, resp.Session.CartID)
		assert.Equal(t, existing.ID, resp.Session.ID)
	})

	t.Run("refresh downgrades admin", func(t *testing.T) {
		existing := auth.NewSession(model.RoleAdmin)
		w := httptest.NewRecorder()
		h.Create(w, withSession(httptest.NewRequest(http.MethodPost, "/api/session", nil), existing))

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeSession(t, w)
		assert.Equal(t, model.RoleCustomer, resp.Session.Role)
		assert.Equal(t, existing.CartID, resp.Session.CartID)
		assert.NotEqual(t, existing.ID, resp.Session.ID)

		parsed, err := issuer.Parse(resp.Token)
		require.NoError(t, err)
		assert.False(t, parsed.IsAdmin())
	})
}

func TestSessionHandler_AdminLogin(t *testing.T) {
	h, _ := newSessionHandler()

	tests := []struct {
		name           string
		key            string
		expectedStatus int
	}{
		{name: "valid key", key: testAdminKey, expectedStatus: http.StatusOK},
		{name: "wrong key", key: "guess", expectedStatus: http.StatusUnauthorized},
		{name: "missing key", key: "", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			customer := auth.NewSession(model.RoleCustomer)
			req := withSession(httptest.NewRequest(http.MethodPost, "/api/session/admin", nil), customer)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			w := httptest.NewRecorder()

			h.AdminLogin(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				resp := decodeSession(t, w)
				assert.Equal(t, model.RoleAdmin, resp.Session.Role)
				assert.Equal(t, customer.CartID, resp.Session.CartID)
			} else {
				assert.Equal(t, model.ErrCodeInvalidCredential, decodeError(t, w).Error)
			}
		})
	}
}

func TestSessionHandler_AdminLogout(t *testing.T) {
	h, _ := newSessionHandler()

	admin := auth.NewSession(model.RoleAdmin)
	w := httptest.NewRecorder()
	h.AdminLogout(w, withSession(httptest.NewRequest(http.MethodDelete, "/api/session/admin", nil), admin))

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeSession(t, w)
	assert.Equal(t, model.RoleCustomer, resp.Session.Role)
	assert.Equal(t, admin.CartID, resp.Session.CartID)

	w = httptest.NewRecorder()
	h.AdminLogout(w, httptest.NewRequest(http.MethodDelete, "/api/session/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
