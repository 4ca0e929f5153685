package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionHandler issues session tokens and switches between the customer
// and admin roles.
type SessionHandler struct {
	issuer   *auth.Issuer
	adminKey string
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(issuer *auth.Issuer, adminKey string, ttl time.Duration, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		issuer:   issuer,
		adminKey: adminKey,
		ttl:      ttl,
		logger:   logger.With().Str("handler", "session").Logger(),
	}
}

// Create handles POST /api/session requests. A caller presenting a valid
// token gets a customer session for the same cart; anyone else gets a new
// customer session. Admin rights are only granted by AdminLogin.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	s := auth.NewSession(model.RoleCustomer)
	status := http.StatusCreated
	if current, ok := auth.FromContext(r.Context()); ok {
		s = *current
		status = http.StatusOK
		if current.IsAdmin() {
			s = model.Session{ID: uuid.New(), Role: model.RoleCustomer, CartID: current.CartID}
			h.logger.Info().Str("session_id", current.ID.String()).Msg("admin session downgraded on refresh")
		}
	}

	h.issue(w, r, status, s)
}

// AdminLogin handles POST /api/session/admin requests. The X-API-Key header
// must match the configured admin key.
func (h *SessionHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	provided := r.Header.Get("X-API-Key")
	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(h.adminKey)) != 1 {
		h.logger.Warn().
			Str("remote_addr", r.RemoteAddr).
			Bool("key_present", provided != "").
			Msg("rejected admin login")
		writeError(w, r, http.StatusUnauthorized, model.ErrCodeInvalidCredential, model.ErrInvalidCredential.Message, h.logger)
		return
	}

	cartID := uuid.New()
	if current, ok := auth.FromContext(r.Context()); ok {
		cartID = current.CartID
	}

	s := model.Session{ID: uuid.New(), Role: model.RoleAdmin, CartID: cartID}
	h.logger.Info().Str("session_id", s.ID.String()).Msg("admin session issued")
	h.issue(w, r, http.StatusOK, s)
}

// AdminLogout handles DELETE /api/session/admin requests by returning a
// customer session for the same cart.
func (h *SessionHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	current, ok := requireSession(w, r, h.logger)
	if !ok {
		return
	}

	s := model.Session{ID: uuid.New(), Role: model.RoleCustomer, CartID: current.CartID}
	h.issue(w, r, http.StatusOK, s)
}

func (h *SessionHandler) issue(w http.ResponseWriter, r *http.Request, status int, s model.Session) {
	token, err := h.issuer.Issue(s)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, status, model.SessionResponse{Token: token, Session: s})
}
