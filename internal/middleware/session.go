package middleware

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// SessionParser verifies session tokens.
type SessionParser interface {
	Parse(token string) (*model.Session, error)
}

// Session decodes the caller's token, when present and valid, into the
// request context. Invalid tokens are treated as absent.
func Session(parser SessionParser, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			s, err := parser.Parse(token)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("ignoring invalid session token")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), s)))
		})
	}
}

// RequireSession rejects requests without a valid session with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.FromContext(r.Context()); !ok {
			writeError(w, r, http.StatusUnauthorized, model.ErrCodeSessionRequired, model.ErrSessionRequired.Message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without a session with 401 and customer
// sessions with 403.
func RequireAdmin(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := auth.FromContext(r.Context())
			if !ok {
				writeError(w, r, http.StatusUnauthorized, model.ErrCodeSessionRequired, model.ErrSessionRequired.Message)
				return
			}

			if !s.IsAdmin() {
				logger.Warn().
					Str("session_id", s.ID.String()).
					Str("path", r.URL.Path).
					Msg("customer session attempted admin route")
				writeError(w, r, http.StatusForbidden, model.ErrCodeForbidden, model.ErrForbidden.Message)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
