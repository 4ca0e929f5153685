package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie a browser client may carry the session token in.
const CookieName = "session"

// ErrInvalidToken is returned for malformed, expired or tampered tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Claims are the JWT claims of a storefront session.
type Claims struct {
	Role   model.Role `json:"role"`
	CartID string     `json:"cart_id"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 session tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates a session issuer.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewSession returns a fresh session with the given role and a new cart.
func NewSession(role model.Role) model.Session {
	return model.Session{
		ID:     uuid.New(),
		Role:   role,
		CartID: uuid.New(),
	}
}

// Issue signs a token for s.
func (i *Issuer) Issue(s model.Session) (string, error) {
	now := i.now()
	claims := Claims{
		Role:   s.Role,
		CartID: s.CartID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and returns the session it carries.
func (i *Issuer) Parse(tokenString string) (*model.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	cartID, err := uuid.Parse(claims.CartID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad cart id", ErrInvalidToken)
	}
	if claims.Role != model.RoleAdmin && claims.Role != model.RoleCustomer {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return &model.Session{ID: id, Role: claims.Role, CartID: cartID}, nil
}

// ExtractToken reads the session token from the cookie or the
// Authorization bearer header, in that order.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	return ""
}

type contextKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *model.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*model.Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*model.Session)
	return s, ok && s != nil
}
