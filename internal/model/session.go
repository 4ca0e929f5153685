package model

import "github.com/google/uuid"

// Role distinguishes the admin view from the customer view.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Session is the authenticated caller carried through the request context.
type Session struct {
	ID     uuid.UUID `json:"id"`
	Role   Role      `json:"role"`
	CartID uuid.UUID `json:"cartId"`
}

// IsAdmin reports whether the session may use admin routes.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// SessionResponse is returned when a session token is issued.
type SessionResponse struct {
	Token   string  `json:"token"`
	Session Session `json:"session"`
}
