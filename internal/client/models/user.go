// Package models defines the tracker's client-side domain types and the
// request/response shapes of the backend REST contract.
package models

import (
	"strings"
	"time"
)

// Role is a closed set of account roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole maps a backend role string to a Role. Unknown values are
// reported as invalid and never promoted to any privileged role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// IsValid reports whether r is one of the predefined roles.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is the authenticated identity held by the session.
type User struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	// TokenExpiry comes from the token's exp claim; zero when unknown.
	TokenExpiry time.Time `json:"-"`
}

// Expired reports whether the token backing this identity has expired at now.
func (u User) Expired(now time.Time) bool {
	return !u.TokenExpiry.IsZero() && !now.Before(u.TokenExpiry)
}

// IsAdmin is a convenience for role checks in rendering code.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
