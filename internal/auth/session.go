// Package auth holds the resolved identity of the caller.
package auth

import "github.com/yukikurage/brand-studio-api/internal/models"

// Session is the caller's identity for one request. Handlers pass it to
// services explicitly; nothing reads it from ambient state.
type Session struct {
	UserID   string          `json:"userId"`
	Role     models.UserRole `json:"role"`
	Email    string          `json:"email"`
	FullName string          `json:"fullName"`
}

// FromUser builds a session from a stored user.
func FromUser(u *models.User) Session {
	return Session{
		UserID:   u.ID,
		Role:     u.Role,
		Email:    u.Email,
		FullName: u.FullName,
	}
}

// IsAdmin reports whether the caller holds the ADMIN role.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// IsClient reports whether the caller is an external client.
func (s Session) IsClient() bool {
	return s.Role == models.RoleClient
}
