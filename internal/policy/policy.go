// Package policy holds the role and ownership rules applied after a caller
// is authenticated and before anything is mutated.
package policy

import (
	"errors"
	"strings"

	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/models"
)

var (
	// ErrForbidden denies a caller that is known but not allowed.
	ErrForbidden = errors.New("access denied")
	// ErrHidden denies in a 404 shape so the resource's existence does not leak.
	ErrHidden = errors.New("resource not found")
	// ErrLastAdmin blocks deactivating the only remaining active admin.
	ErrLastAdmin = errors.New("cannot deactivate the last active admin")
)

// RequireRole allows the caller only when they hold one of roles.
func RequireRole(sess auth.Session, roles ...models.UserRole) error {
	for _, r := range roles {
		if sess.Role == r {
			return nil
		}
	}
	return ErrForbidden
}

// IsTeam reports whether the caller belongs to the internal team.
func IsTeam(sess auth.Session) bool {
	return !sess.IsClient()
}

// RequireTeam rejects clients.
func RequireTeam(sess auth.Session) error {
	if !IsTeam(sess) {
		return ErrForbidden
	}
	return nil
}

// CanAccessProject lets clients act only on projects created under their
// email address. Team members are unrestricted.
func CanAccessProject(sess auth.Session, project *models.Project) error {
	if !sess.IsClient() {
		return nil
	}
	if strings.EqualFold(project.CreatorEmail, sess.Email) {
		return nil
	}
	return ErrForbidden
}

// OwnsNotification allows only the recipient to touch a notification.
func OwnsNotification(sess auth.Session, n *models.Notification) error {
	if n.UserID != sess.UserID {
		return ErrHidden
	}
	return nil
}

// CanDeactivate guards the last active admin. activeAdmins is the number
// of active ADMIN accounts including target.
func CanDeactivate(target *models.User, activeAdmins int64) error {
	if target.Role == models.RoleAdmin && target.IsActive && activeAdmins <= 1 {
		return ErrLastAdmin
	}
	return nil
}
