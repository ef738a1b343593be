package middleware

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"gorm.io/gorm"
)

// RequireAuth resolves the session cookie to an active user and stores the
// caller's auth.Session in the context.
func RequireAuth(repos *repository.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := resolveSession(c, repos)
		if err != nil {
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}
		if sess == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, sess.UserID)
		c.Set(constants.ContextKeySession, *sess)
		c.Next()
	}
}

// OptionalSession resolves the caller when a valid session exists and
// carries on either way.
func OptionalSession(repos *repository.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, err := resolveSession(c, repos); err == nil && sess != nil {
			c.Set(constants.ContextKeyUserID, sess.UserID)
			c.Set(constants.ContextKeySession, *sess)
		}
		c.Next()
	}
}

// resolveSession returns nil without error when the caller is anonymous,
// unknown or deactivated. Stale sessions are cleared.
func resolveSession(c *gin.Context, repos *repository.Repositories) (*auth.Session, error) {
	session := sessions.Default(c)
	userID, ok := session.Get(constants.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return nil, nil
	}

	user, err := repos.WithContext(c.Request.Context()).Users.FindByID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if user == nil || !user.IsActive {
		session.Clear()
		_ = session.Save()
		return nil, nil
	}

	sess := auth.FromUser(user)
	return &sess, nil
}

// CurrentSession returns the caller set by RequireAuth or OptionalSession.
func CurrentSession(c *gin.Context) (auth.Session, bool) {
	v, exists := c.Get(constants.ContextKeySession)
	if !exists {
		return auth.Session{}, false
	}
	sess, ok := v.(auth.Session)
	return sess, ok
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}

// RequireRole rejects callers whose role is not listed. It must run after
// RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if err := policy.RequireRole(sess, roles...); err != nil {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}
