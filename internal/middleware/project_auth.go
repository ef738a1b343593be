package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"gorm.io/gorm"
)

// RequireProjectAccess loads the project named by the :id path parameter
// and checks the caller may act on it. A missing project is 404, a client
// looking at someone else's project is 403.
func RequireProjectAccess(repos *repository.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, err := repos.WithContext(c.Request.Context()).Projects.FindByID(c.Param("id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Project not found")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		if err := policy.CanAccessProject(sess, project); err != nil {
			apierrors.Forbidden(c, "You do not have access to this project")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// CurrentProject returns the project loaded by RequireProjectAccess.
func CurrentProject(c *gin.Context) (*models.Project, bool) {
	v, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}
	project, ok := v.(*models.Project)
	return project, ok
}
