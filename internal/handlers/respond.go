package handlers

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/middleware"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/policy"
	"github.com/yukikurage/brand-studio-api/internal/services"
)

// respondError maps a service error onto the API error taxonomy. Errors it
// does not recognise are attached to the context for the request logger
// and answered with an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, apierrors.StatusFor(apierrors.ErrCodeInvalidCredentials),
			apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error()))
	case errors.Is(err, services.ErrWrongPassword):
		apierrors.Unauthorized(c, err.Error())

	case errors.Is(err, policy.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrAccountDeactivated),
		errors.Is(err, services.ErrTypographyMismatch):
		apierrors.Forbidden(c, err.Error())

	case errors.Is(err, policy.ErrHidden),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrPaletteNotFound),
		errors.Is(err, services.ErrTypographyNotFound),
		errors.Is(err, services.ErrSnippetNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrPageNotFound),
		errors.Is(err, services.ErrFileNotFound),
		errors.Is(err, services.ErrNotificationMissing):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, policy.ErrLastAdmin):
		apierrors.InvalidOperation(c, err.Error())

	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrFileTooLarge):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidResetToken),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrInvalidStrategist),
		errors.Is(err, services.ErrInvalidFileType),
		errors.Is(err, services.ErrInvalidFolder),
		errors.Is(err, services.ErrInvalidFilter):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrAINotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())

	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

// requireSession returns the caller stored by RequireAuth, answering 401
// when the route was mounted without it.
func requireSession(c *gin.Context) (auth.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
	}
	return sess, ok
}

// requireProject returns the project loaded by RequireProjectAccess.
func requireProject(c *gin.Context) (auth.Session, *models.Project, bool) {
	sess, ok := requireSession(c)
	if !ok {
		return sess, nil, false
	}
	project, ok := middleware.CurrentProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return sess, nil, false
	}
	return sess, project, true
}

// formFile opens the multipart "file" field. The caller closes the file.
func formFile(c *gin.Context) (services.Upload, multipart.File, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "A file is required in the \"file\" field")
		return services.Upload{}, nil, false
	}

	file, err := header.Open()
	if err != nil {
		apierrors.BadRequest(c, "Uploaded file could not be read")
		return services.Upload{}, nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(header.Filename)); byExt != "" {
			contentType = byExt
		}
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	return services.Upload{
		Filename:    filepath.Base(header.Filename),
		ContentType: contentType,
		Size:        header.Size,
		Body:        file,
	}, file, true
}
