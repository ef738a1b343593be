package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"github.com/yukikurage/brand-studio-api/internal/validation"
)

// UserHandler serves account settings.
type UserHandler struct {
	userService *services.UserService
	validator   *validation.Validator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, validator *validation.Validator) *UserHandler {
	return &UserHandler{userService: userService, validator: validator}
}

// Deactivate deactivates the caller's own account and ends the session.
func (h *UserHandler) Deactivate(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), sess); err != nil {
		respondError(c, err)
		return
	}

	if err := clearSession(c); err != nil {
		_ = c.Error(err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated"})
}

// DeactivateUser lets an admin deactivate another account.
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), sess, c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}

	if c.Param("userId") == sess.UserID {
		if err := clearSession(c); err != nil {
			_ = c.Error(err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}

// GetPreferences returns the caller's notification preferences.
func (h *UserHandler) GetPreferences(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	prefs, err := h.userService.GetPreferences(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// UpdatePreferences changes only the switches present in the body.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	type PreferencesRequest struct {
		NotifyEmailUpdates    *bool `json:"notifyEmailUpdates"`
		NotifyProjectActivity *bool `json:"notifyProjectActivity"`
		NotifyNewMessages     *bool `json:"notifyNewMessages"`
		NotifyWeeklyDigest    *bool `json:"notifyWeeklyDigest"`
	}

	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req PreferencesRequest
	if apiErr := h.validator.BindPatch(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	prefs, err := h.userService.UpdatePreferences(c.Request.Context(), sess, services.PreferencesPatch{
		NotifyEmailUpdates:    req.NotifyEmailUpdates,
		NotifyProjectActivity: req.NotifyProjectActivity,
		NotifyNewMessages:     req.NotifyNewMessages,
		NotifyWeeklyDigest:    req.NotifyWeeklyDigest,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Preferences updated",
		"preferences": prefs,
	})
}

// UploadProfileImage replaces the caller's profile image.
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	upload, file, ok := formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	stored, err := h.userService.UploadProfileImage(c.Request.Context(), sess, upload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":         stored.URL,
		"fileId":      stored.ID,
		"webViewLink": stored.URL,
	})
}
