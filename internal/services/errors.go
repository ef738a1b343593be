package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken          = errors.New("an account with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrInvalidResetToken   = errors.New("reset token is invalid or has expired")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRole         = errors.New("role cannot be chosen at signup")
	ErrInvalidStrategist   = errors.New("lead strategist must be an active team member")
	ErrProjectNotFound     = errors.New("project not found")
	ErrPaletteNotFound     = errors.New("palette not found")
	ErrTypographyNotFound  = errors.New("typography not found")
	ErrTypographyMismatch  = errors.New("typography does not belong to this project")
	ErrSnippetNotFound     = errors.New("copy snippet not found")
	ErrPostNotFound        = errors.New("content post not found")
	ErrTaskNotFound        = errors.New("launch task not found")
	ErrPageNotFound        = errors.New("page not found")
	ErrFileNotFound        = errors.New("file not found")
	ErrNotificationMissing = errors.New("notification not found")
	ErrInvalidFileType     = errors.New("file type is not allowed")
	ErrFileTooLarge        = errors.New("file is too large")
	ErrInvalidFolder       = errors.New("folder is not allowed")
	ErrInvalidFilter       = errors.New("invalid filter")
	ErrAINotConfigured     = errors.New("AI copy generation is not configured")
	ErrAINoCopyGenerated   = errors.New("AI did not generate any copy")
)

// notFound maps gorm's missing-row error to the domain error for that
// entity and wraps anything else.
func notFound(err error, domainErr error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
