package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "brand_studio_session"
	ContextKeyUserID  = "user_id"
	ContextKeySession = "session"
	ContextKeyProject = "project"
)

// Account rules
const (
	MinPasswordLength  = 8
	ResetTokenBytes    = 32
	ResetTokenLifetime = time.Hour
	SessionMaxAge      = 86400 * 7
)

// Upload limits
const (
	MaxProfileImageSize = 5 << 20
	MaxProjectFileSize  = 25 << 20
)

// List limits
const (
	DefaultPageSize    = 20
	MinPageSize        = 1
	MaxPageSize        = 100
	MaxAIGeneratedCopy = 10
	MaxMessageLength   = 5000
)

// Column widths
const (
	MaxNotificationTitle = 255
)
