package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleClient     UserRole = "CLIENT"
	RoleCreator    UserRole = "CREATOR"
	RoleStrategist UserRole = "STRATEGIST"
	RoleDesigner   UserRole = "DESIGNER"
	RoleCopywriter UserRole = "COPYWRITER"
	RoleDeveloper  UserRole = "DEVELOPER"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleCreator, RoleStrategist, RoleDesigner, RoleCopywriter, RoleDeveloper:
		return true
	}
	return false
}

type User struct {
	Base
	Email            string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName         string     `gorm:"type:varchar(100);not null" json:"fullName"`
	Role             UserRole   `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive         bool       `gorm:"not null;index" json:"isActive"`
	PasswordHash     string     `gorm:"type:varchar(255);not null" json:"-"`
	ResetTokenHash   *string    `gorm:"type:varchar(64);index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	ProfileImageURL  string     `gorm:"type:varchar(512)" json:"profileImageUrl"`
	DeactivatedAt    *time.Time `json:"deactivatedAt,omitempty"`

	NotificationPreferences
}

// NotificationPreferences are the per-user delivery switches.
type NotificationPreferences struct {
	NotifyEmailUpdates    bool `gorm:"not null" json:"notifyEmailUpdates"`
	NotifyProjectActivity bool `gorm:"not null" json:"notifyProjectActivity"`
	NotifyNewMessages     bool `gorm:"not null" json:"notifyNewMessages"`
	NotifyWeeklyDigest    bool `gorm:"not null" json:"notifyWeeklyDigest"`
}

// DefaultNotificationPreferences is what every new account starts with.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		NotifyEmailUpdates:    true,
		NotifyProjectActivity: true,
		NotifyNewMessages:     true,
		NotifyWeeklyDigest:    true,
	}
}
