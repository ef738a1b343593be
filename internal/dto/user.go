package dto

import (
	"time"

	"github.com/yukikurage/brand-studio-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID              string                         `json:"id"`
	Email           string                         `json:"email"`
	FullName        string                         `json:"fullName"`
	Role            models.UserRole                `json:"role"`
	IsActive        bool                           `json:"isActive"`
	ProfileImageURL string                         `json:"profileImageUrl,omitempty"`
	Preferences     models.NotificationPreferences `json:"preferences"`
	CreatedAt       time.Time                      `json:"createdAt"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            user.Role,
		IsActive:        user.IsActive,
		ProfileImageURL: user.ProfileImageURL,
		Preferences:     user.NotificationPreferences,
		CreatedAt:       user.CreatedAt,
	}
}
