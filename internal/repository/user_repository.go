package repository

import (
	"strings"
	"time"

	"github.com/yukikurage/brand-studio-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	user.Email = normalizeEmail(user.Email)
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByResetTokenHash finds the user holding an unexpired reset token
func (r *GormUserRepository) FindByResetTokenHash(hash string, now time.Time) (*models.User, error) {
	var user models.User
	if err := r.db.
		Where("reset_token_hash = ? AND reset_token_expiry > ?", hash, now).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateColumns writes only the given columns
func (r *GormUserRepository) UpdateColumns(id string, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(columns).Error
}

// CountActiveAdmins counts active ADMIN accounts
func (r *GormUserRepository) CountActiveAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleAdmin, true).
		Count(&count).Error
	return count, err
}

// Deactivate flips isActive off
func (r *GormUserRepository) Deactivate(id string, at time.Time) (bool, error) {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":      false,
			"deactivated_at": at,
		})
	return result.RowsAffected > 0, result.Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
