package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/brand-studio-api/internal/activity"
	"github.com/yukikurage/brand-studio-api/internal/auth"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	"github.com/yukikurage/brand-studio-api/internal/email"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/repository"
	"github.com/yukikurage/brand-studio-api/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	repos    *repository.Repositories
	activity *ActivityService
	mailer   email.Sender
	baseURL  string
	log      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(repos *repository.Repositories, activitySvc *ActivityService, mailer email.Sender, baseURL string, log *zap.Logger) *AuthService {
	return &AuthService{
		repos:    repos,
		activity: activitySvc,
		mailer:   mailer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	FullName string
	Email    string
	Password string
	Role     models.UserRole
}

// Signup creates a CLIENT or CREATOR account and sends the welcome email.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	role := input.Role
	if role == "" {
		role = models.RoleClient
	}
	if role != models.RoleClient && role != models.RoleCreator {
		return nil, ErrInvalidRole
	}

	user, err := s.createUser(ctx, input.FullName, input.Email, input.Password, role)
	if err != nil {
		return nil, err
	}

	s.mailer.Send(ctx, email.TemplateWelcome, user.Email, map[string]interface{}{
		"FullName": user.FullName,
		"LoginURL": s.baseURL + "/login",
	})
	return user, nil
}

// CreateAdmin bootstraps an ADMIN account. Signup never grants ADMIN.
func (s *AuthService) CreateAdmin(ctx context.Context, fullName, emailAddr, password string) (*models.User, error) {
	return s.createUser(ctx, fullName, emailAddr, password, models.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, fullName, emailAddr, password string, role models.UserRole) (*models.User, error) {
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:                   strings.TrimSpace(emailAddr),
		FullName:                strings.TrimSpace(fullName),
		Role:                    role,
		IsActive:                true,
		PasswordHash:            hashed,
		NotificationPreferences: models.DefaultNotificationPreferences(),
	}

	err = s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		if _, err := tx.Users.FindByEmail(user.Email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}

		if err := tx.Users.Create(user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		_, err := s.activity.Record(tx, nil, user.ID,
			activity.UserSignedUp{UserID: user.ID, Role: string(user.Role)},
			fmt.Sprintf("%s signed up as %s", user.FullName, user.Role))
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.repos.WithContext(ctx).Users.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repos.WithContext(ctx).Users.FindByID(id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound, "find user")
	}
	return user, nil
}

// ForgotPassword issues a reset token for an active account and emails it.
// Unknown and inactive addresses are ignored without error so callers can
// answer identically either way.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	repos := s.repos.WithContext(ctx)

	user, err := repos.Users.FindByEmail(emailAddr)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil
	}

	token, err := utils.GenerateToken(constants.ResetTokenBytes)
	if err != nil {
		return err
	}
	hash := utils.HashToken(token)
	expiry := time.Now().UTC().Add(constants.ResetTokenLifetime)

	if err := repos.Users.UpdateColumns(user.ID, map[string]interface{}{
		"reset_token_hash":   hash,
		"reset_token_expiry": expiry,
	}); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if !s.mailer.Send(ctx, email.TemplatePasswordReset, user.Email, map[string]interface{}{
		"FullName":  user.FullName,
		"ResetURL":  fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token),
		"ExpiresIn": "1 hour",
	}) {
		s.log.Warn("password reset email not sent", zap.String("user_id", user.ID))
	}
	return nil
}

// ResetPassword swaps the password of the account holding token and
// invalidates the token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}

	var user *models.User
	err = s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		user, err = tx.Users.FindByResetTokenHash(utils.HashToken(token), time.Now().UTC())
		if err != nil {
			return notFound(err, ErrInvalidResetToken, "find reset token")
		}

		if err := tx.Users.UpdateColumns(user.ID, map[string]interface{}{
			"password_hash":      hashed,
			"reset_token_hash":   nil,
			"reset_token_expiry": nil,
		}); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		_, err := s.activity.Record(tx, nil, user.ID, activity.PasswordReset{UserID: user.ID},
			fmt.Sprintf("%s reset their password", user.FullName))
		return err
	})
	if err != nil {
		return err
	}

	s.sendPasswordChanged(ctx, user)
	return nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, sess auth.Session, current, next string) error {
	hashed, err := hashPassword(next)
	if err != nil {
		return err
	}

	var user *models.User
	err = s.repos.WithContext(ctx).Transaction(func(tx *repository.Repositories) error {
		user, err = tx.Users.FindByID(sess.UserID)
		if err != nil {
			return notFound(err, ErrUserNotFound, "find user")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
			return ErrWrongPassword
		}

		if err := tx.Users.UpdateColumns(user.ID, map[string]interface{}{
			"password_hash":      hashed,
			"reset_token_hash":   nil,
			"reset_token_expiry": nil,
		}); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		_, err := s.activity.Record(tx, nil, user.ID, activity.PasswordReset{UserID: user.ID},
			fmt.Sprintf("%s changed their password", user.FullName))
		return err
	})
	if err != nil {
		return err
	}

	s.sendPasswordChanged(ctx, user)
	return nil
}

func (s *AuthService) sendPasswordChanged(ctx context.Context, user *models.User) {
	s.mailer.Send(ctx, email.TemplatePasswordChanged, user.Email, map[string]interface{}{
		"FullName": user.FullName,
	})
}

func hashPassword(password string) (string, error) {
	if len(password) < constants.MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
