package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/brand-studio-api/internal/constants"
	"github.com/yukikurage/brand-studio-api/internal/dto"
	apierrors "github.com/yukikurage/brand-studio-api/internal/errors"
	"github.com/yukikurage/brand-studio-api/internal/models"
	"github.com/yukikurage/brand-studio-api/internal/services"
	"github.com/yukikurage/brand-studio-api/internal/validation"
)

// forgotPasswordMessage is sent whether or not the address has an account.
const forgotPasswordMessage = "If an account exists for that email, a password reset link has been sent"

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	validator   *validation.Validator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// Signup registers a new user.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		FullName string          `json:"fullName" validate:"required,notblank,min=2,max=100"`
		Email    string          `json:"email" validate:"required,email,max=255"`
		Password string          `json:"password" validate:"required,min=8,max=72"`
		Role     models.UserRole `json:"role" validate:"omitempty,oneof=CLIENT CREATOR"`
	}

	var req SignupRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), services.SignupInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := clearSession(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), sess.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ForgotPassword emails a reset link. The response is the same whether or
// not the address belongs to an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	type ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	var req ForgotPasswordRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
	}

	c.JSON(http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

// ResetPassword sets a new password using an emailed token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	type ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required,hexadecimal,len=64"`
		Password string `json:"password" validate:"required,min=8,max=72"`
	}

	var req ResetPasswordRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}

// ChangePassword replaces the caller's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
	}

	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if apiErr := h.validator.Bind(c, &req); apiErr != nil {
		apierrors.Respond(c, apiErr)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), sess, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func clearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}
