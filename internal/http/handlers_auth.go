package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobadmin/internal/services"
	"jobadmin/internal/store"
)

type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	BusinessName string `json:"businessName" validate:"required"`
	TradeType    string `json:"tradeType"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type PasswordResetRequestBody struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirmBody struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := ValidateRequest(req); details != nil {
		RespondWithValidationError(c, details)
		return
	}

	user, token, err := s.accounts.Register(c.Request.Context(), req.Email, req.Password, req.BusinessName, req.TradeType)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			RespondWithError(c, http.StatusConflict, "Email already registered")
			return
		}
		s.logger.ErrorContext(c.Request.Context(), "register failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token: token,
		User:  UserResponse{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := ValidateRequest(req); details != nil {
		RespondWithValidationError(c, details)
		return
	}

	user, token, err := s.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.ErrorContext(c.Request.Context(), "login failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  UserResponse{ID: user.ID, Email: user.Email},
	})
}

func (s *Server) handlePasswordResetRequest(c *gin.Context) {
	var req PasswordResetRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := ValidateRequest(req); details != nil {
		RespondWithValidationError(c, details)
		return
	}

	// Always succeeds from the caller's perspective so the endpoint
	// cannot be used to probe which emails are registered.
	if err := s.accounts.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		s.logger.ErrorContext(c.Request.Context(), "password reset request failed", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handlePasswordResetConfirm(c *gin.Context) {
	var req PasswordResetConfirmBody
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := ValidateRequest(req); details != nil {
		RespondWithValidationError(c, details)
		return
	}

	if err := s.accounts.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrResetTokenInvalid) {
			RespondWithError(c, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		s.logger.ErrorContext(c.Request.Context(), "password reset confirm failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
