package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobadmin/internal/core"
	"jobadmin/internal/services"
	"jobadmin/internal/store"
)

type BusinessProfileResponse struct {
	BusinessName       string     `json:"businessName"`
	TradeType          string     `json:"tradeType"`
	WeeklyTargetIncome core.Money `json:"weeklyTargetIncome"`
	TaxRate            float64    `json:"taxRate"`
	FixedWeeklyCosts   core.Money `json:"fixedWeeklyCosts"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type BusinessProfileUpdateRequest struct {
	BusinessName       *string     `json:"businessName"`
	TradeType          *string     `json:"tradeType"`
	WeeklyTargetIncome *core.Money `json:"weeklyTargetIncome"`
	TaxRate            *float64    `json:"taxRate" validate:"omitempty,gte=0,lte=1"`
	FixedWeeklyCosts   *core.Money `json:"fixedWeeklyCosts"`
}

type ChangeEmailRequest struct {
	NewEmail string `json:"newEmail" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func profileResponse(p store.BusinessProfile) BusinessProfileResponse {
	return BusinessProfileResponse{
		BusinessName:       p.BusinessName,
		TradeType:          p.TradeType,
		WeeklyTargetIncome: p.WeeklyTargetIncome,
		TaxRate:            p.TaxRate,
		FixedWeeklyCosts:   p.FixedWeeklyCosts,
		UpdatedAt:          p.UpdatedAt,
	}
}

func (s *Server) handleGetBusinessProfile(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	p, err := s.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "get business profile failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, profileResponse(p))
}

func (s *Server) handleUpdateBusinessProfile(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req BusinessProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := ValidateRequest(req); details != nil {
		RespondWithValidationError(c, details)
		return
	}

	p, err := s.profiles.Update(c.Request.Context(), userID, services.ProfileUpdate{
		BusinessName:       req.BusinessName,
		TradeType:          req.TradeType,
		WeeklyTargetIncome: req.WeeklyTargetIncome,
		TaxRate:            req.TaxRate,
		FixedWeeklyCosts:   req.FixedWeeklyCosts,
	})
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "update business profile failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, profileResponse(p))
}

func (s *Server) handleChangeEmail(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := ValidateRequest(req); details != nil {
		RespondWithValidationError(c, details)
		return
	}

	err := s.accounts.ChangeEmail(c.Request.Context(), userID, req.NewEmail, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, store.ErrDuplicateEmail):
			RespondWithError(c, http.StatusConflict, "Email already registered")
		default:
			s.logger.ErrorContext(c.Request.Context(), "change email failed", "error", err)
			RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleChangePassword(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if details := ValidateRequest(req); details != nil {
		RespondWithValidationError(c, details)
		return
	}

	err := s.accounts.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.logger.ErrorContext(c.Request.Context(), "change password failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
