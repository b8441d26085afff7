package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// handleWeeklyDashboard returns the current week's summary. Any store
// failure collapses into a single generic 500, never a partial summary.
func (s *Server) handleWeeklyDashboard(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	summary, err := s.dashboard.WeeklySummary(c.Request.Context(), userID, time.Now())
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "weekly summary failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, summary)
}
