package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobadmin/internal/core"
	"jobadmin/internal/store"
)

func (s *Server) handleListIncome(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	entries, err := s.entries.List(c.Request.Context(), core.Income, userID)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "list income failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	records := make([]core.IncomeRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, core.IncomeRecord{Entry: e})
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) handleListExpenses(c *gin.Context) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	entries, err := s.entries.List(c.Request.Context(), core.Expense, userID)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "list expenses failed", "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	records := make([]core.ExpenseRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, core.ExpenseRecord{Entry: e})
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) handleCreateIncome(c *gin.Context) {
	var record core.IncomeRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.createEntry(c, core.Income, record.Entry)
}

func (s *Server) handleCreateExpense(c *gin.Context) {
	var record core.ExpenseRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.createEntry(c, core.Expense, record.Entry)
}

func (s *Server) createEntry(c *gin.Context, kind core.Kind, e core.Entry) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	e.UserID = userID

	created, err := s.entries.Create(c.Request.Context(), kind, e)
	if err != nil {
		if isValidationErr(err) {
			RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.ErrorContext(c.Request.Context(), "create entry failed", "kind", string(kind), "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, wireRecord(kind, created))
}

func (s *Server) handleUpdateIncome(c *gin.Context) {
	var record core.IncomeRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.updateEntry(c, core.Income, record.Entry)
}

func (s *Server) handleUpdateExpense(c *gin.Context) {
	var record core.ExpenseRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.updateEntry(c, core.Expense, record.Entry)
}

func (s *Server) updateEntry(c *gin.Context, kind core.Kind, e core.Entry) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	e.ID = c.Param("id")
	e.UserID = userID

	updated, err := s.entries.Update(c.Request.Context(), kind, e)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondWithError(c, http.StatusNotFound, "Entry not found")
			return
		}
		if isValidationErr(err) {
			RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.ErrorContext(c.Request.Context(), "update entry failed", "kind", string(kind), "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, wireRecord(kind, updated))
}

func (s *Server) handleDeleteIncome(c *gin.Context) {
	s.deleteEntry(c, core.Income)
}

func (s *Server) handleDeleteExpense(c *gin.Context) {
	s.deleteEntry(c, core.Expense)
}

func (s *Server) deleteEntry(c *gin.Context, kind core.Kind) {
	userID, ok := GetUserID(c)
	if !ok {
		RespondWithError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	err := s.entries.Delete(c.Request.Context(), kind, userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			RespondWithError(c, http.StatusNotFound, "Entry not found")
			return
		}
		s.logger.ErrorContext(c.Request.Context(), "delete entry failed", "kind", string(kind), "error", err)
		RespondWithError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.Status(http.StatusNoContent)
}

// wireRecord picks the wire encoding that matches the entry kind so that
// expenses always emit supplierName and income customerName.
func wireRecord(kind core.Kind, e core.Entry) any {
	if kind == core.Expense {
		return core.ExpenseRecord{Entry: e}
	}
	return core.IncomeRecord{Entry: e}
}

// isValidationErr reports whether the entry failed its shape checks, which
// callers should see as a 400 rather than a server fault.
func isValidationErr(err error) bool {
	return errors.Is(err, core.ErrEmptyDate) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidDate)
}
