package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type BadRequestErrorResponse struct {
	Message string            `json:"message"`
	Details []ValidationError `json:"details"`
}

func RespondWithError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Message: message})
}

func RespondWithValidationError(c *gin.Context, details []ValidationError) {
	c.JSON(http.StatusBadRequest, BadRequestErrorResponse{
		Message: "Validation failed",
		Details: details,
	})
}

// ValidateRequest runs struct tag validation and flattens the result into
// wire-friendly details. Returns nil when the value is valid.
func ValidateRequest(obj any) []ValidationError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var details []ValidationError
	for _, fieldErr := range err.(validator.ValidationErrors) {
		details = append(details, ValidationError{
			Field:   fieldErr.Field(),
			Message: validationMessage(fieldErr),
			Type:    fieldErr.Tag(),
		})
	}
	return details
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gt":
		return "Value must be greater than " + err.Param()
	case "gte":
		return "Value must be greater than or equal to " + err.Param()
	default:
		return "Invalid value"
	}
}
