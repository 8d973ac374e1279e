package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/unijournal/internal/app/models/dto"
)

// HandleBindError answers a request whose body or query could not be bound
func HandleBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.APIResponse{
		Error:     HandleValidationError(err),
		Timestamp: time.Now(),
	})
}

// HandleValidationError converts binding and validator errors into an error detail
func HandleValidationError(err error) *dto.ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = formatValidationError(fe)
	}
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(fields)
	if len(verrs) == 1 {
		detail.WithField(verrs[0].Field())
	}
	return detail
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "gradetype":
		return e.Field() + " must be one of: lecture practice"
	case "gradevalue":
		return e.Field() + " must be between 0 and 100"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
