package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unijournal/internal/app/models/dto"
	"github.com/yigit/unijournal/internal/pkg/apperrors"
	"github.com/yigit/unijournal/internal/pkg/logger"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var status int
	var detail *dto.ErrorDetail

	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrGradeNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeGradeNotFound, "Grade not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrInvalidGradeValue):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidGrade, "Invalid grade value").WithField("value")
	case errors.Is(err, apperrors.ErrInvalidGradeType):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidGrade, "Invalid grade type").WithField("type")
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrUnsupportedImport):
		status, detail = http.StatusUnsupportedMediaType, dto.NewErrorDetail(dto.ErrorCodeImportUnsupported, "Unsupported import file")
	case errors.Is(err, apperrors.ErrImportTooLarge):
		status, detail = http.StatusRequestEntityTooLarge, dto.NewErrorDetail(dto.ErrorCodeImportTooLarge, "Import file too large")
	case errors.Is(err, apperrors.ErrImportFailed):
		status, detail = http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeImportUnreadable, "Import file could not be read")
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		status, detail = http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(status, dto.APIResponse{Error: detail, Timestamp: time.Now()})
		return
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			detail.WithDebugInfo("%s", custom.Message)
		}
		if custom.Details != nil {
			detail.WithDetails(custom.Details)
		}
	}
	c.JSON(status, dto.APIResponse{Error: detail, Timestamp: time.Now()})
}
