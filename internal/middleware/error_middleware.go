package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/courseapi/internal/app/models/dto"
	"github.com/yigit/courseapi/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to status codes and the standard error body.
// A CustomError in the chain supplies the code, message, field and details.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		detail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found").
			WithSeverity(dto.ErrorSeverityWarning)
		applyCustom(detail, err)
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(detail))
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		if !applyCustom(detail, err) {
			detail.WithDetails(err.Error())
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	default:
		loggerFrom(c).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
	}
}

// applyCustom copies the non-empty CustomError fields onto detail
func applyCustom(detail *dto.ErrorDetail, err error) bool {
	custom, ok := apperrors.As(err)
	if !ok {
		return false
	}
	if custom.Code != "" {
		detail.Code = dto.ErrorCode(custom.Code)
	}
	if custom.Message != "" {
		detail.Message = custom.Message
	}
	if custom.Field != "" {
		detail.WithField(custom.Field)
	}
	if custom.Details != "" {
		detail.WithDetails(custom.Details)
	}
	return true
}

// loggerFrom returns the request scoped logger set by RequestLogger, or the global one
func loggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lgr, ok := v.(zerolog.Logger); ok {
			return &lgr
		}
	}
	return zerolog.Ctx(c.Request.Context())
}
