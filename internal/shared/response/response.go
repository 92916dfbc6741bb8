package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"filmorate-backend/internal/shared"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// ValidationError renders ozzo field errors as details, anything else as a plain 400
func ValidationError(c *gin.Context, err error) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		log.Warn().Interface("fields", fieldErrs).Msg("Validation failed")
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "request validation failed", fieldErrs)
		return
	}
	BadRequest(c, err.Error())
}

// coder is implemented by domain errors that carry a stable error code
type coder interface {
	ErrorCode() string
}

func errorCode(err error, fallback string) string {
	var c coder
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return fallback
}

// FromError maps the shared error kinds onto HTTP status codes
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, shared.ErrReferential):
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Resource not found")
		ErrorResponse(c, http.StatusNotFound, errorCode(err, "NOT_FOUND"), err.Error())
	case errors.Is(err, shared.ErrConflict):
		log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Conflict")
		ErrorResponse(c, http.StatusConflict, errorCode(err, "CONFLICT"), err.Error())
	case errors.Is(err, shared.ErrValidation):
		var fieldErrs validation.Errors
		if errors.As(err, &fieldErrs) {
			ValidationError(c, err)
			return
		}
		ErrorResponse(c, http.StatusBadRequest, errorCode(err, "BAD_REQUEST"), err.Error())
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		InternalServerError(c, "internal server error")
	}
}
