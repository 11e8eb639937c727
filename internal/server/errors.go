package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authdomain "github.com/feedbackpod/feedbackpod/internal/auth/domain"
	eventdomain "github.com/feedbackpod/feedbackpod/internal/event/domain"
	feedbackdomain "github.com/feedbackpod/feedbackpod/internal/feedback/domain"
	"github.com/feedbackpod/feedbackpod/internal/generate"
	identitydomain "github.com/feedbackpod/feedbackpod/internal/identity/domain"
	tokendomain "github.com/feedbackpod/feedbackpod/internal/token/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrAuthRequired   = errors.New("auth_required")
	ErrTokenRevoked   = errors.New("token_revoked")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

// ErrorHandlingMiddleware converts the last gin error into the JSON error
// envelope. Handlers report failures with AbortWithError and never write
// error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, ErrAuthRequired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "auth_required",
			Message: "authentication required",
		}
	case errors.Is(err, tokendomain.ErrInvalidToken),
		errors.Is(err, identitydomain.ErrRefreshNotFound),
		errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "invalid_token",
			Message: "invalid or expired credentials",
		}
	case errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized, errorPayload{
			Type:    "token_revoked",
			Message: "token has been revoked, log in again",
		}
	case errors.Is(err, tokendomain.ErrRefreshExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "token_expired",
			Message: "refresh token expired, log in again",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "insufficient permissions",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "resource not found",
		}
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_failed",
			Message: err.Error(),
		}
	case errors.Is(err, feedbackdomain.ErrDuplicateSubmission):
		return http.StatusConflict, errorPayload{
			Type:    "duplicate_submission",
			Message: "duplicate feedback submission detected",
		}
	case errors.Is(err, authdomain.ErrRootAdminExists):
		// A repeat bootstrap denial is an authorization failure, not a
		// resource conflict.
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: err.Error(),
		}
	case errors.Is(err, identitydomain.ErrUserExists),
		errors.Is(err, identitydomain.ErrTenantExists):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case errors.Is(err, feedbackdomain.ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "submission quota exceeded, try again later",
		}
	case errors.Is(err, generate.ErrExhausted):
		return http.StatusInternalServerError, errorPayload{
			Type:    "generation_exhausted",
			Message: "could not allocate a unique identifier",
		}
	default:
		// Storage and other unexpected failures leak no detail.
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, identitydomain.ErrUserNotFound),
		errors.Is(err, identitydomain.ErrTenantNotFound),
		errors.Is(err, eventdomain.ErrNotFound),
		errors.Is(err, feedbackdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, eventdomain.ErrInvalidRequest),
		errors.Is(err, feedbackdomain.ErrInvalidResponse),
		errors.Is(err, feedbackdomain.ErrInvalidRequest),
		errors.Is(err, authdomain.ErrPasswordRequired),
		errors.Is(err, authdomain.ErrOwnerRequired):
		return true
	default:
		return false
	}
}
