package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"driveu/internal/domain"
	"driveu/internal/middleware"
	"driveu/internal/repository"
	"driveu/internal/service"
	"driveu/internal/session"
)

// ErrorResponse represents an error response. Code is a stable machine
// readable identifier; clients branch on it rather than on Error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	status, code := mapErrorToHTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.JSON(status, ErrorResponse{Error: msg, Code: code})
}

// respondBadRequest rejects a malformed request body or query.
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: "invalid_argument"})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mustSession returns the caller's session. Routes using it sit behind
// middleware.RequireAuth; a missing session is answered with 401.
func mustSession(c *gin.Context) (session.Session, bool) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		respondError(c, service.ErrUnauthorized)
	}
	return sess, ok
}

// mapErrorToHTTPStatus maps domain/service/repository errors to an HTTP
// status code and an error code.
func mapErrorToHTTPStatus(err error) (int, string) {
	switch {
	// Recoverable; the driver may retry with the right code.
	case errors.Is(err, domain.ErrOTPMismatch):
		return http.StatusUnprocessableEntity, "otp_mismatch"

	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"

	// Authentication
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, session.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized"

	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden"

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrLocationRequired):
		return http.StatusBadRequest, "location_required"
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "email_taken"
	case errors.Is(err, service.ErrDriverUnavailable),
		errors.Is(err, service.ErrDriverBusy):
		return http.StatusConflict, "driver_unavailable"
	case errors.Is(err, service.ErrBookingBusy):
		return http.StatusConflict, "booking_busy"
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, "invalid_state"

	// Default to internal server error
	default:
		return http.StatusInternalServerError, "internal"
	}
}
