package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"musafir/internal/repository"
	"musafir/internal/service"
	"musafir/internal/wizard"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GuardErrorResponse is returned when a wizard step's entry
// preconditions are unmet; the client navigates to Redirect.
type GuardErrorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// ValidationErrorResponse carries per-field validation messages.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	var guard *wizard.GuardError
	if errors.As(err, &guard) {
		c.JSON(http.StatusConflict, GuardErrorResponse{
			Error:    guard.Error(),
			Redirect: string(guard.Redirect),
		})
		return
	}

	var fields wizard.FieldErrors
	if errors.As(err, &fields) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}

	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidFlagshipID),
		errors.Is(err, service.ErrInvalidRegistrationID),
		errors.Is(err, service.ErrInvalidPaymentID),
		errors.Is(err, service.ErrInvalidRefundID),
		errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrUnknownCity),
		errors.Is(err, service.ErrUnknownTier),
		errors.Is(err, service.ErrUnknownRoomSharing),
		errors.Is(err, service.ErrUnknownMattressTier),
		errors.Is(err, service.ErrInvalidTripType),
		errors.Is(err, service.ErrInvalidGender),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, service.ErrInvalidPaymentType),
		errors.Is(err, service.ErrInvalidBankAccount),
		errors.Is(err, service.ErrInvalidRating):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrFlagshipNotEditable),
		errors.Is(err, service.ErrFlagshipNotLive),
		errors.Is(err, service.ErrRegistrationClosed),
		errors.Is(err, service.ErrSubmissionInFlight),
		errors.Is(err, service.ErrDuplicateRegistration),
		errors.Is(err, service.ErrRegistrationNotPending),
		errors.Is(err, service.ErrRegistrationNotRejected),
		errors.Is(err, service.ErrRegistrationNotPayable),
		errors.Is(err, service.ErrRegistrationNotRefundable),
		errors.Is(err, service.ErrPaymentNotPending),
		errors.Is(err, service.ErrRefundAlreadyRequested),
		errors.Is(err, service.ErrRefundNotPending),
		errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict

	// Authentication / authorization
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
