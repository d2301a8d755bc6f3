package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/staff-api/internal/api/shared"
	"github.com/phrazzld/staff-api/internal/domain"
	"github.com/phrazzld/staff-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types to
// clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors: both the explicit uniqueness check and
	// integrity violations surfaced by the store
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrEmployeeNotFound):
		return "Employee not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Employee with this email already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Database integrity error"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidEmail):
		return "Validation failed"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid employee ID"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError selects exactly one structured response for the given error
// and writes it. Handlers funnel every non-validation failure through here so
// the status and body shape stay consistent across endpoints.
// overrideMessage, when non-empty, replaces the default safe message for 4xx
// responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	status := MapErrorToStatusCode(err)

	// Validation failures enumerate each offending field.
	if status == http.StatusBadRequest {
		if details := ValidationErrorDetails(err); len(details) > 0 {
			shared.RespondWithErrorAndLog(w, r, shared.ErrorResponse{
				Error:   "Validation failed",
				Details: details,
				Code:    status,
			}, err)
			return
		}
	}

	response := shared.ErrorResponse{Code: status}
	switch {
	case status >= http.StatusInternalServerError:
		// Last-resort shape: no request terminates without a structured body.
		response.Error = "InternalServerError"
		response.Message = err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		response.Error = "Database integrity error"
		response.Message = err.Error()

	default:
		response.Error = GetSafeErrorMessage(err)
		if overrideMessage != "" {
			response.Error = overrideMessage
		}
	}

	shared.RespondWithErrorAndLog(w, r, response, err)
}

// RespondWithValidationError writes a 400 response enumerating every field
// that failed validation. Falls back to a generic message when the error
// carries no per-field information.
func RespondWithValidationError(w http.ResponseWriter, r *http.Request, err error) {
	response := shared.ErrorResponse{
		Error: "Validation failed",
		Code:  http.StatusBadRequest,
	}

	if details := ValidationErrorDetails(err); len(details) > 0 {
		response.Details = details
	} else {
		response.Message = "request validation failed"
	}

	shared.RespondWithErrorAndLog(w, r, response, err)
}

// ValidationErrorDetails extracts per-field messages from both validator
// struct errors and domain validation errors, in "Field 'name': reason" form.
func ValidationErrorDetails(err error) []string {
	if err == nil {
		return nil
	}

	var details []string

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			details = append(details,
				fmt.Sprintf("Field '%s': %s", fe.Field(), getValidationTagMessage(fe.Tag())))
		}
	}

	for _, ve := range domain.ValidationErrors(err) {
		details = append(details, fmt.Sprintf("Field '%s': %s", ve.Field, ve.Message))
	}

	return details
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short or too small"
	case "max":
		return "too long or too large"
	case "gte":
		return "must be non-negative"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
