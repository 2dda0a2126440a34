package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/domain"
	"github.com/tasktrack/tasktrack-api/internal/service"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
//
// Authentication failures are checked first: ErrPrincipalNotFound also
// matches store.ErrNotFound but must stay a 401.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrBadCredentials),
		errors.Is(err, auth.ErrPrincipalNotFound),
		errors.Is(err, auth.ErrNoPrincipal):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrForbidden),
		errors.Is(err, service.ErrAdminSignupDisabled):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidEntity),
		isDomainInputError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrBadCredentials):
		return "Invalid email or password"
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case errors.Is(err, auth.ErrPrincipalNotFound),
		errors.Is(err, auth.ErrNoPrincipal):
		return "Authentication required"

	case errors.Is(err, auth.ErrForbidden):
		return "Forbidden"
	case errors.Is(err, service.ErrAdminSignupDisabled):
		return "Admin signup is disabled"

	case errors.Is(err, service.ErrAssigneeNotFound):
		return "Employee not found"
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Already exists"

	case errors.Is(err, domain.ErrInvalidStatus):
		return "Invalid task status"
	case errors.Is(err, domain.ErrInvalidRole):
		return "Invalid role"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return fmt.Sprintf("Invalid %s: %s", ve.Field, ve.Message)
	}
	if isDomainInputError(err) {
		return domainInputMessage(err)
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, store.ErrInvalidEntity) {
		return "Validation error"
	}
	return "An unexpected error occurred"
}

// HandleAPIError writes the error response for err. userMessage replaces
// the derived safe message when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// HandleValidationError writes a 400 for a failed request DTO validation.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
}

// SanitizeValidationError turns validator errors into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", lowerFirst(fe.Field()), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// domainInputErrors are the entity validation sentinels whose text is safe
// to show to clients.
var domainInputErrors = []error{
	domain.ErrEmptyUserName,
	domain.ErrEmptyEmail,
	domain.ErrInvalidEmail,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
	domain.ErrEmptyPassword,
	domain.ErrEmptyTaskTitle,
	domain.ErrEmptyTaskAssignee,
	domain.ErrEmptyTaskDueDate,
	domain.ErrEmptyCommentContent,
}

func isDomainInputError(err error) bool {
	return domainInputMessage(err) != ""
}

func domainInputMessage(err error) string {
	for _, sentinel := range domainInputErrors {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ""
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
