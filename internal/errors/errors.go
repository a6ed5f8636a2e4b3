package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when no user matches the supplied
	// login id, role and password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserInactive is returned when the matched user has been soft-deleted.
	ErrUserInactive = errors.New("user is not active")
	// ErrUserNotFound is returned when a user lookup by id fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when a PJLP number is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrReportNotFound is returned when a report lookup by id fails.
	ErrReportNotFound = errors.New("report not found")
	// ErrInvalidStatus is returned when a review carries a status other
	// than ACCEPTED or REJECTED.
	ErrInvalidStatus = errors.New("invalid review status")
	// ErrInvalidRole is returned when an unknown role is supplied.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidCategory is returned when a draft carries an unknown category.
	ErrInvalidCategory = errors.New("invalid report category")
	// ErrFeedbackRequired is returned when a rejection carries no feedback.
	ErrFeedbackRequired = errors.New("rejection feedback is required")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete own account")
	// ErrForbidden is returned when the acting user lacks the rights for
	// the requested operation.
	ErrForbidden = errors.New("operation not allowed")
	// ErrPasswordMismatch is returned when password confirmation does not match.
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	// ErrRemoteDelete is returned when the remote cascade delete of a
	// user's reports fails and the profile deletion is aborted.
	ErrRemoteDelete = errors.New("remote report deletion failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserInactive):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "USER_INACTIVE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrReportNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REPORT_NOT_FOUND")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrFeedbackRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "FEEDBACK_REQUIRED")
	case errors.Is(err, ErrSelfDelete):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DELETE")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrRemoteDelete):
		return NewHTTPError(http.StatusBadGateway, err.Error(), "REMOTE_DELETE_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
