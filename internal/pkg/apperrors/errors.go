package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Team errors
var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrNotTeamLeader    = errors.New("user is not the team leader")
	ErrNotTeamMember    = errors.New("user is not a member of the team")
	ErrCapacityExceeded = errors.New("team has no remaining seats")
)

// Roster reconciliation errors
var (
	ErrSectionYearConflict = errors.New("an active member already holds this section and year")
	ErrAlreadyReviewed     = errors.New("decision was already resolved by another reviewer")
	ErrAlreadyMember       = errors.New("user is already a member of the team")
	ErrCannotRemoveLeader  = errors.New("team leader cannot be removed without reassignment")
)

// Recruitment errors
var (
	ErrPostNotFound     = errors.New("recruitment post not found")
	ErrPostNotOpen      = errors.New("recruitment post is not open")
	ErrPostExpired      = errors.New("recruitment post has expired")
	ErrAlreadyApplied   = errors.New("user already applied to this post")
	ErrPendingPBLLimit  = errors.New("user already has the maximum number of pending PBL applications")
	ErrRequestNotFound  = errors.New("join request not found")
	ErrAlreadyRequested = errors.New("user already has a join request for this team")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewSectionYearConflictError reports the member whose section/year blocks the acceptance.
func NewSectionYearConflictError(memberName, section string, year int) error {
	return &CustomError{
		Err:     ErrSectionYearConflict,
		Message: "Team already has a member with the same section and year",
		Details: map[string]interface{}{
			"conflictingMember": memberName,
			"section":           section,
			"year":              year,
		},
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
