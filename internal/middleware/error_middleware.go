package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ozgur/teamup/internal/app/models/dto"
	"github.com/ozgur/teamup/internal/pkg/apperrors"
	"github.com/ozgur/teamup/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Controllers funnel
// every error through here so the status codes and the error envelope stay
// uniform across the API.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	details := interface{}(nil)
	message := ""
	if errors.As(err, &custom) {
		if custom.Details != nil {
			details = custom.Details
		}
		message = custom.Message
	}

	respond := func(status int, code dto.ErrorCode, fallback string) {
		if message == "" {
			message = fallback
		}
		errorDetail := dto.NewErrorDetail(code, message)
		if details != nil {
			errorDetail = errorDetail.WithDetails(details)
		}
		c.JSON(status, dto.NewErrorResponse(errorDetail))
	}

	switch {
	// Roster decisions
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		respond(409, dto.ErrorCodeCapacityExceeded, "Team has no remaining seats")
	case errors.Is(err, apperrors.ErrSectionYearConflict):
		respond(409, dto.ErrorCodeSectionYearConflict, "Team already has a member with the same section and year")
	case errors.Is(err, apperrors.ErrAlreadyReviewed):
		respond(409, dto.ErrorCodeAlreadyReviewed, "Decision was already resolved")
	case errors.Is(err, apperrors.ErrCannotRemoveLeader):
		respond(409, dto.ErrorCodeCannotRemoveLeader, "Team leader cannot be removed without reassignment")
	case errors.Is(err, apperrors.ErrPendingPBLLimit):
		respond(409, dto.ErrorCodePendingPBLLimit, "Pending PBL candidacy limit reached")

	// Duplicates
	case errors.Is(err, apperrors.ErrAlreadyMember):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "User is already a member of the team")
	case errors.Is(err, apperrors.ErrAlreadyApplied):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "User already applied to this post")
	case errors.Is(err, apperrors.ErrAlreadyRequested):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "User already has a join request for this team")
	case errors.Is(err, apperrors.ErrConflict):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "Conflict")

	// Recruitment lifecycle
	case errors.Is(err, apperrors.ErrPostNotOpen):
		respond(409, dto.ErrorCodeResourceAlreadyExists, "Recruitment post is not open")
	case errors.Is(err, apperrors.ErrPostExpired):
		respond(410, dto.ErrorCodeResourceNotFound, "Recruitment post has expired")

	// Not found
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrTeamNotFound, apperrors.ErrPostNotFound, apperrors.ErrRequestNotFound):
		respond(404, dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrNotTeamMember):
		respond(404, dto.ErrorCodeResourceNotFound, "User is not a member of the team")

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(403, dto.ErrorCodeForbidden, "Permission denied")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenExpired):
		respond(401, dto.ErrorCodeInvalidToken, "Authentication failed")

	// Validation
	case apperrors.Is(err, apperrors.ErrBadRequest, apperrors.ErrValidationFailed):
		respond(400, dto.ErrorCodeValidationFailed, "Invalid request")

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
