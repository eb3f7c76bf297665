package dto

import "time"

// APIResponse is the standard response envelope for all endpoints
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Warnings  []Warning    `json:"warnings,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// Warning codes
const (
	WarningSideEffectFailure  = "SIDE_EFFECT_FAILURE"
	WarningPendingSameSection = "PENDING_SAME_SECTION"
)

// Warning is a non-blocking problem surfaced alongside a successful result,
// e.g. a side effect that failed after the membership change was durable.
type Warning struct {
	Code    string `json:"code" example:"SIDE_EFFECT_FAILURE"`
	Message string `json:"message" example:"Member added, recruitment post update pending"`
}

// NewSuccessResponse creates a standard success envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewSuccessResponseWithWarnings creates a success envelope that carries
// best-effort failure warnings
func NewSuccessResponseWithWarnings(data interface{}, warnings []Warning) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Warnings:  warnings,
		Timestamp: time.Now(),
	}
}

// PaginationInfo describes a paginated collection
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
	TotalPages  int   `json:"totalPages" example:"5"`
}
