// Package errors provides the standardized error taxonomy for the outfit
// orchestration layer.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Precondition errors: surfaced to the caller, no state mutated.
	ErrCodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"

	// Upstream fetch errors: callers degrade to empty defaults.
	ErrCodeWeatherFetchFailed   ErrorCode = "WEATHER_FETCH_FAILED"
	ErrCodeWardrobeFetchFailed  ErrorCode = "WARDROBE_FETCH_FAILED"
	ErrCodeDashboardFetchFailed ErrorCode = "DASHBOARD_FETCH_FAILED"

	// Generation service errors: routed to the fallback outfit path.
	ErrCodeGenerationFailed          ErrorCode = "GENERATION_FAILED"
	ErrCodeGenerationTimeout         ErrorCode = "GENERATION_TIMEOUT"
	ErrCodeGenerationInvalidResponse ErrorCode = "GENERATION_INVALID_RESPONSE"
	ErrCodeGenerationInFlight        ErrorCode = "GENERATION_IN_FLIGHT"

	// Ownership/security violations: treated as a cache miss.
	ErrCodeOwnershipMismatch ErrorCode = "OWNERSHIP_MISMATCH"

	// Wear tracking errors: surfaced, no optimistic state change.
	ErrCodeWearTrackingFailed ErrorCode = "WEAR_TRACKING_FAILED"
	ErrCodeOutfitNotFound     ErrorCode = "OUTFIT_NOT_FOUND"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from an error chain, or "" if the error is
// not a StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// ==========================
// Constructors
// ==========================

// NewPreconditionError flags a missing required input (user, weather).
func NewPreconditionError(what string) *StandardError {
	return &StandardError{
		Code:      ErrCodePreconditionFailed,
		Message:   "Required input missing",
		Details:   what,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWeatherFetchFailedError creates a retryable weather provider error.
func NewWeatherFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWeatherFetchFailed,
		Message:   "Weather provider fetch failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewWardrobeFetchFailedError creates a retryable wardrobe catalog error.
// Callers degrade to an empty wardrobe rather than aborting generation.
func NewWardrobeFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWardrobeFetchFailed,
		Message:   "Wardrobe catalog fetch failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDashboardFetchFailedError creates a retryable dashboard source error.
func NewDashboardFetchFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDashboardFetchFailed,
		Message:   fmt.Sprintf("Dashboard source '%s' fetch failed", source),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationFailedError creates a retryable generation service error.
func NewGenerationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationFailed,
		Message:   "Outfit generation service error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationTimeoutError creates a retryable generation timeout error.
func NewGenerationTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationTimeout,
		Message:   "Outfit generation timed out",
		Details:   "generation call exceeded its bounded timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationInvalidResponseError flags a malformed generation payload.
func NewGenerationInvalidResponseError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationInvalidResponse,
		Message:   "Generation service returned a malformed payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenerationInFlightError signals the per-day latch is already held.
func NewGenerationInFlightError(ownerID, day string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenerationInFlight,
		Message:   "Outfit generation already in progress",
		Details:   fmt.Sprintf("ownerId: %s, day: %s", ownerID, day),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOwnershipMismatchError records a cached entry owned by another user.
func NewOwnershipMismatchError(entryOwner, requester string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOwnershipMismatch,
		Message:   "Cached outfit belongs to a different user",
		Details:   fmt.Sprintf("entryOwner: %s, requester: %s", entryOwner, requester),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWearTrackingFailedError creates a retryable wear-tracking error.
func NewWearTrackingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeWearTrackingFailed,
		Message:   "Wear tracking call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOutfitNotFoundError flags a wear/read action with no outfit for the day.
func NewOutfitNotFoundError(ownerID, day string) *StandardError {
	return &StandardError{
		Code:      ErrCodeOutfitNotFound,
		Message:   "No outfit generated for this day",
		Details:   fmt.Sprintf("ownerId: %s, day: %s", ownerID, day),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache backend error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Daily outfit cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeWeatherFetchFailed,
		ErrCodeWardrobeFetchFailed,
		ErrCodeDashboardFetchFailed,
		ErrCodeWearTrackingFailed,
		ErrCodeCacheUnavailable:
		return 3

	case ErrCodeGenerationFailed,
		ErrCodeGenerationTimeout:
		return 1 // generation failures resolve to the fallback outfit instead

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}
