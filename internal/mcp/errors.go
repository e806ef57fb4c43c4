package mcp

import (
	"errors"
	"fmt"

	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/domain/prd"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, prd.ErrPRDNotFound):
		return &APIError{Code: "PRD_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the ID with list_prds or search_prds"}
	case errors.Is(err, prd.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: err.Error(), RecoveryHint: "Use one of Draft, InReview, Approved, InDevelopment, Testing, Implemented, Archived"}
	case errors.Is(err, prd.ErrInvalidPriority):
		return &APIError{Code: "INVALID_PRIORITY", Message: err.Error(), RecoveryHint: "Use one of Low, Medium, High, Critical"}
	case errors.Is(err, prd.ErrInvalidArgument):
		return &APIError{Code: "INVALID_ARGUMENT", Message: err.Error(), RecoveryHint: "Check required fields and length limits"}
	case errors.Is(err, prd.ErrCapacityExceeded):
		return &APIError{Code: "CAPACITY_EXCEEDED", Message: err.Error(), RecoveryHint: "Deactivated PRDs still count; raise store.capacity"}
	case errors.Is(err, prd.ErrDuplicateID):
		return &APIError{Code: "DUPLICATE_ID", Message: err.Error(), RecoveryHint: "Retry create_prd; a fresh ID is issued each call"}
	case errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_ACTIVITY", Message: err.Error(), RecoveryHint: "Activity entries need a PRD ID and an activity type"}
	default:
		return nil
	}
}

// toolError converts a service error into the error returned from a tool
// handler, which the SDK reports as a tool result with isError set.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
