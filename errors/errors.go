package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the transport-level error carried to API clients
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying error
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error. Empty values are skipped.
func (e AppError) WithDetail(key, value string) AppError {
	if value == "" {
		return e
	}
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrAlreadyExists() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_ALREADY_EXISTS,
		Message:  "Resource already exists",
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  fmt.Sprintf("Permission denied: %s", action),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

// Meeting Errors
func ErrMeetingNotFound(meetingID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_MEETING_NOT_FOUND,
		Message:  "Meeting not found",
	}.WithDetail("meeting_id", meetingID)
}

func ErrPropertyNotFound() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_PROPERTY_NOT_FOUND,
		Message:  "Property not found",
	}
}

func ErrAgendaItemNotFound() AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_AGENDA_ITEM_NOT_FOUND,
		Message:  "Agenda item not found",
	}
}

func ErrMeetingInvalidState(currentState, expectedState string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_MEETING_INVALID_STATE,
		Message:  "Meeting is in invalid state",
	}.WithDetail("current_state", currentState).
		WithDetail("expected_state", expectedState)
}

func ErrMeetingCompleted() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_MEETING_COMPLETED,
		Message:  "Meeting is already completed",
	}
}

// Conduct Errors
func ErrParticipantsAlreadyExist() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_PARTICIPANTS_ALREADY_EXIST,
		Message:  "Participants have already been created for this meeting",
	}
}

func ErrNoVotingUnits() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_NO_VOTING_UNITS,
		Message:  "Property has no units with owners",
	}
}

func ErrParticipantNotFound(participantID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_PARTICIPANT_NOT_FOUND,
		Message:  "Participant not found",
	}.WithDetail("participant_id", participantID)
}

func ErrLeadersNotConfirmed() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_LEADERS_NOT_CONFIRMED,
		Message:  "Meeting leaders have not been confirmed",
	}
}

func ErrParticipantsNotConfirmed() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_PARTICIPANTS_NOT_CONFIRMED,
		Message:  "Participants have not been confirmed",
	}
}

func ErrChairRequired() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_CHAIR_REQUIRED,
		Message:  "At least one chair is required",
	}
}

func ErrAttendanceInvalid() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_ATTENDANCE_INVALID,
		Message:  "Invalid attendance status",
	}
}

// Resolution Errors
func ErrResolutionNotFound(resolutionID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_RESOLUTION_NOT_FOUND,
		Message:  "Resolution not found",
	}.WithDetail("resolution_id", resolutionID)
}

func ErrVoteChoiceInvalid() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_VOTE_CHOICE_INVALID,
		Message:  "Vote choice must be yes, no or abstain",
	}
}

func ErrResolutionNotRequired() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_RESOLUTION_NOT_REQUIRED,
		Message:  "Agenda item does not require a resolution",
	}
}

func ErrVoteRequired() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_VOTE_REQUIRED,
		Message:  "Agenda item requires a vote",
	}
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}
