package errors

import "errors"

// Common errors
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden access")
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInternalError = errors.New("internal server error")
)

// Not-found errors
var (
	ErrPropertyNotFound    = errors.New("property not found")
	ErrMeetingNotFound     = errors.New("meeting not found")
	ErrAgendaItemNotFound  = errors.New("agenda item not found")
	ErrResolutionNotFound  = errors.New("resolution not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrProtocolNotArchived = errors.New("protocol not archived")
)

// Integration errors
var (
	ErrStorageFailed = errors.New("storage operation failed")
)

// Authorization errors
var (
	ErrNotMember = errors.New("user is not a member of the organization")
	ErrNotOwner  = errors.New("user is not an owner of the organization")
)

// Validation errors
var (
	ErrInvalidVoteChoice       = errors.New("invalid vote choice")
	ErrInvalidAttendanceStatus = errors.New("invalid attendance status")
	ErrInvalidMajorityType     = errors.New("invalid majority type")
	ErrInvalidLeaderRole       = errors.New("invalid leader role")
	ErrChairRequired           = errors.New("at least one chair is required")
	ErrInvalidAgendaOrder      = errors.New("agenda order must list every item exactly once")
)

// Precondition errors
var (
	ErrMeetingNotPlanned        = errors.New("meeting is not planned")
	ErrMeetingNotInProgress     = errors.New("meeting is not in progress")
	ErrMeetingCompleted         = errors.New("meeting is completed")
	ErrParticipantsAlreadyExist = errors.New("participants already exist")
	ErrNoVotingUnits            = errors.New("property has no units with owners")
	ErrLeadersNotConfirmed      = errors.New("leaders not confirmed")
	ErrParticipantsNotConfirmed = errors.New("participants not confirmed")
	ErrResolutionNotRequired    = errors.New("agenda item does not require a resolution")
	ErrVoteRequired             = errors.New("agenda item requires a vote")
	ErrInvalidConductTransition = errors.New("invalid conduct transition")
)
