package errors

// ErrorCode identifies an error class in API responses
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Meetings
	ErrorCode_MEETING_NOT_FOUND     ErrorCode = 3000
	ErrorCode_MEETING_INVALID_STATE ErrorCode = 3001
	ErrorCode_MEETING_COMPLETED     ErrorCode = 3002
	ErrorCode_AGENDA_ITEM_NOT_FOUND ErrorCode = 3003
	ErrorCode_PROPERTY_NOT_FOUND    ErrorCode = 3004

	// Conduct
	ErrorCode_PARTICIPANTS_ALREADY_EXIST ErrorCode = 4000
	ErrorCode_NO_VOTING_UNITS            ErrorCode = 4001
	ErrorCode_PARTICIPANT_NOT_FOUND      ErrorCode = 4002
	ErrorCode_LEADERS_NOT_CONFIRMED      ErrorCode = 4003
	ErrorCode_PARTICIPANTS_NOT_CONFIRMED ErrorCode = 4004
	ErrorCode_CHAIR_REQUIRED             ErrorCode = 4005
	ErrorCode_ATTENDANCE_INVALID         ErrorCode = 4006

	// Resolutions and votes
	ErrorCode_RESOLUTION_NOT_FOUND    ErrorCode = 5000
	ErrorCode_VOTE_CHOICE_INVALID     ErrorCode = 5001
	ErrorCode_RESOLUTION_NOT_REQUIRED ErrorCode = 5002
	ErrorCode_VOTE_REQUIRED           ErrorCode = 5003

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6000
	ErrorCode_INTEGRATION_CACHE_FAILED   ErrorCode = 6001

	// Database
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 7000
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 7001
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_MEETING_INVALID_STATE:      "MEETING_INVALID_STATE",
	ErrorCode_MEETING_COMPLETED:          "MEETING_COMPLETED",
	ErrorCode_AGENDA_ITEM_NOT_FOUND:      "AGENDA_ITEM_NOT_FOUND",
	ErrorCode_PROPERTY_NOT_FOUND:         "PROPERTY_NOT_FOUND",
	ErrorCode_PARTICIPANTS_ALREADY_EXIST: "PARTICIPANTS_ALREADY_EXIST",
	ErrorCode_NO_VOTING_UNITS:            "NO_VOTING_UNITS",
	ErrorCode_PARTICIPANT_NOT_FOUND:      "PARTICIPANT_NOT_FOUND",
	ErrorCode_LEADERS_NOT_CONFIRMED:      "LEADERS_NOT_CONFIRMED",
	ErrorCode_PARTICIPANTS_NOT_CONFIRMED: "PARTICIPANTS_NOT_CONFIRMED",
	ErrorCode_CHAIR_REQUIRED:             "CHAIR_REQUIRED",
	ErrorCode_ATTENDANCE_INVALID:         "ATTENDANCE_INVALID",
	ErrorCode_RESOLUTION_NOT_FOUND:       "RESOLUTION_NOT_FOUND",
	ErrorCode_VOTE_CHOICE_INVALID:        "VOTE_CHOICE_INVALID",
	ErrorCode_RESOLUTION_NOT_REQUIRED:    "RESOLUTION_NOT_REQUIRED",
	ErrorCode_VOTE_REQUIRED:              "VOTE_REQUIRED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:   "INTEGRATION_CACHE_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// MarshalText renders the code by name in JSON payloads
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
