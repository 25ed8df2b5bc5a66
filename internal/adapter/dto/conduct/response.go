package conduct

import (
	"time"

	meetingDTO "github.com/johnquangdev/weg-assembly/internal/adapter/dto/meeting"
)

// StateResponse is the conduct progress of a meeting
type StateResponse struct {
	State                   string     `json:"state"`
	Status                  string     `json:"status"`
	NextStep                string     `json:"next_step"`
	LeadersConfirmedAt      *time.Time `json:"leaders_confirmed_at,omitempty"`
	ParticipantsConfirmedAt *time.Time `json:"participants_confirmed_at,omitempty"`
	CompletedAt             *time.Time `json:"completed_at,omitempty"`
}

// StepResponse is the payload of a reachable conduct step
type StepResponse struct {
	Step string      `json:"step"`
	Data interface{} `json:"data"`
}

// LeaderResponse represents a meeting leader
type LeaderResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Position int    `json:"position"`
}

// ParticipantResponse represents a voting participant
type ParticipantResponse struct {
	ID               string  `json:"id"`
	OwnerID          string  `json:"owner_id"`
	UnitID           string  `json:"unit_id"`
	OwnerName        string  `json:"owner_name"`
	UnitIdentifier   string  `json:"unit_identifier"`
	Shares           string  `json:"shares"`
	AttendanceStatus string  `json:"attendance_status"`
	RepresentedBy    *string `json:"represented_by,omitempty"`
}

// StartResponse is returned when a meeting starts
type StartResponse struct {
	Meeting      *meetingDTO.MeetingResponse `json:"meeting"`
	Participants []*ParticipantResponse      `json:"participants"`
}

// QuorumResponse represents present and total shares
type QuorumResponse struct {
	PresentShares string `json:"present_shares"`
	TotalShares   string `json:"total_shares"`
	Ratio         string `json:"ratio"`
	Present       int    `json:"present"`
	Represented   int    `json:"represented"`
	Absent        int    `json:"absent"`
}

// ResolutionResponse represents a resolution with its latest tally
type ResolutionResponse struct {
	ID            string     `json:"id"`
	AgendaItemID  string     `json:"agenda_item_id"`
	MajorityType  string     `json:"majority_type"`
	VotesYes      int        `json:"votes_yes"`
	VotesNo       int        `json:"votes_no"`
	VotesAbstain  int        `json:"votes_abstain"`
	YesShares     string     `json:"yes_shares"`
	NoShares      string     `json:"no_shares"`
	AbstainShares string     `json:"abstain_shares"`
	Result        *string    `json:"result,omitempty"`
	CalculatedAt  *time.Time `json:"calculated_at,omitempty"`
}

// CalculationResponse represents one audit row of the majority calculator
type CalculationResponse struct {
	ID            string      `json:"id"`
	MajorityType  string      `json:"majority_type"`
	YesShares     string      `json:"yes_shares"`
	NoShares      string      `json:"no_shares"`
	AbstainShares string      `json:"abstain_shares"`
	TotalShares   string      `json:"total_shares"`
	Result        string      `json:"result"`
	Breakdown     interface{} `json:"breakdown,omitempty"`
	CalculatedBy  string      `json:"calculated_by"`
	CreatedAt     time.Time   `json:"created_at"`
}

// VoteResponse represents a vote joined with its participant
type VoteResponse struct {
	ID             string `json:"id"`
	ParticipantID  string `json:"participant_id"`
	OwnerName      string `json:"owner_name"`
	UnitIdentifier string `json:"unit_identifier"`
	Shares         string `json:"shares"`
	Choice         string `json:"choice"`
}

// CastVotesResponse reports what a batch changed
type CastVotesResponse struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}

// CompleteResponse is returned when a meeting is completed
type CompleteResponse struct {
	Meeting *meetingDTO.MeetingResponse `json:"meeting"`
	Changed bool                        `json:"changed"`
}

// ProtocolItemResponse is an agenda item of the protocol
type ProtocolItemResponse struct {
	AgendaItem *meetingDTO.AgendaItemResponse `json:"agenda_item"`
	Resolution *ResolutionResponse            `json:"resolution,omitempty"`
	Completed  bool                           `json:"completed"`
	Voted      bool                           `json:"voted"`
}

// ProtocolResponse is the summary of a meeting
type ProtocolResponse struct {
	Meeting      *meetingDTO.MeetingResponse `json:"meeting"`
	Leaders      []*LeaderResponse           `json:"leaders"`
	Participants []*ParticipantResponse      `json:"participants"`
	Quorum       *QuorumResponse             `json:"quorum"`
	Items        []*ProtocolItemResponse     `json:"items"`
	AllCompleted bool                        `json:"all_completed"`
}

// DownloadResponse carries a presigned protocol URL
type DownloadResponse struct {
	URL string `json:"url"`
}
