package conduct

// LeaderRequest is one entry of a leader confirmation
type LeaderRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
	Role string `json:"role" validate:"required,oneof=chair minute-taker teller other"`
}

// ConfirmLeadersRequest replaces the leader list
type ConfirmLeadersRequest struct {
	Leaders []LeaderRequest `json:"leaders" validate:"required,min=1,dive"`
}

// AttendanceRequest sets the attendance status of a participant
type AttendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=present represented absent"`
}

// RepresentativeRequest sets or clears a representative name
type RepresentativeRequest struct {
	RepresentedBy *string `json:"represented_by" validate:"omitempty,max=255"`
}

// EnsureResolutionRequest opens the resolution of an agenda item
type EnsureResolutionRequest struct {
	MajorityType string `json:"majority_type" validate:"omitempty,oneof=simple qualified"`
}

// VoteRequest is one ballot of a batch
type VoteRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,uuid"`
	Choice        string `json:"choice" validate:"required,oneof=yes no abstain"`
}

// CastVotesRequest is a batch of ballots. An empty batch is a no-op.
type CastVotesRequest struct {
	Votes []VoteRequest `json:"votes" validate:"dive"`
}
