package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VoteChoice is the ballot of one participant
type VoteChoice string

const (
	VoteYes     VoteChoice = "yes"
	VoteNo      VoteChoice = "no"
	VoteAbstain VoteChoice = "abstain"
)

// ParseVoteChoice validates a raw choice
func ParseVoteChoice(value string) (VoteChoice, error) {
	switch c := VoteChoice(value); c {
	case VoteYes, VoteNo, VoteAbstain:
		return c, nil
	}
	return "", ErrInvalidVoteChoice
}

// Vote is the ballot of a participant on a resolution, unique per pair
type Vote struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ResolutionID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_votes_resolution_participant" json:"resolution_id"`
	ParticipantID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_votes_resolution_participant" json:"participant_id"`
	Choice        VoteChoice `gorm:"column:vote;type:varchar(10);not null" json:"vote"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

// BeforeCreate assigns the primary key
func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VoteWithParticipant is a vote joined with the display fields of its participant
type VoteWithParticipant struct {
	ID             uuid.UUID       `json:"id"`
	ResolutionID   uuid.UUID       `json:"resolution_id"`
	ParticipantID  uuid.UUID       `json:"participant_id"`
	Choice         VoteChoice      `gorm:"column:vote" json:"vote"`
	OwnerName      string          `json:"owner_name"`
	UnitIdentifier string          `json:"unit_identifier"`
	Shares         decimal.Decimal `json:"shares"`
}
