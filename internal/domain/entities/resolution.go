package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResolutionResult is the outcome of a resolution
type ResolutionResult string

const (
	ResultAccepted  ResolutionResult = "accepted"
	ResultRejected  ResolutionResult = "rejected"
	ResultPostponed ResolutionResult = "postponed"
)

// Resolution holds the latest tally of one agenda item. At most one row exists per item.
type Resolution struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	AgendaItemID  uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"agenda_item_id"`
	MajorityType  MajorityType      `gorm:"type:varchar(20);not null" json:"majority_type"`
	VotesYes      int               `gorm:"not null;default:0" json:"votes_yes"`
	VotesNo       int               `gorm:"not null;default:0" json:"votes_no"`
	VotesAbstain  int               `gorm:"not null;default:0" json:"votes_abstain"`
	YesShares     string            `gorm:"type:varchar(40);not null;default:'0'" json:"yes_shares"`
	NoShares      string            `gorm:"type:varchar(40);not null;default:'0'" json:"no_shares"`
	AbstainShares string            `gorm:"type:varchar(40);not null;default:'0'" json:"abstain_shares"`
	Result        *ResolutionResult `gorm:"type:varchar(20)" json:"result,omitempty"`
	CalculatedAt  *time.Time        `json:"calculated_at,omitempty"`
	CreatedAt     time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Resolution
func (Resolution) TableName() string {
	return "resolutions"
}

// BeforeCreate assigns the primary key
func (r *Resolution) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsVoted reports whether a result has been computed
func (r *Resolution) IsVoted() bool {
	return r.Result != nil
}

// ApplyTally overwrites counts, share sums and result
func (r *Resolution) ApplyTally(t Tally, result ResolutionResult, now time.Time) {
	r.VotesYes = t.VotesYes
	r.VotesNo = t.VotesNo
	r.VotesAbstain = t.VotesAbstain
	r.YesShares = t.YesShares.String()
	r.NoShares = t.NoShares.String()
	r.AbstainShares = t.AbstainShares.String()
	r.Result = &result
	r.CalculatedAt = &now
}

// ResolutionCalculation is an append-only audit row of one calculator run
type ResolutionCalculation struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ResolutionID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"resolution_id"`
	MajorityType  MajorityType     `gorm:"type:varchar(20);not null" json:"majority_type"`
	VotesYes      int              `gorm:"not null" json:"votes_yes"`
	VotesNo       int              `gorm:"not null" json:"votes_no"`
	VotesAbstain  int              `gorm:"not null" json:"votes_abstain"`
	YesShares     string           `gorm:"type:varchar(40);not null" json:"yes_shares"`
	NoShares      string           `gorm:"type:varchar(40);not null" json:"no_shares"`
	AbstainShares string           `gorm:"type:varchar(40);not null" json:"abstain_shares"`
	TotalShares   string           `gorm:"type:varchar(40);not null" json:"total_shares"`
	Result        ResolutionResult `gorm:"type:varchar(20);not null" json:"result"`
	Breakdown     datatypes.JSON   `gorm:"type:jsonb" json:"breakdown,omitempty"`
	CalculatedBy  uuid.UUID        `gorm:"type:uuid" json:"calculated_by"`
	CreatedAt     time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for ResolutionCalculation
func (ResolutionCalculation) TableName() string {
	return "resolution_calculations"
}

// BeforeCreate assigns the primary key
func (c *ResolutionCalculation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
