package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaderRole represents the function a leader holds in a meeting
type LeaderRole string

const (
	LeaderRoleChair       LeaderRole = "chair"
	LeaderRoleMinuteTaker LeaderRole = "minute-taker"
	LeaderRoleTeller      LeaderRole = "teller"
	LeaderRoleOther       LeaderRole = "other"
)

// IsValid checks if the role is known
func (r LeaderRole) IsValid() bool {
	switch r {
	case LeaderRoleChair, LeaderRoleMinuteTaker, LeaderRoleTeller, LeaderRoleOther:
		return true
	}
	return false
}

// MeetingLeader is a person leading the meeting. The set is replaced as a whole.
type MeetingLeader struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MeetingID uuid.UUID  `gorm:"type:uuid;not null;index" json:"meeting_id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Role      LeaderRole `gorm:"type:varchar(20);not null" json:"role"`
	Position  int        `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for MeetingLeader
func (MeetingLeader) TableName() string {
	return "meeting_leaders"
}

// BeforeCreate assigns the primary key
func (l *MeetingLeader) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// HasChair reports whether at least one leader chairs the meeting
func HasChair(leaders []MeetingLeader) bool {
	for _, l := range leaders {
		if l.Role == LeaderRoleChair {
			return true
		}
	}
	return false
}
