package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AttendanceStatus represents the presence of a participant
type AttendanceStatus string

const (
	AttendancePresent     AttendanceStatus = "present"
	AttendanceRepresented AttendanceStatus = "represented"
	AttendanceAbsent      AttendanceStatus = "absent"
)

// IsValid checks if the status is known
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceRepresented, AttendanceAbsent:
		return true
	}
	return false
}

// CountsTowardsQuorum reports whether shares with this status are present
func (s AttendanceStatus) CountsTowardsQuorum() bool {
	return s == AttendancePresent || s == AttendanceRepresented
}

// MeetingParticipant is a voting participant copied from the registry when the
// meeting starts. Only AttendanceStatus and RepresentedBy change afterwards.
type MeetingParticipant struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	MeetingID        uuid.UUID        `gorm:"type:uuid;not null;index;uniqueIndex:idx_participants_meeting_unit" json:"meeting_id"`
	OwnerID          uuid.UUID        `gorm:"type:uuid;not null" json:"owner_id"`
	UnitID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_participants_meeting_unit" json:"unit_id"`
	OwnerName        string           `gorm:"type:varchar(255);not null" json:"owner_name"`
	UnitIdentifier   string           `gorm:"type:varchar(100);not null" json:"unit_identifier"`
	Shares           decimal.Decimal  `gorm:"type:numeric(14,4);not null" json:"shares"`
	AttendanceStatus AttendanceStatus `gorm:"type:varchar(20);not null;default:'absent'" json:"attendance_status"`
	RepresentedBy    *string          `gorm:"type:varchar(255)" json:"represented_by,omitempty"`
	CreatedAt        time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for MeetingParticipant
func (MeetingParticipant) TableName() string {
	return "meeting_participants"
}

// BeforeCreate assigns the primary key
func (p *MeetingParticipant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EffectiveRepresentative returns the representative name only when the
// participant is represented. A stored name is ignored otherwise.
func (p *MeetingParticipant) EffectiveRepresentative() *string {
	if p.AttendanceStatus != AttendanceRepresented {
		return nil
	}
	return p.RepresentedBy
}

// SnapshotParticipants copies every unit with an owner into absent participants
func SnapshotParticipants(meetingID uuid.UUID, units []Unit) []MeetingParticipant {
	participants := make([]MeetingParticipant, 0, len(units))
	for _, u := range units {
		if u.OwnerID == nil || u.Owner == nil {
			continue
		}
		participants = append(participants, MeetingParticipant{
			MeetingID:        meetingID,
			OwnerID:          *u.OwnerID,
			UnitID:           u.ID,
			OwnerName:        u.Owner.Name,
			UnitIdentifier:   u.Identifier,
			Shares:           u.Shares,
			AttendanceStatus: AttendanceAbsent,
		})
	}
	return participants
}
