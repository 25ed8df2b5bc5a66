package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MeetingStatus represents the lifecycle status of a meeting
type MeetingStatus string

const (
	MeetingStatusPlanned    MeetingStatus = "planned"
	MeetingStatusInProgress MeetingStatus = "in-progress"
	MeetingStatusCompleted  MeetingStatus = "completed"
)

// Meeting represents an owners' assembly of one property
type Meeting struct {
	ID                      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID              uuid.UUID      `gorm:"type:uuid;not null;index" json:"property_id"`
	Title                   string         `gorm:"type:varchar(255);not null" json:"title"`
	ScheduledAt             time.Time      `gorm:"not null;index" json:"scheduled_at"`
	Location                string         `gorm:"type:varchar(255)" json:"location"`
	Status                  MeetingStatus  `gorm:"type:varchar(20);not null;default:'planned';index" json:"status"`
	LeadersConfirmedAt      *time.Time     `json:"leaders_confirmed_at,omitempty"`
	ParticipantsConfirmedAt *time.Time     `json:"participants_confirmed_at,omitempty"`
	StartedAt               *time.Time     `json:"started_at,omitempty"`
	CompletedAt             *time.Time     `json:"completed_at,omitempty"`
	Metadata                datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt               time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// BeforeCreate assigns the primary key
func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsPlanned checks if the meeting has not been started yet
func (m *Meeting) IsPlanned() bool {
	return m.Status == MeetingStatusPlanned
}

// IsInProgress checks if the meeting is currently being conducted
func (m *Meeting) IsInProgress() bool {
	return m.Status == MeetingStatusInProgress
}

// IsCompleted checks if the meeting has been closed
func (m *Meeting) IsCompleted() bool {
	return m.Status == MeetingStatusCompleted
}

// CanTransitionTo reports whether a meeting may move from status s to next.
// A meeting starts once and completes once.
func (s MeetingStatus) CanTransitionTo(next MeetingStatus) bool {
	switch s {
	case MeetingStatusPlanned:
		return next == MeetingStatusInProgress
	case MeetingStatusInProgress:
		return next == MeetingStatusCompleted
	}
	return false
}
