package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MajorityType selects the acceptance threshold of a resolution
type MajorityType string

const (
	MajoritySimple    MajorityType = "simple"
	MajorityQualified MajorityType = "qualified"
)

// IsValid checks if the majority type is known
func (m MajorityType) IsValid() bool {
	return m == MajoritySimple || m == MajorityQualified
}

// AgendaItem is an ordered point of a meeting's agenda
type AgendaItem struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	MeetingID          uuid.UUID    `gorm:"type:uuid;not null;index" json:"meeting_id"`
	OrderIndex         int          `gorm:"not null" json:"order_index"`
	Title              string       `gorm:"type:varchar(255);not null" json:"title"`
	Description        *string      `gorm:"type:text" json:"description,omitempty"`
	RequiresResolution bool         `gorm:"not null;default:false" json:"requires_resolution"`
	MajorityType       MajorityType `gorm:"type:varchar(20);not null;default:'simple'" json:"majority_type"`
	CreatedAt          time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for AgendaItem
func (AgendaItem) TableName() string {
	return "agenda_items"
}

// BeforeCreate assigns the primary key
func (a *AgendaItem) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
