package meeting

import "time"

// MeetingResponse represents a meeting in responses
type MeetingResponse struct {
	ID                      string     `json:"id"`
	PropertyID              string     `json:"property_id"`
	Title                   string     `json:"title"`
	ScheduledAt             time.Time  `json:"scheduled_at"`
	Location                string     `json:"location"`
	Status                  string     `json:"status"`
	LeadersConfirmedAt      *time.Time `json:"leaders_confirmed_at,omitempty"`
	ParticipantsConfirmedAt *time.Time `json:"participants_confirmed_at,omitempty"`
	StartedAt               *time.Time `json:"started_at,omitempty"`
	CompletedAt             *time.Time `json:"completed_at,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// AgendaItemResponse represents an agenda item in responses
type AgendaItemResponse struct {
	ID                 string  `json:"id"`
	MeetingID          string  `json:"meeting_id"`
	OrderIndex         int     `json:"order_index"`
	Title              string  `json:"title"`
	Description        *string `json:"description,omitempty"`
	RequiresResolution bool    `json:"requires_resolution"`
	MajorityType       string  `json:"majority_type"`
}

// UserResponse represents the signed-in account
type UserResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Timezone     string     `json:"timezone"`
	Language     string     `json:"language"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
}
