package meeting

import "time"

// ScheduleMeetingRequest represents the request to schedule a meeting
type ScheduleMeetingRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=255"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Location    string    `json:"location" validate:"max=255"`
}

// UpdateMeetingRequest represents the request to update a planned meeting
type UpdateMeetingRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=255"`
}

// AgendaItemRequest represents the request to create or update an agenda item
type AgendaItemRequest struct {
	Title              string  `json:"title" validate:"required,min=1,max=255"`
	Description        *string `json:"description,omitempty"`
	RequiresResolution bool    `json:"requires_resolution"`
	MajorityType       string  `json:"majority_type" validate:"omitempty,oneof=simple qualified"`
}

// ReorderAgendaRequest lists every agenda item id in the new order
type ReorderAgendaRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required,dive,uuid"`
}
