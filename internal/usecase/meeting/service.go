package meeting

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
)

// Service defines the interface for meeting scheduling and agenda management
type Service interface {
	// ScheduleMeeting creates a planned meeting for a property
	ScheduleMeeting(ctx context.Context, h *access.PropertyHandle, input ScheduleInput) (*entities.Meeting, error)

	// ListMeetings retrieves the meetings of a property
	ListMeetings(ctx context.Context, h *access.PropertyHandle) ([]*entities.Meeting, error)

	// GetMeeting returns the meeting of a handle, freshly loaded
	GetMeeting(ctx context.Context, h *access.MeetingHandle) (*entities.Meeting, error)

	// UpdateMeeting changes title, schedule or location of a planned meeting
	UpdateMeeting(ctx context.Context, h *access.MeetingHandle, input UpdateInput) (*entities.Meeting, error)

	// DeleteMeeting deletes a meeting with everything attached to it
	DeleteMeeting(ctx context.Context, h *access.MeetingHandle) error

	// AddAgendaItem appends an item to the agenda
	AddAgendaItem(ctx context.Context, h *access.MeetingHandle, input AgendaItemInput) (*entities.AgendaItem, error)

	// UpdateAgendaItem changes an agenda item
	UpdateAgendaItem(ctx context.Context, h *access.MeetingHandle, itemID uuid.UUID, input AgendaItemInput) (*entities.AgendaItem, error)

	// DeleteAgendaItem deletes an agenda item with its resolution and votes
	DeleteAgendaItem(ctx context.Context, h *access.MeetingHandle, itemID uuid.UUID) error

	// ListAgendaItems retrieves the agenda in order
	ListAgendaItems(ctx context.Context, h *access.MeetingHandle) ([]*entities.AgendaItem, error)

	// ReorderAgendaItems sets the agenda order to ids
	ReorderAgendaItems(ctx context.Context, h *access.MeetingHandle, ids []uuid.UUID) ([]*entities.AgendaItem, error)
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)
