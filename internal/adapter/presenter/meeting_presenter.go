package presenter

import (
	meetingDTO "github.com/johnquangdev/weg-assembly/internal/adapter/dto/meeting"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meetingDTO.MeetingResponse {
	if m == nil {
		return nil
	}

	return &meetingDTO.MeetingResponse{
		ID:                      m.ID.String(),
		PropertyID:              m.PropertyID.String(),
		Title:                   m.Title,
		ScheduledAt:             m.ScheduledAt,
		Location:                m.Location,
		Status:                  string(m.Status),
		LeadersConfirmedAt:      m.LeadersConfirmedAt,
		ParticipantsConfirmedAt: m.ParticipantsConfirmedAt,
		StartedAt:               m.StartedAt,
		CompletedAt:             m.CompletedAt,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

// ToMeetingListResponse converts a slice of meetings
func ToMeetingListResponse(meetings []*entities.Meeting) []*meetingDTO.MeetingResponse {
	out := make([]*meetingDTO.MeetingResponse, len(meetings))
	for i, m := range meetings {
		out[i] = ToMeetingResponse(m)
	}
	return out
}

// ToAgendaItemResponse converts an AgendaItem entity to AgendaItemResponse DTO
func ToAgendaItemResponse(a *entities.AgendaItem) *meetingDTO.AgendaItemResponse {
	if a == nil {
		return nil
	}

	return &meetingDTO.AgendaItemResponse{
		ID:                 a.ID.String(),
		MeetingID:          a.MeetingID.String(),
		OrderIndex:         a.OrderIndex,
		Title:              a.Title,
		Description:        a.Description,
		RequiresResolution: a.RequiresResolution,
		MajorityType:       string(a.MajorityType),
	}
}

// ToAgendaItemListResponse converts a slice of agenda items
func ToAgendaItemListResponse(items []*entities.AgendaItem) []*meetingDTO.AgendaItemResponse {
	out := make([]*meetingDTO.AgendaItemResponse, len(items))
	for i, a := range items {
		out[i] = ToAgendaItemResponse(a)
	}
	return out
}
