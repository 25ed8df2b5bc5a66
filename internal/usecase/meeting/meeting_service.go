package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
	"github.com/johnquangdev/weg-assembly/pkg/opcontext"
)

// MeetingService handles meeting scheduling and agenda business logic
type MeetingService struct {
	meetingRepo repositories.MeetingRepository
	agendaRepo  repositories.AgendaItemRepository
	logger      *zap.Logger
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	agendaRepo repositories.AgendaItemRepository,
	logger *zap.Logger,
) *MeetingService {
	return &MeetingService{
		meetingRepo: meetingRepo,
		agendaRepo:  agendaRepo,
		logger:      logger,
	}
}

// ScheduleInput represents input for scheduling a meeting
type ScheduleInput struct {
	Title       string
	ScheduledAt time.Time
	Location    string
}

// UpdateInput represents input for updating a meeting. Nil fields are kept.
type UpdateInput struct {
	Title       *string
	ScheduledAt *time.Time
	Location    *string
}

// AgendaItemInput represents input for creating or updating an agenda item
type AgendaItemInput struct {
	Title              string
	Description        *string
	RequiresResolution bool
	MajorityType       string
}

// ScheduleMeeting creates a planned meeting
func (s *MeetingService) ScheduleMeeting(ctx context.Context, h *access.PropertyHandle, input ScheduleInput) (*entities.Meeting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || input.ScheduledAt.IsZero() {
		return nil, usecaseErrors.ErrInvalidInput
	}

	meeting := &entities.Meeting{
		PropertyID:  h.Property.ID,
		Title:       title,
		ScheduledAt: input.ScheduledAt,
		Location:    strings.TrimSpace(input.Location),
		Status:      entities.MeetingStatusPlanned,
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.logger.Info("meeting scheduled",
		append(opcontext.Fields(ctx),
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("property_id", h.Property.ID.String()))...)

	return meeting, nil
}

// ListMeetings retrieves the meetings of a property
func (s *MeetingService) ListMeetings(ctx context.Context, h *access.PropertyHandle) ([]*entities.Meeting, error) {
	meetings, err := s.meetingRepo.ListByProperty(ctx, h.Property.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// GetMeeting returns the meeting, freshly loaded
func (s *MeetingService) GetMeeting(ctx context.Context, h *access.MeetingHandle) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, h.MeetingID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// UpdateMeeting changes a planned meeting
func (s *MeetingService) UpdateMeeting(ctx context.Context, h *access.MeetingHandle, input UpdateInput) (*entities.Meeting, error) {
	meeting := h.Meeting
	if !meeting.IsPlanned() {
		return nil, usecaseErrors.ErrMeetingNotPlanned
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, usecaseErrors.ErrInvalidInput
		}
		meeting.Title = title
	}
	if input.ScheduledAt != nil {
		meeting.ScheduledAt = *input.ScheduledAt
	}
	if input.Location != nil {
		meeting.Location = strings.TrimSpace(*input.Location)
	}
	meeting.UpdatedAt = time.Now()

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	return meeting, nil
}

// DeleteMeeting deletes a meeting with leaders, participants, agenda items,
// resolutions, calculations and votes. The handle must be owner level.
func (s *MeetingService) DeleteMeeting(ctx context.Context, h *access.MeetingHandle) error {
	if h.Role != entities.MemberRoleOwner {
		return usecaseErrors.ErrNotOwner
	}

	if err := s.meetingRepo.DeleteCascade(ctx, h.MeetingID()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrMeetingNotFound
		}
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	s.logger.Info("meeting deleted",
		append(opcontext.Fields(ctx), zap.String("meeting_id", h.MeetingID().String()))...)
	return nil
}
