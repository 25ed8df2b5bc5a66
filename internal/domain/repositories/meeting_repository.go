package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
)

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// FindByIDForUpdate retrieves a meeting and locks its row until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// ListByProperty retrieves the meetings of a property, latest first
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*entities.Meeting, error)

	// Update updates the editable fields of a meeting
	Update(ctx context.Context, meeting *entities.Meeting) error

	// MarkStarted moves a planned meeting to in-progress. Returns false if it was not planned.
	MarkStarted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// SetLeadersConfirmed sets leaders_confirmed_at if it is still null
	SetLeadersConfirmed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// SetParticipantsConfirmed sets participants_confirmed_at if it is still null
	SetParticipantsConfirmed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// MarkCompleted moves a meeting to completed. Returns false if it already was.
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// DeleteCascade deletes a meeting with leaders, participants, agenda items, resolutions and votes
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// LeaderRepository defines the interface for meeting leader data access
type LeaderRepository interface {
	// ReplaceAll deletes all leaders of a meeting and inserts the given ones
	ReplaceAll(ctx context.Context, meetingID uuid.UUID, leaders []*entities.MeetingLeader) error

	// ListByMeeting retrieves the leaders of a meeting
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingLeader, error)
}

// ParticipantRepository defines the interface for meeting participant data access
type ParticipantRepository interface {
	// CreateBatch inserts the participant snapshot of a meeting
	CreateBatch(ctx context.Context, participants []*entities.MeetingParticipant) error

	// CountByMeeting counts participants of a meeting
	CountByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error)

	// ListByMeeting retrieves the participants of a meeting ordered by unit
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error)

	// FindByID retrieves a participant of a meeting
	FindByID(ctx context.Context, meetingID, id uuid.UUID) (*entities.MeetingParticipant, error)

	// CountByIDs counts how many of ids belong to the meeting
	CountByIDs(ctx context.Context, meetingID uuid.UUID, ids []uuid.UUID) (int64, error)

	// UpdateAttendance sets the attendance status of a participant
	UpdateAttendance(ctx context.Context, meetingID, id uuid.UUID, status entities.AttendanceStatus) error

	// UpdateRepresentative sets or clears the representative name of a participant
	UpdateRepresentative(ctx context.Context, meetingID, id uuid.UUID, name *string) error
}

// AgendaItemRepository defines the interface for agenda item data access
type AgendaItemRepository interface {
	Create(ctx context.Context, item *entities.AgendaItem) error
	FindByID(ctx context.Context, meetingID, id uuid.UUID) (*entities.AgendaItem, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.AgendaItem, error)
	Update(ctx context.Context, item *entities.AgendaItem) error

	// NextOrderIndex returns the order index after the last item of a meeting
	NextOrderIndex(ctx context.Context, meetingID uuid.UUID) (int, error)

	// Reorder assigns order indexes following ids
	Reorder(ctx context.Context, meetingID uuid.UUID, ids []uuid.UUID) error

	// DeleteCascade deletes an item with its resolution and votes
	DeleteCascade(ctx context.Context, meetingID, id uuid.UUID) error
}
