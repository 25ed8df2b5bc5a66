package conduct

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
	"github.com/johnquangdev/weg-assembly/pkg/opcontext"
)

// Service defines the interface for the meeting conduct use case
type Service interface {
	// StartMeeting moves a planned meeting to in-progress and snapshots its participants
	StartMeeting(ctx context.Context, h *access.MeetingHandle) (*StartResult, error)

	// ConductState returns the tagged conduct state and gate timestamps
	ConductState(ctx context.Context, h *access.MeetingHandle) (*StateOverview, error)

	// ResolveStep returns the step to show for a requested step
	ResolveStep(h *access.MeetingHandle, requested entities.ConductStep) entities.ConductStep

	// ConfirmLeaders replaces the leaders and sets the leader gate once
	ConfirmLeaders(ctx context.Context, h *access.MeetingHandle, leaders []LeaderInput) ([]*entities.MeetingLeader, error)

	// ListLeaders retrieves the leaders of the meeting
	ListLeaders(ctx context.Context, h *access.MeetingHandle) ([]*entities.MeetingLeader, error)

	// ConfirmParticipants sets the participant gate once
	ConfirmParticipants(ctx context.Context, h *access.MeetingHandle) (*entities.Meeting, error)

	// ListParticipants retrieves the participant snapshot
	ListParticipants(ctx context.Context, h *access.MeetingHandle) ([]*entities.MeetingParticipant, error)

	// SetAttendance sets the attendance status of a participant
	SetAttendance(ctx context.Context, h *access.MeetingHandle, participantID uuid.UUID, status string) error

	// SetRepresentative sets or clears the representative of a participant
	SetRepresentative(ctx context.Context, h *access.MeetingHandle, participantID uuid.UUID, name *string) error

	// Quorum computes present and represented shares
	Quorum(ctx context.Context, h *access.MeetingHandle) (*entities.Quorum, error)

	// EnsureResolution returns the resolution of an agenda item, creating it once
	EnsureResolution(ctx context.Context, h *access.MeetingHandle, agendaItemID uuid.UUID, defaultMajority entities.MajorityType) (*entities.Resolution, error)

	// MarkCompleted marks an agenda item without a vote as handled
	MarkCompleted(ctx context.Context, h *access.MeetingHandle, agendaItemID uuid.UUID) (*entities.Resolution, error)

	// GetResolution retrieves a resolution of the meeting
	GetResolution(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID) (*entities.Resolution, error)

	// ListResolutions retrieves the resolutions of agenda items; all items when ids is empty
	ListResolutions(ctx context.Context, h *access.MeetingHandle, agendaItemIDs []uuid.UUID) ([]*entities.Resolution, error)

	// CastVotes upserts a batch of votes in one transaction
	CastVotes(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID, votes []VoteInput) (*CastResult, error)

	// ListVotes retrieves the votes of a resolution with participant fields
	ListVotes(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID) ([]*entities.VoteWithParticipant, error)

	// Calculate tallies the votes of a resolution and stores the result
	Calculate(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID) (*entities.Resolution, error)

	// ListCalculations retrieves the audit trail of a resolution
	ListCalculations(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID) ([]*entities.ResolutionCalculation, error)

	// CompleteMeeting closes the meeting. Repeated calls succeed without side effects.
	CompleteMeeting(ctx context.Context, h *access.MeetingHandle) (*CompleteResult, error)

	// Protocol builds the summary of the meeting
	Protocol(ctx context.Context, h *access.MeetingHandle) (*Protocol, error)

	// ProtocolDownloadURL returns a download URL of the archived protocol
	ProtocolDownloadURL(ctx context.Context, h *access.MeetingHandle) (string, error)
}

// Ensure ConductService implements Service interface
var _ Service = (*ConductService)(nil)

// KeyValueStore caches protocols of completed meetings
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ProtocolArchive stores protocol documents
type ProtocolArchive interface {
	Put(ctx context.Context, objectName string, data []byte, contentType string) error
	PresignedURL(ctx context.Context, objectName string) (string, error)
}

// Recorder receives conduct counters
type Recorder interface {
	VotesCast(choice, operation string, n int)
	ResolutionCalculated(majorityType, result string)
	MeetingCompleted()
	ParticipantsCreated(n int)
}

type nopRecorder struct{}

func (nopRecorder) VotesCast(string, string, int)       {}
func (nopRecorder) ResolutionCalculated(string, string) {}
func (nopRecorder) MeetingCompleted()                   {}
func (nopRecorder) ParticipantsCreated(int)             {}

// Dependencies groups the collaborators of ConductService. Cache, Archive and
// Metrics are optional.
type Dependencies struct {
	Transactor   repositories.Transactor
	Meetings     repositories.MeetingRepository
	Leaders      repositories.LeaderRepository
	Participants repositories.ParticipantRepository
	AgendaItems  repositories.AgendaItemRepository
	Resolutions  repositories.ResolutionRepository
	Votes        repositories.VoteRepository
	Registry     repositories.RegistryRepository

	Cache    KeyValueStore
	CacheTTL time.Duration
	Archive  ProtocolArchive
	Metrics  Recorder
	Logger   *zap.Logger
}

// ConductService handles the meeting conduct workflow
type ConductService struct {
	tx           repositories.Transactor
	meetings     repositories.MeetingRepository
	leaders      repositories.LeaderRepository
	participants repositories.ParticipantRepository
	agendaItems  repositories.AgendaItemRepository
	resolutions  repositories.ResolutionRepository
	votes        repositories.VoteRepository
	registry     repositories.RegistryRepository

	cache    KeyValueStore
	cacheTTL time.Duration
	archive  ProtocolArchive
	metrics  Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewConductService creates a new conduct service
func NewConductService(deps Dependencies) *ConductService {
	s := &ConductService{
		tx:           deps.Transactor,
		meetings:     deps.Meetings,
		leaders:      deps.Leaders,
		participants: deps.Participants,
		agendaItems:  deps.AgendaItems,
		resolutions:  deps.Resolutions,
		votes:        deps.Votes,
		registry:     deps.Registry,
		cache:        deps.Cache,
		cacheTTL:     deps.CacheTTL,
		archive:      deps.Archive,
		metrics:      deps.Metrics,
		logger:       deps.Logger,
		now:          time.Now,
	}
	if s.metrics == nil {
		s.metrics = nopRecorder{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// requireInProgress rejects writes on planned and completed meetings
func requireInProgress(m *entities.Meeting) error {
	switch {
	case m.IsCompleted():
		return usecaseErrors.ErrMeetingCompleted
	case !m.IsInProgress():
		return usecaseErrors.ErrMeetingNotInProgress
	}
	return nil
}

// requireVoting additionally requires both gates to be passed
func requireVoting(m *entities.Meeting) error {
	if err := requireInProgress(m); err != nil {
		return err
	}
	if m.LeadersConfirmedAt == nil {
		return usecaseErrors.ErrLeadersNotConfirmed
	}
	if m.ParticipantsConfirmedAt == nil {
		return usecaseErrors.ErrParticipantsNotConfirmed
	}
	return nil
}

// requireStatus rejects a status change the meeting lifecycle does not allow
func requireStatus(m *entities.Meeting, next entities.MeetingStatus) error {
	if m.Status.CanTransitionTo(next) {
		return nil
	}
	switch m.Status {
	case entities.MeetingStatusCompleted:
		return usecaseErrors.ErrMeetingCompleted
	case entities.MeetingStatusPlanned:
		return usecaseErrors.ErrMeetingNotInProgress
	}
	return usecaseErrors.ErrMeetingNotPlanned
}

// requireTransition rejects moving the conduct workflow of m to next unless
// the state machine allows it from the current state
func (s *ConductService) requireTransition(ctx context.Context, m *entities.Meeting, next entities.ConductState) error {
	agendaDone, err := s.agendaDone(ctx, m.ID)
	if err != nil {
		return err
	}

	current := m.ConductState(agendaDone)
	if current.CanTransitionTo(next) {
		return nil
	}
	switch current {
	case entities.ConductStateCompleted:
		return usecaseErrors.ErrMeetingCompleted
	case entities.ConductStateNotStarted:
		return usecaseErrors.ErrLeadersNotConfirmed
	case entities.ConductStateLeadersConfirmed:
		return usecaseErrors.ErrParticipantsNotConfirmed
	}
	return fmt.Errorf("%w: %s to %s", usecaseErrors.ErrInvalidConductTransition, current, next)
}

// lockMeeting re-reads the meeting inside the running transaction and holds
// its row until commit. Writes check their preconditions against this copy,
// not the one loaded at authorization time.
func (s *ConductService) lockMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to lock meeting: %w", err)
	}
	return meeting, nil
}

func (s *ConductService) reloadMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	meeting, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// findAgendaItem loads an agenda item of the handle's meeting
func (s *ConductService) findAgendaItem(ctx context.Context, h *access.MeetingHandle, id uuid.UUID) (*entities.AgendaItem, error) {
	item, err := s.agendaItems.FindByID(ctx, h.MeetingID(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrAgendaItemNotFound
		}
		return nil, fmt.Errorf("failed to get agenda item: %w", err)
	}
	return item, nil
}

// findResolution loads a resolution and its agenda item, both scoped to the handle's meeting
func (s *ConductService) findResolution(ctx context.Context, h *access.MeetingHandle, id uuid.UUID) (*entities.Resolution, *entities.AgendaItem, error) {
	resolution, err := s.resolutions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, usecaseErrors.ErrResolutionNotFound
		}
		return nil, nil, fmt.Errorf("failed to get resolution: %w", err)
	}

	item, err := s.agendaItems.FindByID(ctx, h.MeetingID(), resolution.AgendaItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, usecaseErrors.ErrResolutionNotFound
		}
		return nil, nil, fmt.Errorf("failed to get agenda item: %w", err)
	}
	return resolution, item, nil
}

func (s *ConductService) log(ctx context.Context, h *access.MeetingHandle) *zap.Logger {
	return s.logger.With(opcontext.Fields(ctx)...).With(zap.String("meeting_id", h.MeetingID().String()))
}
