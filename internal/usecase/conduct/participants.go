package conduct

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

// StartResult is the outcome of starting a meeting
type StartResult struct {
	Meeting      *entities.Meeting
	Participants []*entities.MeetingParticipant
}

// StartMeeting moves a planned meeting to in-progress and copies every
// owner-unit pairing of the property into absent participants, atomically.
// A second call fails; the snapshot is never rebuilt.
func (s *ConductService) StartMeeting(ctx context.Context, h *access.MeetingHandle) (*StartResult, error) {
	if h.Meeting.IsCompleted() {
		return nil, usecaseErrors.ErrMeetingCompleted
	}

	var participants []*entities.MeetingParticipant
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		meeting, err := s.lockMeeting(ctx, h.MeetingID())
		if err != nil {
			return err
		}

		count, err := s.participants.CountByMeeting(ctx, h.MeetingID())
		if err != nil {
			return fmt.Errorf("failed to count participants: %w", err)
		}
		if count > 0 {
			return usecaseErrors.ErrParticipantsAlreadyExist
		}
		if err := requireStatus(meeting, entities.MeetingStatusInProgress); err != nil {
			return err
		}

		units, err := s.registry.ListOwnedUnits(ctx, h.Meeting.PropertyID)
		if err != nil {
			return fmt.Errorf("failed to list units: %w", err)
		}
		snapshot := entities.SnapshotParticipants(h.MeetingID(), units)
		if len(snapshot) == 0 {
			return usecaseErrors.ErrNoVotingUnits
		}

		started, err := s.meetings.MarkStarted(ctx, h.MeetingID(), s.now())
		if err != nil {
			return fmt.Errorf("failed to start meeting: %w", err)
		}
		if !started {
			return usecaseErrors.ErrMeetingNotPlanned
		}

		participants = make([]*entities.MeetingParticipant, len(snapshot))
		for i := range snapshot {
			participants[i] = &snapshot[i]
		}
		if err := s.participants.CreateBatch(ctx, participants); err != nil {
			return fmt.Errorf("failed to create participants: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	meeting, err := s.reloadMeeting(ctx, h.MeetingID())
	if err != nil {
		return nil, err
	}

	s.metrics.ParticipantsCreated(len(participants))
	s.log(ctx, h).Info("meeting started", zap.Int("participants", len(participants)))

	return &StartResult{Meeting: meeting, Participants: participants}, nil
}

// ListParticipants retrieves the participant snapshot
func (s *ConductService) ListParticipants(ctx context.Context, h *access.MeetingHandle) ([]*entities.MeetingParticipant, error) {
	participants, err := s.participants.ListByMeeting(ctx, h.MeetingID())
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

// SetAttendance sets the attendance status of a participant. The write is
// direct; concurrent edits resolve by last writer.
func (s *ConductService) SetAttendance(ctx context.Context, h *access.MeetingHandle, participantID uuid.UUID, status string) error {
	attendance := entities.AttendanceStatus(status)
	if !attendance.IsValid() {
		return usecaseErrors.ErrInvalidAttendanceStatus
	}
	if err := s.requireAttendanceWritable(h); err != nil {
		return err
	}

	if err := s.participants.UpdateAttendance(ctx, h.MeetingID(), participantID, attendance); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrParticipantNotFound
		}
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	return nil
}

// SetRepresentative stores the representative name. It is kept whatever the
// status is; only represented participants expose it downstream.
func (s *ConductService) SetRepresentative(ctx context.Context, h *access.MeetingHandle, participantID uuid.UUID, name *string) error {
	if err := s.requireAttendanceWritable(h); err != nil {
		return err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			name = nil
		} else {
			name = &trimmed
		}
	}

	if err := s.participants.UpdateRepresentative(ctx, h.MeetingID(), participantID, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrParticipantNotFound
		}
		return fmt.Errorf("failed to update representative: %w", err)
	}
	return nil
}

// Quorum computes the present and represented share ratio
func (s *ConductService) Quorum(ctx context.Context, h *access.MeetingHandle) (*entities.Quorum, error) {
	participants, err := s.participants.ListByMeeting(ctx, h.MeetingID())
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	q := entities.ComputeQuorum(derefParticipants(participants))
	return &q, nil
}

func (s *ConductService) requireAttendanceWritable(h *access.MeetingHandle) error {
	if err := requireInProgress(h.Meeting); err != nil {
		return err
	}
	if h.Meeting.LeadersConfirmedAt == nil {
		return usecaseErrors.ErrLeadersNotConfirmed
	}
	return nil
}

func derefParticipants(participants []*entities.MeetingParticipant) []entities.MeetingParticipant {
	out := make([]entities.MeetingParticipant, len(participants))
	for i, p := range participants {
		out[i] = *p
	}
	return out
}
