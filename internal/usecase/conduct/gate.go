package conduct

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

// StateOverview is the conduct progress of a meeting
type StateOverview struct {
	State                   entities.ConductState  `json:"state"`
	Status                  entities.MeetingStatus `json:"status"`
	NextStep                string                 `json:"next_step"`
	LeadersConfirmedAt      *time.Time             `json:"leaders_confirmed_at,omitempty"`
	ParticipantsConfirmedAt *time.Time             `json:"participants_confirmed_at,omitempty"`
	CompletedAt             *time.Time             `json:"completed_at,omitempty"`
}

// LeaderInput is one leader of a leader confirmation
type LeaderInput struct {
	Name string
	Role string
}

// CompleteResult is the outcome of completing a meeting
type CompleteResult struct {
	Meeting *entities.Meeting
	// Changed is false when the meeting already was completed
	Changed bool
}

// ConductState derives the tagged state from the persisted timestamps
func (s *ConductService) ConductState(ctx context.Context, h *access.MeetingHandle) (*StateOverview, error) {
	meeting, err := s.reloadMeeting(ctx, h.MeetingID())
	if err != nil {
		return nil, err
	}

	agendaDone, err := s.agendaDone(ctx, meeting.ID)
	if err != nil {
		return nil, err
	}

	state := meeting.ConductState(agendaDone)
	return &StateOverview{
		State:                   state,
		Status:                  meeting.Status,
		NextStep:                nextStep(state).String(),
		LeadersConfirmedAt:      meeting.LeadersConfirmedAt,
		ParticipantsConfirmedAt: meeting.ParticipantsConfirmedAt,
		CompletedAt:             meeting.CompletedAt,
	}, nil
}

func nextStep(state entities.ConductState) entities.ConductStep {
	switch state {
	case entities.ConductStateNotStarted:
		return entities.ConductStepLeaders
	case entities.ConductStateLeadersConfirmed:
		return entities.ConductStepParticipants
	case entities.ConductStateParticipantsConfirmed:
		return entities.ConductStepAgendaItems
	default:
		return entities.ConductStepSummary
	}
}

// ResolveStep returns requested if its gates are passed, otherwise the first unmet step
func (s *ConductService) ResolveStep(h *access.MeetingHandle, requested entities.ConductStep) entities.ConductStep {
	return h.Meeting.FirstUnmetStep(requested)
}

// ConfirmLeaders replaces the full leader list and sets leaders_confirmed_at the first time
func (s *ConductService) ConfirmLeaders(ctx context.Context, h *access.MeetingHandle, input []LeaderInput) ([]*entities.MeetingLeader, error) {
	if err := requireInProgress(h.Meeting); err != nil {
		return nil, err
	}

	leaders := make([]*entities.MeetingLeader, 0, len(input))
	for _, in := range input {
		name := strings.TrimSpace(in.Name)
		role := entities.LeaderRole(in.Role)
		if name == "" {
			return nil, usecaseErrors.ErrInvalidInput
		}
		if !role.IsValid() {
			return nil, usecaseErrors.ErrInvalidLeaderRole
		}
		leaders = append(leaders, &entities.MeetingLeader{Name: name, Role: role})
	}

	values := make([]entities.MeetingLeader, len(leaders))
	for i, l := range leaders {
		values[i] = *l
	}
	if !entities.HasChair(values) {
		return nil, usecaseErrors.ErrChairRequired
	}

	var first bool
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		meeting, err := s.lockMeeting(ctx, h.MeetingID())
		if err != nil {
			return err
		}
		if err := requireInProgress(meeting); err != nil {
			return err
		}
		if err := s.requireTransition(ctx, meeting, entities.ConductStateLeadersConfirmed); err != nil {
			return err
		}

		if err := s.leaders.ReplaceAll(ctx, h.MeetingID(), leaders); err != nil {
			return err
		}
		first, err = s.meetings.SetLeadersConfirmed(ctx, h.MeetingID(), s.now())
		if err != nil {
			return fmt.Errorf("failed to confirm leaders: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx, h).Info("leaders confirmed", zap.Int("leaders", len(leaders)), zap.Bool("first", first))
	return leaders, nil
}

// ListLeaders retrieves the leaders of the meeting
func (s *ConductService) ListLeaders(ctx context.Context, h *access.MeetingHandle) ([]*entities.MeetingLeader, error) {
	leaders, err := s.leaders.ListByMeeting(ctx, h.MeetingID())
	if err != nil {
		return nil, fmt.Errorf("failed to list leaders: %w", err)
	}
	return leaders, nil
}

// ConfirmParticipants sets participants_confirmed_at once. Leaders must be confirmed.
func (s *ConductService) ConfirmParticipants(ctx context.Context, h *access.MeetingHandle) (*entities.Meeting, error) {
	if err := requireInProgress(h.Meeting); err != nil {
		return nil, err
	}

	var first bool
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		meeting, err := s.lockMeeting(ctx, h.MeetingID())
		if err != nil {
			return err
		}
		if err := requireInProgress(meeting); err != nil {
			return err
		}
		if err := s.requireTransition(ctx, meeting, entities.ConductStateParticipantsConfirmed); err != nil {
			return err
		}

		first, err = s.meetings.SetParticipantsConfirmed(ctx, h.MeetingID(), s.now())
		if err != nil {
			return fmt.Errorf("failed to confirm participants: %w", err)
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

	s.log(ctx, h).Info("participants confirmed", zap.Bool("first", first))
	return meeting, nil
}

// CompleteMeeting sets the meeting to completed. Only the caller that flips
// the status archives and caches the protocol; later calls are no-ops.
func (s *ConductService) CompleteMeeting(ctx context.Context, h *access.MeetingHandle) (*CompleteResult, error) {
	if h.Meeting.IsCompleted() {
		return &CompleteResult{Meeting: h.Meeting, Changed: false}, nil
	}
	if err := requireVoting(h.Meeting); err != nil {
		return nil, err
	}

	var changed bool
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		meeting, err := s.lockMeeting(ctx, h.MeetingID())
		if err != nil {
			return err
		}
		if meeting.IsCompleted() {
			return nil
		}
		if err := requireStatus(meeting, entities.MeetingStatusCompleted); err != nil {
			return err
		}
		if err := s.requireTransition(ctx, meeting, entities.ConductStateCompleted); err != nil {
			return err
		}

		changed, err = s.meetings.MarkCompleted(ctx, h.MeetingID(), s.now())
		if err != nil {
			return fmt.Errorf("failed to complete meeting: %w", err)
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
	if !changed {
		return &CompleteResult{Meeting: meeting, Changed: false}, nil
	}

	s.metrics.MeetingCompleted()
	s.log(ctx, h).Info("meeting completed")

	completed := *h
	completed.Meeting = meeting
	s.publishProtocol(ctx, &completed)

	return &CompleteResult{Meeting: meeting, Changed: true}, nil
}

// publishProtocol archives and caches the protocol of a completed meeting.
// Failures are logged; the meeting stays completed.
func (s *ConductService) publishProtocol(ctx context.Context, h *access.MeetingHandle) {
	protocol, err := s.buildProtocol(ctx, h)
	if err != nil {
		s.log(ctx, h).Error("failed to build protocol", zap.Error(err))
		return
	}
	body, err := json.Marshal(protocol)
	if err != nil {
		s.log(ctx, h).Error("failed to encode protocol", zap.Error(err))
		return
	}

	if s.archive != nil {
		if err := s.archive.Put(ctx, protocolObjectName(h), body, "application/json"); err != nil {
			s.log(ctx, h).Error("failed to archive protocol", zap.Error(err))
		}
	}
	s.cacheProtocol(ctx, h, body)
}
