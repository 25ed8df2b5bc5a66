package conduct

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

// VoteInput is one ballot of a batch
type VoteInput struct {
	ParticipantID uuid.UUID
	Choice        string
}

// CastResult counts what a batch did
type CastResult struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}

// choiceOrder fixes the order of grouped updates
var choiceOrder = []entities.VoteChoice{entities.VoteYes, entities.VoteNo, entities.VoteAbstain}

// CastVotes upserts a batch of ballots for a resolution. Every choice is
// validated before anything is written. Existing rows are read in one query,
// updates run as at most one statement per choice and new rows go in one
// insert, all inside one transaction. A participant listed twice keeps the
// last entry.
func (s *ConductService) CastVotes(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID, input []VoteInput) (*CastResult, error) {
	ballots, order, err := normalizeBallots(input)
	if err != nil {
		return nil, err
	}
	if err := requireVoting(h.Meeting); err != nil {
		return nil, err
	}

	resolution, item, err := s.findResolution(ctx, h, resolutionID)
	if err != nil {
		return nil, err
	}
	if !item.RequiresResolution {
		return nil, usecaseErrors.ErrResolutionNotRequired
	}

	result := &CastResult{}
	if len(order) == 0 {
		return result, nil
	}

	count, err := s.participants.CountByIDs(ctx, h.MeetingID(), order)
	if err != nil {
		return nil, fmt.Errorf("failed to check participants: %w", err)
	}
	if int(count) != len(order) {
		return nil, usecaseErrors.ErrParticipantNotFound
	}

	updates := make(map[entities.VoteChoice][]uuid.UUID)
	inserts := make([]*entities.Vote, 0, len(order))

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		meeting, err := s.lockMeeting(ctx, h.MeetingID())
		if err != nil {
			return err
		}
		if err := requireVoting(meeting); err != nil {
			return err
		}

		existing, err := s.votes.FindByParticipants(ctx, resolution.ID, order)
		if err != nil {
			return fmt.Errorf("failed to load votes: %w", err)
		}
		byParticipant := make(map[uuid.UUID]*entities.Vote, len(existing))
		for _, v := range existing {
			byParticipant[v.ParticipantID] = v
		}

		for _, participantID := range order {
			choice := ballots[participantID]
			current, ok := byParticipant[participantID]
			switch {
			case !ok:
				inserts = append(inserts, &entities.Vote{
					ResolutionID:  resolution.ID,
					ParticipantID: participantID,
					Choice:        choice,
				})
			case current.Choice != choice:
				updates[choice] = append(updates[choice], current.ID)
			default:
				result.Unchanged++
			}
		}

		for _, choice := range choiceOrder {
			if err := s.votes.UpdateChoice(ctx, updates[choice], choice); err != nil {
				return fmt.Errorf("failed to update votes: %w", err)
			}
		}
		if err := s.votes.InsertBatch(ctx, inserts); err != nil {
			return fmt.Errorf("failed to insert votes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Inserted = len(inserts)
	for _, choice := range choiceOrder {
		result.Updated += len(updates[choice])
		s.metrics.VotesCast(string(choice), "update", len(updates[choice]))
	}
	for _, v := range inserts {
		s.metrics.VotesCast(string(v.Choice), "insert", 1)
	}

	s.log(ctx, h).Info("votes cast",
		zap.String("resolution_id", resolution.ID.String()),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("unchanged", result.Unchanged))

	return result, nil
}

// normalizeBallots validates choices and keeps the last ballot per participant,
// preserving first-seen order
func normalizeBallots(input []VoteInput) (map[uuid.UUID]entities.VoteChoice, []uuid.UUID, error) {
	ballots := make(map[uuid.UUID]entities.VoteChoice, len(input))
	order := make([]uuid.UUID, 0, len(input))
	for _, in := range input {
		choice, err := entities.ParseVoteChoice(in.Choice)
		if err != nil {
			return nil, nil, usecaseErrors.ErrInvalidVoteChoice
		}
		if in.ParticipantID == uuid.Nil {
			return nil, nil, usecaseErrors.ErrInvalidInput
		}
		if _, seen := ballots[in.ParticipantID]; !seen {
			order = append(order, in.ParticipantID)
		}
		ballots[in.ParticipantID] = choice
	}
	return ballots, order, nil
}

// ListVotes retrieves the votes of a resolution with participant name and shares
func (s *ConductService) ListVotes(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID) ([]*entities.VoteWithParticipant, error) {
	resolution, _, err := s.findResolution(ctx, h, resolutionID)
	if err != nil {
		return nil, err
	}
	votes, err := s.votes.ListWithParticipants(ctx, resolution.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	return votes, nil
}
