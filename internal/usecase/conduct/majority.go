package conduct

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

type breakdownEntry struct {
	ParticipantID  uuid.UUID           `json:"participant_id"`
	UnitIdentifier string              `json:"unit_identifier"`
	Shares         string              `json:"shares"`
	Vote           entities.VoteChoice `json:"vote"`
}

// Calculate tallies the current votes of a resolution with the agenda item's
// majority type and overwrites the stored result. Each run appends an audit row.
func (s *ConductService) Calculate(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID) (*entities.Resolution, error) {
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

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		meeting, err := s.lockMeeting(ctx, h.MeetingID())
		if err != nil {
			return err
		}
		if err := requireVoting(meeting); err != nil {
			return err
		}

		votes, err := s.votes.ListWithParticipants(ctx, resolution.ID)
		if err != nil {
			return fmt.Errorf("failed to list votes: %w", err)
		}

		weighted := make([]entities.WeightedVote, len(votes))
		breakdown := make([]breakdownEntry, len(votes))
		for i, v := range votes {
			weighted[i] = entities.WeightedVote{Choice: v.Choice, Shares: v.Shares}
			breakdown[i] = breakdownEntry{
				ParticipantID:  v.ParticipantID,
				UnitIdentifier: v.UnitIdentifier,
				Shares:         v.Shares.String(),
				Vote:           v.Choice,
			}
		}

		tally, err := entities.TallyVotes(weighted)
		if err != nil {
			return fmt.Errorf("failed to tally votes: %w", err)
		}
		outcome, err := entities.Decide(tally, item.MajorityType)
		if err != nil {
			return usecaseErrors.ErrInvalidMajorityType
		}

		resolution.ApplyTally(tally, outcome, s.now())
		if err := s.resolutions.SaveTally(ctx, resolution); err != nil {
			return fmt.Errorf("failed to save tally: %w", err)
		}

		raw, err := json.Marshal(breakdown)
		if err != nil {
			return fmt.Errorf("failed to encode breakdown: %w", err)
		}
		calc := &entities.ResolutionCalculation{
			ResolutionID:  resolution.ID,
			MajorityType:  item.MajorityType,
			VotesYes:      tally.VotesYes,
			VotesNo:       tally.VotesNo,
			VotesAbstain:  tally.VotesAbstain,
			YesShares:     resolution.YesShares,
			NoShares:      resolution.NoShares,
			AbstainShares: resolution.AbstainShares,
			TotalShares:   tally.TotalShares().String(),
			Result:        outcome,
			Breakdown:     raw,
			CalculatedBy:  h.UserID,
		}
		if err := s.resolutions.AppendCalculation(ctx, calc); err != nil {
			return fmt.Errorf("failed to store calculation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ResolutionCalculated(string(item.MajorityType), string(*resolution.Result))
	s.log(ctx, h).Info("resolution calculated",
		zap.String("resolution_id", resolution.ID.String()),
		zap.String("majority_type", string(item.MajorityType)),
		zap.String("result", string(*resolution.Result)),
		zap.String("yes_shares", resolution.YesShares),
		zap.String("no_shares", resolution.NoShares),
		zap.String("abstain_shares", resolution.AbstainShares))

	return resolution, nil
}

// ListCalculations retrieves the audit trail of a resolution
func (s *ConductService) ListCalculations(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID) ([]*entities.ResolutionCalculation, error) {
	resolution, _, err := s.findResolution(ctx, h, resolutionID)
	if err != nil {
		return nil, err
	}
	calcs, err := s.resolutions.ListCalculations(ctx, resolution.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return calcs, nil
}
