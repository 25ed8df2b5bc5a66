package conduct

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

// EnsureResolution returns the resolution of an agenda item. The first call
// creates it with defaultMajority and empty tallies; later calls return the
// stored row unchanged, even if the item's majority type changed since.
func (s *ConductService) EnsureResolution(ctx context.Context, h *access.MeetingHandle, agendaItemID uuid.UUID, defaultMajority entities.MajorityType) (*entities.Resolution, error) {
	if err := requireVoting(h.Meeting); err != nil {
		return nil, err
	}

	item, err := s.findAgendaItem(ctx, h, agendaItemID)
	if err != nil {
		return nil, err
	}
	if !item.RequiresResolution {
		return nil, usecaseErrors.ErrResolutionNotRequired
	}
	if defaultMajority == "" {
		defaultMajority = item.MajorityType
	}
	if !defaultMajority.IsValid() {
		return nil, usecaseErrors.ErrInvalidMajorityType
	}

	var resolution *entities.Resolution
	var created bool
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		meeting, err := s.lockMeeting(ctx, h.MeetingID())
		if err != nil {
			return err
		}
		if err := requireVoting(meeting); err != nil {
			return err
		}
		resolution, created, err = s.findOrCreateResolution(ctx, item.ID, defaultMajority)
		return err
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.log(ctx, h).Info("resolution created",
			zap.String("agenda_item_id", item.ID.String()),
			zap.String("resolution_id", resolution.ID.String()))
	}
	return resolution, nil
}

// MarkCompleted records a placeholder resolution for an agenda item without a
// vote so the summary can treat it as handled. Items requiring a vote are rejected.
func (s *ConductService) MarkCompleted(ctx context.Context, h *access.MeetingHandle, agendaItemID uuid.UUID) (*entities.Resolution, error) {
	if err := requireVoting(h.Meeting); err != nil {
		return nil, err
	}

	item, err := s.findAgendaItem(ctx, h, agendaItemID)
	if err != nil {
		return nil, err
	}
	if item.RequiresResolution {
		return nil, usecaseErrors.ErrVoteRequired
	}

	var resolution *entities.Resolution
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		meeting, err := s.lockMeeting(ctx, h.MeetingID())
		if err != nil {
			return err
		}
		if err := requireVoting(meeting); err != nil {
			return err
		}
		resolution, _, err = s.findOrCreateResolution(ctx, item.ID, entities.MajoritySimple)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resolution, nil
}

// findOrCreateResolution looks the resolution up before inserting. A concurrent
// insert loses on the unique index and returns the winner's row.
func (s *ConductService) findOrCreateResolution(ctx context.Context, agendaItemID uuid.UUID, majority entities.MajorityType) (*entities.Resolution, bool, error) {
	existing, err := s.resolutions.FindByAgendaItem(ctx, agendaItemID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to get resolution: %w", err)
	}

	resolution := &entities.Resolution{
		AgendaItemID:  agendaItemID,
		MajorityType:  majority,
		YesShares:     "0",
		NoShares:      "0",
		AbstainShares: "0",
	}
	if err := s.resolutions.Create(ctx, resolution); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			existing, err := s.resolutions.FindByAgendaItem(ctx, agendaItemID)
			if err != nil {
				return nil, false, fmt.Errorf("failed to get resolution: %w", err)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create resolution: %w", err)
	}
	return resolution, true, nil
}

// GetResolution retrieves a resolution of the meeting
func (s *ConductService) GetResolution(ctx context.Context, h *access.MeetingHandle, resolutionID uuid.UUID) (*entities.Resolution, error) {
	resolution, _, err := s.findResolution(ctx, h, resolutionID)
	return resolution, err
}

// ListResolutions retrieves resolutions batched by agenda item ids. Ids of
// other meetings are ignored. An empty list returns every resolution of the meeting.
func (s *ConductService) ListResolutions(ctx context.Context, h *access.MeetingHandle, agendaItemIDs []uuid.UUID) ([]*entities.Resolution, error) {
	items, err := s.agendaItems.ListByMeeting(ctx, h.MeetingID())
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda items: %w", err)
	}

	own := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		own[item.ID] = true
	}

	ids := make([]uuid.UUID, 0, len(items))
	if len(agendaItemIDs) == 0 {
		for _, item := range items {
			ids = append(ids, item.ID)
		}
	} else {
		for _, id := range agendaItemIDs {
			if own[id] {
				ids = append(ids, id)
			}
		}
	}

	resolutions, err := s.resolutions.FindByAgendaItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolutions: %w", err)
	}
	return resolutions, nil
}

// agendaDone reports whether every agenda item has a resolution row
func (s *ConductService) agendaDone(ctx context.Context, meetingID uuid.UUID) (bool, error) {
	items, err := s.agendaItems.ListByMeeting(ctx, meetingID)
	if err != nil {
		return false, fmt.Errorf("failed to list agenda items: %w", err)
	}
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	resolutions, err := s.resolutions.FindByAgendaItems(ctx, ids)
	if err != nil {
		return false, fmt.Errorf("failed to list resolutions: %w", err)
	}
	return len(resolutions) == len(items), nil
}
