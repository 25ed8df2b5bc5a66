package meeting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

func validateAgendaInput(input AgendaItemInput) (string, entities.MajorityType, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return "", "", usecaseErrors.ErrInvalidInput
	}
	majority := entities.MajorityType(input.MajorityType)
	if majority == "" {
		majority = entities.MajoritySimple
	}
	if !majority.IsValid() {
		return "", "", usecaseErrors.ErrInvalidMajorityType
	}
	return title, majority, nil
}

func requireNotCompleted(h *access.MeetingHandle) error {
	if h.Meeting.IsCompleted() {
		return usecaseErrors.ErrMeetingCompleted
	}
	return nil
}

// AddAgendaItem appends an item at the next order index
func (s *MeetingService) AddAgendaItem(ctx context.Context, h *access.MeetingHandle, input AgendaItemInput) (*entities.AgendaItem, error) {
	if err := requireNotCompleted(h); err != nil {
		return nil, err
	}
	title, majority, err := validateAgendaInput(input)
	if err != nil {
		return nil, err
	}

	next, err := s.agendaRepo.NextOrderIndex(ctx, h.MeetingID())
	if err != nil {
		return nil, fmt.Errorf("failed to get next order index: %w", err)
	}

	item := &entities.AgendaItem{
		MeetingID:          h.MeetingID(),
		OrderIndex:         next,
		Title:              title,
		Description:        input.Description,
		RequiresResolution: input.RequiresResolution,
		MajorityType:       majority,
	}
	if err := s.agendaRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create agenda item: %w", err)
	}
	return item, nil
}

// UpdateAgendaItem changes an agenda item. An existing resolution keeps the
// majority type it was created with.
func (s *MeetingService) UpdateAgendaItem(ctx context.Context, h *access.MeetingHandle, itemID uuid.UUID, input AgendaItemInput) (*entities.AgendaItem, error) {
	if err := requireNotCompleted(h); err != nil {
		return nil, err
	}
	title, majority, err := validateAgendaInput(input)
	if err != nil {
		return nil, err
	}

	item, err := s.findItem(ctx, h, itemID)
	if err != nil {
		return nil, err
	}
	item.Title = title
	item.Description = input.Description
	item.RequiresResolution = input.RequiresResolution
	item.MajorityType = majority

	if err := s.agendaRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update agenda item: %w", err)
	}
	return item, nil
}

// DeleteAgendaItem deletes an item with its resolution and votes
func (s *MeetingService) DeleteAgendaItem(ctx context.Context, h *access.MeetingHandle, itemID uuid.UUID) error {
	if err := requireNotCompleted(h); err != nil {
		return err
	}
	if err := s.agendaRepo.DeleteCascade(ctx, h.MeetingID(), itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecaseErrors.ErrAgendaItemNotFound
		}
		return fmt.Errorf("failed to delete agenda item: %w", err)
	}
	return nil
}

// ListAgendaItems retrieves the agenda in order
func (s *MeetingService) ListAgendaItems(ctx context.Context, h *access.MeetingHandle) ([]*entities.AgendaItem, error) {
	items, err := s.agendaRepo.ListByMeeting(ctx, h.MeetingID())
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda items: %w", err)
	}
	return items, nil
}

// ReorderAgendaItems sets the order to ids, which must name every item once
func (s *MeetingService) ReorderAgendaItems(ctx context.Context, h *access.MeetingHandle, ids []uuid.UUID) ([]*entities.AgendaItem, error) {
	if err := requireNotCompleted(h); err != nil {
		return nil, err
	}

	items, err := s.agendaRepo.ListByMeeting(ctx, h.MeetingID())
	if err != nil {
		return nil, fmt.Errorf("failed to list agenda items: %w", err)
	}
	if len(ids) != len(items) {
		return nil, usecaseErrors.ErrInvalidAgendaOrder
	}
	known := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		known[item.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return nil, usecaseErrors.ErrInvalidAgendaOrder
		}
		delete(known, id)
	}

	if err := s.agendaRepo.Reorder(ctx, h.MeetingID(), ids); err != nil {
		return nil, fmt.Errorf("failed to reorder agenda items: %w", err)
	}
	return s.ListAgendaItems(ctx, h)
}

func (s *MeetingService) findItem(ctx context.Context, h *access.MeetingHandle, id uuid.UUID) (*entities.AgendaItem, error) {
	item, err := s.agendaRepo.FindByID(ctx, h.MeetingID(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrAgendaItemNotFound
		}
		return nil, fmt.Errorf("failed to get agenda item: %w", err)
	}
	return item, nil
}
