package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
)

// agendaItemRepository implements the AgendaItemRepository interface
type agendaItemRepository struct {
	db *gorm.DB
}

// NewAgendaItemRepository creates a new agenda item repository
func NewAgendaItemRepository(db *gorm.DB) repositories.AgendaItemRepository {
	return &agendaItemRepository{db: db}
}

// Create creates a new agenda item
func (r *agendaItemRepository) Create(ctx context.Context, item *entities.AgendaItem) error {
	return conn(ctx, r.db).Create(item).Error
}

// FindByID retrieves an agenda item of a meeting
func (r *agendaItemRepository) FindByID(ctx context.Context, meetingID, id uuid.UUID) (*entities.AgendaItem, error) {
	var item entities.AgendaItem
	err := conn(ctx, r.db).
		Where("id = ? AND meeting_id = ?", id, meetingID).
		First(&item).Error

	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByMeeting retrieves the agenda of a meeting in order
func (r *agendaItemRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.AgendaItem, error) {
	var items []*entities.AgendaItem
	err := conn(ctx, r.db).
		Where("meeting_id = ?", meetingID).
		Order("order_index ASC").
		Find(&items).Error
	return items, err
}

// Update updates the editable fields of an agenda item
func (r *agendaItemRepository) Update(ctx context.Context, item *entities.AgendaItem) error {
	return conn(ctx, r.db).
		Model(item).
		Select("title", "description", "requires_resolution", "majority_type", "updated_at").
		Updates(item).Error
}

// NextOrderIndex returns the order index after the last item
func (r *agendaItemRepository) NextOrderIndex(ctx context.Context, meetingID uuid.UUID) (int, error) {
	var last int
	err := conn(ctx, r.db).
		Model(&entities.AgendaItem{}).
		Select("COALESCE(MAX(order_index), -1)").
		Where("meeting_id = ?", meetingID).
		Scan(&last).Error
	if err != nil {
		return 0, err
	}
	return last + 1, nil
}

// Reorder assigns order indexes following ids
func (r *agendaItemRepository) Reorder(ctx context.Context, meetingID uuid.UUID, ids []uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			result := tx.Model(&entities.AgendaItem{}).
				Where("id = ? AND meeting_id = ?", id, meetingID).
				Update("order_index", i)
			if result.Error != nil {
				return fmt.Errorf("failed to reorder agenda item: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}

// DeleteCascade deletes an agenda item with its resolution, calculations and votes
func (r *agendaItemRepository) DeleteCascade(ctx context.Context, meetingID, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		resolutions := tx.Model(&entities.Resolution{}).Select("id").Where("agenda_item_id = ?", id)

		if err := tx.Where("resolution_id IN (?)", resolutions).Delete(&entities.Vote{}).Error; err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		if err := tx.Where("resolution_id IN (?)", resolutions).Delete(&entities.ResolutionCalculation{}).Error; err != nil {
			return fmt.Errorf("failed to delete resolution calculations: %w", err)
		}
		if err := tx.Where("agenda_item_id = ?", id).Delete(&entities.Resolution{}).Error; err != nil {
			return fmt.Errorf("failed to delete resolution: %w", err)
		}

		result := tx.Where("id = ? AND meeting_id = ?", id, meetingID).Delete(&entities.AgendaItem{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete agenda item: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
