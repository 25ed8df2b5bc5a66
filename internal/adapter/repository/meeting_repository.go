package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return conn(ctx, r.db).Create(meeting).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := conn(ctx, r.db).
		Where("id = ?", id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindByIDForUpdate retrieves a meeting with a row lock. Gate checks read the
// meeting through it so a concurrent status change waits for the transaction.
func (r *meetingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&meeting).Error

	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// ListByProperty retrieves the meetings of a property
func (r *meetingRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	err := conn(ctx, r.db).
		Where("property_id = ?", propertyID).
		Order("scheduled_at DESC").
		Find(&meetings).Error
	return meetings, err
}

// Update updates the editable fields of a meeting
func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return conn(ctx, r.db).
		Model(meeting).
		Select("title", "scheduled_at", "location", "metadata", "updated_at").
		Updates(meeting).Error
}

// MarkStarted moves a planned meeting to in-progress
func (r *meetingRepository) MarkStarted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := conn(ctx, r.db).
		Model(&entities.Meeting{}).
		Where("id = ? AND status = ?", id, entities.MeetingStatusPlanned).
		Updates(map[string]interface{}{
			"status":     entities.MeetingStatusInProgress,
			"started_at": at,
			"updated_at": at,
		})
	return result.RowsAffected > 0, result.Error
}

// SetLeadersConfirmed sets the leader gate once
func (r *meetingRepository) SetLeadersConfirmed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := conn(ctx, r.db).
		Model(&entities.Meeting{}).
		Where("id = ? AND leaders_confirmed_at IS NULL", id).
		Updates(map[string]interface{}{
			"leaders_confirmed_at": at,
			"updated_at":           at,
		})
	return result.RowsAffected > 0, result.Error
}

// SetParticipantsConfirmed sets the participant gate once, after the leader gate
func (r *meetingRepository) SetParticipantsConfirmed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := conn(ctx, r.db).
		Model(&entities.Meeting{}).
		Where("id = ? AND leaders_confirmed_at IS NOT NULL AND participants_confirmed_at IS NULL", id).
		Updates(map[string]interface{}{
			"participants_confirmed_at": at,
			"updated_at":                at,
		})
	return result.RowsAffected > 0, result.Error
}

// MarkCompleted moves a meeting to completed. Only the first caller gets true.
func (r *meetingRepository) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := conn(ctx, r.db).
		Model(&entities.Meeting{}).
		Where("id = ? AND status <> ?", id, entities.MeetingStatusCompleted).
		Updates(map[string]interface{}{
			"status":       entities.MeetingStatusCompleted,
			"completed_at": at,
			"updated_at":   at,
		})
	return result.RowsAffected > 0, result.Error
}

// DeleteCascade deletes a meeting and everything that hangs off it in one transaction
func (r *meetingRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		items := tx.Model(&entities.AgendaItem{}).Select("id").Where("meeting_id = ?", id)
		resolutions := tx.Model(&entities.Resolution{}).Select("id").Where("agenda_item_id IN (?)", items)

		steps := []struct {
			name  string
			query *gorm.DB
			model interface{}
		}{
			{"votes", tx.Where("resolution_id IN (?)", resolutions), &entities.Vote{}},
			{"resolution calculations", tx.Where("resolution_id IN (?)", resolutions), &entities.ResolutionCalculation{}},
			{"resolutions", tx.Where("agenda_item_id IN (?)", items), &entities.Resolution{}},
			{"agenda items", tx.Where("meeting_id = ?", id), &entities.AgendaItem{}},
			{"participants", tx.Where("meeting_id = ?", id), &entities.MeetingParticipant{}},
			{"leaders", tx.Where("meeting_id = ?", id), &entities.MeetingLeader{}},
		}
		for _, step := range steps {
			if err := step.query.Delete(step.model).Error; err != nil {
				return fmt.Errorf("failed to delete %s: %w", step.name, err)
			}
		}

		result := tx.Where("id = ?", id).Delete(&entities.Meeting{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete meeting: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// leaderRepository implements the LeaderRepository interface
type leaderRepository struct {
	db *gorm.DB
}

// NewLeaderRepository creates a new leader repository
func NewLeaderRepository(db *gorm.DB) repositories.LeaderRepository {
	return &leaderRepository{db: db}
}

// ReplaceAll deletes all leaders of a meeting and inserts the given ones
func (r *leaderRepository) ReplaceAll(ctx context.Context, meetingID uuid.UUID, leaders []*entities.MeetingLeader) error {
	db := conn(ctx, r.db)
	if err := db.Where("meeting_id = ?", meetingID).Delete(&entities.MeetingLeader{}).Error; err != nil {
		return fmt.Errorf("failed to delete leaders: %w", err)
	}
	if len(leaders) == 0 {
		return nil
	}
	for i, l := range leaders {
		l.MeetingID = meetingID
		l.Position = i
	}
	if err := db.Create(&leaders).Error; err != nil {
		return fmt.Errorf("failed to insert leaders: %w", err)
	}
	return nil
}

// ListByMeeting retrieves the leaders of a meeting
func (r *leaderRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingLeader, error) {
	var leaders []*entities.MeetingLeader
	err := conn(ctx, r.db).
		Where("meeting_id = ?", meetingID).
		Order("position ASC").
		Find(&leaders).Error
	return leaders, err
}
