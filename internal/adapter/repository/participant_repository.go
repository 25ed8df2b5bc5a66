package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
)

// participantRepository implements the ParticipantRepository interface
type participantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *gorm.DB) repositories.ParticipantRepository {
	return &participantRepository{db: db}
}

// CreateBatch inserts the participant snapshot in one statement
func (r *participantRepository) CreateBatch(ctx context.Context, participants []*entities.MeetingParticipant) error {
	if len(participants) == 0 {
		return nil
	}
	return conn(ctx, r.db).Create(&participants).Error
}

// CountByMeeting counts participants of a meeting
func (r *participantRepository) CountByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&entities.MeetingParticipant{}).
		Where("meeting_id = ?", meetingID).
		Count(&count).Error
	return count, err
}

// ListByMeeting retrieves all participants of a meeting
func (r *participantRepository) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.MeetingParticipant, error) {
	var participants []*entities.MeetingParticipant
	err := conn(ctx, r.db).
		Where("meeting_id = ?", meetingID).
		Order("unit_identifier ASC").
		Find(&participants).Error
	return participants, err
}

// FindByID retrieves a participant of a meeting
func (r *participantRepository) FindByID(ctx context.Context, meetingID, id uuid.UUID) (*entities.MeetingParticipant, error) {
	var participant entities.MeetingParticipant
	err := conn(ctx, r.db).
		Where("id = ? AND meeting_id = ?", id, meetingID).
		First(&participant).Error

	if err != nil {
		return nil, err
	}
	return &participant, nil
}

// CountByIDs counts how many of ids belong to the meeting
func (r *participantRepository) CountByIDs(ctx context.Context, meetingID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := conn(ctx, r.db).
		Model(&entities.MeetingParticipant{}).
		Where("meeting_id = ? AND id IN ?", meetingID, ids).
		Count(&count).Error
	return count, err
}

// UpdateAttendance sets the attendance status of a participant
func (r *participantRepository) UpdateAttendance(ctx context.Context, meetingID, id uuid.UUID, status entities.AttendanceStatus) error {
	result := conn(ctx, r.db).
		Model(&entities.MeetingParticipant{}).
		Where("id = ? AND meeting_id = ?", id, meetingID).
		Update("attendance_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateRepresentative sets or clears the representative name of a participant
func (r *participantRepository) UpdateRepresentative(ctx context.Context, meetingID, id uuid.UUID, name *string) error {
	result := conn(ctx, r.db).
		Model(&entities.MeetingParticipant{}).
		Where("id = ? AND meeting_id = ?", id, meetingID).
		Update("represented_by", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
