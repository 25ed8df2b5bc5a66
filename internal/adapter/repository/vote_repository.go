package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
)

// voteRepository implements the VoteRepository interface
type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new vote repository
func NewVoteRepository(db *gorm.DB) repositories.VoteRepository {
	return &voteRepository{db: db}
}

// FindByParticipants retrieves existing votes of the given participants in one query
func (r *voteRepository) FindByParticipants(ctx context.Context, resolutionID uuid.UUID, participantIDs []uuid.UUID) ([]*entities.Vote, error) {
	var votes []*entities.Vote
	if len(participantIDs) == 0 {
		return votes, nil
	}
	err := conn(ctx, r.db).
		Where("resolution_id = ? AND participant_id IN ?", resolutionID, participantIDs).
		Find(&votes).Error
	return votes, err
}

// UpdateChoice sets choice on all votes with the given ids in one statement
func (r *voteRepository) UpdateChoice(ctx context.Context, ids []uuid.UUID, choice entities.VoteChoice) error {
	if len(ids) == 0 {
		return nil
	}
	return conn(ctx, r.db).
		Model(&entities.Vote{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"vote":       choice,
			"updated_at": time.Now(),
		}).Error
}

// InsertBatch inserts votes in one statement. A row inserted concurrently for
// the same participant is overwritten, so the last writer wins.
func (r *voteRepository) InsertBatch(ctx context.Context, votes []*entities.Vote) error {
	if len(votes) == 0 {
		return nil
	}
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resolution_id"}, {Name: "participant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"vote", "updated_at"}),
		}).
		Create(&votes).Error
}

// ListWithParticipants retrieves the votes of a resolution joined with participant fields
func (r *voteRepository) ListWithParticipants(ctx context.Context, resolutionID uuid.UUID) ([]*entities.VoteWithParticipant, error) {
	var votes []*entities.VoteWithParticipant
	err := conn(ctx, r.db).
		Table("votes").
		Select("votes.id, votes.resolution_id, votes.participant_id, votes.vote, " +
			"meeting_participants.owner_name, meeting_participants.unit_identifier, meeting_participants.shares").
		Joins("JOIN meeting_participants ON meeting_participants.id = votes.participant_id").
		Where("votes.resolution_id = ?", resolutionID).
		Order("meeting_participants.unit_identifier ASC").
		Scan(&votes).Error
	return votes, err
}
