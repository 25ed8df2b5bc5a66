package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
)

// resolutionRepository implements the ResolutionRepository interface
type resolutionRepository struct {
	db *gorm.DB
}

// NewResolutionRepository creates a new resolution repository
func NewResolutionRepository(db *gorm.DB) repositories.ResolutionRepository {
	return &resolutionRepository{db: db}
}

// Create inserts a resolution, relying on the unique index on agenda_item_id
func (r *resolutionRepository) Create(ctx context.Context, resolution *entities.Resolution) error {
	// Nested in a savepoint: a duplicate insert must leave an enclosing
	// transaction usable for the lookup that follows.
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(resolution).Error
	})
	return translateUnique(err)
}

// FindByID retrieves a resolution by its ID
func (r *resolutionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Resolution, error) {
	var resolution entities.Resolution
	err := conn(ctx, r.db).
		Where("id = ?", id).
		First(&resolution).Error

	if err != nil {
		return nil, err
	}
	return &resolution, nil
}

// FindByAgendaItem retrieves the resolution of an agenda item
func (r *resolutionRepository) FindByAgendaItem(ctx context.Context, agendaItemID uuid.UUID) (*entities.Resolution, error) {
	var resolution entities.Resolution
	err := conn(ctx, r.db).
		Where("agenda_item_id = ?", agendaItemID).
		First(&resolution).Error

	if err != nil {
		return nil, err
	}
	return &resolution, nil
}

// FindByAgendaItems retrieves the resolutions of several agenda items
func (r *resolutionRepository) FindByAgendaItems(ctx context.Context, agendaItemIDs []uuid.UUID) ([]*entities.Resolution, error) {
	var resolutions []*entities.Resolution
	if len(agendaItemIDs) == 0 {
		return resolutions, nil
	}
	err := conn(ctx, r.db).
		Where("agenda_item_id IN ?", agendaItemIDs).
		Find(&resolutions).Error
	return resolutions, err
}

// SaveTally overwrites counts, share sums and result
func (r *resolutionRepository) SaveTally(ctx context.Context, resolution *entities.Resolution) error {
	result := conn(ctx, r.db).
		Model(&entities.Resolution{}).
		Where("id = ?", resolution.ID).
		Updates(map[string]interface{}{
			"votes_yes":      resolution.VotesYes,
			"votes_no":       resolution.VotesNo,
			"votes_abstain":  resolution.VotesAbstain,
			"yes_shares":     resolution.YesShares,
			"no_shares":      resolution.NoShares,
			"abstain_shares": resolution.AbstainShares,
			"result":         resolution.Result,
			"calculated_at":  resolution.CalculatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppendCalculation stores an audit row of a calculator run
func (r *resolutionRepository) AppendCalculation(ctx context.Context, calc *entities.ResolutionCalculation) error {
	return conn(ctx, r.db).Create(calc).Error
}

// ListCalculations retrieves the audit rows of a resolution
func (r *resolutionRepository) ListCalculations(ctx context.Context, resolutionID uuid.UUID) ([]*entities.ResolutionCalculation, error) {
	var calcs []*entities.ResolutionCalculation
	err := conn(ctx, r.db).
		Where("resolution_id = ?", resolutionID).
		Order("created_at ASC").
		Find(&calcs).Error
	return calcs, err
}
