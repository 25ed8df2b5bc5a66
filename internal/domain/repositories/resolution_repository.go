package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
)

// ResolutionRepository defines the interface for resolution data access
type ResolutionRepository interface {
	// Create inserts a resolution. Returns ErrDuplicateKey if the agenda item already has one.
	Create(ctx context.Context, resolution *entities.Resolution) error

	// FindByID retrieves a resolution by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Resolution, error)

	// FindByAgendaItem retrieves the resolution of an agenda item
	FindByAgendaItem(ctx context.Context, agendaItemID uuid.UUID) (*entities.Resolution, error)

	// FindByAgendaItems retrieves the resolutions of several agenda items in one query
	FindByAgendaItems(ctx context.Context, agendaItemIDs []uuid.UUID) ([]*entities.Resolution, error)

	// SaveTally overwrites counts, share sums and result
	SaveTally(ctx context.Context, resolution *entities.Resolution) error

	// AppendCalculation stores an audit row of a calculator run
	AppendCalculation(ctx context.Context, calc *entities.ResolutionCalculation) error

	// ListCalculations retrieves the audit rows of a resolution, oldest first
	ListCalculations(ctx context.Context, resolutionID uuid.UUID) ([]*entities.ResolutionCalculation, error)
}

// VoteRepository defines the interface for vote data access
type VoteRepository interface {
	// FindByParticipants retrieves the votes of the given participants in one query
	FindByParticipants(ctx context.Context, resolutionID uuid.UUID, participantIDs []uuid.UUID) ([]*entities.Vote, error)

	// UpdateChoice sets choice on all votes with the given ids
	UpdateChoice(ctx context.Context, ids []uuid.UUID, choice entities.VoteChoice) error

	// InsertBatch inserts votes in one statement. Rows that already exist are updated.
	InsertBatch(ctx context.Context, votes []*entities.Vote) error

	// ListWithParticipants retrieves the votes of a resolution joined with participant fields
	ListWithParticipants(ctx context.Context, resolutionID uuid.UUID) ([]*entities.VoteWithParticipant, error)
}
