package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*entities.User, error)

	// TouchActivity updates the last active timestamp
	TouchActivity(ctx context.Context, id uuid.UUID) error
}
