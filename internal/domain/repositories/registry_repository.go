package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
)

// RegistryRepository gives read access to properties, owners and units
type RegistryRepository interface {
	// FindProperty retrieves a property by ID
	FindProperty(ctx context.Context, id uuid.UUID) (*entities.Property, error)

	// ListOwnedUnits retrieves the units of a property that have an owner, with the owner loaded
	ListOwnedUnits(ctx context.Context, propertyID uuid.UUID) ([]entities.Unit, error)
}

// MembershipRepository gives read access to organization memberships
type MembershipRepository interface {
	// FindMember retrieves the membership of a user in an organization
	FindMember(ctx context.Context, organizationID, userID uuid.UUID) (*entities.OrganizationMember, error)
}
