package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
)

// registryRepository implements the RegistryRepository interface
type registryRepository struct {
	db *gorm.DB
}

// NewRegistryRepository creates a new registry repository
func NewRegistryRepository(db *gorm.DB) repositories.RegistryRepository {
	return &registryRepository{db: db}
}

// FindProperty retrieves a property by ID
func (r *registryRepository) FindProperty(ctx context.Context, id uuid.UUID) (*entities.Property, error) {
	var property entities.Property
	if err := conn(ctx, r.db).Where("id = ?", id).First(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// ListOwnedUnits retrieves the units of a property that have an owner
func (r *registryRepository) ListOwnedUnits(ctx context.Context, propertyID uuid.UUID) ([]entities.Unit, error) {
	var units []entities.Unit
	err := conn(ctx, r.db).
		Preload("Owner").
		Where("property_id = ? AND owner_id IS NOT NULL", propertyID).
		Order("identifier ASC").
		Find(&units).Error
	return units, err
}

// membershipRepository implements the MembershipRepository interface
type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) repositories.MembershipRepository {
	return &membershipRepository{db: db}
}

// FindMember retrieves the membership of a user in an organization
func (r *membershipRepository) FindMember(ctx context.Context, organizationID, userID uuid.UUID) (*entities.OrganizationMember, error) {
	var member entities.OrganizationMember
	err := conn(ctx, r.db).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}
