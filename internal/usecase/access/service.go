package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

// Level is the membership an operation requires
type Level int

const (
	LevelMember Level = iota
	LevelOwner
)

// PropertyHandle is proof that the caller may act on a property
type PropertyHandle struct {
	Property *entities.Property
	UserID   uuid.UUID
	Role     entities.MemberRole
}

// MeetingHandle is proof that the caller may act on a meeting. Meeting is the
// snapshot loaded while authorizing.
type MeetingHandle struct {
	Meeting        *entities.Meeting
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Role           entities.MemberRole
}

// MeetingID returns the id of the authorized meeting
func (h *MeetingHandle) MeetingID() uuid.UUID {
	return h.Meeting.ID
}

// Authorizer resolves handles. It must be called on every entry point; handles
// are never cached across requests.
type Authorizer interface {
	// ForProperty checks the caller's membership in the organization owning the property
	ForProperty(ctx context.Context, userID, propertyID uuid.UUID, level Level) (*PropertyHandle, error)

	// ForMeeting checks the caller's membership in the organization owning the meeting's property
	ForMeeting(ctx context.Context, userID, meetingID uuid.UUID, level Level) (*MeetingHandle, error)
}

var _ Authorizer = (*AuthorizerService)(nil)

// AuthorizerService implements Authorizer on the membership tables
type AuthorizerService struct {
	meetingRepo    repositories.MeetingRepository
	registryRepo   repositories.RegistryRepository
	membershipRepo repositories.MembershipRepository
}

// NewAuthorizerService creates a new authorizer
func NewAuthorizerService(
	meetingRepo repositories.MeetingRepository,
	registryRepo repositories.RegistryRepository,
	membershipRepo repositories.MembershipRepository,
) *AuthorizerService {
	return &AuthorizerService{
		meetingRepo:    meetingRepo,
		registryRepo:   registryRepo,
		membershipRepo: membershipRepo,
	}
}

// ForProperty resolves a property handle
func (s *AuthorizerService) ForProperty(ctx context.Context, userID, propertyID uuid.UUID, level Level) (*PropertyHandle, error) {
	property, err := s.registryRepo.FindProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	member, err := s.require(ctx, property.OrganizationID, userID, level)
	if err != nil {
		return nil, err
	}

	return &PropertyHandle{Property: property, UserID: userID, Role: member.Role}, nil
}

// ForMeeting resolves a meeting handle
func (s *AuthorizerService) ForMeeting(ctx context.Context, userID, meetingID uuid.UUID, level Level) (*MeetingHandle, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	property, err := s.registryRepo.FindProperty(ctx, meeting.PropertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	member, err := s.require(ctx, property.OrganizationID, userID, level)
	if err != nil {
		return nil, err
	}

	return &MeetingHandle{
		Meeting:        meeting,
		OrganizationID: property.OrganizationID,
		UserID:         userID,
		Role:           member.Role,
	}, nil
}

func (s *AuthorizerService) require(ctx context.Context, organizationID, userID uuid.UUID, level Level) (*entities.OrganizationMember, error) {
	if level == LevelOwner {
		return s.RequireOwner(ctx, organizationID, userID)
	}
	return s.RequireMember(ctx, organizationID, userID)
}

// RequireMember fails unless the user belongs to the organization
func (s *AuthorizerService) RequireMember(ctx context.Context, organizationID, userID uuid.UUID) (*entities.OrganizationMember, error) {
	member, err := s.membershipRepo.FindMember(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrNotMember
		}
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	return member, nil
}

// RequireOwner fails unless the user owns the organization
func (s *AuthorizerService) RequireOwner(ctx context.Context, organizationID, userID uuid.UUID) (*entities.OrganizationMember, error) {
	member, err := s.RequireMember(ctx, organizationID, userID)
	if err != nil {
		return nil, err
	}
	if !member.IsOwner() {
		return nil, usecaseErrors.ErrNotOwner
	}
	return member, nil
}
