package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MemberRole is the role of a user inside an organization
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

// Organization is the administrator owning properties
type Organization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Organization) TableName() string { return "organizations" }

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrganizationMember links a user to an organization
type OrganizationMember struct {
	OrganizationID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"organization_id"`
	UserID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role           MemberRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (OrganizationMember) TableName() string { return "organization_members" }

// IsOwner checks if the member may perform owner-only actions
func (m *OrganizationMember) IsOwner() bool {
	return m.Role == MemberRoleOwner
}

// Property is a condominium building managed by an organization
type Property struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Address        string    `gorm:"type:varchar(500)" json:"address"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Property) TableName() string { return "properties" }

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Owner is a registered owner of one or more units
type Owner struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Email      *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Owner) TableName() string { return "owners" }

func (o *Owner) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Unit is an apartment or commercial unit carrying ownership shares (MEA)
type Unit struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID       `gorm:"type:uuid;not null;index" json:"property_id"`
	Identifier string          `gorm:"type:varchar(100);not null" json:"identifier"`
	Shares     decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"shares"`
	OwnerID    *uuid.UUID      `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	Owner      *Owner          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Unit) TableName() string { return "units" }

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
