package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/infrastructure/database"
)

// NewTestDB opens a private in-memory SQLite database with the full schema
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// Fixture is a seeded organization with one property
type Fixture struct {
	Organization *entities.Organization
	Property     *entities.Property
	OwnerUser    *entities.User
	MemberUser   *entities.User
	Outsider     *entities.User
	Owners       []*entities.Owner
	Units        []*entities.Unit
}

// SeedProperty creates an organization with an owner user, a member user, an
// outsider and one property with a unit and owner per share value
func SeedProperty(t *testing.T, db *gorm.DB, shares ...string) *Fixture {
	t.Helper()
	f := &Fixture{
		Organization: &entities.Organization{Name: "Hausverwaltung Test"},
		OwnerUser:    entities.NewUser(uuid.NewString()+"@owner.test", "Olga Owner"),
		MemberUser:   entities.NewUser(uuid.NewString()+"@member.test", "Max Member"),
		Outsider:     entities.NewUser(uuid.NewString()+"@outsider.test", "Otto Outsider"),
	}

	mustCreate(t, db, f.Organization)
	mustCreate(t, db, f.OwnerUser)
	mustCreate(t, db, f.MemberUser)
	mustCreate(t, db, f.Outsider)
	mustCreate(t, db, &entities.OrganizationMember{OrganizationID: f.Organization.ID, UserID: f.OwnerUser.ID, Role: entities.MemberRoleOwner})
	mustCreate(t, db, &entities.OrganizationMember{OrganizationID: f.Organization.ID, UserID: f.MemberUser.ID, Role: entities.MemberRoleMember})

	f.Property = &entities.Property{OrganizationID: f.Organization.ID, Name: "Lindenstraße 5", Address: "Lindenstraße 5, 10115 Berlin"}
	mustCreate(t, db, f.Property)

	for i, s := range shares {
		owner := &entities.Owner{PropertyID: f.Property.ID, Name: fmt.Sprintf("Eigentümer %d", i+1)}
		mustCreate(t, db, owner)
		unit := &entities.Unit{
			PropertyID: f.Property.ID,
			Identifier: fmt.Sprintf("WE %02d", i+1),
			Shares:     decimal.RequireFromString(s),
			OwnerID:    &owner.ID,
		}
		mustCreate(t, db, unit)
		f.Owners = append(f.Owners, owner)
		f.Units = append(f.Units, unit)
	}

	return f
}

// AddVacantUnit creates a unit without owner
func (f *Fixture) AddVacantUnit(t *testing.T, db *gorm.DB, identifier, shares string) *entities.Unit {
	t.Helper()
	unit := &entities.Unit{PropertyID: f.Property.ID, Identifier: identifier, Shares: decimal.RequireFromString(shares)}
	mustCreate(t, db, unit)
	return unit
}

// SeedMeeting creates a planned meeting for the fixture's property
func (f *Fixture) SeedMeeting(t *testing.T, db *gorm.DB) *entities.Meeting {
	t.Helper()
	meeting := &entities.Meeting{
		PropertyID:  f.Property.ID,
		Title:       "Ordentliche Eigentümerversammlung",
		ScheduledAt: time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC),
		Location:    "Gemeinschaftsraum",
		Status:      entities.MeetingStatusPlanned,
	}
	mustCreate(t, db, meeting)
	return meeting
}

// SeedAgendaItem creates an agenda item
func SeedAgendaItem(t *testing.T, db *gorm.DB, meetingID uuid.UUID, index int, requiresResolution bool, majority entities.MajorityType) *entities.AgendaItem {
	t.Helper()
	item := &entities.AgendaItem{
		MeetingID:          meetingID,
		OrderIndex:         index,
		Title:              fmt.Sprintf("TOP %d", index+1),
		RequiresResolution: requiresResolution,
		MajorityType:       majority,
	}
	mustCreate(t, db, item)
	return item
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("failed to seed %T: %v", value, err)
	}
}
