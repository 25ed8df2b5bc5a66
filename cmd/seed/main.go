package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/adapter/repository"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/infrastructure/database"
	"github.com/johnquangdev/weg-assembly/pkg/config"
	pkgjwt "github.com/johnquangdev/weg-assembly/pkg/jwt"
)

// demoUnits are the apartments of the demo property with their shares in 1/1000
var demoUnits = []struct {
	Identifier string
	Owner      string
	Shares     string
}{
	{Identifier: "WE 01", Owner: "Familie Becker", Shares: "142.5"},
	{Identifier: "WE 02", Owner: "Dr. Sabine Krüger", Shares: "118"},
	{Identifier: "WE 03", Owner: "Jonas Hartmann", Shares: "96.25"},
	{Identifier: "WE 04", Owner: "Familie Yilmaz", Shares: "131"},
	{Identifier: "WE 05", Owner: "Petra Schulze", Shares: "87.75"},
	{Identifier: "WE 06", Owner: "Immobilien Nord GmbH", Shares: "210"},
	{Identifier: "WE 07", Owner: "Lukas Wagner", Shares: "102"},
	{Identifier: "WE 08", Owner: "Maria und Tom Fischer", Shares: "112.5"},
}

var demoUsers = []struct {
	Email string
	Name  string
	Role  entities.MemberRole
}{
	{Email: "verwalterin@demo.local", Name: "Vera Verwalterin", Role: entities.MemberRoleOwner},
	{Email: "assistenz@demo.local", Name: "Anton Assistenz", Role: entities.MemberRoleMember},
}

var demoAgenda = []struct {
	Title              string
	RequiresResolution bool
	Majority           entities.MajorityType
}{
	{Title: "Begrüßung und Feststellung der Beschlussfähigkeit", RequiresResolution: false, Majority: entities.MajoritySimple},
	{Title: "Genehmigung der Jahresabrechnung", RequiresResolution: true, Majority: entities.MajoritySimple},
	{Title: "Wirtschaftsplan", RequiresResolution: true, Majority: entities.MajoritySimple},
	{Title: "Fassadensanierung", RequiresResolution: true, Majority: entities.MajorityQualified},
	{Title: "Verschiedenes", RequiresResolution: false, Majority: entities.MajoritySimple},
}

func main() {
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the printed access tokens")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.CloseDB(db) }()

	var users []*entities.User
	var meeting *entities.Meeting
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		users, meeting, err = seed(ctx, tx)
		return err
	})
	if err != nil {
		logger.Fatal("failed to seed demo data", zap.Error(err))
	}

	jwtManager := pkgjwt.NewManager(cfg.JWT.AccessSecret, *tokenTTL, cfg.JWT.Issuer)

	fmt.Printf("Demo property seeded. Meeting: %s\n", meeting.ID)
	fmt.Printf("Access tokens (valid for %v):\n\n", jwtManager.GetAccessExpiry())
	for _, user := range users {
		token, err := jwtManager.GenerateAccessToken(user.ID, user.Email)
		if err != nil {
			logger.Error("failed to generate token", zap.String("email", user.Email), zap.Error(err))
			continue
		}
		fmt.Printf("%s <%s>\n%s\n\n", user.Name, user.Email, token)
	}
}

// seed creates an organization with an owner and a member account, a property
// with owned units and a planned meeting with an agenda. Demo accounts are
// reused across runs; everything else is created anew.
func seed(ctx context.Context, tx *gorm.DB) ([]*entities.User, *entities.Meeting, error) {
	userRepo := repository.NewUserRepository(tx)
	suffix := time.Now().Format("20060102150405")

	org := &entities.Organization{Name: "Hausverwaltung Demo " + suffix}
	if err := tx.Create(org).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create organization: %w", err)
	}

	users := make([]*entities.User, len(demoUsers))
	for i, du := range demoUsers {
		user, err := findOrCreateUser(ctx, userRepo, du.Email, du.Name)
		if err != nil {
			return nil, nil, err
		}
		users[i] = user
		member := &entities.OrganizationMember{OrganizationID: org.ID, UserID: user.ID, Role: du.Role}
		if err := tx.Create(member).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create membership: %w", err)
		}
	}

	property := &entities.Property{
		OrganizationID: org.ID,
		Name:           "Kastanienallee 12",
		Address:        "Kastanienallee 12, 10435 Berlin",
	}
	if err := tx.Create(property).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create property: %w", err)
	}

	for _, u := range demoUnits {
		owner := &entities.Owner{PropertyID: property.ID, Name: u.Owner}
		if err := tx.Create(owner).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create owner: %w", err)
		}
		unit := &entities.Unit{
			PropertyID: property.ID,
			Identifier: u.Identifier,
			Shares:     decimal.RequireFromString(u.Shares),
			OwnerID:    &owner.ID,
		}
		if err := tx.Create(unit).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create unit: %w", err)
		}
	}

	meeting := &entities.Meeting{
		PropertyID:  property.ID,
		Title:       "Ordentliche Eigentümerversammlung",
		ScheduledAt: time.Now().Add(14 * 24 * time.Hour).Truncate(time.Hour),
		Location:    "Gemeinschaftsraum, Erdgeschoss",
		Status:      entities.MeetingStatusPlanned,
	}
	if err := tx.Create(meeting).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	for i, a := range demoAgenda {
		item := &entities.AgendaItem{
			MeetingID:          meeting.ID,
			OrderIndex:         i,
			Title:              a.Title,
			RequiresResolution: a.RequiresResolution,
			MajorityType:       a.Majority,
		}
		if err := tx.Create(item).Error; err != nil {
			return nil, nil, fmt.Errorf("failed to create agenda item: %w", err)
		}
	}

	return users, meeting, nil
}

func findOrCreateUser(ctx context.Context, users *repository.UserRepository, email, name string) (*entities.User, error) {
	user, err := users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, err
	}

	user = entities.NewUser(email, name)
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
