package meeting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/internal/adapter/repository"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/testutil"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

type testEnv struct {
	fixture    *testutil.Fixture
	service    *MeetingService
	authorizer *access.AuthorizerService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	fixture := testutil.SeedProperty(t, db, "100")

	meetings := repository.NewMeetingRepository(db)
	return &testEnv{
		fixture: fixture,
		service: NewMeetingService(meetings, repository.NewAgendaItemRepository(db), zap.NewNop()),
		authorizer: access.NewAuthorizerService(
			meetings,
			repository.NewRegistryRepository(db),
			repository.NewMembershipRepository(db),
		),
	}
}

func (e *testEnv) schedule(t *testing.T) *entities.Meeting {
	t.Helper()
	ctx := context.Background()
	ph, err := e.authorizer.ForProperty(ctx, e.fixture.MemberUser.ID, e.fixture.Property.ID, access.LevelMember)
	if err != nil {
		t.Fatalf("authorize property failed: %v", err)
	}
	meeting, err := e.service.ScheduleMeeting(ctx, ph, ScheduleInput{
		Title:       "  Jahresversammlung  ",
		ScheduledAt: time.Date(2024, 5, 2, 18, 0, 0, 0, time.UTC),
		Location:    "Saal",
	})
	if err != nil {
		t.Fatalf("schedule failed: %v", err)
	}
	return meeting
}

func (e *testEnv) handle(t *testing.T, userID, meetingID uuid.UUID, level access.Level) *access.MeetingHandle {
	t.Helper()
	h, err := e.authorizer.ForMeeting(context.Background(), userID, meetingID, level)
	if err != nil {
		t.Fatalf("authorize meeting failed: %v", err)
	}
	return h
}

func TestScheduleMeeting(t *testing.T) {
	env := newTestEnv(t)
	meeting := env.schedule(t)

	if meeting.Title != "Jahresversammlung" || !meeting.IsPlanned() {
		t.Fatalf("unexpected meeting %+v", meeting)
	}

	ph, _ := env.authorizer.ForProperty(context.Background(), env.fixture.MemberUser.ID, env.fixture.Property.ID, access.LevelMember)
	if _, err := env.service.ScheduleMeeting(context.Background(), ph, ScheduleInput{Title: " "}); !errors.Is(err, usecaseErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	meetings, err := env.service.ListMeetings(context.Background(), ph)
	if err != nil || len(meetings) != 1 {
		t.Fatalf("expected one meeting, got %d %v", len(meetings), err)
	}
}

func TestUpdateMeeting_OnlyPlanned(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	meeting := env.schedule(t)
	h := env.handle(t, env.fixture.MemberUser.ID, meeting.ID, access.LevelMember)

	location := "Hof"
	updated, err := env.service.UpdateMeeting(ctx, h, UpdateInput{Location: &location})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Location != "Hof" || updated.Title != "Jahresversammlung" {
		t.Fatalf("unexpected meeting %+v", updated)
	}

	h.Meeting.Status = entities.MeetingStatusInProgress
	if _, err := env.service.UpdateMeeting(ctx, h, UpdateInput{Location: &location}); !errors.Is(err, usecaseErrors.ErrMeetingNotPlanned) {
		t.Fatalf("expected ErrMeetingNotPlanned, got %v", err)
	}
}

func TestAgenda(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	meeting := env.schedule(t)
	h := env.handle(t, env.fixture.MemberUser.ID, meeting.ID, access.LevelMember)

	first, err := env.service.AddAgendaItem(ctx, h, AgendaItemInput{Title: "Jahresabrechnung", RequiresResolution: true})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if first.OrderIndex != 0 || first.MajorityType != entities.MajoritySimple {
		t.Fatalf("unexpected item %+v", first)
	}
	second, err := env.service.AddAgendaItem(ctx, h, AgendaItemInput{Title: "Dachsanierung", RequiresResolution: true, MajorityType: "qualified"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if second.OrderIndex != 1 {
		t.Fatalf("expected order index 1, got %d", second.OrderIndex)
	}

	if _, err := env.service.AddAgendaItem(ctx, h, AgendaItemInput{Title: "X", MajorityType: "unanimous"}); !errors.Is(err, usecaseErrors.ErrInvalidMajorityType) {
		t.Fatalf("expected ErrInvalidMajorityType, got %v", err)
	}

	if _, err := env.service.ReorderAgendaItems(ctx, h, []uuid.UUID{second.ID}); !errors.Is(err, usecaseErrors.ErrInvalidAgendaOrder) {
		t.Fatalf("expected ErrInvalidAgendaOrder for partial list, got %v", err)
	}
	if _, err := env.service.ReorderAgendaItems(ctx, h, []uuid.UUID{second.ID, second.ID}); !errors.Is(err, usecaseErrors.ErrInvalidAgendaOrder) {
		t.Fatalf("expected ErrInvalidAgendaOrder for duplicate ids, got %v", err)
	}
	items, err := env.service.ReorderAgendaItems(ctx, h, []uuid.UUID{second.ID, first.ID})
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("unexpected order after reorder")
	}

	updated, err := env.service.UpdateAgendaItem(ctx, h, first.ID, AgendaItemInput{Title: "Jahresabrechnung 2023", RequiresResolution: false})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Jahresabrechnung 2023" || updated.RequiresResolution {
		t.Fatalf("unexpected item %+v", updated)
	}

	if err := env.service.DeleteAgendaItem(ctx, h, first.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := env.service.DeleteAgendaItem(ctx, h, first.ID); !errors.Is(err, usecaseErrors.ErrAgendaItemNotFound) {
		t.Fatalf("expected ErrAgendaItemNotFound, got %v", err)
	}

	h.Meeting.Status = entities.MeetingStatusCompleted
	if _, err := env.service.AddAgendaItem(ctx, h, AgendaItemInput{Title: "Sonstiges"}); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted, got %v", err)
	}
}

func TestDeleteMeeting_RequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	meeting := env.schedule(t)

	member := env.handle(t, env.fixture.MemberUser.ID, meeting.ID, access.LevelMember)
	if err := env.service.DeleteMeeting(ctx, member); !errors.Is(err, usecaseErrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	owner := env.handle(t, env.fixture.OwnerUser.ID, meeting.ID, access.LevelOwner)
	if err := env.service.DeleteMeeting(ctx, owner); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := env.authorizer.ForMeeting(ctx, env.fixture.OwnerUser.ID, meeting.ID, access.LevelMember); !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound after delete, got %v", err)
	}
}
