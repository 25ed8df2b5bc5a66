package conduct

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/weg-assembly/internal/adapter/repository"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/infrastructure/cache"
	"github.com/johnquangdev/weg-assembly/internal/testutil"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	usecaseErrors "github.com/johnquangdev/weg-assembly/internal/usecase/errors"
)

type fakeArchive struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func (a *fakeArchive) Put(_ context.Context, name string, data []byte, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.objects == nil {
		a.objects = make(map[string][]byte)
	}
	a.objects[name] = data
	a.puts++
	return nil
}

func (a *fakeArchive) PresignedURL(_ context.Context, name string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.objects[name]; !ok {
		return "", errors.New("object not found")
	}
	return "https://storage.test/" + name, nil
}

type testEnv struct {
	db         *gorm.DB
	fixture    *testutil.Fixture
	meeting    *entities.Meeting
	service    *ConductService
	authorizer *access.AuthorizerService
	archive    *fakeArchive
	cache      *cache.MemoryStore
}

func newTestEnv(t *testing.T, shares ...string) *testEnv {
	t.Helper()
	if len(shares) == 0 {
		shares = []string{"10", "20", "30", "40"}
	}

	db := testutil.NewTestDB(t)
	fixture := testutil.SeedProperty(t, db, shares...)
	meeting := fixture.SeedMeeting(t, db)

	meetings := repository.NewMeetingRepository(db)
	registry := repository.NewRegistryRepository(db)
	env := &testEnv{
		db:         db,
		fixture:    fixture,
		meeting:    meeting,
		authorizer: access.NewAuthorizerService(meetings, registry, repository.NewMembershipRepository(db)),
		archive:    &fakeArchive{},
		cache:      cache.NewMemoryStore(),
	}
	env.service = NewConductService(Dependencies{
		Transactor:   repository.NewTransactor(db),
		Meetings:     meetings,
		Leaders:      repository.NewLeaderRepository(db),
		Participants: repository.NewParticipantRepository(db),
		AgendaItems:  repository.NewAgendaItemRepository(db),
		Resolutions:  repository.NewResolutionRepository(db),
		Votes:        repository.NewVoteRepository(db),
		Registry:     registry,
		Cache:        env.cache,
		CacheTTL:     time.Hour,
		Archive:      env.archive,
	})
	return env
}

// handle authorizes afresh, the way every request does
func (e *testEnv) handle(t *testing.T) *access.MeetingHandle {
	t.Helper()
	h, err := e.authorizer.ForMeeting(context.Background(), e.fixture.MemberUser.ID, e.meeting.ID, access.LevelMember)
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	return h
}

// conduct starts the meeting and passes both gates
func (e *testEnv) conduct(t *testing.T) []*entities.MeetingParticipant {
	t.Helper()
	ctx := context.Background()

	result, err := e.service.StartMeeting(ctx, e.handle(t))
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := e.service.ConfirmLeaders(ctx, e.handle(t), []LeaderInput{{Name: "Anna Vorsitz", Role: "chair"}}); err != nil {
		t.Fatalf("confirm leaders failed: %v", err)
	}
	if _, err := e.service.ConfirmParticipants(ctx, e.handle(t)); err != nil {
		t.Fatalf("confirm participants failed: %v", err)
	}
	participants, err := e.service.ListParticipants(ctx, e.handle(t))
	if err != nil {
		t.Fatalf("list participants failed: %v", err)
	}
	if len(participants) != len(result.Participants) {
		t.Fatalf("expected %d participants, got %d", len(result.Participants), len(participants))
	}
	return participants
}

func (e *testEnv) resolution(t *testing.T, majority entities.MajorityType) *entities.Resolution {
	t.Helper()
	item := testutil.SeedAgendaItem(t, e.db, e.meeting.ID, 0, true, majority)
	resolution, err := e.service.EnsureResolution(context.Background(), e.handle(t), item.ID, "")
	if err != nil {
		t.Fatalf("ensure resolution failed: %v", err)
	}
	return resolution
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func TestStartMeeting_SnapshotOnce(t *testing.T) {
	env := newTestEnv(t)
	env.fixture.AddVacantUnit(t, env.db, "WE 99", "5")
	ctx := context.Background()

	result, err := env.service.StartMeeting(ctx, env.handle(t))
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if result.Meeting.Status != entities.MeetingStatusInProgress || result.Meeting.StartedAt == nil {
		t.Fatalf("expected in-progress meeting, got %+v", result.Meeting)
	}
	if len(result.Participants) != 4 {
		t.Fatalf("expected 4 participants without vacant unit, got %d", len(result.Participants))
	}
	for _, p := range result.Participants {
		if p.AttendanceStatus != entities.AttendanceAbsent {
			t.Fatalf("expected absent participant, got %s", p.AttendanceStatus)
		}
	}

	before, _ := env.service.ListParticipants(ctx, env.handle(t))

	// later registry edits must not leak into the snapshot
	if err := env.db.Model(&entities.Owner{}).Where("id = ?", env.fixture.Owners[0].ID).Update("name", "Renamed").Error; err != nil {
		t.Fatalf("rename owner failed: %v", err)
	}

	_, err = env.service.StartMeeting(ctx, env.handle(t))
	if !errors.Is(err, usecaseErrors.ErrParticipantsAlreadyExist) {
		t.Fatalf("expected ErrParticipantsAlreadyExist, got %v", err)
	}

	after, _ := env.service.ListParticipants(ctx, env.handle(t))
	if len(after) != len(before) {
		t.Fatalf("participant set changed from %d to %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID || after[i].OwnerName != before[i].OwnerName {
			t.Fatalf("participant %d changed", i)
		}
	}
}

func TestStartMeeting_NoVotingUnits(t *testing.T) {
	env := newTestEnv(t, "1")
	if err := env.db.Model(&entities.Unit{}).Where("property_id = ?", env.fixture.Property.ID).Update("owner_id", nil).Error; err != nil {
		t.Fatalf("clear owners failed: %v", err)
	}

	_, err := env.service.StartMeeting(context.Background(), env.handle(t))
	if !errors.Is(err, usecaseErrors.ErrNoVotingUnits) {
		t.Fatalf("expected ErrNoVotingUnits, got %v", err)
	}

	h := env.handle(t)
	if !h.Meeting.IsPlanned() {
		t.Fatalf("meeting must stay planned after a failed start, got %s", h.Meeting.Status)
	}
}

func TestGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.service.StartMeeting(ctx, env.handle(t)); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	h := env.handle(t)
	if got := env.service.ResolveStep(h, entities.ConductStepAgendaItems); got != entities.ConductStepLeaders {
		t.Fatalf("expected redirect to leaders, got %s", got)
	}
	if _, err := env.service.ConfirmParticipants(ctx, h); !errors.Is(err, usecaseErrors.ErrLeadersNotConfirmed) {
		t.Fatalf("expected ErrLeadersNotConfirmed, got %v", err)
	}

	_, err := env.service.ConfirmLeaders(ctx, env.handle(t), []LeaderInput{{Name: "Anna", Role: "minute-taker"}})
	if !errors.Is(err, usecaseErrors.ErrChairRequired) {
		t.Fatalf("expected ErrChairRequired, got %v", err)
	}

	if _, err := env.service.ConfirmLeaders(ctx, env.handle(t), []LeaderInput{
		{Name: "Anna", Role: "chair"},
		{Name: "Bernd", Role: "minute-taker"},
	}); err != nil {
		t.Fatalf("confirm leaders failed: %v", err)
	}
	h = env.handle(t)
	firstConfirmed := *h.Meeting.LeadersConfirmedAt
	if got := env.service.ResolveStep(h, entities.ConductStepAgendaItems); got != entities.ConductStepParticipants {
		t.Fatalf("expected redirect to participants, got %s", got)
	}

	// resubmission replaces the list but keeps the first timestamp
	leaders, err := env.service.ConfirmLeaders(ctx, h, []LeaderInput{{Name: "Clara", Role: "chair"}})
	if err != nil {
		t.Fatalf("resubmit leaders failed: %v", err)
	}
	if len(leaders) != 1 {
		t.Fatalf("expected 1 leader, got %d", len(leaders))
	}
	stored, _ := env.service.ListLeaders(ctx, env.handle(t))
	if len(stored) != 1 || stored[0].Name != "Clara" {
		t.Fatalf("expected leaders replaced, got %+v", stored)
	}
	h = env.handle(t)
	if !h.Meeting.LeadersConfirmedAt.Equal(firstConfirmed) {
		t.Fatalf("leader timestamp must be set only once")
	}

	if _, err := env.service.ConfirmParticipants(ctx, h); err != nil {
		t.Fatalf("confirm participants failed: %v", err)
	}
	h = env.handle(t)
	if got := env.service.ResolveStep(h, entities.ConductStepAgendaItems); got != entities.ConductStepAgendaItems {
		t.Fatalf("expected agenda items reachable, got %s", got)
	}

	state, err := env.service.ConductState(ctx, h)
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state.State != entities.ConductStateAgendaDone {
		t.Fatalf("meeting without agenda items is agenda done, got %s", state.State)
	}
}

func TestAttendanceAndQuorum(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participants := env.conduct(t)

	byUnit := make(map[string]*entities.MeetingParticipant)
	for _, p := range participants {
		byUnit[p.UnitIdentifier] = p
	}

	h := env.handle(t)
	if err := env.service.SetAttendance(ctx, h, byUnit["WE 01"].ID, "present"); err != nil {
		t.Fatalf("set attendance failed: %v", err)
	}
	if err := env.service.SetAttendance(ctx, h, byUnit["WE 02"].ID, "represented"); err != nil {
		t.Fatalf("set attendance failed: %v", err)
	}
	name := "Erika Vertreterin"
	if err := env.service.SetRepresentative(ctx, h, byUnit["WE 02"].ID, &name); err != nil {
		t.Fatalf("set representative failed: %v", err)
	}
	// stored for an absent participant but ignored downstream
	if err := env.service.SetRepresentative(ctx, h, byUnit["WE 03"].ID, &name); err != nil {
		t.Fatalf("set representative on absent participant failed: %v", err)
	}

	if err := env.service.SetAttendance(ctx, h, byUnit["WE 04"].ID, "sleeping"); !errors.Is(err, usecaseErrors.ErrInvalidAttendanceStatus) {
		t.Fatalf("expected ErrInvalidAttendanceStatus, got %v", err)
	}
	if err := env.service.SetAttendance(ctx, h, uuid.New(), "present"); !errors.Is(err, usecaseErrors.ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}

	q, err := env.service.Quorum(ctx, h)
	if err != nil {
		t.Fatalf("quorum failed: %v", err)
	}
	if q.Ratio.String() != "0.3" {
		t.Fatalf("expected quorum 0.3, got %s", q.Ratio)
	}
}

func TestEnsureResolution_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participants := env.conduct(t)

	item := testutil.SeedAgendaItem(t, env.db, env.meeting.ID, 0, true, entities.MajoritySimple)
	first, err := env.service.EnsureResolution(ctx, env.handle(t), item.ID, entities.MajoritySimple)
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	if _, err := env.service.CastVotes(ctx, env.handle(t), first.ID, []VoteInput{{ParticipantID: participants[0].ID, Choice: "yes"}}); err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if _, err := env.service.Calculate(ctx, env.handle(t), first.ID); err != nil {
		t.Fatalf("calculate failed: %v", err)
	}

	second, err := env.service.EnsureResolution(ctx, env.handle(t), item.ID, entities.MajorityQualified)
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same resolution id")
	}
	if second.MajorityType != entities.MajoritySimple {
		t.Fatalf("majority type must not change on repeat calls, got %s", second.MajorityType)
	}
	if second.VotesYes != 1 || second.Result == nil {
		t.Fatalf("existing tallies must not be reset, got %+v", second)
	}
	if n := countRows(t, env.db, &entities.Resolution{}, "agenda_item_id = ?", item.ID); n != 1 {
		t.Fatalf("expected exactly one resolution row, got %d", n)
	}

	plain := testutil.SeedAgendaItem(t, env.db, env.meeting.ID, 1, false, entities.MajoritySimple)
	if _, err := env.service.EnsureResolution(ctx, env.handle(t), plain.ID, ""); !errors.Is(err, usecaseErrors.ErrResolutionNotRequired) {
		t.Fatalf("expected ErrResolutionNotRequired, got %v", err)
	}
}

func TestMarkCompleted(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.conduct(t)

	plain := testutil.SeedAgendaItem(t, env.db, env.meeting.ID, 0, false, entities.MajorityQualified)
	voting := testutil.SeedAgendaItem(t, env.db, env.meeting.ID, 1, true, entities.MajoritySimple)

	placeholder, err := env.service.MarkCompleted(ctx, env.handle(t), plain.ID)
	if err != nil {
		t.Fatalf("mark completed failed: %v", err)
	}
	if placeholder.Result != nil || placeholder.VotesYes != 0 {
		t.Fatalf("placeholder must carry no votes, got %+v", placeholder)
	}
	again, err := env.service.MarkCompleted(ctx, env.handle(t), plain.ID)
	if err != nil || again.ID != placeholder.ID {
		t.Fatalf("mark completed must be idempotent: %v", err)
	}

	if _, err := env.service.MarkCompleted(ctx, env.handle(t), voting.ID); !errors.Is(err, usecaseErrors.ErrVoteRequired) {
		t.Fatalf("expected ErrVoteRequired, got %v", err)
	}

	protocol, err := env.service.Protocol(ctx, env.handle(t))
	if err != nil {
		t.Fatalf("protocol failed: %v", err)
	}
	if !protocol.Items[0].Completed || protocol.Items[0].Voted {
		t.Fatalf("placeholder item must be completed but not voted: %+v", protocol.Items[0])
	}
	if protocol.Items[1].Completed || protocol.AllCompleted {
		t.Fatalf("voting item without resolution must be open")
	}
}

func TestCastVotes_IdempotentLatestWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participants := env.conduct(t)
	resolution := env.resolution(t, entities.MajoritySimple)

	batch := []VoteInput{
		{ParticipantID: participants[0].ID, Choice: "yes"},
		{ParticipantID: participants[1].ID, Choice: "no"},
	}
	first, err := env.service.CastVotes(ctx, env.handle(t), resolution.ID, batch)
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	if first.Inserted != 2 || first.Updated != 0 {
		t.Fatalf("unexpected first result %+v", first)
	}

	second, err := env.service.CastVotes(ctx, env.handle(t), resolution.ID, batch)
	if err != nil {
		t.Fatalf("recast failed: %v", err)
	}
	if second.Inserted != 0 || second.Unchanged != 2 {
		t.Fatalf("unexpected second result %+v", second)
	}

	third, err := env.service.CastVotes(ctx, env.handle(t), resolution.ID, []VoteInput{
		{ParticipantID: participants[0].ID, Choice: "abstain"},
		{ParticipantID: participants[2].ID, Choice: "yes"},
		{ParticipantID: participants[2].ID, Choice: "no"},
	})
	if err != nil {
		t.Fatalf("third cast failed: %v", err)
	}
	if third.Inserted != 1 || third.Updated != 1 {
		t.Fatalf("unexpected third result %+v", third)
	}

	if n := countRows(t, env.db, &entities.Vote{}, "resolution_id = ?", resolution.ID); n != 3 {
		t.Fatalf("expected 3 vote rows, got %d", n)
	}

	votes, err := env.service.ListVotes(ctx, env.handle(t), resolution.ID)
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	got := make(map[uuid.UUID]entities.VoteChoice)
	for _, v := range votes {
		got[v.ParticipantID] = v.Choice
		if v.OwnerName == "" || v.Shares.IsZero() {
			t.Fatalf("vote must carry participant fields: %+v", v)
		}
	}
	if got[participants[0].ID] != entities.VoteAbstain || got[participants[1].ID] != entities.VoteNo || got[participants[2].ID] != entities.VoteNo {
		t.Fatalf("unexpected choices %v", got)
	}
}

func TestCastVotes_ValidatesBeforeWriting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participants := env.conduct(t)
	resolution := env.resolution(t, entities.MajoritySimple)

	_, err := env.service.CastVotes(ctx, env.handle(t), resolution.ID, []VoteInput{
		{ParticipantID: participants[0].ID, Choice: "yes"},
		{ParticipantID: participants[1].ID, Choice: "maybe"},
	})
	if !errors.Is(err, usecaseErrors.ErrInvalidVoteChoice) {
		t.Fatalf("expected ErrInvalidVoteChoice, got %v", err)
	}

	_, err = env.service.CastVotes(ctx, env.handle(t), resolution.ID, []VoteInput{
		{ParticipantID: participants[0].ID, Choice: "yes"},
		{ParticipantID: uuid.New(), Choice: "no"},
	})
	if !errors.Is(err, usecaseErrors.ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}

	if n := countRows(t, env.db, &entities.Vote{}, "resolution_id = ?", resolution.ID); n != 0 {
		t.Fatalf("rejected batches must not write, got %d rows", n)
	}

	empty, err := env.service.CastVotes(ctx, env.handle(t), resolution.ID, nil)
	if err != nil {
		t.Fatalf("empty batch failed: %v", err)
	}
	if empty.Inserted != 0 || empty.Updated != 0 {
		t.Fatalf("empty batch must not write: %+v", empty)
	}
}

// Two submissions for the same participant race; the unique key keeps one
// row and the last writer wins without a detectable conflict.
func TestCastVotes_SameParticipantLastWriterWins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participants := env.conduct(t)
	resolution := env.resolution(t, entities.MajoritySimple)

	h := env.handle(t)
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, choice := range []string{"yes", "no"} {
		wg.Add(1)
		go func(choice string) {
			defer wg.Done()
			_, err := env.service.CastVotes(ctx, h, resolution.ID, []VoteInput{{ParticipantID: participants[0].ID, Choice: choice}})
			errs <- err
		}(choice)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("cast failed: %v", err)
		}
	}

	if n := countRows(t, env.db, &entities.Vote{}, "resolution_id = ? AND participant_id = ?", resolution.ID, participants[0].ID); n != 1 {
		t.Fatalf("expected one vote row, got %d", n)
	}
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		majority entities.MajorityType
		choices  []string
		want     entities.ResolutionResult
	}{
		// shares are 10, 20, 30, 40
		{name: "simple accepted", majority: entities.MajoritySimple, choices: []string{"yes", "yes", "no", "yes"}, want: entities.ResultAccepted},
		{name: "simple exactly half", majority: entities.MajoritySimple, choices: []string{"no", "yes", "yes", "no"}, want: entities.ResultRejected},
		{name: "qualified seventy percent", majority: entities.MajorityQualified, choices: []string{"no", "no", "yes", "yes"}, want: entities.ResultRejected},
		{name: "qualified ninety percent", majority: entities.MajorityQualified, choices: []string{"abstain", "yes", "yes", "yes"}, want: entities.ResultAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			participants := env.conduct(t)
			byUnit := make(map[string]uuid.UUID)
			for _, p := range participants {
				byUnit[p.UnitIdentifier] = p.ID
			}
			resolution := env.resolution(t, tt.majority)

			units := []string{"WE 01", "WE 02", "WE 03", "WE 04"}
			batch := make([]VoteInput, len(tt.choices))
			for i, choice := range tt.choices {
				batch[i] = VoteInput{ParticipantID: byUnit[units[i]], Choice: choice}
			}
			if _, err := env.service.CastVotes(ctx, env.handle(t), resolution.ID, batch); err != nil {
				t.Fatalf("cast failed: %v", err)
			}

			first, err := env.service.Calculate(ctx, env.handle(t), resolution.ID)
			if err != nil {
				t.Fatalf("calculate failed: %v", err)
			}
			if first.Result == nil || *first.Result != tt.want {
				t.Fatalf("expected %s, got %v", tt.want, first.Result)
			}

			second, err := env.service.Calculate(ctx, env.handle(t), resolution.ID)
			if err != nil {
				t.Fatalf("recalculate failed: %v", err)
			}
			if *second.Result != *first.Result || second.YesShares != first.YesShares ||
				second.VotesYes != first.VotesYes || second.AbstainShares != first.AbstainShares {
				t.Fatalf("recalculation must be idempotent: %+v vs %+v", first, second)
			}

			calcs, err := env.service.ListCalculations(ctx, env.handle(t), resolution.ID)
			if err != nil {
				t.Fatalf("list calculations failed: %v", err)
			}
			if len(calcs) != 2 {
				t.Fatalf("expected 2 audit rows, got %d", len(calcs))
			}
		})
	}
}

func TestCalculate_UsesAgendaItemMajority(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participants := env.conduct(t)
	byUnit := make(map[string]uuid.UUID)
	for _, p := range participants {
		byUnit[p.UnitIdentifier] = p.ID
	}

	resolution := env.resolution(t, entities.MajoritySimple)
	if _, err := env.service.CastVotes(ctx, env.handle(t), resolution.ID, []VoteInput{
		{ParticipantID: byUnit["WE 03"], Choice: "yes"},
		{ParticipantID: byUnit["WE 04"], Choice: "yes"},
		{ParticipantID: byUnit["WE 01"], Choice: "no"},
		{ParticipantID: byUnit["WE 02"], Choice: "no"},
	}); err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	if err := env.db.Model(&entities.AgendaItem{}).Where("id = ?", resolution.AgendaItemID).Update("majority_type", entities.MajorityQualified).Error; err != nil {
		t.Fatalf("update majority failed: %v", err)
	}

	calculated, err := env.service.Calculate(ctx, env.handle(t), resolution.ID)
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if *calculated.Result != entities.ResultRejected {
		t.Fatalf("70%% yes must fail a qualified majority, got %s", *calculated.Result)
	}
	if calculated.MajorityType != entities.MajoritySimple {
		t.Fatalf("stored majority type must stay as created, got %s", calculated.MajorityType)
	}
}

func TestCompleteMeeting_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.service.StartMeeting(ctx, env.handle(t)); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := env.service.CompleteMeeting(ctx, env.handle(t)); !errors.Is(err, usecaseErrors.ErrLeadersNotConfirmed) {
		t.Fatalf("expected ErrLeadersNotConfirmed, got %v", err)
	}

	if _, err := env.service.ConfirmLeaders(ctx, env.handle(t), []LeaderInput{{Name: "Anna", Role: "chair"}}); err != nil {
		t.Fatalf("confirm leaders failed: %v", err)
	}
	if _, err := env.service.ConfirmParticipants(ctx, env.handle(t)); err != nil {
		t.Fatalf("confirm participants failed: %v", err)
	}

	first, err := env.service.CompleteMeeting(ctx, env.handle(t))
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !first.Changed || !first.Meeting.IsCompleted() {
		t.Fatalf("expected meeting completed, got %+v", first)
	}

	second, err := env.service.CompleteMeeting(ctx, env.handle(t))
	if err != nil {
		t.Fatalf("repeat complete failed: %v", err)
	}
	if second.Changed {
		t.Fatalf("repeat complete must be a no-op")
	}
	if env.archive.puts != 1 {
		t.Fatalf("expected protocol archived once, got %d", env.archive.puts)
	}
	if !second.Meeting.CompletedAt.Equal(*first.Meeting.CompletedAt) {
		t.Fatalf("completion timestamp must not change")
	}

	url, err := env.service.ProtocolDownloadURL(ctx, env.handle(t))
	if err != nil || url == "" {
		t.Fatalf("expected download url, got %q %v", url, err)
	}

	if _, ok, _ := env.cache.Get(ctx, "protocol:"+env.meeting.ID.String()); !ok {
		t.Fatalf("expected protocol cached")
	}
	protocol, err := env.service.Protocol(ctx, env.handle(t))
	if err != nil {
		t.Fatalf("protocol failed: %v", err)
	}
	if protocol.Meeting.ID != env.meeting.ID || len(protocol.Participants) != 4 {
		t.Fatalf("unexpected protocol %+v", protocol)
	}
}

func TestWritesAfterCompletionRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participants := env.conduct(t)
	resolution := env.resolution(t, entities.MajoritySimple)

	if _, err := env.service.CompleteMeeting(ctx, env.handle(t)); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	h := env.handle(t)
	if _, err := env.service.CastVotes(ctx, h, resolution.ID, []VoteInput{{ParticipantID: participants[0].ID, Choice: "yes"}}); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted on cast, got %v", err)
	}
	if _, err := env.service.Calculate(ctx, h, resolution.ID); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted on calculate, got %v", err)
	}
	if err := env.service.SetAttendance(ctx, h, participants[0].ID, "present"); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted on attendance, got %v", err)
	}
	if _, err := env.service.ConfirmLeaders(ctx, h, []LeaderInput{{Name: "X", Role: "chair"}}); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted on leaders, got %v", err)
	}
}

func TestCastVotes_RejectsPlaceholderResolution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participants := env.conduct(t)

	plain := testutil.SeedAgendaItem(t, env.db, env.meeting.ID, 0, false, entities.MajoritySimple)
	placeholder, err := env.service.MarkCompleted(ctx, env.handle(t), plain.ID)
	if err != nil {
		t.Fatalf("mark completed failed: %v", err)
	}

	_, err = env.service.CastVotes(ctx, env.handle(t), placeholder.ID, []VoteInput{{ParticipantID: participants[0].ID, Choice: "yes"}})
	if !errors.Is(err, usecaseErrors.ErrResolutionNotRequired) {
		t.Fatalf("expected ErrResolutionNotRequired, got %v", err)
	}

	votes, err := env.service.ListVotes(ctx, env.handle(t), placeholder.ID)
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	if len(votes) != 0 {
		t.Fatalf("placeholder must stay without votes, got %d", len(votes))
	}
}

func TestWritesWithStaleHandleRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	participants := env.conduct(t)
	resolution := env.resolution(t, entities.MajoritySimple)
	plain := testutil.SeedAgendaItem(t, env.db, env.meeting.ID, 1, false, entities.MajoritySimple)
	voting := testutil.SeedAgendaItem(t, env.db, env.meeting.ID, 2, true, entities.MajoritySimple)

	// authorized while the meeting was still in progress
	stale := env.handle(t)
	if _, err := env.service.CompleteMeeting(ctx, env.handle(t)); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if _, err := env.service.CastVotes(ctx, stale, resolution.ID, []VoteInput{{ParticipantID: participants[0].ID, Choice: "yes"}}); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted on cast, got %v", err)
	}
	if _, err := env.service.Calculate(ctx, stale, resolution.ID); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted on calculate, got %v", err)
	}
	if _, err := env.service.EnsureResolution(ctx, stale, voting.ID, ""); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted on ensure, got %v", err)
	}
	if _, err := env.service.MarkCompleted(ctx, stale, plain.ID); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted on mark completed, got %v", err)
	}
	if _, err := env.service.ConfirmLeaders(ctx, stale, []LeaderInput{{Name: "X", Role: "chair"}}); !errors.Is(err, usecaseErrors.ErrMeetingCompleted) {
		t.Fatalf("expected ErrMeetingCompleted on leaders, got %v", err)
	}

	votes, err := env.service.ListVotes(ctx, env.handle(t), resolution.ID)
	if err != nil {
		t.Fatalf("list votes failed: %v", err)
	}
	if len(votes) != 0 {
		t.Fatalf("no vote may be written after completion, got %d", len(votes))
	}
}

func TestGateTransitionsUseStoredState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.service.StartMeeting(ctx, env.handle(t)); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// a handle claiming both gates passed while nothing is confirmed
	h := env.handle(t)
	forged := *h.Meeting
	now := time.Now()
	forged.LeadersConfirmedAt = &now
	forged.ParticipantsConfirmedAt = &now
	h.Meeting = &forged

	if _, err := env.service.ConfirmParticipants(ctx, h); !errors.Is(err, usecaseErrors.ErrLeadersNotConfirmed) {
		t.Fatalf("expected ErrLeadersNotConfirmed on participants, got %v", err)
	}
	if _, err := env.service.CompleteMeeting(ctx, h); !errors.Is(err, usecaseErrors.ErrLeadersNotConfirmed) {
		t.Fatalf("expected ErrLeadersNotConfirmed on complete, got %v", err)
	}

	if _, err := env.service.ConfirmLeaders(ctx, env.handle(t), []LeaderInput{{Name: "Anna", Role: "chair"}}); err != nil {
		t.Fatalf("confirm leaders failed: %v", err)
	}
	if _, err := env.service.CompleteMeeting(ctx, h); !errors.Is(err, usecaseErrors.ErrParticipantsNotConfirmed) {
		t.Fatalf("expected ErrParticipantsNotConfirmed on complete, got %v", err)
	}

	state, err := env.service.ConductState(ctx, env.handle(t))
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state.State != entities.ConductStateLeadersConfirmed || state.Status != entities.MeetingStatusInProgress {
		t.Fatalf("rejected transitions must not change the meeting, got %s/%s", state.State, state.Status)
	}

	// in progress without a snapshot: the status machine refuses another start
	other := env.fixture.SeedMeeting(t, env.db)
	if err := env.db.Model(other).Update("status", entities.MeetingStatusInProgress).Error; err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	oh, err := env.authorizer.ForMeeting(ctx, env.fixture.MemberUser.ID, other.ID, access.LevelMember)
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if _, err := env.service.StartMeeting(ctx, oh); !errors.Is(err, usecaseErrors.ErrMeetingNotPlanned) {
		t.Fatalf("expected ErrMeetingNotPlanned, got %v", err)
	}
}

func TestForMeeting_RequiresMembership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.authorizer.ForMeeting(ctx, env.fixture.Outsider.ID, env.meeting.ID, access.LevelMember); !errors.Is(err, usecaseErrors.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
	if _, err := env.authorizer.ForMeeting(ctx, env.fixture.MemberUser.ID, env.meeting.ID, access.LevelOwner); !errors.Is(err, usecaseErrors.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := env.authorizer.ForMeeting(ctx, env.fixture.OwnerUser.ID, uuid.New(), access.LevelMember); !errors.Is(err, usecaseErrors.ErrMeetingNotFound) {
		t.Fatalf("expected ErrMeetingNotFound, got %v", err)
	}
}
