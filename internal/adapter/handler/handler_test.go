package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/internal/adapter/repository"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	httpmw "github.com/johnquangdev/weg-assembly/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/weg-assembly/internal/testutil"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	"github.com/johnquangdev/weg-assembly/internal/usecase/conduct"
	meetingUsecase "github.com/johnquangdev/weg-assembly/internal/usecase/meeting"
	pkgvalidator "github.com/johnquangdev/weg-assembly/pkg/validator"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type apiEnv struct {
	echo    *echo.Echo
	fixture *testutil.Fixture
	meeting *entities.Meeting
	user    *entities.User
}

// newAPIEnv wires the full router on SQLite. The stub auth middleware signs
// in the fixture's member user.
func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	fixture := testutil.SeedProperty(t, db, "100", "200", "300")
	env := &apiEnv{
		fixture: fixture,
		meeting: fixture.SeedMeeting(t, db),
		user:    fixture.MemberUser,
	}

	logger := zap.NewNop()
	meetings := repository.NewMeetingRepository(db)
	agenda := repository.NewAgendaItemRepository(db)
	registry := repository.NewRegistryRepository(db)
	authorizer := access.NewAuthorizerService(meetings, registry, repository.NewMembershipRepository(db))

	conductService := conduct.NewConductService(conduct.Dependencies{
		Transactor:   repository.NewTransactor(db),
		Meetings:     meetings,
		Leaders:      repository.NewLeaderRepository(db),
		Participants: repository.NewParticipantRepository(db),
		AgendaItems:  agenda,
		Resolutions:  repository.NewResolutionRepository(db),
		Votes:        repository.NewVoteRepository(db),
		Registry:     registry,
		Logger:       logger,
	})

	stubAuth := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return echo.ErrUnauthorized
			}
			c.Set(httpmw.UserKey, env.user)
			c.Set(httpmw.UserIDKey, env.user.ID)
			return next(c)
		}
	}

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = ErrorHandler(logger)
	NewRouter(RouterDeps{
		DB:             db,
		AuthMiddleware: stubAuth,
		Authorizer:     authorizer,
		Account:        NewAccountHandler(logger),
		Meeting:        NewMeetingHandler(meetingUsecase.NewMeetingService(meetings, agenda, logger), logger),
		Conduct:        NewConductHandler(conductService, logger),
	}).Setup(e)

	env.echo = e
	return env
}

func (env *apiEnv) do(t *testing.T, method, path, body string, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAuthorization, "Bearer test")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	var env2 envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		if err := json.Unmarshal(rec.Body.Bytes(), &env2); err != nil {
			t.Fatalf("failed to decode %s %s response: %v (%s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env2
}

func (env *apiEnv) meetingPath(suffix string) string {
	return "/v1/meetings/" + env.meeting.ID.String() + suffix
}

func TestHealth(t *testing.T) {
	env := newAPIEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"database":"up"`) {
		t.Fatalf("expected database up, got %s", rec.Body.String())
	}
}

func TestHealth_DegradedDependency(t *testing.T) {
	rt := NewRouter(RouterDeps{HealthChecks: map[string]func(context.Context) error{
		"storage": func(context.Context) error { return errors.New("bucket missing") },
		"redis":   func(context.Context) error { return nil },
	}})
	e := echo.New()
	e.GET("/health", rt.healthCheck)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode health: %v", err)
	}
	if body["storage"] != "down" || body["redis"] != "up" || body["status"] != "degraded" {
		t.Fatalf("unexpected health body %v", body)
	}
}

func TestMe(t *testing.T) {
	env := newAPIEnv(t)

	rec, body := env.do(t, http.MethodGet, "/v1/me", "")
	if rec.Code != http.StatusOK || !body.Success {
		t.Fatalf("expected 200 success, got %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(string(body.Data), env.user.Email) {
		t.Fatalf("expected user email in %s", body.Data)
	}
}

func TestUnauthenticatedUsesEnvelope(t *testing.T) {
	env := newAPIEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected JSON envelope: %v", err)
	}
	if body.Success || body.Error == nil || body.Error.Code != "UNAUTHENTICATED" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	env := newAPIEnv(t)

	rec, body := env.do(t, http.MethodGet, "/v1/nowhere", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body.Error == nil || body.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestMeetingAccessDeniedForOutsider(t *testing.T) {
	env := newAPIEnv(t)
	env.user = env.fixture.Outsider

	rec, body := env.do(t, http.MethodGet, env.meetingPath(""), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
	}
	if body.Error == nil || body.Error.Code != "PERMISSION_DENIED" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestInvalidMeetingID(t *testing.T) {
	env := newAPIEnv(t)

	rec, body := env.do(t, http.MethodGet, "/v1/meetings/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body.Error == nil || body.Error.Code != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestGetStep_RedirectsToFirstUnmetStep(t *testing.T) {
	env := newAPIEnv(t)

	rec, _ := env.do(t, http.MethodPost, env.meetingPath("/start"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("start failed: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = env.do(t, http.MethodGet, env.meetingPath("/conduct/agenda-items"), "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if want := env.meetingPath("/conduct/leaders"); rec.Header().Get(echo.HeaderLocation) != want {
		t.Fatalf("expected redirect to %s, got %s", want, rec.Header().Get(echo.HeaderLocation))
	}

	rec, _ = env.do(t, http.MethodPut, env.meetingPath("/conduct/leaders"), `{"leaders":[{"name":"Anna Vorsitz","role":"chair"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm leaders failed: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = env.do(t, http.MethodGet, env.meetingPath("/conduct/summary"), "")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if want := env.meetingPath("/conduct/participants"); rec.Header().Get(echo.HeaderLocation) != want {
		t.Fatalf("expected redirect to %s, got %s", want, rec.Header().Get(echo.HeaderLocation))
	}

	rec, body := env.do(t, http.MethodGet, env.meetingPath("/conduct/participants"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var step struct {
		Step string `json:"step"`
		Data struct {
			Participants []json.RawMessage `json:"participants"`
			Quorum       struct {
				TotalShares string `json:"total_shares"`
			} `json:"quorum"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body.Data, &step); err != nil {
		t.Fatalf("failed to decode step: %v", err)
	}
	if step.Step != "participants" || len(step.Data.Participants) != 3 || step.Data.Quorum.TotalShares != "600" {
		t.Fatalf("unexpected step payload %s", body.Data)
	}
}

func TestGetStep_UnknownStep(t *testing.T) {
	env := newAPIEnv(t)

	rec, body := env.do(t, http.MethodGet, env.meetingPath("/conduct/voting"), "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body.Error == nil || body.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestStartTwiceIsConflict(t *testing.T) {
	env := newAPIEnv(t)

	if rec, _ := env.do(t, http.MethodPost, env.meetingPath("/start"), ""); rec.Code != http.StatusOK {
		t.Fatalf("start failed: %d", rec.Code)
	}
	rec, body := env.do(t, http.MethodPost, env.meetingPath("/start"), "", "Accept-Language", "en-US,en;q=0.9")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", rec.Code, rec.Body.String())
	}
	if body.Error == nil || body.Error.Code != "PARTICIPANTS_ALREADY_EXIST" || body.Error.Message != "The participant list has already been created." {
		t.Fatalf("expected localized english message, got %s", rec.Body.String())
	}
}

func TestCastVotes_ValidationDetails(t *testing.T) {
	env := newAPIEnv(t)
	rid := uuid.NewString()

	payload := `{"votes":[{"participant_id":"` + uuid.NewString() + `","choice":"maybe"}]}`
	rec, body := env.do(t, http.MethodPost, env.meetingPath("/resolutions/"+rid+"/votes"), payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}
	if body.Error == nil || body.Error.Code != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if body.Error.Details["votes[0].choice"] != "oneof" {
		t.Fatalf("expected choice detail, got %v", body.Error.Details)
	}
	if body.Error.Message != "Ungültige Eingabe." {
		t.Fatalf("expected default german message, got %q", body.Error.Message)
	}
}

func TestMalformedJSONIsInvalidPayload(t *testing.T) {
	env := newAPIEnv(t)

	rec, body := env.do(t, http.MethodPut, env.meetingPath("/conduct/leaders"), `{"leaders":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body.Error == nil || body.Error.Code != "INVALID_PAYLOAD" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestVotingFlow(t *testing.T) {
	env := newAPIEnv(t)

	rec, body := env.do(t, http.MethodPost, env.meetingPath("/agenda-items"), `{"title":"Wirtschaftsplan","requires_resolution":true}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add agenda item failed: %d %s", rec.Code, rec.Body.String())
	}
	var item struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body.Data, &item); err != nil {
		t.Fatalf("failed to decode agenda item: %v", err)
	}

	rec, body = env.do(t, http.MethodPost, env.meetingPath("/start"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("start failed: %d %s", rec.Code, rec.Body.String())
	}
	var started struct {
		Participants []struct {
			ID     string `json:"id"`
			Shares string `json:"shares"`
		} `json:"participants"`
	}
	if err := json.Unmarshal(body.Data, &started); err != nil {
		t.Fatalf("failed to decode start: %v", err)
	}

	// Voting is gated on both confirmations
	rec, body = env.do(t, http.MethodPost, env.meetingPath("/agenda-items/"+item.ID+"/resolution"), "")
	if rec.Code != http.StatusConflict || body.Error == nil || body.Error.Code != "LEADERS_NOT_CONFIRMED" {
		t.Fatalf("expected leaders gate, got %d %s", rec.Code, rec.Body.String())
	}

	env.do(t, http.MethodPut, env.meetingPath("/conduct/leaders"), `{"leaders":[{"name":"Anna Vorsitz","role":"chair"}]}`)
	env.do(t, http.MethodPost, env.meetingPath("/conduct/participants/confirm"), "")

	rec, body = env.do(t, http.MethodPost, env.meetingPath("/agenda-items/"+item.ID+"/resolution"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ensure resolution failed: %d %s", rec.Code, rec.Body.String())
	}
	var resolution struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body.Data, &resolution); err != nil {
		t.Fatalf("failed to decode resolution: %v", err)
	}

	// shares 100/200/300: yes 300 of 600 is not a simple majority
	choices := map[string]string{"100": "yes", "200": "yes", "300": "no"}
	votes := make([]string, 0, len(started.Participants))
	for _, p := range started.Participants {
		votes = append(votes, `{"participant_id":"`+p.ID+`","choice":"`+choices[p.Shares]+`"}`)
	}
	rec, body = env.do(t, http.MethodPost, env.meetingPath("/resolutions/"+resolution.ID+"/votes"), `{"votes":[`+strings.Join(votes, ",")+`]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("cast votes failed: %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(string(body.Data), `"inserted":3`) {
		t.Fatalf("expected 3 inserted, got %s", body.Data)
	}

	rec, body = env.do(t, http.MethodPost, env.meetingPath("/resolutions/"+resolution.ID+"/calculate"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("calculate failed: %d %s", rec.Code, rec.Body.String())
	}
	var calculated struct {
		Result   string `json:"result"`
		VotesYes int    `json:"votes_yes"`
	}
	if err := json.Unmarshal(body.Data, &calculated); err != nil {
		t.Fatalf("failed to decode calculation: %v", err)
	}
	if calculated.Result != "rejected" || calculated.VotesYes != 2 {
		t.Fatalf("unexpected calculation %s", body.Data)
	}

	rec, body = env.do(t, http.MethodGet, env.meetingPath("/resolutions/"+resolution.ID+"/calculations"), "")
	if rec.Code != http.StatusOK || !strings.Contains(string(body.Data), `"total_shares":"600"`) {
		t.Fatalf("unexpected calculations %d %s", rec.Code, rec.Body.String())
	}

	rec, body = env.do(t, http.MethodPost, env.meetingPath("/complete"), "")
	if rec.Code != http.StatusOK || !strings.Contains(string(body.Data), `"changed":true`) {
		t.Fatalf("complete failed: %d %s", rec.Code, rec.Body.String())
	}
	rec, body = env.do(t, http.MethodPost, env.meetingPath("/complete"), "")
	if rec.Code != http.StatusOK || !strings.Contains(string(body.Data), `"changed":false`) {
		t.Fatalf("second complete should be a no-op: %d %s", rec.Code, rec.Body.String())
	}

	rec, body = env.do(t, http.MethodPost, env.meetingPath("/resolutions/"+resolution.ID+"/votes"), `{"votes":[]}`)
	if rec.Code != http.StatusConflict || body.Error == nil || body.Error.Code != "MEETING_COMPLETED" {
		t.Fatalf("expected completed meeting to reject votes, got %d %s", rec.Code, rec.Body.String())
	}
}
