package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/errors"
	conductDTO "github.com/johnquangdev/weg-assembly/internal/adapter/dto/conduct"
	"github.com/johnquangdev/weg-assembly/internal/adapter/presenter"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/internal/usecase/access"
	conductUsecase "github.com/johnquangdev/weg-assembly/internal/usecase/conduct"
	"github.com/johnquangdev/weg-assembly/pkg/middleware"
)

// Conduct handles the live meeting HTTP requests
type Conduct struct {
	conductService conductUsecase.Service
	logger         *zap.Logger
}

// NewConductHandler creates a new conduct handler
func NewConductHandler(conductService conductUsecase.Service, logger *zap.Logger) *Conduct {
	return &Conduct{
		conductService: conductService,
		logger:         logger,
	}
}

func (h *Conduct) handle(c echo.Context) (*access.MeetingHandle, error) {
	mh, ok := middleware.MeetingHandle(c)
	if !ok {
		return nil, errors.ErrUnauthenticated()
	}
	return mh, nil
}

// StartMeeting handles POST /meetings/:id/start
// @Summary      Start a meeting
// @Description  Moves a planned meeting to in-progress and snapshots one participant per owned unit
// @Tags         Conduct
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=conduct.StartResponse}
// @Failure      409  {object}  common.ErrorResponse
// @Router       /meetings/{id}/start [post]
func (h *Conduct) StartMeeting(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := operationContext(c, "start_meeting")
	defer cancel()

	result, err := h.conductService.StartMeeting(ctx, mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &conductDTO.StartResponse{
		Meeting:      presenter.ToMeetingResponse(result.Meeting),
		Participants: presenter.ToParticipantListResponse(result.Participants),
	})
}

// GetState handles GET /meetings/:id/conduct
// @Summary      Conduct state
// @Tags         Conduct
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=conduct.StateResponse}
// @Router       /meetings/{id}/conduct [get]
func (h *Conduct) GetState(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	state, err := h.conductService.ConductState(c.Request().Context(), mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToStateResponse(state))
}

// GetStep handles GET /meetings/:id/conduct/:step. A step whose gate is not
// met redirects to the first unmet step.
// @Summary      Conduct step
// @Tags         Conduct
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Meeting ID (UUID)"
// @Param        step  path      string  true  "leaders, participants, agenda-items or summary"
// @Success      200   {object}  common.SuccessResponse{data=conduct.StepResponse}
// @Success      303   "Redirect to the first unmet step"
// @Failure      404   {object}  common.ErrorResponse
// @Router       /meetings/{id}/conduct/{step} [get]
func (h *Conduct) GetStep(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	requested, ok := entities.ParseConductStep(c.Param("step"))
	if !ok {
		return HandleError(h.logger, c, errors.ErrNotFound("Step"))
	}

	step := h.conductService.ResolveStep(mh, requested)
	if step != requested {
		return c.Redirect(http.StatusSeeOther, stepURL(mh.MeetingID(), step))
	}

	ctx := c.Request().Context()
	var data interface{}
	switch step {
	case entities.ConductStepLeaders:
		leaders, err := h.conductService.ListLeaders(ctx, mh)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		data = presenter.ToLeaderListResponse(leaders)
	case entities.ConductStepParticipants:
		participants, err := h.conductService.ListParticipants(ctx, mh)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		quorum, err := h.conductService.Quorum(ctx, mh)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		data = map[string]interface{}{
			"participants": presenter.ToParticipantListResponse(participants),
			"quorum":       presenter.ToQuorumResponse(quorum),
		}
	default:
		protocol, err := h.conductService.Protocol(ctx, mh)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		data = presenter.ToProtocolResponse(protocol)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &conductDTO.StepResponse{
		Step: step.String(),
		Data: data,
	})
}

func stepURL(meetingID uuid.UUID, step entities.ConductStep) string {
	return fmt.Sprintf("/v1/meetings/%s/conduct/%s", meetingID, step)
}

// ConfirmLeaders handles PUT /meetings/:id/conduct/leaders
// @Summary      Confirm the meeting leaders
// @Description  Replaces the leader list. The first confirmation sets the leader gate.
// @Tags         Conduct
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Meeting ID (UUID)"
// @Param        request  body      conduct.ConfirmLeadersRequest   true  "Leaders in order"
// @Success      200      {object}  common.SuccessResponse{data=[]conduct.LeaderResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Router       /meetings/{id}/conduct/leaders [put]
func (h *Conduct) ConfirmLeaders(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req conductDTO.ConfirmLeadersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	input := make([]conductUsecase.LeaderInput, len(req.Leaders))
	for i, l := range req.Leaders {
		input[i] = conductUsecase.LeaderInput{Name: l.Name, Role: l.Role}
	}

	ctx, cancel := operationContext(c, "confirm_leaders")
	defer cancel()

	leaders, err := h.conductService.ConfirmLeaders(ctx, mh, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToLeaderListResponse(leaders))
}

// ConfirmParticipants handles POST /meetings/:id/conduct/participants/confirm
// @Summary      Confirm the participant list
// @Tags         Conduct
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      409  {object}  common.ErrorResponse
// @Router       /meetings/{id}/conduct/participants/confirm [post]
func (h *Conduct) ConfirmParticipants(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.conductService.ConfirmParticipants(c.Request().Context(), mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(m))
}

// ListParticipants handles GET /meetings/:id/participants
// @Summary      List participants
// @Tags         Attendance
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=[]conduct.ParticipantResponse}
// @Router       /meetings/{id}/participants [get]
func (h *Conduct) ListParticipants(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	participants, err := h.conductService.ListParticipants(c.Request().Context(), mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToParticipantListResponse(participants))
}

// SetAttendance handles PATCH /meetings/:id/participants/:pid/attendance
// @Summary      Set attendance
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Meeting ID (UUID)"
// @Param        pid      path      string                      true  "Participant ID (UUID)"
// @Param        request  body      conduct.AttendanceRequest   true  "Status"
// @Success      200      {object}  common.SuccessResponse{data=conduct.QuorumResponse}
// @Router       /meetings/{id}/participants/{pid}/attendance [patch]
func (h *Conduct) SetAttendance(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	participantID, err := parseUUIDParam(c, "pid")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req conductDTO.AttendanceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	if err := h.conductService.SetAttendance(ctx, mh, participantID, req.Status); err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.respondQuorum(c, mh)
}

// SetRepresentative handles PATCH /meetings/:id/participants/:pid/representative
// @Summary      Set or clear a representative
// @Tags         Attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Meeting ID (UUID)"
// @Param        pid      path      string                          true  "Participant ID (UUID)"
// @Param        request  body      conduct.RepresentativeRequest   true  "Representative, null to clear"
// @Success      200      {object}  common.SuccessResponse{data=conduct.QuorumResponse}
// @Router       /meetings/{id}/participants/{pid}/representative [patch]
func (h *Conduct) SetRepresentative(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	participantID, err := parseUUIDParam(c, "pid")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req conductDTO.RepresentativeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.conductService.SetRepresentative(c.Request().Context(), mh, participantID, req.RepresentedBy); err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.respondQuorum(c, mh)
}

// GetQuorum handles GET /meetings/:id/quorum
// @Summary      Quorum
// @Tags         Attendance
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=conduct.QuorumResponse}
// @Router       /meetings/{id}/quorum [get]
func (h *Conduct) GetQuorum(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.respondQuorum(c, mh)
}

func (h *Conduct) respondQuorum(c echo.Context, mh *access.MeetingHandle) error {
	quorum, err := h.conductService.Quorum(c.Request().Context(), mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToQuorumResponse(quorum))
}

// EnsureResolution handles POST /meetings/:id/agenda-items/:itemId/resolution
// @Summary      Open the resolution of an agenda item
// @Description  Returns the existing resolution or creates it with the given or the item's majority type
// @Tags         Resolutions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true   "Meeting ID (UUID)"
// @Param        itemId   path      string                            true   "Agenda item ID (UUID)"
// @Param        request  body      conduct.EnsureResolutionRequest   false  "Majority type"
// @Success      200      {object}  common.SuccessResponse{data=conduct.ResolutionResponse}
// @Router       /meetings/{id}/agenda-items/{itemId}/resolution [post]
func (h *Conduct) EnsureResolution(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req conductDTO.EnsureResolutionRequest
	if c.Request().ContentLength != 0 {
		if err := bindAndValidate(c, &req); err != nil {
			return HandleError(h.logger, c, err)
		}
	}

	resolution, err := h.conductService.EnsureResolution(c.Request().Context(), mh, itemID, entities.MajorityType(req.MajorityType))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToResolutionResponse(resolution))
}

// MarkCompleted handles POST /meetings/:id/agenda-items/:itemId/complete
// @Summary      Mark an agenda item without a vote as handled
// @Tags         Resolutions
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Meeting ID (UUID)"
// @Param        itemId  path      string  true  "Agenda item ID (UUID)"
// @Success      200     {object}  common.SuccessResponse{data=conduct.ResolutionResponse}
// @Failure      409     {object}  common.ErrorResponse
// @Router       /meetings/{id}/agenda-items/{itemId}/complete [post]
func (h *Conduct) MarkCompleted(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resolution, err := h.conductService.MarkCompleted(c.Request().Context(), mh, itemID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToResolutionResponse(resolution))
}

// ListResolutions handles GET /meetings/:id/resolutions
// @Summary      List resolutions
// @Tags         Resolutions
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      string  true   "Meeting ID (UUID)"
// @Param        agenda_item_ids  query     string  false  "Comma separated agenda item ids"
// @Success      200              {object}  common.SuccessResponse{data=[]conduct.ResolutionResponse}
// @Router       /meetings/{id}/resolutions [get]
func (h *Conduct) ListResolutions(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var ids []uuid.UUID
	if raw := strings.TrimSpace(c.QueryParam("agenda_item_ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return HandleError(h.logger, c, errors.ErrInvalidArgument("agenda_item_ids must be UUIDs").WithDetail("value", part))
			}
			ids = append(ids, id)
		}
	}

	resolutions, err := h.conductService.ListResolutions(c.Request().Context(), mh, ids)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToResolutionListResponse(resolutions))
}

// GetResolution handles GET /meetings/:id/resolutions/:rid
// @Summary      Get a resolution
// @Tags         Resolutions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Param        rid  path      string  true  "Resolution ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=conduct.ResolutionResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id}/resolutions/{rid} [get]
func (h *Conduct) GetResolution(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resolutionID, err := parseUUIDParam(c, "rid")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resolution, err := h.conductService.GetResolution(c.Request().Context(), mh, resolutionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToResolutionResponse(resolution))
}

// CastVotes handles POST /meetings/:id/resolutions/:rid/votes
// @Summary      Cast a batch of votes
// @Description  Upserts one vote per participant in a single transaction. An empty batch changes nothing.
// @Tags         Votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Meeting ID (UUID)"
// @Param        rid      path      string                     true  "Resolution ID (UUID)"
// @Param        request  body      conduct.CastVotesRequest   true  "Ballots"
// @Success      200      {object}  common.SuccessResponse{data=conduct.CastVotesResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Router       /meetings/{id}/resolutions/{rid}/votes [post]
func (h *Conduct) CastVotes(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resolutionID, err := parseUUIDParam(c, "rid")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req conductDTO.CastVotesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	input := make([]conductUsecase.VoteInput, len(req.Votes))
	for i, v := range req.Votes {
		input[i] = conductUsecase.VoteInput{
			ParticipantID: uuid.MustParse(v.ParticipantID),
			Choice:        v.Choice,
		}
	}

	ctx, cancel := operationContext(c, "cast_votes")
	defer cancel()

	result, err := h.conductService.CastVotes(ctx, mh, resolutionID, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &conductDTO.CastVotesResponse{
		Inserted:  result.Inserted,
		Updated:   result.Updated,
		Unchanged: result.Unchanged,
	})
}

// ListVotes handles GET /meetings/:id/resolutions/:rid/votes
// @Summary      List votes
// @Tags         Votes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Param        rid  path      string  true  "Resolution ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=[]conduct.VoteResponse}
// @Router       /meetings/{id}/resolutions/{rid}/votes [get]
func (h *Conduct) ListVotes(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resolutionID, err := parseUUIDParam(c, "rid")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	votes, err := h.conductService.ListVotes(c.Request().Context(), mh, resolutionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToVoteListResponse(votes))
}

// Calculate handles POST /meetings/:id/resolutions/:rid/calculate
// @Summary      Calculate the majority
// @Description  Tallies the current votes, stores the result and appends an audit row
// @Tags         Votes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Param        rid  path      string  true  "Resolution ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=conduct.ResolutionResponse}
// @Router       /meetings/{id}/resolutions/{rid}/calculate [post]
func (h *Conduct) Calculate(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resolutionID, err := parseUUIDParam(c, "rid")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := operationContext(c, "calculate_majority")
	defer cancel()

	resolution, err := h.conductService.Calculate(ctx, mh, resolutionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToResolutionResponse(resolution))
}

// ListCalculations handles GET /meetings/:id/resolutions/:rid/calculations
// @Summary      Calculation audit trail
// @Tags         Votes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Param        rid  path      string  true  "Resolution ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=[]conduct.CalculationResponse}
// @Router       /meetings/{id}/resolutions/{rid}/calculations [get]
func (h *Conduct) ListCalculations(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resolutionID, err := parseUUIDParam(c, "rid")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	calcs, err := h.conductService.ListCalculations(c.Request().Context(), mh, resolutionID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToCalculationListResponse(calcs))
}

// CompleteMeeting handles POST /meetings/:id/complete
// @Summary      Complete a meeting
// @Description  Closes the meeting and archives its protocol. Repeated calls succeed without side effects.
// @Tags         Conduct
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=conduct.CompleteResponse}
// @Failure      409  {object}  common.ErrorResponse
// @Router       /meetings/{id}/complete [post]
func (h *Conduct) CompleteMeeting(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := operationContext(c, "complete_meeting")
	defer cancel()

	result, err := h.conductService.CompleteMeeting(ctx, mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &conductDTO.CompleteResponse{
		Meeting: presenter.ToMeetingResponse(result.Meeting),
		Changed: result.Changed,
	})
}

// GetProtocol handles GET /meetings/:id/protocol
// @Summary      Meeting protocol
// @Tags         Protocol
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=conduct.ProtocolResponse}
// @Router       /meetings/{id}/protocol [get]
func (h *Conduct) GetProtocol(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	protocol, err := h.conductService.Protocol(c.Request().Context(), mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToProtocolResponse(protocol))
}

// DownloadProtocol handles GET /meetings/:id/protocol/download
// @Summary      Protocol download URL
// @Description  Returns a presigned URL of the archived protocol of a completed meeting
// @Tags         Protocol
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=conduct.DownloadResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id}/protocol/download [get]
func (h *Conduct) DownloadProtocol(c echo.Context) error {
	mh, err := h.handle(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	url, err := h.conductService.ProtocolDownloadURL(c.Request().Context(), mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &conductDTO.DownloadResponse{URL: url})
}
