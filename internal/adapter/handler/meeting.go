package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/weg-assembly/errors"
	meetingDTO "github.com/johnquangdev/weg-assembly/internal/adapter/dto/meeting"
	"github.com/johnquangdev/weg-assembly/internal/adapter/presenter"
	meetingUsecase "github.com/johnquangdev/weg-assembly/internal/usecase/meeting"
	"github.com/johnquangdev/weg-assembly/pkg/middleware"
)

// Meeting handles scheduling and agenda HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// ScheduleMeeting handles POST /properties/:propertyId/meetings
// @Summary      Schedule a meeting
// @Description  Creates a planned owners' meeting for a property
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        propertyId  path      string                             true  "Property ID (UUID)"
// @Param        request     body      meeting.ScheduleMeetingRequest     true  "Meeting"
// @Success      201         {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      400         {object}  common.ErrorResponse
// @Failure      403         {object}  common.ErrorResponse
// @Router       /properties/{propertyId}/meetings [post]
func (h *Meeting) ScheduleMeeting(c echo.Context) error {
	ph, ok := middleware.PropertyHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req meetingDTO.ScheduleMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := operationContext(c, "schedule_meeting")
	defer cancel()

	m, err := h.meetingService.ScheduleMeeting(ctx, ph, meetingUsecase.ScheduleInput{
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToMeetingResponse(m))
}

// ListMeetings handles GET /properties/:propertyId/meetings
// @Summary      List meetings of a property
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        propertyId  path      string  true  "Property ID (UUID)"
// @Success      200         {object}  common.SuccessResponse{data=[]meeting.MeetingResponse}
// @Router       /properties/{propertyId}/meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	ph, ok := middleware.PropertyHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	meetings, err := h.meetingService.ListMeetings(c.Request().Context(), ph)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingListResponse(meetings))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	mh, ok := middleware.MeetingHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(m))
}

// UpdateMeeting handles PATCH /meetings/:id
// @Summary      Update a planned meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Meeting ID (UUID)"
// @Param        request  body      meeting.UpdateMeetingRequest    true  "Changes"
// @Success      200      {object}  common.SuccessResponse{data=meeting.MeetingResponse}
// @Failure      409      {object}  common.ErrorResponse
// @Router       /meetings/{id} [patch]
func (h *Meeting) UpdateMeeting(c echo.Context) error {
	mh, ok := middleware.MeetingHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req meetingDTO.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx, cancel := operationContext(c, "update_meeting")
	defer cancel()

	m, err := h.meetingService.UpdateMeeting(ctx, mh, meetingUsecase.UpdateInput{
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToMeetingResponse(m))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Description  Deletes the meeting with leaders, participants, agenda, resolutions and votes. Owner only.
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse
// @Failure      403  {object}  common.ErrorResponse
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	mh, ok := middleware.MeetingHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	ctx, cancel := operationContext(c, "delete_meeting")
	defer cancel()

	if err := h.meetingService.DeleteMeeting(ctx, mh); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, nil)
}

// ListAgendaItems handles GET /meetings/:id/agenda-items
// @Summary      List the agenda
// @Tags         Agenda
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=[]meeting.AgendaItemResponse}
// @Router       /meetings/{id}/agenda-items [get]
func (h *Meeting) ListAgendaItems(c echo.Context) error {
	mh, ok := middleware.MeetingHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	items, err := h.meetingService.ListAgendaItems(c.Request().Context(), mh)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToAgendaItemListResponse(items))
}

// AddAgendaItem handles POST /meetings/:id/agenda-items
// @Summary      Append an agenda item
// @Tags         Agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Meeting ID (UUID)"
// @Param        request  body      meeting.AgendaItemRequest   true  "Agenda item"
// @Success      201      {object}  common.SuccessResponse{data=meeting.AgendaItemResponse}
// @Router       /meetings/{id}/agenda-items [post]
func (h *Meeting) AddAgendaItem(c echo.Context) error {
	mh, ok := middleware.MeetingHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req meetingDTO.AgendaItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.meetingService.AddAgendaItem(c.Request().Context(), mh, toAgendaInput(req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, presenter.ToAgendaItemResponse(item))
}

// UpdateAgendaItem handles PATCH /meetings/:id/agenda-items/:itemId
// @Summary      Update an agenda item
// @Tags         Agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Meeting ID (UUID)"
// @Param        itemId   path      string                      true  "Agenda item ID (UUID)"
// @Param        request  body      meeting.AgendaItemRequest   true  "Agenda item"
// @Success      200      {object}  common.SuccessResponse{data=meeting.AgendaItemResponse}
// @Router       /meetings/{id}/agenda-items/{itemId} [patch]
func (h *Meeting) UpdateAgendaItem(c echo.Context) error {
	mh, ok := middleware.MeetingHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.AgendaItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.meetingService.UpdateAgendaItem(c.Request().Context(), mh, itemID, toAgendaInput(req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToAgendaItemResponse(item))
}

// DeleteAgendaItem handles DELETE /meetings/:id/agenda-items/:itemId
// @Summary      Delete an agenda item
// @Tags         Agenda
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Meeting ID (UUID)"
// @Param        itemId  path      string  true  "Agenda item ID (UUID)"
// @Success      200     {object}  common.SuccessResponse
// @Router       /meetings/{id}/agenda-items/{itemId} [delete]
func (h *Meeting) DeleteAgendaItem(c echo.Context) error {
	mh, ok := middleware.MeetingHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.DeleteAgendaItem(c.Request().Context(), mh, itemID); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, nil)
}

// ReorderAgendaItems handles PUT /meetings/:id/agenda-items/order
// @Summary      Reorder the agenda
// @Tags         Agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Meeting ID (UUID)"
// @Param        request  body      meeting.ReorderAgendaRequest  true  "Every item id in the new order"
// @Success      200      {object}  common.SuccessResponse{data=[]meeting.AgendaItemResponse}
// @Router       /meetings/{id}/agenda-items/order [put]
func (h *Meeting) ReorderAgendaItems(c echo.Context) error {
	mh, ok := middleware.MeetingHandle(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req meetingDTO.ReorderAgendaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	ids := make([]uuid.UUID, len(req.ItemIDs))
	for i, raw := range req.ItemIDs {
		ids[i] = uuid.MustParse(raw)
	}

	items, err := h.meetingService.ReorderAgendaItems(c.Request().Context(), mh, ids)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToAgendaItemListResponse(items))
}

func toAgendaInput(req meetingDTO.AgendaItemRequest) meetingUsecase.AgendaItemInput {
	return meetingUsecase.AgendaItemInput{
		Title:              req.Title,
		Description:        req.Description,
		RequiresResolution: req.RequiresResolution,
		MajorityType:       req.MajorityType,
	}
}
