package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confmed/icms-api/internal/api/handler/v1/request"
	"github.com/confmed/icms-api/internal/api/handler/v1/response"
	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/service"
)

// HandleAddEventSpeaker godoc
// @Summary      Assign a speaker to an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                               true  "event ID"
// @Param        request  body      request.SpeakerAssignmentRequest  true  "assignment details"
// @Success      201      {object}  domain.SpeakerAssignment
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/speakers [post]
// @Security     BearerAuth
func (h *EventHandler) HandleAddEventSpeaker(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SpeakerAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.AddSpeakerAssignment(ctx.Request.Context(), domain.SpeakerAssignment{
		EventID:      eventID,
		SpeakerID:    req.SpeakerID,
		Topic:        req.Topic,
		Description:  req.Description,
		SessionDate:  req.SessionDate,
		SessionOrder: req.SessionOrder,
	})
	if err != nil {
		h.renderAgendaErr(ctx, eventID, fmt.Errorf("v1.HandleAddEventSpeaker -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateEventSpeaker godoc
// @Summary      Update a speaker assignment
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID       path      int                               true  "event ID"
// @Param        assignmentID  path      int                               true  "assignment ID"
// @Param        request       body      request.SpeakerAssignmentRequest  true  "assignment details"
// @Success      200           {object}  domain.SpeakerAssignment
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /events/{eventID}/speakers/{assignmentID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEventSpeaker(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	assignmentID, respErr := parseIDParam(ctx, "assignmentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SpeakerAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateSpeakerAssignment(ctx.Request.Context(), domain.SpeakerAssignment{
		ID:           assignmentID,
		EventID:      eventID,
		SpeakerID:    req.SpeakerID,
		Topic:        req.Topic,
		Description:  req.Description,
		SessionDate:  req.SessionDate,
		SessionOrder: req.SessionOrder,
	})
	if err != nil {
		h.renderAgendaErr(ctx, eventID, fmt.Errorf("v1.HandleUpdateEventSpeaker -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleRemoveEventSpeaker godoc
// @Summary      Remove a speaker assignment
// @Tags         events
// @Produce      json
// @Param        eventID       path  int  true  "event ID"
// @Param        assignmentID  path  int  true  "assignment ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/speakers/{assignmentID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleRemoveEventSpeaker(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	assignmentID, respErr := parseIDParam(ctx, "assignmentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.RemoveSpeakerAssignment(ctx.Request.Context(), eventID, assignmentID); err != nil {
		h.renderAgendaErr(ctx, eventID, fmt.Errorf("v1.HandleRemoveEventSpeaker -> %w", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListEventSessions godoc
// @Summary      List an event's sessions in schedule order
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {array}   domain.SessionRecord
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/sessions [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListEventSessions(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sessions, err := h.svc.ListSessions(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEventSessions -> h.svc.ListSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sessions)
}

// HandleAddEventSession godoc
// @Summary      Add a session to an event's schedule
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                     true  "event ID"
// @Param        request  body      request.SessionRequest  true  "session details"
// @Success      201      {object}  domain.SessionRecord
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/sessions [post]
// @Security     BearerAuth
func (h *EventHandler) HandleAddEventSession(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.AddSession(ctx.Request.Context(), domain.SessionRecord{
		EventID:      eventID,
		SpeakerID:    req.SpeakerID,
		Title:        req.Title,
		Description:  req.Description,
		SessionDate:  req.SessionDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Hall:         req.Hall,
		SessionOrder: req.SessionOrder,
	})
	if err != nil {
		h.renderAgendaErr(ctx, eventID, fmt.Errorf("v1.HandleAddEventSession -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateEventSession godoc
// @Summary      Update a scheduled session
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID    path      int                     true  "event ID"
// @Param        sessionID  path      int                     true  "session ID"
// @Param        request    body      request.SessionRequest  true  "session details"
// @Success      200        {object}  domain.SessionRecord
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /events/{eventID}/sessions/{sessionID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEventSession(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.UpdateSession(ctx.Request.Context(), domain.SessionRecord{
		ID:           sessionID,
		EventID:      eventID,
		SpeakerID:    req.SpeakerID,
		Title:        req.Title,
		Description:  req.Description,
		SessionDate:  req.SessionDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Hall:         req.Hall,
		SessionOrder: req.SessionOrder,
	})
	if err != nil {
		h.renderAgendaErr(ctx, eventID, fmt.Errorf("v1.HandleUpdateEventSession -> %w", err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleRemoveEventSession godoc
// @Summary      Remove a session from the schedule
// @Tags         events
// @Produce      json
// @Param        eventID    path  int  true  "event ID"
// @Param        sessionID  path  int  true  "session ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/sessions/{sessionID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleRemoveEventSession(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	sessionID, respErr := parseIDParam(ctx, "sessionID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.RemoveSession(ctx.Request.Context(), eventID, sessionID); err != nil {
		h.renderAgendaErr(ctx, eventID, fmt.Errorf("v1.HandleRemoveEventSession -> %w", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddEventSponsor godoc
// @Summary      Attach a sponsor to an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                               true  "event ID"
// @Param        request  body      request.SponsorAssignmentRequest  true  "sponsor assignment"
// @Success      201      {object}  domain.SponsorAssignment
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/sponsors [post]
// @Security     BearerAuth
func (h *EventHandler) HandleAddEventSponsor(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SponsorAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.AddSponsorAssignment(ctx.Request.Context(), domain.SponsorAssignment{
		EventID:      eventID,
		SponsorID:    req.SponsorID,
		Tier:         req.Tier,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		h.renderAgendaErr(ctx, eventID, fmt.Errorf("v1.HandleAddEventSponsor -> %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleRemoveEventSponsor godoc
// @Summary      Detach a sponsor from an event
// @Tags         events
// @Produce      json
// @Param        eventID       path  int  true  "event ID"
// @Param        assignmentID  path  int  true  "assignment ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/sponsors/{assignmentID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleRemoveEventSponsor(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	assignmentID, respErr := parseIDParam(ctx, "assignmentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.RemoveSponsorAssignment(ctx.Request.Context(), eventID, assignmentID); err != nil {
		h.renderAgendaErr(ctx, eventID, fmt.Errorf("v1.HandleRemoveEventSponsor -> %w", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// renderAgendaErr maps the shared agenda error set to HTTP statuses.
func (h *EventHandler) renderAgendaErr(ctx *gin.Context, eventID uint, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.RenderErr(ctx, response.ErrNotFound("assignment", "eventID", eventID))
	case errors.Is(err, service.ErrSessionNotFound):
		response.RenderErr(ctx, response.ErrNotFound("session", "eventID", eventID))
	case errors.Is(err, service.ErrSessionOutsideEvent):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrSessionOutsideEvent))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
