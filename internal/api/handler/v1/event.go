package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confmed/icms-api/internal/api/handler/v1/request"
	"github.com/confmed/icms-api/internal/api/handler/v1/response"
	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/service"
)

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event, categories []domain.PricingCategory) (domain.EventAggregate, error)
	GetEventAggregate(ctx context.Context, eventID uint) (domain.EventAggregate, error)
	ListEvents(ctx context.Context, tenantID uint) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	SetPublished(ctx context.Context, eventID uint, published bool) (domain.Event, error)
	DeleteEvent(ctx context.Context, eventID uint) error
	DuplicateEvent(ctx context.Context, eventID uint) (domain.EventAggregate, error)

	AddSpeakerAssignment(ctx context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error)
	UpdateSpeakerAssignment(ctx context.Context, assignment domain.SpeakerAssignment) (domain.SpeakerAssignment, error)
	RemoveSpeakerAssignment(ctx context.Context, eventID, id uint) error
	AddSession(ctx context.Context, session domain.SessionRecord) (domain.SessionRecord, error)
	UpdateSession(ctx context.Context, session domain.SessionRecord) (domain.SessionRecord, error)
	RemoveSession(ctx context.Context, eventID, id uint) error
	ListSessions(ctx context.Context, eventID uint) ([]domain.SessionRecord, error)
	AddSponsorAssignment(ctx context.Context, assignment domain.SponsorAssignment) (domain.SponsorAssignment, error)
	RemoveSponsorAssignment(ctx context.Context, eventID, id uint) error
}

type EventHandler struct {
	svc  EventService
	uSvc UserService
}

func NewEventHandler(svc EventService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// requireManager loads the authenticated user and rejects anyone
// without the events management capability. The capability check runs
// before any event lookup so a 403 never confirms an event exists.
func (h *EventHandler) requireManager(ctx *gin.Context) (domain.User, *response.Err) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return domain.User{}, respErr
	}

	if !user.CanManageEvents() {
		return domain.User{}, response.ErrPermissionDenied(fmt.Errorf("user %v cannot manage events", user.ID))
	}

	return user, nil
}

// HandleCreateEvent godoc
// @Summary      Create a new event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "event details"
// @Success      201      {object}  domain.EventAggregate
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	user, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event := eventFromRequest(&req)
	event.TenantID = user.TenantID

	categories := make([]domain.PricingCategory, len(req.PricingCategories))
	for i, c := range req.PricingCategories {
		categories[i] = domain.PricingCategory{
			Name:              c.Name,
			Description:       c.Description,
			Slots:             c.Slots,
			Price:             c.Price,
			EarlyBirdPrice:    c.EarlyBirdPrice,
			EarlyBirdDeadline: c.EarlyBirdDeadline,
			DisplayOrder:      c.DisplayOrder,
		}
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), event, categories)
	if err != nil {
		if errors.Is(err, service.ErrEndBeforeStart) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if errors.Is(err, service.ErrSlugExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleListEvents godoc
// @Summary      List the tenant's events, drafts included
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	user, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	events, err := h.svc.ListEvents(ctx.Request.Context(), user.TenantID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetEvent godoc
// @Summary      Get an event with its full aggregate
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  domain.EventAggregate
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
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

	aggregate, err := h.svc.GetEventAggregate(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEventAggregate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, aggregate)
}

// HandleUpdateEvent godoc
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                         true  "event ID"
// @Param        request  body      request.UpdateEventRequest  true  "event details"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
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

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event := eventFromRequest(&req.CreateEventRequest)
	event.ID = eventID

	updated, err := h.svc.UpdateEvent(ctx.Request.Context(), event)
	if err != nil {
		if errors.Is(err, service.ErrEndBeforeStart) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandlePublishEvent godoc
// @Summary      Publish or unpublish an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                          true  "event ID"
// @Param        request  body      request.PublishEventRequest  true  "publish flag"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/publish [patch]
// @Security     BearerAuth
func (h *EventHandler) HandlePublishEvent(ctx *gin.Context) {
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

	var req request.PublishEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, err := h.svc.SetPublished(ctx.Request.Context(), eventID, req.IsPublished)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandlePublishEvent -> h.svc.SetPublished -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event and everything it owns
// @Tags         events
// @Produce      json
// @Param        eventID  path  int  true  "event ID"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
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

	if err := h.svc.DeleteEvent(ctx.Request.Context(), eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDuplicateEvent godoc
// @Summary      Duplicate an event
// @Description  Clones the event with its pricing categories, speakers, sessions and sponsors. Dates shift three months past the source and the clone starts as an unpublished draft.
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      201      {object}  response.DuplicateEventResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/duplicate [post]
// @Security     BearerAuth
func (h *EventHandler) HandleDuplicateEvent(ctx *gin.Context) {
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

	clone, err := h.svc.DuplicateEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}
		if errors.Is(err, service.ErrSlugExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleDuplicateEvent -> h.svc.DuplicateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.DuplicateEventResponse{
		Message: service.DuplicatedMessage,
		Event:   clone,
	})
}

func eventFromRequest(req *request.CreateEventRequest) domain.Event {
	return domain.Event{
		Title:                 req.Title,
		Description:           req.Description,
		Location:              req.Location,
		Venue:                 req.Venue,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		RegistrationDeadline:  req.RegistrationDeadline,
		RegistrationOpensDate: req.RegistrationOpensDate,
		EarlyBirdDeadline:     req.EarlyBirdDeadline,
		Price:                 req.Price,
		Currency:              req.Currency,
		CMECredits:            req.CMECredits,
		BannerURL:             req.BannerURL,
		Tags:                  req.Tags,
	}
}
