package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/confmed/icms-api/internal/api/handler/v1/response"
	"github.com/confmed/icms-api/internal/domain"
	"github.com/confmed/icms-api/internal/ics"
	"github.com/confmed/icms-api/internal/service"
)

type PublicEventService interface {
	ListPublishedEvents(ctx context.Context) ([]domain.Event, error)
	GetPublicEventBySlug(ctx context.Context, slug string) (domain.EventAggregate, error)
}

// PublicHandler serves the unauthenticated event pages that attendees
// browse before registering.
type PublicHandler struct {
	svc PublicEventService
}

func NewPublicHandler(svc PublicEventService) *PublicHandler {
	return &PublicHandler{
		svc: svc,
	}
}

// HandleListPublishedEvents godoc
// @Summary      List published events
// @Tags         public
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      500  {object}  response.Err
// @Router       /public/events [get]
func (h *PublicHandler) HandleListPublishedEvents(ctx *gin.Context) {
	events, err := h.svc.ListPublishedEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPublishedEvents -> h.svc.ListPublishedEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetPublishedEvent godoc
// @Summary      Get a published event page by slug
// @Tags         public
// @Produce      json
// @Param        slug  path      string  true  "event slug"
// @Success      200   {object}  domain.EventAggregate
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /public/events/{slug} [get]
func (h *PublicHandler) HandleGetPublishedEvent(ctx *gin.Context) {
	slug := ctx.Param("slug")

	aggregate, err := h.svc.GetPublicEventBySlug(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleGetPublishedEvent -> h.svc.GetPublicEventBySlug -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, aggregate)
}

// HandleEventSchedule godoc
// @Summary      Download a published event's schedule as iCalendar
// @Tags         public
// @Produce      plain
// @Param        slug  path      string  true  "event slug"
// @Success      200   {string}  string  "text/calendar"
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /public/events/{slug}/schedule.ics [get]
func (h *PublicHandler) HandleEventSchedule(ctx *gin.Context) {
	slug := ctx.Param("slug")

	aggregate, err := h.svc.GetPublicEventBySlug(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleEventSchedule -> h.svc.GetPublicEventBySlug -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	calendar := ics.Schedule(aggregate.Event, aggregate.EventSessions)

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slug+".ics"))
	ctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(calendar))
}
