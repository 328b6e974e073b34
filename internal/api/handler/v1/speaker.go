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

type SpeakerService interface {
	CreateSpeaker(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error)
	GetSpeaker(ctx context.Context, id uint) (domain.Speaker, error)
	ListSpeakers(ctx context.Context) ([]domain.Speaker, error)
}

type SponsorService interface {
	CreateSponsor(ctx context.Context, sponsor domain.Sponsor) (domain.Sponsor, error)
	GetSponsor(ctx context.Context, id uint) (domain.Sponsor, error)
	ListSponsors(ctx context.Context) ([]domain.Sponsor, error)
}

// DirectoryHandler serves the tenant-wide speaker and sponsor
// directories that event assignments reference.
type DirectoryHandler struct {
	speakers SpeakerService
	sponsors SponsorService
	uSvc     UserService
}

func NewDirectoryHandler(speakers SpeakerService, sponsors SponsorService, uSvc UserService) *DirectoryHandler {
	return &DirectoryHandler{
		speakers: speakers,
		sponsors: sponsors,
		uSvc:     uSvc,
	}
}

func (h *DirectoryHandler) requireManager(ctx *gin.Context) (domain.User, *response.Err) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return domain.User{}, respErr
	}

	if !user.CanManageEvents() {
		return domain.User{}, response.ErrPermissionDenied(fmt.Errorf("user %v cannot manage events", user.ID))
	}

	return user, nil
}

// HandleCreateSpeaker godoc
// @Summary      Add a speaker to the directory
// @Tags         speakers
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSpeakerRequest  true  "speaker details"
// @Success      201      {object}  domain.Speaker
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /speakers [post]
// @Security     BearerAuth
func (h *DirectoryHandler) HandleCreateSpeaker(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateSpeakerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.speakers.CreateSpeaker(ctx.Request.Context(), domain.Speaker{
		Name:         req.Name,
		Title:        req.Title,
		Specialty:    req.Specialty,
		Organization: req.Organization,
		Bio:          req.Bio,
		PhotoURL:     req.PhotoURL,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSpeaker -> h.speakers.CreateSpeaker -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetSpeaker godoc
// @Summary      Get a speaker by ID
// @Tags         speakers
// @Produce      json
// @Param        speakerID  path      int  true  "speaker ID"
// @Success      200        {object}  domain.Speaker
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /speakers/{speakerID} [get]
// @Security     BearerAuth
func (h *DirectoryHandler) HandleGetSpeaker(ctx *gin.Context) {
	speakerID, respErr := parseIDParam(ctx, "speakerID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	speaker, err := h.speakers.GetSpeaker(ctx.Request.Context(), speakerID)
	if err != nil {
		if errors.Is(err, service.ErrSpeakerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("speaker", "ID", speakerID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSpeaker -> h.speakers.GetSpeaker -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, speaker)
}

// HandleListSpeakers godoc
// @Summary      List the speaker directory
// @Tags         speakers
// @Produce      json
// @Success      200  {array}   domain.Speaker
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /speakers [get]
// @Security     BearerAuth
func (h *DirectoryHandler) HandleListSpeakers(ctx *gin.Context) {
	speakers, err := h.speakers.ListSpeakers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSpeakers -> h.speakers.ListSpeakers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, speakers)
}

// HandleCreateSponsor godoc
// @Summary      Add a sponsor to the directory
// @Tags         sponsors
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSponsorRequest  true  "sponsor details"
// @Success      201      {object}  domain.Sponsor
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sponsors [post]
// @Security     BearerAuth
func (h *DirectoryHandler) HandleCreateSponsor(ctx *gin.Context) {
	_, respErr := h.requireManager(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateSponsorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.sponsors.CreateSponsor(ctx.Request.Context(), domain.Sponsor{
		Name:         req.Name,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
		Website:      req.Website,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSponsor -> h.sponsors.CreateSponsor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleGetSponsor godoc
// @Summary      Get a sponsor by ID
// @Tags         sponsors
// @Produce      json
// @Param        sponsorID  path      int  true  "sponsor ID"
// @Success      200        {object}  domain.Sponsor
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sponsors/{sponsorID} [get]
// @Security     BearerAuth
func (h *DirectoryHandler) HandleGetSponsor(ctx *gin.Context) {
	sponsorID, respErr := parseIDParam(ctx, "sponsorID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sponsor, err := h.sponsors.GetSponsor(ctx.Request.Context(), sponsorID)
	if err != nil {
		if errors.Is(err, service.ErrSponsorNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sponsor", "ID", sponsorID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSponsor -> h.sponsors.GetSponsor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sponsor)
}

// HandleListSponsors godoc
// @Summary      List the sponsor directory
// @Tags         sponsors
// @Produce      json
// @Success      200  {array}   domain.Sponsor
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sponsors [get]
// @Security     BearerAuth
func (h *DirectoryHandler) HandleListSponsors(ctx *gin.Context) {
	sponsors, err := h.sponsors.ListSponsors(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSponsors -> h.sponsors.ListSponsors -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sponsors)
}
