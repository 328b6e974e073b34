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

type CertificateService interface {
	Issue(ctx context.Context, registrationID uint) (domain.Certificate, error)
	Verify(ctx context.Context, code string) (domain.Certificate, error)
}

type CertificateHandler struct {
	svc  CertificateService
	uSvc UserService
}

func NewCertificateHandler(svc CertificateService, uSvc UserService) *CertificateHandler {
	return &CertificateHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleIssueCertificate godoc
// @Summary      Issue a CME certificate
// @Description  Issues a certificate for a paid registration of a completed event.
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        request  body      request.IssueCertificateRequest  true  "registration"
// @Success      201      {object}  domain.Certificate
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /certificates [post]
// @Security     BearerAuth
func (h *CertificateHandler) HandleIssueCertificate(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if !user.CanManageEvents() {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot issue certificates", user.ID)))
		return
	}

	var req request.IssueCertificateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	certificate, err := h.svc.Issue(ctx.Request.Context(), req.RegistrationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("registration", "ID", req.RegistrationID))
		case errors.Is(err, service.ErrRegistrationUnpaid),
			errors.Is(err, service.ErrEventNotCompleted):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrCertificateExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleIssueCertificate -> h.svc.Issue -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, certificate)
}

// HandleVerifyCertificate godoc
// @Summary      Verify a certificate by its code
// @Description  Public lookup used by employers and accreditation bodies.
// @Tags         certificates
// @Produce      json
// @Param        code  path      string  true  "verification code"
// @Success      200   {object}  domain.Certificate
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /public/certificates/{code}/verify [get]
func (h *CertificateHandler) HandleVerifyCertificate(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("verification code is required")))
		return
	}

	certificate, err := h.svc.Verify(ctx.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("certificate", "code", code))
			return
		}

		err = fmt.Errorf("v1.HandleVerifyCertificate -> h.svc.Verify -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, certificate)
}
