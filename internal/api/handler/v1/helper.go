package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/confmed/icms-api/internal/api/handler/v1/response"
	"github.com/confmed/icms-api/internal/api/middleware"
	"github.com/confmed/icms-api/internal/domain"
)

var errMissingUserID = errors.New("user ID missing from request context")

// getUserFromContext resolves the authenticated user the JWT
// middleware stored in the context.
func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	raw, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized(errMissingUserID)
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errMissingUserID)
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err)

		return domain.User{}, response.ErrInternalServerError(err)
	}

	return user, nil
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v (%v)", name, ctx.Param(name)))
	}

	return uint(id), nil
}
