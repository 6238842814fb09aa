package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ringsizer/storefront/internal/api/handler/v1/response"
	"github.com/ringsizer/storefront/internal/api/middleware"
	"github.com/ringsizer/storefront/internal/repository"
	"github.com/ringsizer/storefront/internal/service"
)

var errNoUser = errors.New("no user in context")

type SessionRegistry interface {
	Get(ctx context.Context, userID int64) (*service.Session, error)
	Drop(userID int64)
}

func userIDFromContext(ctx *gin.Context) (int64, bool) {
	v, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// sessionFromContext resolves the caller's session, rendering the error when there is none.
func sessionFromContext(ctx *gin.Context, sessions SessionRegistry) (*service.Session, bool) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errNoUser))
		return nil, false
	}

	s, err := sessions.Get(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "sessions.Get", err)
		return nil, false
	}

	return s, true
}

func idParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v", name)))
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, returning def when it is absent or malformed.
func queryInt(ctx *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(ctx.Query(name)))
	if err != nil {
		return def
	}
	return v
}

// renderServiceErr maps service and remote failures onto HTTP responses.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	var apiErr *repository.APIError

	switch {
	case errors.Is(err, service.ErrNotSignedIn), errors.Is(err, service.ErrUnauthorized):
		response.RenderErr(ctx, response.ErrUnauthorized(err))
	case errors.Is(err, service.ErrWrongCredentials):
		response.RenderErr(ctx, response.ErrWrongCredentials(err))
	case errors.Is(err, service.ErrNoMeasurement):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrLineNotFound), errors.Is(err, service.ErrNotFound):
		response.RenderErr(ctx, response.ErrMissing(err, service.Describe(err)))
	case errors.As(err, &apiErr):
		response.RenderErr(ctx, response.ErrBadGateway(err, apiErr.Message))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
