package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ringsizer/storefront/internal/api/handler/v1/request"
	"github.com/ringsizer/storefront/internal/api/handler/v1/response"
	"github.com/ringsizer/storefront/internal/config"
	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/pkg/jwthelper"
	"github.com/ringsizer/storefront/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (domain.AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error)
	Logout(ctx context.Context, userID int64) error
}

type AuthHandler struct {
	conf     *config.APIConfig
	svc      AuthService
	sessions SessionRegistry
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService, sessions SessionRegistry) *AuthHandler {
	return &AuthHandler{
		conf:     conf,
		svc:      svc,
		sessions: sessions,
	}
}

// HandleRegister godoc
// @Summary      Register a buyer or a seller
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.RegisterRequest true "request body"
// @Success      201      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	res, err := h.svc.Register(ctx.Request.Context(), req.Registration())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRegister -> h.svc.Register", err)
		return
	}

	h.renderSession(ctx, http.StatusCreated, res)
}

// HandleLogin godoc
// @Summary      Login a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	res, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrWrongCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		renderServiceErr(ctx, "v1.HandleLogin -> h.svc.Login", err)

		return
	}

	h.renderSession(ctx, http.StatusOK, res)
}

func (h *AuthHandler) renderSession(ctx *gin.Context, status int, res domain.AuthResult) {
	// A new remote token invalidates whatever session was bound to the old one.
	h.sessions.Drop(res.User.ID)

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), res.User.ID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.renderSession -> jwthelper.GenerateToken() -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(status, response.LoginResponse{
		Token: token,
		User:  res.User,
	})
}

// HandleLogout godoc
// @Summary      Forget the caller's remote credential
// @Tags         auth
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errNoUser))
		return
	}

	if err := h.svc.Logout(ctx.Request.Context(), userID); err != nil {
		renderServiceErr(ctx, "v1.HandleLogout -> h.svc.Logout", err)
		return
	}
	h.sessions.Drop(userID)

	ctx.Status(http.StatusNoContent)
}
