package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ringsizer/storefront/internal/api/handler/v1/request"
	"github.com/ringsizer/storefront/internal/api/handler/v1/response"
	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/rules/sizing"
	"github.com/ringsizer/storefront/internal/service"
)

var errSizeKind = errors.New("size kind must be ring or bracelet")

type CurrentUserService interface {
	Current(ctx context.Context, userID int64) (domain.Credential, error)
}

type MeHandler struct {
	users    CurrentUserService
	sessions SessionRegistry
}

func NewMeHandler(users CurrentUserService, sessions SessionRegistry) *MeHandler {
	return &MeHandler{
		users:    users,
		sessions: sessions,
	}
}

// HandleGetMe godoc
// @Summary      The signed-in user
// @Tags         me
// @Produce      json
// @Success      200      {object}   domain.User
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /me [get]
// @Security BearerAuth
func (h *MeHandler) HandleGetMe(ctx *gin.Context) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errNoUser))
		return
	}

	cred, err := h.users.Current(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleGetMe -> h.users.Current(%d)", userID), err)
		return
	}

	ctx.JSON(http.StatusOK, domain.User{
		ID:   cred.UserID,
		Name: cred.UserName,
		Role: cred.Role,
	})
}

func sizesResponse(data *service.UserData) response.Sizes {
	return response.Sizes{
		Sizes:    data.Sizes.Get(),
		Ring:     data.RingSize(),
		Bracelet: data.BraceletSize(),
	}
}

// HandleGetSizes godoc
// @Summary      Saved ring and bracelet sizes
// @Tags         me
// @Produce      json
// @Success      200      {object}   response.Sizes
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /me/sizes [get]
// @Security BearerAuth
func (h *MeHandler) HandleGetSizes(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	if err := s.UserData.Load(ctx.Request.Context()); err != nil {
		renderServiceErr(ctx, "v1.HandleGetSizes -> s.UserData.Load", err)
		return
	}

	ctx.JSON(http.StatusOK, sizesResponse(s.UserData))
}

// HandleUpsertSize godoc
// @Summary      Create or replace the saved size of a kind
// @Tags         me
// @Accept       json
// @Produce      json
// @Param        kind      path      string  true  "ring or bracelet"
// @Param        request   body      request.SizeRequest true "request body"
// @Success      200      {object}   response.Sizes
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /me/sizes/{kind} [put]
// @Security BearerAuth
func (h *MeHandler) HandleUpsertSize(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	kind, ok := domain.ParseSizeKind(ctx.Param("kind"))
	if !ok {
		response.RenderErr(ctx, response.ErrBadRequest(errSizeKind))
		return
	}

	var req request.SizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := s.UserData.UpsertSize(ctx.Request.Context(), kind, req.Input()); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleUpsertSize -> s.UserData.UpsertSize(%v)", kind), err)
		return
	}

	ctx.JSON(http.StatusOK, sizesResponse(s.UserData))
}

// HandleDeleteSize godoc
// @Summary      Delete a saved size
// @Tags         me
// @Produce      json
// @Param        sizeID    path      int  true  "saved size ID"
// @Success      200      {object}   response.Sizes
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /me/sizes/{sizeID} [delete]
// @Security BearerAuth
func (h *MeHandler) HandleDeleteSize(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	id, ok := idParam(ctx, "sizeID")
	if !ok {
		return
	}

	if err := s.UserData.DeleteSize(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleDeleteSize -> s.UserData.DeleteSize(%d)", id), err)
		return
	}

	ctx.JSON(http.StatusOK, sizesResponse(s.UserData))
}

// HandleMeasureRing godoc
// @Summary      Convert a ring measurement and save it as the ring size
// @Tags         me
// @Accept       json
// @Produce      json
// @Param        request   body      request.RingMeasureRequest true "request body"
// @Success      200      {object}   sizing.Ring
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /me/sizes/ring/measurement [post]
// @Security BearerAuth
func (h *MeHandler) HandleMeasureRing(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	var req request.RingMeasureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ring, err := s.UserData.SaveRingMeasurement(ctx.Request.Context(),
		sizing.ParseMeasure(req.Diameter), sizing.ParseMeasure(req.Circumference))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleMeasureRing -> s.UserData.SaveRingMeasurement", err)
		return
	}

	ctx.JSON(http.StatusOK, ring)
}

// HandleMeasureBracelet godoc
// @Summary      Recommend a bracelet length and save it as the bracelet size
// @Tags         me
// @Accept       json
// @Produce      json
// @Param        request   body      request.BraceletMeasureRequest true "request body"
// @Success      200      {object}   sizing.Bracelet
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /me/sizes/bracelet/measurement [post]
// @Security BearerAuth
func (h *MeHandler) HandleMeasureBracelet(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	var req request.BraceletMeasureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	bracelet, err := s.UserData.SaveBraceletMeasurement(ctx.Request.Context(), sizing.ParseMeasure(req.WristCM))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleMeasureBracelet -> s.UserData.SaveBraceletMeasurement", err)
		return
	}

	ctx.JSON(http.StatusOK, bracelet)
}

// HandleGetFavorites godoc
// @Summary      Favorite products
// @Tags         me
// @Produce      json
// @Success      200      {object}   response.Favorites
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /me/favorites [get]
// @Security BearerAuth
func (h *MeHandler) HandleGetFavorites(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	if err := s.UserData.Load(ctx.Request.Context()); err != nil {
		renderServiceErr(ctx, "v1.HandleGetFavorites -> s.UserData.Load", err)
		return
	}

	ctx.JSON(http.StatusOK, response.Favorites{Favorites: s.UserData.Favorites.Get()})
}

// HandleAddFavorite godoc
// @Summary      Add a product to favorites
// @Tags         me
// @Accept       json
// @Produce      json
// @Param        request   body      request.FavoriteRequest true "request body"
// @Success      201      {object}   response.Favorites
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /me/favorites [post]
// @Security BearerAuth
func (h *MeHandler) HandleAddFavorite(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	var req request.FavoriteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := s.UserData.AddFavorite(ctx.Request.Context(), req.ProductID); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleAddFavorite -> s.UserData.AddFavorite(%d)", req.ProductID), err)
		return
	}

	ctx.JSON(http.StatusCreated, response.Favorites{Favorites: s.UserData.Favorites.Get()})
}

// HandleRemoveFavorite godoc
// @Summary      Remove a product from favorites
// @Tags         me
// @Produce      json
// @Param        productID path      int  true  "product ID"
// @Success      200      {object}   response.Favorites
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /me/favorites/{productID} [delete]
// @Security BearerAuth
func (h *MeHandler) HandleRemoveFavorite(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	id, ok := idParam(ctx, productParam)
	if !ok {
		return
	}

	if err := s.UserData.RemoveFavorite(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleRemoveFavorite -> s.UserData.RemoveFavorite(%d)", id), err)
		return
	}

	ctx.JSON(http.StatusOK, response.Favorites{Favorites: s.UserData.Favorites.Get()})
}
