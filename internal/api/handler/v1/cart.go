package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ringsizer/storefront/internal/api/handler/v1/request"
	"github.com/ringsizer/storefront/internal/api/handler/v1/response"
	"github.com/ringsizer/storefront/internal/service"
)

type CartHandler struct {
	sessions SessionRegistry
}

func NewCartHandler(sessions SessionRegistry) *CartHandler {
	return &CartHandler{
		sessions: sessions,
	}
}

func cartResponse(ledger *service.CartLedger) response.Cart {
	lines := ledger.Lines()
	res := response.Cart{
		Items:  make([]response.CartLine, 0, len(lines)),
		Total:  ledger.Total().StringFixed(2),
		Status: ledger.Status.Get(),
	}
	for _, line := range lines {
		res.Items = append(res.Items, response.CartLine{
			CartLine: line,
			Subtotal: service.Subtotal(line).StringFixed(2),
		})
	}
	return res
}

// HandleGetCart godoc
// @Summary      Cart lines and total
// @Tags         cart
// @Produce      json
// @Success      200      {object}   response.Cart
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /cart [get]
// @Security BearerAuth
func (h *CartHandler) HandleGetCart(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	if err := s.Cart.Load(ctx.Request.Context()); err != nil {
		renderServiceErr(ctx, "v1.HandleGetCart -> s.Cart.Load", err)
		return
	}

	ctx.JSON(http.StatusOK, cartResponse(s.Cart))
}

// HandleAddLine godoc
// @Summary      Add a product to the cart
// @Description  Adding a product already in the cart increases its quantity.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request   body      request.CartAddRequest true "request body"
// @Success      200      {object}   response.Cart
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /cart [post]
// @Security BearerAuth
func (h *CartHandler) HandleAddLine(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	var req request.CartAddRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := s.Cart.AddLine(ctx.Request.Context(), req.ProductID, req.Quantity); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleAddLine -> s.Cart.AddLine(%d)", req.ProductID), err)
		return
	}

	ctx.JSON(http.StatusOK, cartResponse(s.Cart))
}

// HandleSetQuantity godoc
// @Summary      Set the quantity of a cart line
// @Description  Quantities below one are stored as one.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        productID path      int  true  "product ID"
// @Param        request   body      request.CartUpdateRequest true "request body"
// @Success      200      {object}   response.Cart
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /cart/{productID} [put]
// @Security BearerAuth
func (h *CartHandler) HandleSetQuantity(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	id, ok := idParam(ctx, productParam)
	if !ok {
		return
	}

	var req request.CartUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := s.Cart.SetQuantity(ctx.Request.Context(), id, req.Quantity); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleSetQuantity -> s.Cart.SetQuantity(%d)", id), err)
		return
	}

	ctx.JSON(http.StatusOK, cartResponse(s.Cart))
}

// HandleIncrement godoc
// @Summary      Increase a cart line by one
// @Tags         cart
// @Produce      json
// @Param        productID path      int  true  "product ID"
// @Success      200      {object}   response.Cart
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /cart/{productID}/increment [post]
// @Security BearerAuth
func (h *CartHandler) HandleIncrement(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	id, ok := idParam(ctx, productParam)
	if !ok {
		return
	}

	// The step is relative to the current quantity, so start from the remote state.
	if err := s.Cart.Load(ctx.Request.Context()); err != nil {
		renderServiceErr(ctx, "v1.HandleIncrement -> s.Cart.Load", err)
		return
	}

	if err := s.Cart.Increment(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleIncrement -> s.Cart.Increment(%d)", id), err)
		return
	}

	ctx.JSON(http.StatusOK, cartResponse(s.Cart))
}

// HandleDecrement godoc
// @Summary      Decrease a cart line by one
// @Description  A line at quantity one is left unchanged.
// @Tags         cart
// @Produce      json
// @Param        productID path      int  true  "product ID"
// @Success      200      {object}   response.Cart
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /cart/{productID}/decrement [post]
// @Security BearerAuth
func (h *CartHandler) HandleDecrement(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	id, ok := idParam(ctx, productParam)
	if !ok {
		return
	}

	// The step is relative to the current quantity, so start from the remote state.
	if err := s.Cart.Load(ctx.Request.Context()); err != nil {
		renderServiceErr(ctx, "v1.HandleDecrement -> s.Cart.Load", err)
		return
	}

	if err := s.Cart.Decrement(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleDecrement -> s.Cart.Decrement(%d)", id), err)
		return
	}

	ctx.JSON(http.StatusOK, cartResponse(s.Cart))
}

// HandleRemoveLine godoc
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Param        productID path      int  true  "product ID"
// @Success      200      {object}   response.Cart
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /cart/{productID} [delete]
// @Security BearerAuth
func (h *CartHandler) HandleRemoveLine(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	id, ok := idParam(ctx, productParam)
	if !ok {
		return
	}

	if err := s.Cart.RemoveLine(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleRemoveLine -> s.Cart.RemoveLine(%d)", id), err)
		return
	}

	ctx.JSON(http.StatusOK, cartResponse(s.Cart))
}

// HandleClear godoc
// @Summary      Empty the cart
// @Tags         cart
// @Produce      json
// @Success      200      {object}   response.Cart
// @Failure      401      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /cart [delete]
// @Security BearerAuth
func (h *CartHandler) HandleClear(ctx *gin.Context) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return
	}

	if err := s.Cart.Clear(ctx.Request.Context()); err != nil {
		renderServiceErr(ctx, "v1.HandleClear -> s.Cart.Clear", err)
		return
	}

	ctx.JSON(http.StatusOK, cartResponse(s.Cart))
}
