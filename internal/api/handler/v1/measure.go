package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ringsizer/storefront/internal/api/handler/v1/request"
	"github.com/ringsizer/storefront/internal/api/handler/v1/response"
	"github.com/ringsizer/storefront/internal/rules/goldseries"
	"github.com/ringsizer/storefront/internal/rules/pricing"
	"github.com/ringsizer/storefront/internal/rules/sizing"
	"github.com/ringsizer/storefront/internal/service"
)

type GoldSource interface {
	View(ctx context.Context, days int) (service.GoldView, error)
	CurrentPrice(ctx context.Context) (*float64, error)
}

type MeasureHandler struct {
	gold GoldSource
}

func NewMeasureHandler(gold GoldSource) *MeasureHandler {
	return &MeasureHandler{
		gold: gold,
	}
}

// HandleRingSize godoc
// @Summary      Convert a ring measurement into FR and US sizes
// @Tags         measure
// @Accept       json
// @Produce      json
// @Param        request   body      request.RingMeasureRequest true "request body"
// @Success      200      {object}   sizing.Ring
// @Failure      400      {object}   response.Err
// @Router       /measure/ring [post]
func (h *MeasureHandler) HandleRingSize(ctx *gin.Context) {
	var req request.RingMeasureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ctx.JSON(http.StatusOK, sizing.RingSizesFromInput(req.Diameter, req.Circumference))
}

// HandleBraceletSize godoc
// @Summary      Recommend a bracelet length from a wrist measurement
// @Tags         measure
// @Accept       json
// @Produce      json
// @Param        request   body      request.BraceletMeasureRequest true "request body"
// @Success      200      {object}   sizing.Bracelet
// @Failure      400      {object}   response.Err
// @Router       /measure/bracelet [post]
func (h *MeasureHandler) HandleBraceletSize(ctx *gin.Context) {
	var req request.BraceletMeasureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ctx.JSON(http.StatusOK, sizing.BraceletLengthFromInput(req.WristCM))
}

// HandleSuggestPrice godoc
// @Summary      Suggest a price from weight, karat and the gold price
// @Description  Without price_per_gram the latest gold quote is fetched.
// @Tags         measure
// @Accept       json
// @Produce      json
// @Param        request   body      request.SuggestPriceRequest true "request body"
// @Success      200      {object}   response.Suggestion
// @Failure      400      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /pricing/suggest [post]
func (h *MeasureHandler) HandleSuggestPrice(ctx *gin.Context) {
	var req request.SuggestPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	perGram := req.PricePerGram
	if perGram == nil {
		v, err := h.gold.CurrentPrice(ctx.Request.Context())
		if err != nil {
			renderServiceErr(ctx, "v1.HandleSuggestPrice -> h.gold.CurrentPrice", err)
			return
		}
		perGram = v
	}

	suggested := pricing.SuggestedPriceFromInput(req.WeightG, req.Karat, perGram)
	pricer := pricing.NewAutoPricer(req.AutoEnabled(), req.Current)

	res := response.Suggestion{
		Suggested: suggested,
		Field:     pricer.Observe(suggested),
	}
	if suggested != nil {
		display := pricing.RoundForDisplay(*suggested)
		res.Display = &display
	}

	ctx.JSON(http.StatusOK, res)
}

// HandleGold godoc
// @Summary      Latest gold quote and history statistics
// @Tags         gold
// @Produce      json
// @Param        days     query      int  false  "history window, clamped to 1..180"
// @Success      200      {object}   service.GoldView
// @Failure      502      {object}   response.Err
// @Router       /gold [get]
func (h *MeasureHandler) HandleGold(ctx *gin.Context) {
	days := queryInt(ctx, "days", goldseries.DefaultDays)

	view, err := h.gold.View(ctx.Request.Context(), days)
	if err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleGold -> h.gold.View(%d)", days), err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}
