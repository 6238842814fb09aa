package v1

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ringsizer/storefront/internal/api/handler/v1/response"
	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/rules/catalog"
	"github.com/ringsizer/storefront/internal/service"
)

type ProductLister interface {
	Load(ctx context.Context) error
	BuyerView(q catalog.BuyerQuery) []domain.Product
	Featured(n int) []domain.Product
}

type CatalogHandler struct {
	public   ProductLister
	sessions SessionRegistry
	origin   string
}

// NewCatalogHandler serves anonymous visitors from public and signed-in buyers from their
// own session. origin is the scheme and host that relative image paths are resolved against.
func NewCatalogHandler(public ProductLister, sessions SessionRegistry, origin string) *CatalogHandler {
	return &CatalogHandler{
		public:   public,
		sessions: sessions,
		origin:   origin,
	}
}

// HandleList godoc
// @Summary      Browse the catalog
// @Description  only_my_size applies to signed-in buyers and uses their saved ring or bracelet size.
// @Tags         catalog
// @Produce      json
// @Param        q             query     string  false  "text in title or description"
// @Param        category      query     string  false  "category, or all"
// @Param        karat         query     int     false  "exact karat"
// @Param        price_min     query     number  false  "inclusive lower bound"
// @Param        price_max     query     number  false  "inclusive upper bound"
// @Param        status        query     string  false  "draft, published, archived or all"
// @Param        sort          query     string  false  "default, price_asc, price_desc or title"
// @Param        only_my_size  query     bool    false  "keep products that fit the saved size"
// @Success      200      {object}   response.Products
// @Failure      502      {object}   response.Err
// @Router       /catalog [get]
func (h *CatalogHandler) HandleList(ctx *gin.Context) {
	onlyMySize, _ := strconv.ParseBool(ctx.Query("only_my_size"))
	q := catalog.ParseBuyerQuery(catalog.BuyerInput{
		Text:       ctx.Query("q"),
		Category:   ctx.Query("category"),
		Karat:      ctx.Query("karat"),
		PriceMin:   ctx.Query("price_min"),
		PriceMax:   ctx.Query("price_max"),
		Status:     ctx.Query("status"),
		Sort:       ctx.Query("sort"),
		OnlyMySize: onlyMySize,
	})

	lister := h.public
	s, err := h.viewerSession(ctx)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleList -> h.viewerSession", err)
		return
	}
	if s != nil {
		lister = s.Catalog
		q.SizeAware = s.SizeAware()

		if q.OnlyMySize && q.SizeAware {
			if err := s.UserData.Load(ctx.Request.Context()); err != nil {
				renderServiceErr(ctx, "v1.HandleList -> s.UserData.Load", err)
				return
			}
			q.Sizes = s.UserData.Sizes.Get()
		}
	}

	if err := lister.Load(ctx.Request.Context()); err != nil {
		renderServiceErr(ctx, "v1.HandleList -> lister.Load", err)
		return
	}

	ctx.JSON(http.StatusOK, toProducts(lister.BuyerView(q), h.origin))
}

// viewerSession returns the caller's session, or nil for anonymous callers and tokens
// whose credential is gone.
func (h *CatalogHandler) viewerSession(ctx *gin.Context) (*service.Session, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, nil
	}

	s, err := h.sessions.Get(ctx.Request.Context(), userID)
	if errors.Is(err, service.ErrNotSignedIn) {
		return nil, nil
	}
	return s, err
}

// HandleFeatured godoc
// @Summary      First products of the catalog for the home screen
// @Tags         catalog
// @Produce      json
// @Param        limit    query      int  false  "number of products, 8 by default"
// @Success      200      {object}   response.Products
// @Failure      502      {object}   response.Err
// @Router       /catalog/featured [get]
func (h *CatalogHandler) HandleFeatured(ctx *gin.Context) {
	if err := h.public.Load(ctx.Request.Context()); err != nil {
		renderServiceErr(ctx, "v1.HandleFeatured -> h.public.Load", err)
		return
	}

	n := queryInt(ctx, "limit", catalog.DefaultFeatured)
	ctx.JSON(http.StatusOK, toProducts(h.public.Featured(n), h.origin))
}

func toProducts(products []domain.Product, origin string) response.Products {
	res := response.Products{
		Data:  make([]response.Product, 0, len(products)),
		Total: len(products),
	}
	for _, p := range products {
		res.Data = append(res.Data, toProduct(p, origin))
	}
	return res
}

func toProduct(p domain.Product, origin string) response.Product {
	return response.Product{
		Product:   p,
		ImageURL:  catalog.ImageURL(p, origin),
		ShopLabel: p.Seller.ShopLabel(),
	}
}
