package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ringsizer/storefront/internal/api/handler/v1/request"
	"github.com/ringsizer/storefront/internal/api/handler/v1/response"
	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/rules/catalog"
	"github.com/ringsizer/storefront/internal/service"
)

const (
	// MaxCoverSize bounds an uploaded cover image.
	MaxCoverSize = 8 << 20

	coverField   = "image"
	productParam = "productID"
)

var (
	errNotSeller   = errors.New("seller account required")
	errCoverTooBig = fmt.Errorf("image exceeds %d bytes", MaxCoverSize)
)

type SellerHandler struct {
	sessions SessionRegistry
	origin   string
}

func NewSellerHandler(sessions SessionRegistry, origin string) *SellerHandler {
	return &SellerHandler{
		sessions: sessions,
		origin:   origin,
	}
}

// sellerSession resolves the caller's session and rejects buyers.
func (h *SellerHandler) sellerSession(ctx *gin.Context) (*service.Session, bool) {
	s, ok := sessionFromContext(ctx, h.sessions)
	if !ok {
		return nil, false
	}
	if !(domain.User{Role: s.Credential.Role}).IsSeller() {
		response.RenderErr(ctx, response.ErrPermissionDenied(errNotSeller))
		return nil, false
	}
	return s, true
}

// HandleList godoc
// @Summary      List the seller's own products
// @Tags         seller
// @Produce      json
// @Param        q         query     string  false  "text in title or description"
// @Param        category  query     string  false  "exact category, or all"
// @Param        status    query     string  false  "draft, published, archived or all"
// @Param        sort      query     string  false  "default, price_asc, price_desc or title"
// @Success      200      {object}   response.Products
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /seller/products [get]
// @Security BearerAuth
func (h *SellerHandler) HandleList(ctx *gin.Context) {
	s, ok := h.sellerSession(ctx)
	if !ok {
		return
	}

	if err := s.Catalog.Load(ctx.Request.Context()); err != nil {
		renderServiceErr(ctx, "v1.SellerHandler.HandleList -> s.Catalog.Load", err)
		return
	}

	products := s.Catalog.SellerView(catalog.SellerQuery{
		SellerID: s.SellerID(),
		Text:     ctx.Query("q"),
		Category: ctx.Query("category"),
		Status:   ctx.Query("status"),
		Sort:     catalog.ParseSortOrder(ctx.Query("sort")),
	})

	ctx.JSON(http.StatusOK, toProducts(products, h.origin))
}

// HandleCreate godoc
// @Summary      Create a product
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        request   body      request.ProductRequest true "request body"
// @Success      201      {object}   response.Product
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /seller/products [post]
// @Security BearerAuth
func (h *SellerHandler) HandleCreate(ctx *gin.Context) {
	s, ok := h.sellerSession(ctx)
	if !ok {
		return
	}

	var req request.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product, err := s.Catalog.Create(ctx.Request.Context(), req.Input(), nil)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreate -> s.Catalog.Create", err)
		return
	}

	ctx.JSON(http.StatusCreated, toProduct(product, h.origin))
}

// HandleUpdate godoc
// @Summary      Update a product
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        productID path      int  true  "product ID"
// @Param        request   body      request.ProductRequest true "request body"
// @Success      200      {object}   response.Product
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /seller/products/{productID} [patch]
// @Security BearerAuth
func (h *SellerHandler) HandleUpdate(ctx *gin.Context) {
	s, ok := h.sellerSession(ctx)
	if !ok {
		return
	}

	id, ok := idParam(ctx, productParam)
	if !ok {
		return
	}

	var req request.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product, err := s.Catalog.Update(ctx.Request.Context(), id, req.Input(), nil)
	if err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleUpdate -> s.Catalog.Update(%d)", id), err)
		return
	}

	ctx.JSON(http.StatusOK, toProduct(product, h.origin))
}

// HandleDelete godoc
// @Summary      Delete a product
// @Tags         seller
// @Param        productID path      int  true  "product ID"
// @Success      204
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /seller/products/{productID} [delete]
// @Security BearerAuth
func (h *SellerHandler) HandleDelete(ctx *gin.Context) {
	s, ok := h.sellerSession(ctx)
	if !ok {
		return
	}

	id, ok := idParam(ctx, productParam)
	if !ok {
		return
	}

	if err := s.Catalog.Delete(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleDelete -> s.Catalog.Delete(%d)", id), err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUploadCover godoc
// @Summary      Upload the cover image of a product
// @Tags         seller
// @Accept       multipart/form-data
// @Produce      json
// @Param        productID path      int   true  "product ID"
// @Param        image     formData  file  true  "cover image"
// @Success      200      {object}   response.Product
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /seller/products/{productID}/cover [post]
// @Security BearerAuth
func (h *SellerHandler) HandleUploadCover(ctx *gin.Context) {
	s, ok := h.sellerSession(ctx)
	if !ok {
		return
	}

	id, ok := idParam(ctx, productParam)
	if !ok {
		return
	}

	cover, err := readCover(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product, err := s.Catalog.UploadCover(ctx.Request.Context(), id, cover)
	if err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleUploadCover -> s.Catalog.UploadCover(%d)", id), err)
		return
	}

	ctx.JSON(http.StatusOK, toProduct(product, h.origin))
}

func readCover(ctx *gin.Context) (domain.CoverImage, error) {
	fh, err := ctx.FormFile(coverField)
	if err != nil {
		return domain.CoverImage{}, fmt.Errorf("ctx.FormFile(%v) -> %w", coverField, err)
	}
	if fh.Size > MaxCoverSize {
		return domain.CoverImage{}, errCoverTooBig
	}

	f, err := fh.Open()
	if err != nil {
		return domain.CoverImage{}, fmt.Errorf("fh.Open() -> %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxCoverSize+1))
	if err != nil {
		return domain.CoverImage{}, fmt.Errorf("io.ReadAll() -> %w", err)
	}
	if len(data) > MaxCoverSize {
		return domain.CoverImage{}, errCoverTooBig
	}

	return domain.CoverImage{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// HandleAddImage godoc
// @Summary      Attach an already hosted image to a product
// @Tags         seller
// @Accept       json
// @Produce      json
// @Param        productID path      int  true  "product ID"
// @Param        request   body      request.AddImageRequest true "request body"
// @Success      201      {object}   domain.ProductImage
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      502      {object}   response.Err
// @Router       /seller/products/{productID}/images [post]
// @Security BearerAuth
func (h *SellerHandler) HandleAddImage(ctx *gin.Context) {
	s, ok := h.sellerSession(ctx)
	if !ok {
		return
	}

	id, ok := idParam(ctx, productParam)
	if !ok {
		return
	}

	var req request.AddImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	img, err := s.Catalog.AddImage(ctx.Request.Context(), id, req.Path, req.Position)
	if err != nil {
		renderServiceErr(ctx, fmt.Sprintf("v1.HandleAddImage -> s.Catalog.AddImage(%d)", id), err)
		return
	}

	ctx.JSON(http.StatusCreated, img)
}
