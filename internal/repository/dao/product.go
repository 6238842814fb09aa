package dao

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

type SellerProfileDTO struct {
	ShopName *string `json:"shop_name"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
	Address  *string `json:"address"`
}

type SellerDTO struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Email         *string           `json:"email"`
	Role          *string           `json:"role"`
	SellerProfile *SellerProfileDTO `json:"seller_profile"`
}

type ImageDTO struct {
	ID       int64   `json:"id"`
	Path     *string `json:"path"`
	Position *int    `json:"position"`
}

type ProductDTO struct {
	ID             int64      `json:"id"`
	SellerID       *int64     `json:"seller_id"`
	Seller         *SellerDTO `json:"seller"`
	Title          string     `json:"title"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	SizeMinMM      *float64   `json:"size_min_mm"`
	SizeMaxMM      *float64   `json:"size_max_mm"`
	Karat          int        `json:"karat"`
	WeightG        *float64   `json:"weight_g"`
	Price          float64    `json:"price"`
	Stock          int        `json:"stock"`
	Status         string     `json:"status"`
	CoverImagePath *string    `json:"cover_image_path"`
	Images         []ImageDTO `json:"images"`
}

type ProductListResponse struct {
	Data []ProductDTO `json:"data"`
}

type ProductRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	SizeMinMM   *float64 `json:"size_min_mm"`
	SizeMaxMM   *float64 `json:"size_max_mm"`
	Karat       int      `json:"karat"`
	WeightG     *float64 `json:"weight_g"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Status      string   `json:"status"`
}

type AddImageRequest struct {
	Path     string `json:"path"`
	Position *int   `json:"position,omitempty"`
}

type ProductImageDTO struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Path      string `json:"path"`
	Position  *int   `json:"position"`
}

// CoverFieldName and CoverFileName are the multipart names the remote upload endpoint reads.
const (
	CoverFieldName = "image"
	CoverFileName  = "cover.jpg"
)

func (c *Client) Products(ctx context.Context) ([]ProductDTO, error) {
	var out ProductListResponse
	if err := c.doJSON(ctx, http.MethodGet, "api/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateProduct(ctx context.Context, body ProductRequest) (ProductDTO, error) {
	var out ProductDTO
	if err := c.doJSON(ctx, http.MethodPost, "api/products", body, &out); err != nil {
		return ProductDTO{}, err
	}
	return out, nil
}

func (c *Client) PatchProduct(ctx context.Context, id int64, body ProductRequest) (ProductDTO, error) {
	var out ProductDTO
	if err := c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("api/products/%d", id), body, &out); err != nil {
		return ProductDTO{}, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("api/products/%d", id), nil, nil)
}

func (c *Client) AddProductImage(ctx context.Context, id int64, body AddImageRequest) (ProductImageDTO, error) {
	var out ProductImageDTO
	if err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("api/products/%d/images", id), body, &out); err != nil {
		return ProductImageDTO{}, err
	}
	return out, nil
}

// UploadCoverImage posts the image as multipart/form-data and returns the updated product.
func (c *Client) UploadCoverImage(ctx context.Context, id int64, contentType string, data []byte) (ProductDTO, error) {
	if contentType == "" {
		contentType = "image/*"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, CoverFieldName, CoverFileName))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return ProductDTO{}, fmt.Errorf("w.CreatePart -> %w", err)
	}
	if _, err = part.Write(data); err != nil {
		return ProductDTO{}, fmt.Errorf("part.Write -> %w", err)
	}
	if err = w.Close(); err != nil {
		return ProductDTO{}, fmt.Errorf("w.Close -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.url(fmt.Sprintf("api/products/%d/upload-image", id)), &buf)
	if err != nil {
		return ProductDTO{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out ProductDTO
	if err = c.do(req, &out); err != nil {
		return ProductDTO{}, err
	}
	return out, nil
}
