package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ringsizer/storefront/internal/domain"
)

var errSizeRange = errors.New("size_min_mm must not exceed size_max_mm")

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

func (req *ProductRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Karat, validation.Min(0), validation.Max(24)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.Stock, validation.Min(0)),
		validation.Field(&req.WeightG, validation.Min(0.0)),
		validation.Field(&req.Status, validation.In(
			string(domain.StatusDraft), string(domain.StatusPublished), string(domain.StatusArchived))),
	)
	if err != nil {
		return err
	}

	if req.SizeMinMM != nil && req.SizeMaxMM != nil && *req.SizeMinMM > *req.SizeMaxMM {
		return errSizeRange
	}

	return nil
}

func (req *ProductRequest) Input() domain.ProductInput {
	status, _ := domain.ParseProductStatus(req.Status)
	return domain.ProductInput{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		SizeMinMM:   req.SizeMinMM,
		SizeMaxMM:   req.SizeMaxMM,
		Karat:       req.Karat,
		WeightG:     req.WeightG,
		Price:       req.Price,
		Stock:       req.Stock,
		Status:      status,
	}
}

type AddImageRequest struct {
	Path     string `json:"path"`
	Position *int   `json:"position"`
}

func (req *AddImageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Path, validation.Required),
		validation.Field(&req.Position, validation.Min(0)),
	)
}
