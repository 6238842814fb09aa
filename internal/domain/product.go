package domain

import "strings"

type ProductStatus string

const (
	StatusDraft     ProductStatus = "draft"
	StatusPublished ProductStatus = "published"
	StatusArchived  ProductStatus = "archived"
)

// ParseProductStatus matches case-insensitively against the known statuses.
func ParseProductStatus(s string) (ProductStatus, bool) {
	switch ProductStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, true
	case StatusPublished:
		return StatusPublished, true
	case StatusArchived:
		return StatusArchived, true
	}
	return "", false
}

const (
	CategoryRing     = "ring"
	CategoryBracelet = "bracelet"
)

type ProductImage struct {
	ID       int64   `json:"id,omitempty"`
	Path     *string `json:"path"`
	Position *int    `json:"position,omitempty"`
}

type Product struct {
	ID             int64          `json:"id"`
	SellerID       *int64         `json:"seller_id"`
	Seller         *Seller        `json:"seller,omitempty"`
	Title          string         `json:"title"`
	Description    *string        `json:"description"`
	Category       *string        `json:"category"`
	SizeMinMM      *float64       `json:"size_min_mm"`
	SizeMaxMM      *float64       `json:"size_max_mm"`
	Karat          int            `json:"karat"`
	WeightG        *float64       `json:"weight_g"`
	Price          float64        `json:"price"`
	Stock          int            `json:"stock"`
	Status         ProductStatus  `json:"status"`
	CoverImagePath *string        `json:"cover_image_path"`
	Images         []ProductImage `json:"images"`
}

// CategoryName returns the lower-cased category, "" when unset.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return strings.ToLower(*p.Category)
}

func (p Product) DescriptionText() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// SizeRange returns the product's [min, max] interval in millimeters when both bounds are set.
func (p Product) SizeRange() (min, max float64, ok bool) {
	if p.SizeMinMM == nil || p.SizeMaxMM == nil {
		return 0, 0, false
	}
	return *p.SizeMinMM, *p.SizeMaxMM, true
}

// ProductInput carries the editable fields of a product.
type ProductInput struct {
	Title       string
	Description *string
	Category    *string
	SizeMinMM   *float64
	SizeMaxMM   *float64
	Karat       int
	WeightG     *float64
	Price       float64
	Stock       int
	Status      ProductStatus
}

// CoverImage is an uploaded image body destined for a product cover.
type CoverImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
