package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ringsizer/storefront/internal/domain"
)

var errNoRingMeasure = errors.New("diameter or circumference is required")

// RingMeasureRequest carries the text typed into the ring measurement form.
type RingMeasureRequest struct {
	Diameter      string `json:"diameter"`
	Circumference string `json:"circumference"`
}

func (req *RingMeasureRequest) Validate() error {
	if req.Diameter == "" && req.Circumference == "" {
		return errNoRingMeasure
	}
	return nil
}

type BraceletMeasureRequest struct {
	WristCM string `json:"wrist_cm"`
}

func (req *BraceletMeasureRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WristCM, validation.Required),
	)
}

type SuggestPriceRequest struct {
	WeightG      string   `json:"weight_g"`
	Karat        string   `json:"karat"`
	PricePerGram *float64 `json:"price_per_gram"`
	Auto         *bool    `json:"auto"`
	Current      string   `json:"current"`
}

func (req *SuggestPriceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.WeightG, validation.Required),
		validation.Field(&req.Karat, validation.Required),
		validation.Field(&req.PricePerGram, validation.Min(0.0)),
	)
}

// AutoEnabled defaults to true, matching the editor's initial state.
func (req *SuggestPriceRequest) AutoEnabled() bool {
	return req.Auto == nil || *req.Auto
}

type SizeRequest struct {
	DiameterMM      *float64 `json:"diameter_mm"`
	CircumferenceMM *float64 `json:"circumference_mm"`
	Standard        *string  `json:"standard"`
	Label           *string  `json:"label"`
}

func (req *SizeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.DiameterMM, validation.Min(0.0)),
		validation.Field(&req.CircumferenceMM, validation.Min(0.0)),
	)
}

func (req *SizeRequest) Input() domain.SizeInput {
	return domain.SizeInput{
		DiameterMM:      req.DiameterMM,
		CircumferenceMM: req.CircumferenceMM,
		Standard:        req.Standard,
		Label:           req.Label,
	}
}
