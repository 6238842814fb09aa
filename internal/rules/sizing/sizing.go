// Package sizing converts ring and bracelet measurements into suggested order values.
//
// Missing or unparsable input never produces an error: the matching output is simply nil.
package sizing

import (
	"math"
	"strconv"
	"strings"

	"github.com/ringsizer/storefront/internal/domain"
)

const (
	usSizeOffsetMM = 11.54
	usSizeStepMM   = 0.8128

	braceletEaseCM = 1.5

	standardMM = "MM"

	RingLabel     = "My ring"
	BraceletLabel = "My bracelet"
)

// Ring holds the sizes derived from one ring measurement.
type Ring struct {
	CircumferenceMM *float64 `json:"circumference_mm"`
	FR              *int     `json:"fr_size"`
	US              *float64 `json:"us_size"`
}

type Bracelet struct {
	RecommendedCM *float64 `json:"recommended_cm"`
	RecommendedMM *float64 `json:"recommended_mm"`
}

// RingSizes derives the circumference and national sizes from a ring's inner diameter.
// A circumference entered by the user takes precedence over the derived one.
func RingSizes(diameterMM, circumferenceMM *float64) Ring {
	d := positive(diameterMM)
	c := positive(circumferenceMM)

	var out Ring
	if c == nil && d != nil {
		v := *d * math.Pi
		c = &v
	}
	if c != nil {
		v := *c
		out.CircumferenceMM = &v
		fr := int(math.Round(v))
		out.FR = &fr
	}
	if d != nil {
		us := Round1((*d - usSizeOffsetMM) / usSizeStepMM)
		out.US = &us
	}
	return out
}

// RingSizesFromInput parses free text fields before converting.
func RingSizesFromInput(diameterText, circumferenceText string) Ring {
	return RingSizes(ParseMeasure(diameterText), ParseMeasure(circumferenceText))
}

// BraceletLength recommends a bracelet length from a wrist circumference in centimeters.
func BraceletLength(wristCM *float64) Bracelet {
	w := positive(wristCM)
	if w == nil {
		return Bracelet{}
	}
	cm := Round1(*w + braceletEaseCM)
	mm := cm * 10
	return Bracelet{RecommendedCM: &cm, RecommendedMM: &mm}
}

func BraceletLengthFromInput(wristText string) Bracelet {
	return BraceletLength(ParseMeasure(wristText))
}

// RingSizeRequest builds the saved-size payload for a ring measurement.
func RingSizeRequest(diameterMM *float64, r Ring) domain.SizeInput {
	std, label := standardMM, RingLabel
	return domain.SizeInput{
		DiameterMM:      positive(diameterMM),
		CircumferenceMM: r.CircumferenceMM,
		Standard:        &std,
		Label:           &label,
	}
}

// BraceletSizeRequest persists the recommended length, in millimeters, as the bracelet circumference.
func BraceletSizeRequest(b Bracelet) domain.SizeInput {
	std, label := standardMM, BraceletLabel
	return domain.SizeInput{
		CircumferenceMM: b.RecommendedMM,
		Standard:        &std,
		Label:           &label,
	}
}

// ParseMeasure reads a decimal number typed by a user. Commas are accepted as the decimal separator.
func ParseMeasure(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return positive(&v)
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func positive(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return nil
	}
	out := *v
	return &out
}
