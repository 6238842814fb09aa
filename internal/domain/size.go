package domain

import "strings"

type SizeKind string

const (
	SizeRing     SizeKind = "ring"
	SizeBracelet SizeKind = "bracelet"
)

func ParseSizeKind(s string) (SizeKind, bool) {
	switch SizeKind(strings.ToLower(strings.TrimSpace(s))) {
	case SizeRing:
		return SizeRing, true
	case SizeBracelet:
		return SizeBracelet, true
	}
	return "", false
}

type SavedSize struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"user_id"`
	Kind            string   `json:"type"`
	DiameterMM      *float64 `json:"diameter_mm"`
	CircumferenceMM *float64 `json:"circumference_mm"`
	Standard        *string  `json:"standard"`
	Label           *string  `json:"label"`
}

func (s SavedSize) Is(kind SizeKind) bool {
	return strings.EqualFold(s.Kind, string(kind))
}

// FirstSize returns the first saved size of the given kind. Duplicates are possible
// server-side and are left as they are.
func FirstSize(sizes []SavedSize, kind SizeKind) *SavedSize {
	for i := range sizes {
		if sizes[i].Is(kind) {
			s := sizes[i]
			return &s
		}
	}
	return nil
}

type SizeInput struct {
	DiameterMM      *float64
	CircumferenceMM *float64
	Standard        *string
	Label           *string
}
