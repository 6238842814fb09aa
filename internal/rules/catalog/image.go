package catalog

import (
	"strings"

	"github.com/ringsizer/storefront/internal/domain"
)

var deviceLocalSchemes = []string{"content://", "file://", "android.resource://"}

// IsDeviceLocal reports whether a reference points at storage on the user's device.
func IsDeviceLocal(ref string) bool {
	for _, s := range deviceLocalSchemes {
		if strings.HasPrefix(ref, s) {
			return true
		}
	}
	return false
}

// ImageRef picks the cover reference, else the first image that is not device-local.
func ImageRef(p domain.Product) string {
	if p.CoverImagePath != nil && strings.TrimSpace(*p.CoverImagePath) != "" {
		return *p.CoverImagePath
	}
	for _, img := range p.Images {
		if img.Path == nil {
			continue
		}
		ref := strings.TrimSpace(*img.Path)
		if ref != "" && !IsDeviceLocal(ref) {
			return ref
		}
	}
	return ""
}

// ResolveImageRef turns a stored reference into a loadable URL. Absolute http(s) and
// device-local references are returned as they are; anything else is a path relative to
// the API origin.
func ResolveImageRef(ref, baseOrigin string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "http"), IsDeviceLocal(ref):
		return ref
	}
	return strings.TrimRight(baseOrigin, "/") + "/" + strings.TrimLeft(ref, "/")
}

func ImageURL(p domain.Product, baseOrigin string) string {
	return ResolveImageRef(ImageRef(p), baseOrigin)
}
