// Package catalog filters and sorts cached product lists for the seller and buyer views.
//
// Every criterion is optional. Active criteria combine with AND and an empty query passes
// the list through unchanged, in its original order.
package catalog

import (
	"strings"

	"github.com/ringsizer/storefront/internal/domain"
)

// All disables the category and status filters.
const All = "all"

// Predicate reports whether a product is kept.
type Predicate func(domain.Product) bool

// Filter keeps the products matching every predicate. The input slice is not modified.
func Filter(products []domain.Product, preds ...Predicate) []domain.Product {
	out := make([]domain.Product, 0, len(products))
next:
	for _, p := range products {
		for _, pred := range preds {
			if !pred(p) {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}

// MatchesText is a case-insensitive substring search over title and description.
func MatchesText(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(p domain.Product) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.DescriptionText()), q)
	}
}

// CategoryExact is the seller view's category filter: case-insensitive equality.
// It is stricter than CategoryContains on purpose; the two views behave differently.
func CategoryExact(category string) Predicate {
	c := strings.ToLower(strings.TrimSpace(category))
	return func(p domain.Product) bool {
		if c == "" || c == All {
			return true
		}
		return p.CategoryName() == c
	}
}

// CategoryContains is the buyer view's category filter: case-insensitive substring.
// Products without a category never match a non-blank filter.
func CategoryContains(category string) Predicate {
	c := strings.ToLower(strings.TrimSpace(category))
	return func(p domain.Product) bool {
		if c == "" {
			return true
		}
		if p.Category == nil {
			return false
		}
		return strings.Contains(strings.ToLower(*p.Category), c)
	}
}

func MatchesKarat(karat *int) Predicate {
	return func(p domain.Product) bool {
		return karat == nil || p.Karat == *karat
	}
}

// MatchesPriceRange applies inclusive bounds; a nil bound leaves that side open.
func MatchesPriceRange(min, max *float64) Predicate {
	return func(p domain.Product) bool {
		if min != nil && p.Price < *min {
			return false
		}
		if max != nil && p.Price > *max {
			return false
		}
		return true
	}
}

// MatchesStatus compares case-insensitively against draft, published or archived.
func MatchesStatus(status string) Predicate {
	s := strings.ToLower(strings.TrimSpace(status))
	return func(p domain.Product) bool {
		if s == "" || s == All {
			return true
		}
		return strings.ToLower(string(p.Status)) == s
	}
}

// OwnedBy keeps the products of one seller. Without a seller id nothing is kept.
func OwnedBy(sellerID *int64) Predicate {
	return func(p domain.Product) bool {
		return sellerID != nil && p.SellerID != nil && *p.SellerID == *sellerID
	}
}

// FitsSize keeps rings whose size range contains the saved ring diameter and bracelets whose
// range contains the saved bracelet circumference. Unknown data never excludes: products
// without a complete range, viewers without a saved size and other categories all pass.
func FitsSize(sizes []domain.SavedSize) Predicate {
	ring := measure(domain.FirstSize(sizes, domain.SizeRing), func(s *domain.SavedSize) *float64 { return s.DiameterMM })
	bracelet := measure(domain.FirstSize(sizes, domain.SizeBracelet), func(s *domain.SavedSize) *float64 { return s.CircumferenceMM })

	return func(p domain.Product) bool {
		var user *float64
		switch p.CategoryName() {
		case domain.CategoryRing:
			user = ring
		case domain.CategoryBracelet:
			user = bracelet
		default:
			return true
		}
		if user == nil {
			return true
		}
		lo, hi, ok := p.SizeRange()
		if !ok {
			return true
		}
		return *user >= lo && *user <= hi
	}
}

func measure(s *domain.SavedSize, pick func(*domain.SavedSize) *float64) *float64 {
	if s == nil {
		return nil
	}
	return pick(s)
}
