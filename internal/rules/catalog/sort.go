package catalog

import (
	"sort"
	"strings"

	"github.com/ringsizer/storefront/internal/domain"
)

type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortTitle     SortOrder = "title"
)

// ParseSortOrder falls back to SortDefault for unknown values.
func ParseSortOrder(s string) SortOrder {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortPriceAsc, SortPriceDesc, SortTitle:
		return o
	}
	return SortDefault
}

// Sort returns a stably sorted copy; ties keep their relative order.
func Sort(products []domain.Product, order SortOrder) []domain.Product {
	out := append([]domain.Product(nil), products...)
	switch order {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	}
	return out
}

// DefaultFeatured is how many products the home screen shows.
const DefaultFeatured = 8

// Featured picks the newest published products, highest id first.
func Featured(products []domain.Product, n int) []domain.Product {
	if n <= 0 {
		n = DefaultFeatured
	}
	out := Filter(products, MatchesStatus(string(domain.StatusPublished)))
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
