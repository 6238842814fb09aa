package catalog

import (
	"strconv"
	"strings"

	"github.com/ringsizer/storefront/internal/domain"
)

// SellerQuery is the filter bar of the seller's product list.
type SellerQuery struct {
	SellerID *int64
	Text     string
	Category string
	Status   string
	Sort     SortOrder
}

func (q SellerQuery) Apply(products []domain.Product) []domain.Product {
	return Sort(Filter(products,
		OwnedBy(q.SellerID),
		MatchesText(q.Text),
		CategoryExact(q.Category),
		MatchesStatus(q.Status),
	), q.Sort)
}

// BuyerQuery is the filter bar of the public catalog.
type BuyerQuery struct {
	Text     string
	Category string
	Karat    *int
	PriceMin *float64
	PriceMax *float64
	Status   string
	Sort     SortOrder

	// OnlyMySize is honored only when SizeAware is set, that is for a signed-in buyer.
	OnlyMySize bool
	SizeAware  bool
	Sizes      []domain.SavedSize
}

func (q BuyerQuery) Apply(products []domain.Product) []domain.Product {
	preds := []Predicate{
		MatchesText(q.Text),
		MatchesPriceRange(q.PriceMin, q.PriceMax),
		MatchesKarat(q.Karat),
		CategoryContains(q.Category),
		MatchesStatus(q.Status),
	}
	if q.OnlyMySize && q.SizeAware {
		preds = append(preds, FitsSize(q.Sizes))
	}
	return Sort(Filter(products, preds...), q.Sort)
}

// BuyerInput holds the raw text of the buyer filter bar.
type BuyerInput struct {
	Text       string
	Category   string
	Karat      string
	PriceMin   string
	PriceMax   string
	Status     string
	Sort       string
	OnlyMySize bool
}

// ParseBuyerQuery turns raw text into a query. Text that does not parse as a number
// leaves that criterion inactive instead of failing.
func ParseBuyerQuery(in BuyerInput) BuyerQuery {
	return BuyerQuery{
		Text:       in.Text,
		Category:   in.Category,
		Karat:      parseInt(in.Karat),
		PriceMin:   parseFloat(in.PriceMin),
		PriceMax:   parseFloat(in.PriceMax),
		Status:     in.Status,
		Sort:       ParseSortOrder(in.Sort),
		OnlyMySize: in.OnlyMySize,
	}
}

func parseFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}
