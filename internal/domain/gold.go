package domain

import "time"

// BaseKarat is the purity gold quotes are expressed at.
const BaseKarat = 24

type GoldQuote struct {
	ID                int64     `json:"id"`
	Source            string    `json:"source"`
	BaseCurrency      string    `json:"base_currency"`
	PricePerOunce     float64   `json:"price_per_ounce"`
	PricePerGram      float64   `json:"price_per_gram"`
	PricePerGramLocal *float64  `json:"price_per_gram_local,omitempty"`
	Karat             int       `json:"karat"`
	CollectedAt       time.Time `json:"collected_at"`
}

// PerGram is the local-currency price per gram, falling back to the base currency price.
func (q GoldQuote) PerGram() float64 {
	if q.PricePerGramLocal != nil {
		return *q.PricePerGramLocal
	}
	return q.PricePerGram
}

// GoldSeries is ordered oldest to newest as returned by the source.
type GoldSeries []GoldQuote
