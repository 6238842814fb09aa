package dao

import (
	"context"
	"fmt"
	"net/http"
)

// GoldPriceDTO carries the local per-gram price as price_per_gram_mad on the wire.
type GoldPriceDTO struct {
	ID              int64    `json:"id"`
	Source          string   `json:"source"`
	BaseCurrency    string   `json:"base_currency"`
	PricePerOunce   float64  `json:"price_per_ounce"`
	PricePerGram    float64  `json:"price_per_gram"`
	PricePerGramMAD *float64 `json:"price_per_gram_mad"`
	Karat           int      `json:"karat"`
	CollectedAt     string   `json:"collected_at"`
}

func (c *Client) GoldLatest(ctx context.Context) (GoldPriceDTO, error) {
	var out GoldPriceDTO
	if err := c.doJSON(ctx, http.MethodGet, "api/gold/latest", nil, &out); err != nil {
		return GoldPriceDTO{}, err
	}
	return out, nil
}

func (c *Client) GoldHistory(ctx context.Context, days, karat int) ([]GoldPriceDTO, error) {
	var out []GoldPriceDTO
	path := fmt.Sprintf("api/gold/history?days=%d&karat=%d", days, karat)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
