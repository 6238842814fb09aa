package dao

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type SavedSizeDTO struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"user_id"`
	Type            string   `json:"type"`
	DiameterMM      *float64 `json:"diameter_mm"`
	CircumferenceMM *float64 `json:"circumference_mm"`
	Standard        *string  `json:"standard"`
	Label           *string  `json:"label"`
}

type SavedSizeUpsertRequest struct {
	DiameterMM      *float64 `json:"diameter_mm,omitempty"`
	CircumferenceMM *float64 `json:"circumference_mm,omitempty"`
	Standard        *string  `json:"standard,omitempty"`
	Label           *string  `json:"label,omitempty"`
}

func (c *Client) MySizes(ctx context.Context) ([]SavedSizeDTO, error) {
	var out []SavedSizeDTO
	if err := c.doJSON(ctx, http.MethodGet, "api/me/sizes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpsertMySize(ctx context.Context, kind string, body SavedSizeUpsertRequest) (SavedSizeDTO, error) {
	var out SavedSizeDTO
	if err := c.doJSON(ctx, http.MethodPut, "api/me/sizes/"+url.PathEscape(kind), body, &out); err != nil {
		return SavedSizeDTO{}, err
	}
	return out, nil
}

func (c *Client) DeleteMySize(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("api/me/sizes/%d", id), nil, nil)
}
