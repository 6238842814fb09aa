package dao

import (
	"context"
	"fmt"
	"net/http"
)

type FavoriteRequest struct {
	ProductID int64 `json:"product_id"`
}

type FavoriteDTO struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	ProductID int64       `json:"product_id"`
	Product   *ProductDTO `json:"product"`
}

type CartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	ProductID int64       `json:"product_id"`
	Quantity  int         `json:"quantity"`
	Product   *ProductDTO `json:"product"`
}

func (c *Client) MyFavorites(ctx context.Context) ([]FavoriteDTO, error) {
	var out []FavoriteDTO
	if err := c.doJSON(ctx, http.MethodGet, "api/me/favorites", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddFavorite(ctx context.Context, productID int64) (FavoriteDTO, error) {
	var out FavoriteDTO
	if err := c.doJSON(ctx, http.MethodPost, "api/me/favorites", FavoriteRequest{ProductID: productID}, &out); err != nil {
		return FavoriteDTO{}, err
	}
	return out, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, productID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("api/me/favorites/%d", productID), nil, nil)
}

func (c *Client) Cart(ctx context.Context) ([]CartItemDTO, error) {
	var out []CartItemDTO
	if err := c.doJSON(ctx, http.MethodGet, "api/cart", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToCart(ctx context.Context, body CartAddRequest) (CartItemDTO, error) {
	var out CartItemDTO
	if err := c.doJSON(ctx, http.MethodPost, "api/cart", body, &out); err != nil {
		return CartItemDTO{}, err
	}
	return out, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) (CartItemDTO, error) {
	var out CartItemDTO
	path := fmt.Sprintf("api/cart/%d", productID)
	if err := c.doJSON(ctx, http.MethodPut, path, CartUpdateRequest{Quantity: quantity}, &out); err != nil {
		return CartItemDTO{}, err
	}
	return out, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("api/cart/%d", productID), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "api/cart", nil, nil)
}
