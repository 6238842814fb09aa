package dao

import (
	"context"
	"net/http"
)

type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	ShopName *string `json:"shop_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
	Address  *string `json:"address,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}


func (c *Client) Register(ctx context.Context, body RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "api/auth/register", body, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, body LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "api/auth/login", body, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}
