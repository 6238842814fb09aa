package response

import (
	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/service"
)

// Product is a catalog entry with its image reference resolved to a loadable URL.
type Product struct {
	domain.Product
	ImageURL  string `json:"image_url"`
	ShopLabel string `json:"shop_label,omitempty"`
}

type Products struct {
	Data  []Product `json:"data"`
	Total int       `json:"total"`
}

type Cart struct {
	Items  []CartLine     `json:"items"`
	Total  string         `json:"total"`
	Status service.Status `json:"status"`
}

type CartLine struct {
	domain.CartLine
	Subtotal string `json:"subtotal"`
}

type Sizes struct {
	Sizes    []domain.SavedSize `json:"sizes"`
	Ring     *domain.SavedSize  `json:"ring"`
	Bracelet *domain.SavedSize  `json:"bracelet"`
}

type Favorites struct {
	Favorites []domain.Favorite `json:"favorites"`
}

type Suggestion struct {
	Suggested *float64 `json:"suggested"`
	Display   *float64 `json:"display"`
	Field     string   `json:"field"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
