package repository

import (
	"context"
	"fmt"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository/dao"
)

type CartDAO interface {
	Cart(ctx context.Context) ([]dao.CartItemDTO, error)
	AddToCart(ctx context.Context, body dao.CartAddRequest) (dao.CartItemDTO, error)
	UpdateCartItem(ctx context.Context, productID int64, quantity int) (dao.CartItemDTO, error)
	RemoveFromCart(ctx context.Context, productID int64) error
	ClearCart(ctx context.Context) error
}

type CartRepository struct {
	dao CartDAO
}

func NewCartRepository(dao CartDAO) *CartRepository {
	return &CartRepository{
		dao: dao,
	}
}

func (r *CartRepository) Lines(ctx context.Context) ([]domain.CartLine, error) {
	found, err := r.dao.Cart(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Cart -> %w", err)
	}

	lines := make([]domain.CartLine, 0, len(found))
	for _, c := range found {
		lines = append(lines, cartItemDaoToDomain(c))
	}

	return lines, nil
}

func (r *CartRepository) Add(ctx context.Context, productID int64, quantity int) (domain.CartLine, error) {
	added, err := r.dao.AddToCart(ctx, dao.CartAddRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("r.dao.AddToCart -> %w", err)
	}

	return cartItemDaoToDomain(added), nil
}

func (r *CartRepository) SetQuantity(ctx context.Context, productID int64, quantity int) (domain.CartLine, error) {
	updated, err := r.dao.UpdateCartItem(ctx, productID, quantity)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("r.dao.UpdateCartItem -> %w", err)
	}

	return cartItemDaoToDomain(updated), nil
}

func (r *CartRepository) Remove(ctx context.Context, productID int64) error {
	if err := r.dao.RemoveFromCart(ctx, productID); err != nil {
		return fmt.Errorf("r.dao.RemoveFromCart -> %w", err)
	}

	return nil
}

func (r *CartRepository) Clear(ctx context.Context) error {
	if err := r.dao.ClearCart(ctx); err != nil {
		return fmt.Errorf("r.dao.ClearCart -> %w", err)
	}

	return nil
}
