package repository

import (
	"context"
	"fmt"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository/dao"
)

type AuthDAO interface {
	Register(ctx context.Context, body dao.RegisterRequest) (dao.AuthResponse, error)
	Login(ctx context.Context, body dao.LoginRequest) (dao.AuthResponse, error)
}

type AuthRepository struct {
	dao AuthDAO
}

func NewAuthRepository(dao AuthDAO) *AuthRepository {
	return &AuthRepository{
		dao: dao,
	}
}

func (r *AuthRepository) Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error) {
	body := dao.RegisterRequest{
		Name:     reg.Name,
		Email:    reg.Email,
		Password: reg.Password,
		Role:     reg.Role,
	}
	if body.Role == "" {
		body.Role = domain.RoleBuyer
	}
	if p := reg.Profile; p != nil {
		body.ShopName = p.ShopName
		body.Phone = p.Phone
		body.City = p.City
		body.Address = p.Address
	}

	res, err := r.dao.Register(ctx, body)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("r.dao.Register -> %w", err)
	}

	return domain.AuthResult{User: userDaoToDomain(res.User), Token: res.Token}, nil
}

func (r *AuthRepository) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	res, err := r.dao.Login(ctx, dao.LoginRequest{Email: email, Password: password})
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("r.dao.Login -> %w", err)
	}

	return domain.AuthResult{User: userDaoToDomain(res.User), Token: res.Token}, nil
}
