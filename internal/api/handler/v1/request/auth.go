package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/ringsizer/storefront/internal/domain"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
)

var (
	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)

	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")
)

type RegisterRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	Role            string  `json:"role"`
	ShopName        *string `json:"shop_name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	City            *string `json:"city,omitempty"`
	Address         *string `json:"address,omitempty"`
}

func (req *RegisterRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.Role, validation.In(domain.RoleBuyer, domain.RoleSeller)),
	)
	if err != nil {
		return err
	}

	if ok, _ := passwordExp.MatchString(req.Password); !ok {
		return errInvalidPassword
	}

	if req.Password != req.ConfirmPassword {
		return errConfirmPasswordMismatch
	}

	return nil
}

func (req *RegisterRequest) Registration() domain.Registration {
	reg := domain.Registration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if reg.Role == "" {
		reg.Role = domain.RoleBuyer
	}
	if reg.Role == domain.RoleSeller {
		reg.Profile = &domain.SellerProfile{
			ShopName: req.ShopName,
			Phone:    req.Phone,
			City:     req.City,
			Address:  req.Address,
		}
	}
	return reg
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
