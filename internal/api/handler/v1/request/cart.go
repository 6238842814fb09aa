package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// CartAddRequest leaves Quantity optional; the ledger treats anything below one as one.
type CartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (req *CartAddRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required, validation.Min(int64(1))),
	)
}

type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

func (req *CartUpdateRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required),
	)
}

type FavoriteRequest struct {
	ProductID int64 `json:"product_id"`
}

func (req *FavoriteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required, validation.Min(int64(1))),
	)
}
