package repository

import "github.com/ringsizer/storefront/internal/repository/dao"

var (
	ErrUnauthorized       = dao.ErrUnauthorized
	ErrNotFound           = dao.ErrNotFound
	ErrCredentialNotFound = dao.ErrCredentialNotFound
)

type APIError = dao.APIError
