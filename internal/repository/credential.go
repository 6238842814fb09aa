package repository

import (
	"context"
	"fmt"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository/dao"
)

// CredentialDAO is satisfied by both the postgres and the sqlite store.
type CredentialDAO interface {
	Upsert(ctx context.Context, cred dao.Credential) error
	FindByUserID(ctx context.Context, userID int64) (dao.Credential, error)
	Delete(ctx context.Context, userID int64) error
}

type CredentialRepository struct {
	dao CredentialDAO
}

func NewCredentialRepository(dao CredentialDAO) *CredentialRepository {
	return &CredentialRepository{
		dao: dao,
	}
}

func (r *CredentialRepository) Save(ctx context.Context, cred domain.Credential) error {
	err := r.dao.Upsert(ctx, dao.Credential{
		UserID:   cred.UserID,
		Token:    cred.Token,
		Role:     cred.Role,
		UserName: cred.UserName,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return nil
}

func (r *CredentialRepository) FindByUserID(ctx context.Context, userID int64) (domain.Credential, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return domain.Credential{
		UserID:   found.UserID,
		Token:    found.Token,
		Role:     found.Role,
		UserName: found.UserName,
	}, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, userID int64) error {
	if err := r.dao.Delete(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
