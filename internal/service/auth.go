package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository"
)

var (
	ErrWrongCredentials = errors.New("wrong email or password")
	ErrNotSignedIn      = errors.New("not signed in")
)

type AuthRepository interface {
	Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error)
	Login(ctx context.Context, email, password string) (domain.AuthResult, error)
}

type CredentialRepository interface {
	Save(ctx context.Context, cred domain.Credential) error
	FindByUserID(ctx context.Context, userID int64) (domain.Credential, error)
	Delete(ctx context.Context, userID int64) error
}

// AuthService signs users in against the remote API and keeps their bearer token.
type AuthService struct {
	repo  AuthRepository
	creds CredentialRepository
}

func NewAuthService(repo AuthRepository, creds CredentialRepository) *AuthService {
	return &AuthService{
		repo:  repo,
		creds: creds,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	res, err := s.repo.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrUnauthorized) {
			return domain.AuthResult{}, ErrWrongCredentials
		}

		return domain.AuthResult{}, fmt.Errorf("s.repo.Login -> %w", err)
	}

	if err = s.remember(ctx, res); err != nil {
		return domain.AuthResult{}, err
	}

	return res, nil
}

func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (domain.AuthResult, error) {
	res, err := s.repo.Register(ctx, reg)
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("s.repo.Register -> %w", err)
	}

	if err = s.remember(ctx, res); err != nil {
		return domain.AuthResult{}, err
	}

	return res, nil
}

func (s *AuthService) remember(ctx context.Context, res domain.AuthResult) error {
	err := s.creds.Save(ctx, domain.Credential{
		UserID:   res.User.ID,
		Token:    res.Token,
		Role:     res.User.Role,
		UserName: res.User.Name,
	})
	if err != nil {
		return fmt.Errorf("s.creds.Save -> %w", err)
	}

	return nil
}

func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.creds.Delete(ctx, userID); err != nil {
		return fmt.Errorf("s.creds.Delete -> %w", err)
	}

	return nil
}

func (s *AuthService) Current(ctx context.Context, userID int64) (domain.Credential, error) {
	cred, err := s.creds.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return domain.Credential{}, ErrNotSignedIn
		}

		return domain.Credential{}, fmt.Errorf("s.creds.FindByUserID -> %w", err)
	}

	return cred, nil
}
