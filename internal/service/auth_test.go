package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsizer/storefront/internal/domain"
)

func TestAuthService_LoginStoresCredential(t *testing.T) {
	ctx := context.Background()
	creds := newMemCredentials()
	repo := &fakeAuthRepo{result: domain.AuthResult{
		User:  domain.User{ID: 9, Name: "Nadia", Role: "seller"},
		Token: "remote-token",
	}}
	svc := NewAuthService(repo, creds)

	res, err := svc.Login(ctx, "n@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "remote-token", res.Token)

	cred, err := svc.Current(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.Credential{UserID: 9, Token: "remote-token", Role: "seller", UserName: "Nadia"}, cred)

	require.NoError(t, svc.Logout(ctx, 9))
	_, err = svc.Current(ctx, 9)
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestAuthService_LoginRejected(t *testing.T) {
	svc := NewAuthService(&fakeAuthRepo{fail: remoteErr(401, "Invalid credentials")}, newMemCredentials())

	_, err := svc.Login(context.Background(), "n@example.com", "nope")

	assert.ErrorIs(t, err, ErrWrongCredentials)
}

func TestAuthService_RegisterPassesProfile(t *testing.T) {
	repo := &fakeAuthRepo{result: domain.AuthResult{User: domain.User{ID: 1}, Token: "t"}}
	svc := NewAuthService(repo, newMemCredentials())
	shop := "Atelier"

	_, err := svc.Register(context.Background(), domain.Registration{
		Name: "Sam", Email: "s@example.com", Password: "abc12345", Role: "seller",
		Profile: &domain.SellerProfile{ShopName: &shop},
	})

	require.NoError(t, err)
	assert.Equal(t, "Atelier", *repo.got.Profile.ShopName)
}
