package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsizer/storefront/internal/domain"
)

func f64(v float64) *float64 { return &v }

func TestUserData_FirstSizeByKind(t *testing.T) {
	repo := &fakeUserDataRepo{sizes: []domain.SavedSize{
		{ID: 1, Kind: "Ring", DiameterMM: f64(17)},
		{ID: 2, Kind: "ring", DiameterMM: f64(18)},
		{ID: 3, Kind: "bracelet", CircumferenceMM: f64(175)},
	}}
	u := NewUserData(repo)
	require.NoError(t, u.Load(context.Background()))

	assert.Equal(t, int64(1), u.RingSize().ID)
	assert.Equal(t, int64(3), u.BraceletSize().ID)
}

func TestUserData_FavoritesReloadAfterWrite(t *testing.T) {
	ctx := context.Background()
	u := NewUserData(&fakeUserDataRepo{})

	require.NoError(t, u.AddFavorite(ctx, 5))
	assert.True(t, u.IsFavorite(5))

	require.NoError(t, u.RemoveFavorite(ctx, 5))
	assert.False(t, u.IsFavorite(5))
}

func TestUserData_SaveRingMeasurement(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUserDataRepo{}
	u := NewUserData(repo)

	ring, err := u.SaveRingMeasurement(ctx, f64(17.3), nil)
	require.NoError(t, err)
	assert.Equal(t, 54, *ring.FR)

	saved := repo.upserts[domain.SizeRing]
	assert.Equal(t, 17.3, *saved.DiameterMM)
	assert.Equal(t, "MM", *saved.Standard)
	assert.Equal(t, "My ring", *saved.Label)
	assert.NotNil(t, u.RingSize(), "sizes reloaded")
}

func TestUserData_SaveBraceletMeasurement(t *testing.T) {
	ctx := context.Background()
	repo := &fakeUserDataRepo{}
	u := NewUserData(repo)

	b, err := u.SaveBraceletMeasurement(ctx, f64(16))
	require.NoError(t, err)
	assert.Equal(t, 17.5, *b.RecommendedCM)
	assert.Equal(t, 175.0, *repo.upserts[domain.SizeBracelet].CircumferenceMM)

	_, err = u.SaveBraceletMeasurement(ctx, f64(-2))
	assert.ErrorIs(t, err, ErrNoMeasurement)
}

func TestUserData_WriteFailure(t *testing.T) {
	repo := &fakeUserDataRepo{fail: remoteErr(401, "Unauthenticated.")}
	u := NewUserData(repo)

	err := u.UpsertSize(context.Background(), domain.SizeRing, domain.SizeInput{})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Unauthenticated.", u.Status.Get().Error)
	assert.Zero(t, repo.reloads)
}
