package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsizer/storefront/internal/domain"
)

func testSession(cred domain.Credential) *Session {
	return &Session{
		Credential: cred,
		Catalog:    NewProductCatalog(&fakeProductRepo{}),
		Gold:       NewGoldTracker(&fakeGoldRepo{}, 30, 24),
		UserData:   NewUserData(&fakeUserDataRepo{}),
		Cart:       NewCartLedger(&fakeCartRepo{}),
	}
}

func TestSessionRegistry(t *testing.T) {
	ctx := context.Background()
	creds := newMemCredentials()
	require.NoError(t, creds.Save(ctx, domain.Credential{UserID: 1, Token: "a", Role: "buyer"}))

	built := 0
	reg := NewSessionRegistry(creds, func(cred domain.Credential) *Session {
		built++
		return testSession(cred)
	})

	_, err := reg.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	s1, err := reg.Get(ctx, 1)
	require.NoError(t, err)
	s2, err := reg.Get(ctx, 1)
	require.NoError(t, err)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, built)

	reg.Drop(1)
	s3, err := reg.Get(ctx, 1)
	require.NoError(t, err)
	assert.NotSame(t, s1, s3)
}

// gatedCredentials holds lookups for one user until release is closed.
type gatedCredentials struct {
	*memCredentials
	gated   int64
	entered chan struct{}
	release chan struct{}
}

func (g *gatedCredentials) FindByUserID(ctx context.Context, userID int64) (domain.Credential, error) {
	if userID == g.gated {
		close(g.entered)
		<-g.release
	}
	return g.memCredentials.FindByUserID(ctx, userID)
}

func TestSessionRegistry_ColdLookupDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	creds := &gatedCredentials{
		memCredentials: newMemCredentials(),
		gated:          2,
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	require.NoError(t, creds.Save(ctx, domain.Credential{UserID: 1, Token: "a"}))
	require.NoError(t, creds.Save(ctx, domain.Credential{UserID: 2, Token: "b"}))
	reg := NewSessionRegistry(creds, testSession)

	warm, err := reg.Get(ctx, 1)
	require.NoError(t, err)

	cold := make(chan error, 1)
	go func() {
		_, err := reg.Get(ctx, 2)
		cold <- err
	}()
	<-creds.entered

	got := make(chan *Session, 1)
	go func() {
		s, _ := reg.Get(ctx, 1)
		got <- s
	}()
	select {
	case s := <-got:
		assert.Same(t, warm, s)
	case <-time.After(time.Second):
		t.Fatal("cached session blocked behind a credential lookup")
	}

	close(creds.release)
	require.NoError(t, <-cold)
}

func TestSession_SizeAware(t *testing.T) {
	assert.True(t, testSession(domain.Credential{Token: "t", Role: "buyer"}).SizeAware())
	assert.False(t, testSession(domain.Credential{Token: "t", Role: "Seller"}).SizeAware())
	assert.False(t, testSession(domain.Credential{Role: "buyer"}).SizeAware())
}

func TestSession_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := testSession(domain.Credential{UserID: 1, Token: "t"})

	var types []string
	cancel := s.Subscribe(func(e Event) { types = append(types, e.Type) })

	require.NoError(t, s.UserData.AddFavorite(ctx, 3))
	cancel()
	require.NoError(t, s.UserData.AddFavorite(ctx, 4))

	assert.Equal(t, []string{EventFavorites}, types)
}
