package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository"
)

const (
	EventCart       = "cart"
	EventCartStatus = "cart_status"
	EventFavorites  = "favorites"
	EventSizes      = "sizes"
	EventProducts   = "products"
	EventGold       = "gold"
)

// Event is one state change pushed to a session's listeners.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Session groups the state holders of one signed-in user.
type Session struct {
	Credential domain.Credential

	Catalog  *ProductCatalog
	Gold     *GoldTracker
	UserData *UserData
	Cart     *CartLedger
}

// SizeAware reports whether the fit-to-my-size filter applies to this viewer.
func (s *Session) SizeAware() bool {
	return s.Credential.Token != "" && !(domain.User{Role: s.Credential.Role}).IsSeller()
}

func (s *Session) SellerID() *int64 {
	id := s.Credential.UserID
	return &id
}

// Subscribe forwards every state change of the session to fn until cancel is called.
func (s *Session) Subscribe(fn func(Event)) (cancel func()) {
	cancels := []func(){
		s.Cart.Items.Subscribe(func(v []domain.CartLine) { fn(Event{Type: EventCart, Data: v}) }),
		s.Cart.Status.Subscribe(func(v Status) { fn(Event{Type: EventCartStatus, Data: v}) }),
		s.UserData.Favorites.Subscribe(func(v []domain.Favorite) { fn(Event{Type: EventFavorites, Data: v}) }),
		s.UserData.Sizes.Subscribe(func(v []domain.SavedSize) { fn(Event{Type: EventSizes, Data: v}) }),
		s.Catalog.Items.Subscribe(func(v []domain.Product) { fn(Event{Type: EventProducts, Data: v}) }),
		s.Gold.History.Subscribe(func(domain.GoldSeries) { fn(Event{Type: EventGold, Data: s.Gold.snapshot()}) }),
	}

	return func() {
		for _, c := range cancels {
			c()
		}
	}
}

// SessionFactory binds fresh state holders to a user's remote credential.
type SessionFactory func(cred domain.Credential) *Session

// SessionRegistry keeps one Session per signed-in user. Sessions are created on first
// use from the stored credential and never shared between users.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	creds    CredentialRepository
	factory  SessionFactory
}

func NewSessionRegistry(creds CredentialRepository, factory SessionFactory) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[int64]*Session),
		creds:    creds,
		factory:  factory,
	}
}

func (r *SessionRegistry) Get(ctx context.Context, userID int64) (*Session, error) {
	if s, ok := r.lookup(userID); ok {
		return s, nil
	}

	cred, err := r.creds.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			return nil, ErrNotSignedIn
		}
		return nil, fmt.Errorf("r.creds.FindByUserID -> %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another request may have created the session while the credential was loading.
	if s, ok := r.sessions[userID]; ok {
		return s, nil
	}
	s := r.factory(cred)
	r.sessions[userID] = s

	return s, nil
}

func (r *SessionRegistry) lookup(userID int64) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[userID]
	return s, ok
}

func (r *SessionRegistry) Drop(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
}
