package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/pkg/observable"
	"github.com/ringsizer/storefront/internal/rules/sizing"
)

var ErrNoMeasurement = errors.New("no usable measurement")

type UserDataRepository interface {
	Sizes(ctx context.Context) ([]domain.SavedSize, error)
	UpsertSize(ctx context.Context, kind domain.SizeKind, in domain.SizeInput) (domain.SavedSize, error)
	DeleteSize(ctx context.Context, id int64) error
	Favorites(ctx context.Context) ([]domain.Favorite, error)
	AddFavorite(ctx context.Context, productID int64) (domain.Favorite, error)
	RemoveFavorite(ctx context.Context, productID int64) error
}

// UserData holds the saved sizes and favorites of one user. Every write is followed by
// a reload of the affected list.
type UserData struct {
	statusHolder
	Sizes     *observable.Store[[]domain.SavedSize]
	Favorites *observable.Store[[]domain.Favorite]

	repo UserDataRepository
	opMu sync.Mutex
}

func NewUserData(repo UserDataRepository) *UserData {
	return &UserData{
		statusHolder: newStatusHolder(),
		Sizes:        observable.New([]domain.SavedSize{}),
		Favorites:    observable.New([]domain.Favorite{}),
		repo:         repo,
	}
}

func (u *UserData) Load(ctx context.Context) error {
	u.opMu.Lock()
	defer u.opMu.Unlock()

	u.begin()
	if err := u.reloadSizes(ctx); err != nil {
		u.fail(err)
		return err
	}
	if err := u.reloadFavorites(ctx); err != nil {
		u.fail(err)
		return err
	}
	u.done()

	return nil
}

func (u *UserData) reloadSizes(ctx context.Context) error {
	sizes, err := u.repo.Sizes(ctx)
	if err != nil {
		return fmt.Errorf("u.repo.Sizes -> %w", err)
	}
	u.Sizes.Set(sizes)
	return nil
}

func (u *UserData) reloadFavorites(ctx context.Context) error {
	favorites, err := u.repo.Favorites(ctx)
	if err != nil {
		return fmt.Errorf("u.repo.Favorites -> %w", err)
	}
	u.Favorites.Set(favorites)
	return nil
}

func (u *UserData) UpsertSize(ctx context.Context, kind domain.SizeKind, in domain.SizeInput) error {
	u.opMu.Lock()
	defer u.opMu.Unlock()

	return u.write(ctx, func(ctx context.Context) error {
		if _, err := u.repo.UpsertSize(ctx, kind, in); err != nil {
			return fmt.Errorf("u.repo.UpsertSize -> %w", err)
		}
		return u.reloadSizes(ctx)
	})
}

func (u *UserData) DeleteSize(ctx context.Context, id int64) error {
	u.opMu.Lock()
	defer u.opMu.Unlock()

	return u.write(ctx, func(ctx context.Context) error {
		if err := u.repo.DeleteSize(ctx, id); err != nil {
			return fmt.Errorf("u.repo.DeleteSize -> %w", err)
		}
		return u.reloadSizes(ctx)
	})
}

func (u *UserData) AddFavorite(ctx context.Context, productID int64) error {
	u.opMu.Lock()
	defer u.opMu.Unlock()

	return u.write(ctx, func(ctx context.Context) error {
		if _, err := u.repo.AddFavorite(ctx, productID); err != nil {
			return fmt.Errorf("u.repo.AddFavorite -> %w", err)
		}
		return u.reloadFavorites(ctx)
	})
}

func (u *UserData) RemoveFavorite(ctx context.Context, productID int64) error {
	u.opMu.Lock()
	defer u.opMu.Unlock()

	return u.write(ctx, func(ctx context.Context) error {
		if err := u.repo.RemoveFavorite(ctx, productID); err != nil {
			return fmt.Errorf("u.repo.RemoveFavorite -> %w", err)
		}
		return u.reloadFavorites(ctx)
	})
}

func (u *UserData) write(ctx context.Context, fn func(context.Context) error) error {
	u.begin()
	if err := fn(ctx); err != nil {
		u.fail(err)
		return err
	}
	u.done()
	return nil
}

func (u *UserData) IsFavorite(productID int64) bool {
	for _, f := range u.Favorites.Get() {
		if f.ProductID == productID {
			return true
		}
	}
	return false
}

func (u *UserData) RingSize() *domain.SavedSize {
	return domain.FirstSize(u.Sizes.Get(), domain.SizeRing)
}

func (u *UserData) BraceletSize() *domain.SavedSize {
	return domain.FirstSize(u.Sizes.Get(), domain.SizeBracelet)
}

// SaveRingMeasurement converts a ring measurement and stores it as the user's ring size.
func (u *UserData) SaveRingMeasurement(ctx context.Context, diameterMM, circumferenceMM *float64) (sizing.Ring, error) {
	ring := sizing.RingSizes(diameterMM, circumferenceMM)
	if ring.CircumferenceMM == nil {
		return ring, ErrNoMeasurement
	}

	if err := u.UpsertSize(ctx, domain.SizeRing, sizing.RingSizeRequest(diameterMM, ring)); err != nil {
		return ring, err
	}

	return ring, nil
}

// SaveBraceletMeasurement stores the recommended length for a wrist circumference in centimeters.
func (u *UserData) SaveBraceletMeasurement(ctx context.Context, wristCM *float64) (sizing.Bracelet, error) {
	bracelet := sizing.BraceletLength(wristCM)
	if bracelet.RecommendedMM == nil {
		return bracelet, ErrNoMeasurement
	}

	if err := u.UpsertSize(ctx, domain.SizeBracelet, sizing.BraceletSizeRequest(bracelet)); err != nil {
		return bracelet, err
	}

	return bracelet, nil
}
