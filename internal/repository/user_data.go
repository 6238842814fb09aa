package repository

import (
	"context"
	"fmt"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository/dao"
)

type UserDataDAO interface {
	MySizes(ctx context.Context) ([]dao.SavedSizeDTO, error)
	UpsertMySize(ctx context.Context, kind string, body dao.SavedSizeUpsertRequest) (dao.SavedSizeDTO, error)
	DeleteMySize(ctx context.Context, id int64) error
	MyFavorites(ctx context.Context) ([]dao.FavoriteDTO, error)
	AddFavorite(ctx context.Context, productID int64) (dao.FavoriteDTO, error)
	RemoveFavorite(ctx context.Context, productID int64) error
}

type UserDataRepository struct {
	dao UserDataDAO
}

func NewUserDataRepository(dao UserDataDAO) *UserDataRepository {
	return &UserDataRepository{
		dao: dao,
	}
}

func (r *UserDataRepository) Sizes(ctx context.Context) ([]domain.SavedSize, error) {
	found, err := r.dao.MySizes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.MySizes -> %w", err)
	}

	sizes := make([]domain.SavedSize, 0, len(found))
	for _, s := range found {
		sizes = append(sizes, sizeDaoToDomain(s))
	}

	return sizes, nil
}

func (r *UserDataRepository) UpsertSize(ctx context.Context, kind domain.SizeKind, in domain.SizeInput) (domain.SavedSize, error) {
	saved, err := r.dao.UpsertMySize(ctx, string(kind), dao.SavedSizeUpsertRequest{
		DiameterMM:      in.DiameterMM,
		CircumferenceMM: in.CircumferenceMM,
		Standard:        in.Standard,
		Label:           in.Label,
	})
	if err != nil {
		return domain.SavedSize{}, fmt.Errorf("r.dao.UpsertMySize -> %w", err)
	}

	return sizeDaoToDomain(saved), nil
}

func (r *UserDataRepository) DeleteSize(ctx context.Context, id int64) error {
	if err := r.dao.DeleteMySize(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteMySize -> %w", err)
	}

	return nil
}

func (r *UserDataRepository) Favorites(ctx context.Context) ([]domain.Favorite, error) {
	found, err := r.dao.MyFavorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.MyFavorites -> %w", err)
	}

	favorites := make([]domain.Favorite, 0, len(found))
	for _, f := range found {
		favorites = append(favorites, favoriteDaoToDomain(f))
	}

	return favorites, nil
}

func (r *UserDataRepository) AddFavorite(ctx context.Context, productID int64) (domain.Favorite, error) {
	added, err := r.dao.AddFavorite(ctx, productID)
	if err != nil {
		return domain.Favorite{}, fmt.Errorf("r.dao.AddFavorite -> %w", err)
	}

	return favoriteDaoToDomain(added), nil
}

func (r *UserDataRepository) RemoveFavorite(ctx context.Context, productID int64) error {
	if err := r.dao.RemoveFavorite(ctx, productID); err != nil {
		return fmt.Errorf("r.dao.RemoveFavorite -> %w", err)
	}

	return nil
}
