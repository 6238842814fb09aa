package repository

import (
	"context"
	"fmt"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository/dao"
)

type GoldDAO interface {
	GoldLatest(ctx context.Context) (dao.GoldPriceDTO, error)
	GoldHistory(ctx context.Context, days, karat int) ([]dao.GoldPriceDTO, error)
}

type GoldRepository struct {
	dao GoldDAO
}

func NewGoldRepository(dao GoldDAO) *GoldRepository {
	return &GoldRepository{
		dao: dao,
	}
}

func (r *GoldRepository) Latest(ctx context.Context) (domain.GoldQuote, error) {
	found, err := r.dao.GoldLatest(ctx)
	if err != nil {
		return domain.GoldQuote{}, fmt.Errorf("r.dao.GoldLatest -> %w", err)
	}

	return goldDaoToDomain(found), nil
}

// History keeps the order the source returned.
func (r *GoldRepository) History(ctx context.Context, days, karat int) (domain.GoldSeries, error) {
	found, err := r.dao.GoldHistory(ctx, days, karat)
	if err != nil {
		return nil, fmt.Errorf("r.dao.GoldHistory -> %w", err)
	}

	series := make(domain.GoldSeries, 0, len(found))
	for _, q := range found {
		series = append(series, goldDaoToDomain(q))
	}

	return series, nil
}
