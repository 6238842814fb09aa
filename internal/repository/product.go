package repository

import (
	"context"
	"fmt"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/repository/dao"
)

type ProductDAO interface {
	Products(ctx context.Context) ([]dao.ProductDTO, error)
	CreateProduct(ctx context.Context, body dao.ProductRequest) (dao.ProductDTO, error)
	PatchProduct(ctx context.Context, id int64, body dao.ProductRequest) (dao.ProductDTO, error)
	DeleteProduct(ctx context.Context, id int64) error
	UploadCoverImage(ctx context.Context, id int64, contentType string, data []byte) (dao.ProductDTO, error)
	AddProductImage(ctx context.Context, id int64, body dao.AddImageRequest) (dao.ProductImageDTO, error)
}

type ProductRepository struct {
	dao ProductDAO
}

func NewProductRepository(dao ProductDAO) *ProductRepository {
	return &ProductRepository{
		dao: dao,
	}
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	found, err := r.dao.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Products -> %w", err)
	}

	products := make([]domain.Product, 0, len(found))
	for _, p := range found {
		products = append(products, productDaoToDomain(p))
	}

	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	created, err := r.dao.CreateProduct(ctx, productInputToDao(in))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.CreateProduct -> %w", err)
	}

	return productDaoToDomain(created), nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error) {
	updated, err := r.dao.PatchProduct(ctx, id, productInputToDao(in))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.PatchProduct -> %w", err)
	}

	return productDaoToDomain(updated), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.dao.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteProduct -> %w", err)
	}

	return nil
}

func (r *ProductRepository) UploadCover(ctx context.Context, id int64, img domain.CoverImage) (domain.Product, error) {
	updated, err := r.dao.UploadCoverImage(ctx, id, img.ContentType, img.Data)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.UploadCoverImage -> %w", err)
	}

	return productDaoToDomain(updated), nil
}

func (r *ProductRepository) AddImage(ctx context.Context, id int64, path string, position *int) (domain.ProductImage, error) {
	added, err := r.dao.AddProductImage(ctx, id, dao.AddImageRequest{Path: path, Position: position})
	if err != nil {
		return domain.ProductImage{}, fmt.Errorf("r.dao.AddProductImage -> %w", err)
	}

	return domain.ProductImage{ID: added.ID, Path: &added.Path, Position: added.Position}, nil
}
