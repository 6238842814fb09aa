package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/pkg/observable"
	"github.com/ringsizer/storefront/internal/rules/catalog"
)

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
	UploadCover(ctx context.Context, id int64, img domain.CoverImage) (domain.Product, error)
	AddImage(ctx context.Context, id int64, path string, position *int) (domain.ProductImage, error)
}

// ProductCatalog caches the product list. Load replaces it wholesale; successful writes
// patch the cache in place instead of reloading.
type ProductCatalog struct {
	statusHolder
	Items *observable.Store[[]domain.Product]

	repo ProductRepository
	opMu sync.Mutex
}

func NewProductCatalog(repo ProductRepository) *ProductCatalog {
	return &ProductCatalog{
		statusHolder: newStatusHolder(),
		Items:        observable.New([]domain.Product{}),
		repo:         repo,
	}
}

func (c *ProductCatalog) Products() []domain.Product {
	return c.Items.Get()
}

func (c *ProductCatalog) Load(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	products, err := c.repo.List(ctx)
	if err != nil {
		c.fail(err)
		return fmt.Errorf("c.repo.List -> %w", err)
	}

	c.Items.Set(products)
	c.done()

	return nil
}

func (c *ProductCatalog) Find(id int64) (domain.Product, bool) {
	for _, p := range c.Items.Get() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c *ProductCatalog) RemoveLocal(id int64) {
	c.Items.Update(func(products []domain.Product) []domain.Product {
		out := make([]domain.Product, 0, len(products))
		for _, p := range products {
			if p.ID != id {
				out = append(out, p)
			}
		}
		return out
	})
}

// UpsertLocal replaces the cached product with the same id, or prepends it.
func (c *ProductCatalog) UpsertLocal(product domain.Product) {
	c.Items.Update(func(products []domain.Product) []domain.Product {
		out := make([]domain.Product, 0, len(products)+1)
		replaced := false
		for _, p := range products {
			if p.ID == product.ID {
				p = product
				replaced = true
			}
			out = append(out, p)
		}
		if !replaced {
			out = append([]domain.Product{product}, out...)
		}
		return out
	})
}

// Create publishes a new product and, when an image is given, uploads it as the cover.
func (c *ProductCatalog) Create(ctx context.Context, in domain.ProductInput, cover *domain.CoverImage) (domain.Product, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	created, err := c.repo.Create(ctx, in)
	if err != nil {
		c.fail(err)
		return domain.Product{}, fmt.Errorf("c.repo.Create -> %w", err)
	}
	c.UpsertLocal(created)

	return c.finishWithCover(ctx, created, cover)
}

func (c *ProductCatalog) Update(ctx context.Context, id int64, in domain.ProductInput, cover *domain.CoverImage) (domain.Product, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	updated, err := c.repo.Update(ctx, id, in)
	if err != nil {
		c.fail(err)
		return domain.Product{}, fmt.Errorf("c.repo.Update -> %w", err)
	}
	c.UpsertLocal(updated)

	return c.finishWithCover(ctx, updated, cover)
}

func (c *ProductCatalog) finishWithCover(ctx context.Context, product domain.Product, cover *domain.CoverImage) (domain.Product, error) {
	if cover == nil || len(cover.Data) == 0 {
		c.done()
		return product, nil
	}

	withCover, err := c.repo.UploadCover(ctx, product.ID, *cover)
	if err != nil {
		c.fail(err)
		return product, fmt.Errorf("c.repo.UploadCover -> %w", err)
	}
	c.UpsertLocal(withCover)
	c.done()

	return withCover, nil
}

func (c *ProductCatalog) UploadCover(ctx context.Context, id int64, cover domain.CoverImage) (domain.Product, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	return c.finishWithCover(ctx, domain.Product{ID: id}, &cover)
}

// AddImage attaches an already hosted image to a product.
func (c *ProductCatalog) AddImage(ctx context.Context, id int64, path string, position *int) (domain.ProductImage, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	img, err := c.repo.AddImage(ctx, id, path, position)
	if err != nil {
		c.fail(err)
		return domain.ProductImage{}, fmt.Errorf("c.repo.AddImage -> %w", err)
	}

	if p, ok := c.Find(id); ok {
		p.Images = append(append([]domain.ProductImage(nil), p.Images...), img)
		c.UpsertLocal(p)
	}
	c.done()

	return img, nil
}

func (c *ProductCatalog) Delete(ctx context.Context, id int64) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	if err := c.repo.Delete(ctx, id); err != nil {
		c.fail(err)
		return fmt.Errorf("c.repo.Delete -> %w", err)
	}
	c.RemoveLocal(id)
	c.done()

	return nil
}

func (c *ProductCatalog) SellerView(q catalog.SellerQuery) []domain.Product {
	return q.Apply(c.Items.Get())
}

func (c *ProductCatalog) BuyerView(q catalog.BuyerQuery) []domain.Product {
	return q.Apply(c.Items.Get())
}

func (c *ProductCatalog) Featured(n int) []domain.Product {
	return catalog.Featured(c.Items.Get(), n)
}
