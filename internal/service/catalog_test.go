package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/rules/catalog"
)

func productIDs(products []domain.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestProductCatalog_LocalHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewProductCatalog(&fakeProductRepo{products: []domain.Product{{ID: 1}, {ID: 2, Title: "old"}}})
	require.NoError(t, c.Load(ctx))

	c.UpsertLocal(domain.Product{ID: 2, Title: "new"})
	c.UpsertLocal(domain.Product{ID: 3})
	assert.Equal(t, []int64{3, 1, 2}, productIDs(c.Products()), "new products are prepended")

	p, ok := c.Find(2)
	require.True(t, ok)
	assert.Equal(t, "new", p.Title)

	c.RemoveLocal(1)
	assert.Equal(t, []int64{3, 2}, productIDs(c.Products()))
}

func TestProductCatalog_CreateWithCover(t *testing.T) {
	ctx := context.Background()
	repo := &fakeProductRepo{nextID: 10}
	c := NewProductCatalog(repo)

	got, err := c.Create(ctx, domain.ProductInput{Title: "Band", Price: 90},
		&domain.CoverImage{Filename: "cover.jpg", Data: []byte{1}})

	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	require.NotNil(t, got.CoverImagePath)
	assert.Len(t, repo.uploaded, 1)
	assert.Equal(t, []int64{11}, productIDs(c.Products()))
}

func TestProductCatalog_FailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	repo := &fakeProductRepo{products: []domain.Product{{ID: 1}}}
	c := NewProductCatalog(repo)
	require.NoError(t, c.Load(ctx))

	repo.fail = remoteErr(403, "Forbidden")
	require.Error(t, c.Delete(ctx, 1))

	assert.Equal(t, []int64{1}, productIDs(c.Products()))
	assert.Equal(t, "Forbidden", c.Status.Get().Error)

	repo.fail = nil
	require.NoError(t, c.Delete(ctx, 1))
	assert.Empty(t, c.Products())
}

func TestProductCatalog_AddImageAppendsLocally(t *testing.T) {
	ctx := context.Background()
	c := NewProductCatalog(&fakeProductRepo{products: []domain.Product{{ID: 1}}})
	require.NoError(t, c.Load(ctx))

	_, err := c.AddImage(ctx, 1, "https://cdn/x.jpg", nil)
	require.NoError(t, err)

	p, _ := c.Find(1)
	require.Len(t, p.Images, 1)
	assert.Equal(t, "https://cdn/x.jpg", *p.Images[0].Path)
}

func TestProductCatalog_Views(t *testing.T) {
	ctx := context.Background()
	seller := int64(4)
	c := NewProductCatalog(&fakeProductRepo{products: []domain.Product{
		{ID: 1, SellerID: &seller, Status: domain.StatusPublished, Price: 30},
		{ID: 2, Status: domain.StatusDraft, Price: 10},
		{ID: 3, SellerID: &seller, Status: domain.StatusPublished, Price: 20},
	}})
	require.NoError(t, c.Load(ctx))

	assert.Equal(t, []int64{3, 1}, productIDs(c.SellerView(catalog.SellerQuery{SellerID: &seller, Sort: catalog.SortPriceAsc})))
	assert.Equal(t, []int64{1, 3}, productIDs(c.BuyerView(catalog.BuyerQuery{Status: "published"})))
	assert.Equal(t, []int64{3, 1}, productIDs(c.Featured(0)))
}
