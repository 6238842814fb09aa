package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsizer/storefront/internal/domain"
)

func quantities(lines []domain.CartLine) map[int64]int {
	out := make(map[int64]int, len(lines))
	for _, l := range lines {
		out[l.ProductID] = l.Quantity
	}
	return out
}

func newLedger(lines ...domain.CartLine) (*CartLedger, *fakeCartRepo) {
	repo := &fakeCartRepo{
		lines:    lines,
		products: map[int64]domain.Product{7: {ID: 7, Price: 12.5}},
	}
	return NewCartLedger(repo), repo
}

func TestCartLedger_AddLineIsOptimisticThenReloads(t *testing.T) {
	ctx := context.Background()
	ledger, repo := newLedger()

	var during []domain.CartLine
	repo.during = func() { during = ledger.Lines() }

	require.NoError(t, ledger.AddLine(ctx, 7, 2))

	require.Len(t, during, 1, "line visible before the remote answered")
	assert.Nil(t, during[0].Product)
	assert.Equal(t, 2, during[0].Quantity)

	lines := ledger.Lines()
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].Product, "reload hydrates the snapshot")
	assert.Equal(t, []string{"add", "lines"}, repo.calls)
	assert.Equal(t, Status{}, ledger.Status.Get())
}

func TestCartLedger_AddLineIncrementsExisting(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(domain.CartLine{ID: 1, ProductID: 7, Quantity: 1})
	require.NoError(t, ledger.Load(ctx))

	require.NoError(t, ledger.AddLine(ctx, 7, 3))

	assert.Equal(t, map[int64]int{7: 4}, quantities(ledger.Lines()))
}

func TestCartLedger_AddLineClampsQuantity(t *testing.T) {
	ctx := context.Background()
	ledger, repo := newLedger()

	require.NoError(t, ledger.AddLine(ctx, 7, 0))
	require.NoError(t, ledger.AddLine(ctx, 8, -4))

	assert.Equal(t, map[int64]int{7: 1, 8: 1}, quantities(repo.lines))
}

func TestCartLedger_AddLineFailureRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	ledger, repo := newLedger(domain.CartLine{ID: 1, ProductID: 3, Quantity: 2})
	require.NoError(t, ledger.Load(ctx))
	before := ledger.Lines()

	repo.fail = remoteErr(422, "Out of stock")
	err := ledger.AddLine(ctx, 3, 1)

	require.Error(t, err)
	assert.Equal(t, before, ledger.Lines())
	assert.Equal(t, Status{Error: "Out of stock"}, ledger.Status.Get())
}

func TestCartLedger_SetQuantityClampsAndRollsBack(t *testing.T) {
	ctx := context.Background()
	ledger, repo := newLedger(domain.CartLine{ID: 1, ProductID: 3, Quantity: 5})
	require.NoError(t, ledger.Load(ctx))

	require.NoError(t, ledger.SetQuantity(ctx, 3, -2))
	assert.Equal(t, map[int64]int{3: 1}, quantities(ledger.Lines()))
	assert.Equal(t, map[int64]int{3: 1}, quantities(repo.lines))

	repo.fail = errors.New("offline")
	require.Error(t, ledger.SetQuantity(ctx, 3, 9))
	assert.Equal(t, map[int64]int{3: 1}, quantities(ledger.Lines()))
	assert.Equal(t, "offline", ledger.Status.Get().Error)
}

func TestCartLedger_IncrementDecrement(t *testing.T) {
	ctx := context.Background()
	ledger, repo := newLedger(domain.CartLine{ID: 1, ProductID: 3, Quantity: 1})
	require.NoError(t, ledger.Load(ctx))

	require.NoError(t, ledger.Decrement(ctx, 3))
	assert.Equal(t, []string{"lines"}, repo.calls, "nothing sent below one unit")

	require.NoError(t, ledger.Increment(ctx, 3))
	require.NoError(t, ledger.Increment(ctx, 3))
	require.NoError(t, ledger.Decrement(ctx, 3))
	assert.Equal(t, map[int64]int{3: 2}, quantities(ledger.Lines()))

	assert.ErrorIs(t, ledger.Increment(ctx, 99), ErrLineNotFound)
}

func TestCartLedger_RemoveLineRollsBack(t *testing.T) {
	ctx := context.Background()
	ledger, repo := newLedger(
		domain.CartLine{ID: 1, ProductID: 3, Quantity: 1},
		domain.CartLine{ID: 2, ProductID: 4, Quantity: 1},
	)
	require.NoError(t, ledger.Load(ctx))

	var during []domain.CartLine
	repo.during = func() { during = ledger.Lines() }
	repo.fail = remoteErr(500, "Server Error")

	require.Error(t, ledger.RemoveLine(ctx, 3))

	assert.Equal(t, map[int64]int{4: 1}, quantities(during))
	assert.Equal(t, map[int64]int{3: 1, 4: 1}, quantities(ledger.Lines()))
}

func TestCartLedger_ClearWaitsForConfirmation(t *testing.T) {
	ctx := context.Background()
	ledger, repo := newLedger(domain.CartLine{ID: 1, ProductID: 3, Quantity: 1})
	require.NoError(t, ledger.Load(ctx))

	var during []domain.CartLine
	repo.during = func() { during = ledger.Lines() }
	repo.fail = remoteErr(500, "Server Error")

	require.Error(t, ledger.Clear(ctx))
	assert.Len(t, during, 1, "not optimistic")
	assert.Len(t, ledger.Lines(), 1)

	repo.fail = nil
	require.NoError(t, ledger.Clear(ctx))
	assert.Empty(t, ledger.Lines())
}

func TestCartLedger_Total(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger(
		domain.CartLine{ID: 1, ProductID: 1, Quantity: 3, Product: &domain.Product{ID: 1, Price: 10.1}},
		domain.CartLine{ID: 2, ProductID: 2, Quantity: 2, Product: &domain.Product{ID: 2, Price: 0.2}},
		domain.CartLine{ID: 3, ProductID: 3, Quantity: 5},
	)
	require.NoError(t, ledger.Load(ctx))

	assert.True(t, decimal.RequireFromString("30.7").Equal(ledger.Total()), ledger.Total().String())
	assert.True(t, decimal.Zero.Equal(Subtotal(ledger.Lines()[2])))
}

func TestCartLedger_NotifiesSubscribers(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newLedger()

	var seen int
	cancel := ledger.Items.Subscribe(func([]domain.CartLine) { seen++ })
	defer cancel()

	require.NoError(t, ledger.AddLine(ctx, 7, 1))

	assert.Equal(t, 2, seen, "optimistic change and reload")
}
