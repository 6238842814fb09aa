package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsizer/storefront/internal/pkg/observable"
)

func appendOne(v []int) []int {
	return append(append([]int(nil), v...), 1)
}

func TestMutate_KeepsChangeOnSuccess(t *testing.T) {
	store := observable.New([]int{0})

	var during []int
	err := Mutate(context.Background(), store, appendOne, func(context.Context) error {
		during = store.Get()
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, during, "change visible before confirmation")
	assert.Equal(t, []int{0, 1}, store.Get())
}

func TestMutate_RevertsOnFailure(t *testing.T) {
	store := observable.New([]int{0})
	boom := errors.New("boom")

	var history [][]int
	store.Subscribe(func(v []int) { history = append(history, v) })

	err := Mutate(context.Background(), store, appendOne, func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{0}, store.Get())
	assert.Equal(t, [][]int{{0, 1}, {0}}, history)
}
