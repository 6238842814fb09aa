// Package optimistic applies a local change before the remote confirms it.
package optimistic

import (
	"context"

	"github.com/ringsizer/storefront/internal/pkg/observable"
)

// Mutate snapshots the store, publishes apply(snapshot) and runs confirm. When confirm
// fails the snapshot is restored and the error returned. apply must not modify its
// argument in place.
func Mutate[T any](ctx context.Context, store *observable.Store[T], apply func(T) T, confirm func(context.Context) error) error {
	before := store.Get()
	store.Set(apply(before))

	if err := confirm(ctx); err != nil {
		store.Set(before)
		return err
	}

	return nil
}
