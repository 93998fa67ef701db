package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ocladmin/svc/subscription"
)

func TestService_Views(t *testing.T) {
	t.Parallel()

	t.Run("open and lookup", func(t *testing.T) {
		t.Parallel()

		svc := subscription.NewService(new(mockBackend))
		view := svc.Open()

		got, err := svc.View(view.ID())
		require.NoError(t, err)
		assert.Same(t, view, got)

		_, err = svc.View("unknown")
		require.ErrorIs(t, err, subscription.ErrViewNotFound)
	})

	t.Run("release closes the view", func(t *testing.T) {
		t.Parallel()

		svc := subscription.NewService(new(mockBackend))
		view := svc.Open()
		svc.Release(view.ID())

		_, err := svc.View(view.ID())
		require.ErrorIs(t, err, subscription.ErrViewNotFound)
		require.ErrorIs(t, view.Load(context.Background()), subscription.ErrClosed)
	})

	t.Run("eviction closes the oldest view", func(t *testing.T) {
		t.Parallel()

		svc := subscription.NewService(new(mockBackend), subscription.WithMaxViews(1))
		first := svc.Open()
		second := svc.Open()

		_, err := svc.View(first.ID())
		require.ErrorIs(t, err, subscription.ErrViewNotFound)
		_, err = first.Submit(context.Background())
		require.ErrorIs(t, err, subscription.ErrClosed)

		_, err = svc.View(second.ID())
		require.NoError(t, err)
	})

	t.Run("used view outlives its idle ttl", func(t *testing.T) {
		t.Parallel()

		svc := subscription.NewService(new(mockBackend), subscription.WithViewTTL(60*time.Millisecond))
		view := svc.Open()

		for range 5 {
			time.Sleep(20 * time.Millisecond)
			_, err := svc.View(view.ID())
			require.NoError(t, err)
		}

		time.Sleep(120 * time.Millisecond)
		_, err := svc.View(view.ID())
		require.ErrorIs(t, err, subscription.ErrViewNotFound)
		require.ErrorIs(t, view.Load(context.Background()), subscription.ErrClosed)
	})

	t.Run("close closes every view", func(t *testing.T) {
		t.Parallel()

		svc := subscription.NewService(new(mockBackend))
		a, b := svc.Open(), svc.Open()
		svc.Close()

		require.ErrorIs(t, a.Load(context.Background()), subscription.ErrClosed)
		require.ErrorIs(t, b.Load(context.Background()), subscription.ErrClosed)
	})
}
