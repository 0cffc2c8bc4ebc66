package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/locallink/locallink-go/pkg/cart"
	"github.com/locallink/locallink-go/pkg/keystore"
)

func newCart(t *testing.T) (*cart.Cart, *keystore.Memory) {
	t.Helper()

	store := keystore.NewMemory()
	c, err := cart.New(context.Background(), store)
	require.NoError(t, err)
	return c, store
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty storage yields empty cart", func(t *testing.T) {
		t.Parallel()

		c, _ := newCart(t)
		require.Zero(t, c.Len())
		require.Empty(t, c.Items())
	})

	t.Run("round trips persisted items in order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := keystore.NewMemory()
		c, err := cart.New(ctx, store)
		require.NoError(t, err)

		first := cart.Item{ID: "p1", ProducerID: "A", Name: "Eggs", Price: 4.5, Quantity: 12}
		second := cart.Item{ID: "p2", ProducerID: "A", Name: "Honey", Price: 12, Quantity: 1}
		require.NoError(t, c.Add(ctx, first))
		require.NoError(t, c.Add(ctx, second))

		reloaded, err := cart.New(ctx, store)
		require.NoError(t, err)
		require.Equal(t, []cart.Item{first, second}, reloaded.Items())
	})

	t.Run("malformed persisted record yields empty cart and purges it", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := keystore.NewMemory()
		require.NoError(t, store.Set(ctx, keystore.KeyCartItems, []byte("{broken")))

		c, err := cart.New(ctx, store)
		require.NoError(t, err)
		require.Zero(t, c.Len())

		_, err = store.Get(ctx, keystore.KeyCartItems)
		require.ErrorIs(t, err, keystore.ErrNotFound)
	})
}

func TestCart_Add(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c, _ := newCart(t)
		require.NoError(t, c.Add(ctx, cart.Item{ID: "p3", ProducerID: "A"}))
		require.NoError(t, c.Add(ctx, cart.Item{ID: "p1", ProducerID: "A"}))
		require.NoError(t, c.Add(ctx, cart.Item{ID: "p2", ProducerID: "A"}))

		items := c.Items()
		require.Equal(t, []string{"p3", "p1", "p2"}, []string{items[0].ID, items[1].ID, items[2].ID})
	})

	t.Run("rejects items from a second producer", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c, _ := newCart(t)
		require.NoError(t, c.Add(ctx, cart.Item{ID: "p1", ProducerID: "A"}))

		err := c.Add(ctx, cart.Item{ID: "p2", ProducerID: "B"})
		require.ErrorIs(t, err, cart.ErrCrossProducer)

		items := c.Items()
		require.Len(t, items, 1)
		require.Equal(t, "p1", items[0].ID)
	})

	t.Run("rejects a duplicate ID", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c, _ := newCart(t)
		item := cart.Item{ID: "p1", ProducerID: "A", Price: 10}
		require.NoError(t, c.Add(ctx, item))

		require.ErrorIs(t, c.Add(ctx, item), cart.ErrDuplicateItem)
		require.Equal(t, 1, c.Len())
	})

	t.Run("rejection leaves persisted record untouched", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c, store := newCart(t)
		require.NoError(t, c.Add(ctx, cart.Item{ID: "p1", ProducerID: "A"}))
		before, err := store.Get(ctx, keystore.KeyCartItems)
		require.NoError(t, err)

		require.ErrorIs(t, c.Add(ctx, cart.Item{ID: "p2", ProducerID: "B"}), cart.ErrCrossProducer)

		after, err := store.Get(ctx, keystore.KeyCartItems)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("same producer again after clear", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c, _ := newCart(t)
		require.NoError(t, c.Add(ctx, cart.Item{ID: "p1", ProducerID: "A"}))
		require.NoError(t, c.Clear(ctx))

		require.NoError(t, c.Add(ctx, cart.Item{ID: "p2", ProducerID: "B"}))
		producer, ok := c.ProducerID()
		require.True(t, ok)
		require.Equal(t, "B", producer)
	})
}

func TestCart_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes by ID and is idempotent", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		c, _ := newCart(t)
		require.NoError(t, c.Add(ctx, cart.Item{ID: "p1", ProducerID: "A"}))
		require.NoError(t, c.Add(ctx, cart.Item{ID: "p2", ProducerID: "A"}))

		require.NoError(t, c.Remove(ctx, "p1"))
		require.NoError(t, c.Remove(ctx, "p1"))

		items := c.Items()
		require.Len(t, items, 1)
		require.Equal(t, "p2", items[0].ID)
	})

	t.Run("emptied cart is observably empty on reload", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		store := keystore.NewMemory()
		c, err := cart.New(ctx, store)
		require.NoError(t, err)
		require.NoError(t, c.Add(ctx, cart.Item{ID: "p1", ProducerID: "A"}))
		require.NoError(t, c.Remove(ctx, "p1"))

		reloaded, err := cart.New(ctx, store)
		require.NoError(t, err)
		require.Zero(t, reloaded.Len())
	})
}

func TestCart_Clear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, store := newCart(t)
	require.NoError(t, c.Add(ctx, cart.Item{ID: "p1", ProducerID: "A"}))

	require.NoError(t, c.Clear(ctx))

	require.Zero(t, c.Len())
	_, err := store.Get(ctx, keystore.KeyCartItems)
	require.ErrorIs(t, err, keystore.ErrNotFound)
}

func TestCart_Subtotal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCart(t)
	require.NoError(t, c.Add(ctx, cart.Item{ID: "p1", ProducerID: "A", Price: 10}))
	require.NoError(t, c.Add(ctx, cart.Item{ID: "p2", ProducerID: "A", Price: 5}))

	require.InDelta(t, 15, c.Subtotal(), 0.0001)
}

// Quantity is display-only: it never contributes to the subtotal, which
// matches what order submission charges (one unit per line).
func TestCart_Subtotal_IgnoresQuantity(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newCart(t)
	require.NoError(t, c.Add(ctx, cart.Item{ID: "p1", ProducerID: "A", Price: 10, Quantity: 3}))

	require.InDelta(t, 10, c.Subtotal(), 0.0001)
}
