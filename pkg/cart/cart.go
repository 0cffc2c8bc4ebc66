package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/locallink/locallink-go/pkg/keystore"
)

// Item is one product line in the cart. ID is the identity key and is
// unique within the cart. Quantity is informational display data only;
// order submission sends one unit per line regardless (see Subtotal).
type Item struct {
	ID         string  `json:"id"`
	ProducerID string  `json:"producerId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// Cart holds an ordered list of items from a single producer. Insertion
// order is preserved for display. Every successful mutation re-persists
// the list through the keystore, so the cart survives restarts the way
// the web client's cart survives page reloads.
type Cart struct {
	store keystore.Store

	mu    sync.Mutex
	items []Item
}

// New constructs the cart from persisted storage. Absent or malformed
// persisted data yields an empty cart; a malformed record is purged so
// it cannot poison the next start.
func New(ctx context.Context, store keystore.Store) (*Cart, error) {
	c := &Cart{store: store}

	raw, err := store.Get(ctx, keystore.KeyCartItems)
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return c, nil
		}
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		if err := store.Delete(ctx, keystore.KeyCartItems); err != nil {
			return nil, err
		}
		return c, nil
	}

	c.items = items
	return c, nil
}

// Add appends an item to the cart and persists the result. Exactly one
// of two outcomes happens: the item is appended and persisted, or the
// call fails with a reason and the cart is unchanged.
//
// Returns ErrCrossProducer when the cart already holds items from a
// different producer, and ErrDuplicateItem when an item with the same
// ID is already present.
func (c *Cart) Add(ctx context.Context, item Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) > 0 && c.items[0].ProducerID != item.ProducerID {
		return ErrCrossProducer
	}
	for _, existing := range c.items {
		if existing.ID == item.ID {
			return ErrDuplicateItem
		}
	}

	next := append(append([]Item(nil), c.items...), item)
	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// Remove deletes the item with the given ID and persists the result.
// Removing an absent ID is a no-op. An emptied cart is persisted as an
// empty list, so it is observably empty on reload; only Clear purges
// the record.
func (c *Cart) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]Item, 0, len(c.items))
	removed := false
	for _, item := range c.items {
		if !removed && item.ID == id {
			removed = true
			continue
		}
		next = append(next, item)
	}
	if !removed {
		return nil
	}

	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// Clear empties the cart and purges the persisted record. Called after
// successful order placement.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Delete(ctx, keystore.KeyCartItems); err != nil {
		return err
	}
	c.items = nil
	return nil
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

// Len returns the number of items in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// ProducerID returns the producer shared by all items and whether the
// cart is non-empty.
func (c *Cart) ProducerID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return "", false
	}
	return c.items[0].ProducerID, true
}

// Subtotal sums the item prices. Quantity is deliberately not applied:
// order submission sends one unit per line, and the total shown must
// match what the order will cost.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

func (c *Cart) persist(ctx context.Context, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, keystore.KeyCartItems, data)
}
