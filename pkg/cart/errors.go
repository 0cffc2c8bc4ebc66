package cart

import "errors"

var (
	// ErrCrossProducer is returned when an item from a different
	// producer is added to a non-empty cart. A cart only ever holds
	// items from one producer at a time.
	ErrCrossProducer = errors.New("cart: items from a different producer already in cart")

	// ErrDuplicateItem is returned when an item with the same ID is
	// already in the cart.
	ErrDuplicateItem = errors.New("cart: item already in cart")
)
