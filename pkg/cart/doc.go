// Package cart holds the buyer's pending order: an ordered list of
// product lines constrained to a single producer.
//
// The single-producer invariant is enforced at the edge: [Cart.Add]
// rejects an item whose producer differs from the items already held
// with [ErrCrossProducer], and a duplicate line with [ErrDuplicateItem].
// Mutations are all-or-nothing — the in-memory list only changes after
// the new contents have been persisted through the keystore.
package cart
