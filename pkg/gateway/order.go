package gateway

import (
	"errors"
	"strconv"

	"github.com/locallink/locallink-go/pkg/cart"
)

// OrderFromItems builds the POST /orders payload from cart contents.
// The producer is taken from the first item; the single-producer
// invariant guarantees all items agree.
//
// Every line is submitted with quantity 1 regardless of the item's
// displayed quantity. That mirrors what the production client sends
// today; see the design notes before changing it.
func OrderFromItems(items []cart.Item) (OrderInput, error) {
	if len(items) == 0 {
		return OrderInput{}, ErrEmptyOrder
	}

	producerID, err := strconv.ParseInt(items[0].ProducerID, 10, 64)
	if err != nil {
		return OrderInput{}, errors.Join(ErrInvalidItemID, err)
	}

	in := OrderInput{
		ProducerID: producerID,
		Items:      make([]OrderLine, 0, len(items)),
	}
	for _, item := range items {
		productID, err := strconv.ParseInt(item.ID, 10, 64)
		if err != nil {
			return OrderInput{}, errors.Join(ErrInvalidItemID, err)
		}
		in.Items = append(in.Items, OrderLine{ProductID: productID, Quantity: 1})
	}
	return in, nil
}

// CartItemFromProduct converts a backend product into a cart line.
// Backend IDs are numeric; the cart stores them as decimal strings.
func CartItemFromProduct(p Product) cart.Item {
	return cart.Item{
		ID:         strconv.FormatInt(p.ID, 10),
		ProducerID: strconv.FormatInt(p.ProducerID, 10),
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   p.Quantity,
	}
}
