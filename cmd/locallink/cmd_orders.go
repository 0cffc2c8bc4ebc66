package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/locallink/locallink-go/pkg/gateway"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place an order",
}

var orderPlaceCmd = &cobra.Command{
	Use:   "place",
	Short: "Submit the cart as an order",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !cli.sessions.IsAuthenticated() {
			return errors.New("please log in to place an order")
		}

		in, err := gateway.OrderFromItems(cli.cart.Items())
		if err != nil {
			if errors.Is(err, gateway.ErrEmptyOrder) {
				return errors.New("your cart is empty")
			}
			return err
		}

		order, err := cli.api.PlaceOrder(cmd.Context(), in)
		if err != nil {
			return err
		}
		if err := cli.cart.Clear(cmd.Context()); err != nil {
			return err
		}

		cli.printer.Fprintf(os.Stdout, "Order #%d placed (₹%.2f, status %s).\n",
			order.ID, order.TotalPrice, order.Status)
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	RunE: func(cmd *cobra.Command, _ []string) error {
		orders, err := cli.api.Orders(cmd.Context())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No orders yet.")
			return nil
		}

		for _, o := range orders {
			cli.printer.Fprintf(os.Stdout, "Order #%d — %s — ₹%.2f — %s (%d items)\n",
				o.ID, o.Status, o.TotalPrice, o.CreatedAt.Local().Format("2006-01-02 15:04"), len(o.Items))
		}
		return nil
	},
}

func init() {
	orderCmd.AddCommand(orderPlaceCmd)
}
