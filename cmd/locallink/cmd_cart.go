package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/locallink/locallink-go/pkg/cart"
	"github.com/locallink/locallink-go/pkg/gateway"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a nearby product to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")
		radius, _ := cmd.Flags().GetInt("radius")

		products, err := cli.api.NearbyProducts(cmd.Context(), lat, lon, radius)
		if err != nil {
			return err
		}

		for _, p := range products {
			if p.ID != productID {
				continue
			}
			if err := cli.cart.Add(cmd.Context(), gateway.CartItemFromProduct(p)); err != nil {
				switch {
				case errors.Is(err, cart.ErrCrossProducer):
					return errors.New("you can only order from one producer at a time; clear your cart first")
				case errors.Is(err, cart.ErrDuplicateItem):
					return errors.New("item is already in your cart")
				default:
					return err
				}
			}
			fmt.Printf("%s added to cart.\n", p.Name)
			return nil
		}
		return fmt.Errorf("product #%d not found nearby", productID)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove an item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.cart.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Removed.")
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cli.cart.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Cart cleared.")
		return nil
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		items := cli.cart.Items()
		if len(items) == 0 {
			fmt.Println("Your cart is empty.")
			return nil
		}

		for _, item := range items {
			cli.printer.Fprintf(os.Stdout, "#%s  %s — ₹%.2f\n", item.ID, item.Name, item.Price)
		}
		cli.printer.Fprintf(os.Stdout, "Total: ₹%.2f\n", cli.cart.Subtotal())
		return nil
	},
}

func init() {
	cartAddCmd.Flags().Float64("lat", defaultLat, "latitude to search around")
	cartAddCmd.Flags().Float64("lon", defaultLon, "longitude to search around")
	cartAddCmd.Flags().Int("radius", defaultRadius, "search radius in meters")

	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartClearCmd, cartShowCmd)
}
