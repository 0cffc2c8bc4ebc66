package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/locallink/locallink-go/pkg/gateway"
)

// Default search location matches the web client's fallback position.
const (
	defaultLat    = 25.18
	defaultLon    = 75.83
	defaultRadius = 20000
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and list products",
}

var productsNearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List products near a location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")
		radius, _ := cmd.Flags().GetInt("radius")

		products, err := cli.api.NearbyProducts(cmd.Context(), lat, lon, radius)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products found nearby.")
			return nil
		}

		for _, p := range products {
			cli.printer.Fprintf(os.Stdout, "#%d  %s — ₹%.2f (%d available, producer %d)\n",
				p.ID, p.Name, p.Price, p.Quantity, p.ProducerID)
			if p.Description != "" {
				fmt.Printf("     %s\n", p.Description)
			}
		}
		return nil
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "List a new product (producers only)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		price, _ := cmd.Flags().GetFloat64("price")
		quantity, _ := cmd.Flags().GetInt("quantity")
		lat, _ := cmd.Flags().GetFloat64("lat")
		lon, _ := cmd.Flags().GetFloat64("lon")

		product, err := cli.api.CreateProduct(cmd.Context(), gateway.ProductInput{
			Name:        name,
			Description: description,
			Price:       price,
			Quantity:    quantity,
			Latitude:    lat,
			Longitude:   lon,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Listed %s as product #%d.\n", product.Name, product.ID)
		return nil
	},
}

func init() {
	productsNearbyCmd.Flags().Float64("lat", defaultLat, "latitude")
	productsNearbyCmd.Flags().Float64("lon", defaultLon, "longitude")
	productsNearbyCmd.Flags().Int("radius", defaultRadius, "search radius in meters")

	productsAddCmd.Flags().String("name", "", "product name")
	productsAddCmd.Flags().String("description", "", "product description")
	productsAddCmd.Flags().Float64("price", 0, "unit price")
	productsAddCmd.Flags().Int("quantity", 1, "available quantity")
	productsAddCmd.Flags().Float64("lat", defaultLat, "pickup latitude")
	productsAddCmd.Flags().Float64("lon", defaultLon, "pickup longitude")
	productsAddCmd.MarkFlagRequired("name")
	productsAddCmd.MarkFlagRequired("price")

	productsCmd.AddCommand(productsNearbyCmd, productsAddCmd)
}
