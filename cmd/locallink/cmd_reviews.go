package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/locallink/locallink-go/pkg/gateway"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Read and write product reviews",
}

var reviewsAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Review a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		rating, _ := cmd.Flags().GetInt("rating")
		comment, _ := cmd.Flags().GetString("comment")
		if rating < 1 || rating > 5 {
			return fmt.Errorf("rating must be between 1 and 5")
		}

		review, err := cli.api.CreateReview(cmd.Context(), productID, gateway.ReviewInput{
			Rating:  rating,
			Comment: comment,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Review #%d posted.\n", review.ID)
		return nil
	},
}

var reviewsListCmd = &cobra.Command{
	Use:   "list <product-id>",
	Short: "List reviews for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		reviews, err := cli.api.ProductReviews(cmd.Context(), productID)
		if err != nil {
			return err
		}
		if len(reviews) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}

		for _, r := range reviews {
			stars := strings.Repeat("★", r.Rating) + strings.Repeat("☆", 5-r.Rating)
			fmt.Printf("%s  %s\n", stars, r.Comment)
		}
		return nil
	},
}

func init() {
	reviewsAddCmd.Flags().Int("rating", 0, "rating from 1 to 5")
	reviewsAddCmd.Flags().String("comment", "", "review text")
	reviewsAddCmd.MarkFlagRequired("rating")

	reviewsCmd.AddCommand(reviewsAddCmd, reviewsListCmd)
}
