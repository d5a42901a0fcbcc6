package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"winecellar/cmd/cli/command/client"
)

var ratingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Rating management commands",
	Long:  `Manage wine ratings: create/update, view, delete, and toggle favorites.`,
}

var rateCmd = &cobra.Command{
	Use:   "rate [wine-id] [rating]",
	Short: "Rate a wine (0-5)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		wineID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid wine ID: %w", err)
		}

		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rating: %w", err)
		}
		if rating < 0 || rating > 5 {
			return fmt.Errorf("rating must be between 0 and 5")
		}

		notes, _ := cmd.Flags().GetString("notes")
		favorite, _ := cmd.Flags().GetBool("favorite")

		httpClient := GetAuthenticatedClient()
		result, err := httpClient.SubmitRating(wineID, &client.SubmitRatingRequest{
			Rating:     rating,
			Notes:      notes,
			IsFavorite: favorite,
		})
		if err != nil {
			return fmt.Errorf("failed to rate wine: %w", err)
		}

		fmt.Println("✓ Rating submitted successfully!")
		printRating(result)
		return nil
	},
}

var getRatingCmd = &cobra.Command{
	Use:   "get [wine-id]",
	Short: "Get your rating for a wine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wineID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid wine ID: %w", err)
		}

		httpClient := GetAuthenticatedClient()
		result, err := httpClient.GetRating(wineID)
		if err != nil {
			return fmt.Errorf("failed to get rating: %w", err)
		}
		if result == nil {
			fmt.Printf("You have not rated wine %d yet.\n", wineID)
			return nil
		}

		printRating(result)
		return nil
	},
}

var deleteRatingCmd = &cobra.Command{
	Use:   "delete [wine-id]",
	Short: "Delete your rating for a wine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wineID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid wine ID: %w", err)
		}

		httpClient := GetAuthenticatedClient()
		if err := httpClient.DeleteRating(wineID); err != nil {
			return fmt.Errorf("failed to delete rating: %w", err)
		}

		fmt.Printf("✓ Rating for wine %d deleted.\n", wineID)
		return nil
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite [wine-id]",
	Short: "Toggle a wine's favorite status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wineID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid wine ID: %w", err)
		}

		httpClient := GetAuthenticatedClient()
		result, err := httpClient.ToggleFavorite(wineID)
		if err != nil {
			return fmt.Errorf("failed to toggle favorite: %w", err)
		}

		if result.IsFavorite {
			fmt.Printf("★ Wine %d marked as favorite.\n", wineID)
		} else {
			fmt.Printf("☆ Wine %d removed from favorites.\n", wineID)
		}
		return nil
	},
}

func printRating(r *client.RatingResponse) {
	fmt.Printf("Wine ID: %d\n", r.WineID)
	fmt.Printf("Rating:  %d/5\n", r.Rating)
	if r.Notes != "" {
		fmt.Printf("Notes:   %s\n", r.Notes)
	}
	fmt.Printf("Favorite: %v\n", r.IsFavorite)
	fmt.Printf("Rated at: %s\n", r.RatedDate.Format("2006-01-02 15:04:05"))
}

func init() {
	ratingCmd.AddCommand(rateCmd)
	ratingCmd.AddCommand(getRatingCmd)
	ratingCmd.AddCommand(deleteRatingCmd)
	ratingCmd.AddCommand(favoriteCmd)

	rateCmd.Flags().String("notes", "", "Tasting notes")
	rateCmd.Flags().Bool("favorite", false, "Also mark as favorite")

	rootCmd.AddCommand(ratingCmd)
}
