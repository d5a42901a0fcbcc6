package command

// collection.go shows the filtered collection view with stats.

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Browse your wine collection",
	Long: `Show the wines you have rated or favorited, with optional filters.
Stats always describe the whole collection, not the filtered slice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if q, _ := cmd.Flags().GetString("query"); q != "" {
			params.Set("q", q)
		}
		if t, _ := cmd.Flags().GetString("type"); t != "" {
			params.Set("type", t)
		}
		if r, _ := cmd.Flags().GetInt("rating"); r > 0 {
			params.Set("rating", strconv.Itoa(r))
		}
		if fav, _ := cmd.Flags().GetBool("favorites"); fav {
			params.Set("favorites", "true")
		}

		httpClient := GetAuthenticatedClient()
		collection, err := httpClient.GetCollection(params)
		if err != nil {
			return fmt.Errorf("failed to fetch collection: %w", err)
		}

		fmt.Printf("Collection: %d wines, %d favorites, average rating %.1f\n\n",
			collection.Stats.TotalWines, collection.Stats.Favorites, collection.Stats.AverageRating)

		if len(collection.Items) == 0 {
			fmt.Println("No wines match the current filters.")
			return nil
		}

		for _, item := range collection.Items {
			marker := " "
			score := "-"
			if item.Rating != nil {
				if item.Rating.IsFavorite {
					marker = "★"
				}
				if item.Rating.Rating > 0 {
					score = fmt.Sprintf("%d/5", item.Rating.Rating)
				}
			}
			fmt.Printf("  %s [%d] %s (%d) - %s  %s\n",
				marker, item.Wine.ID, item.Wine.Name, item.Wine.Year, item.Wine.Vineyard, score)
		}
		return nil
	},
}

func init() {
	collectionCmd.Flags().StringP("query", "q", "", "Search wine name, vineyard, or region")
	collectionCmd.Flags().StringP("type", "t", "", "Filter by wine type")
	collectionCmd.Flags().IntP("rating", "r", 0, "Minimum rating (1-5)")
	collectionCmd.Flags().BoolP("favorites", "f", false, "Favorites only")

	rootCmd.AddCommand(collectionCmd)
}
