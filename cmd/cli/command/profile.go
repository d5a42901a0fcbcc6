package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your tasting profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetAuthenticatedClient()

		profile, err := httpClient.GetProfile()
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}

		name := profile.User.DisplayName
		if name == "" {
			name = profile.User.Username
		}
		fmt.Printf("%s (%s)\n", name, profile.User.Email)
		fmt.Printf("Ratings:   %d\n", profile.Stats.TotalRatings)
		fmt.Printf("Favorites: %d\n", profile.Stats.FavoriteCount)
		fmt.Printf("Average:   %.1f/5\n", profile.Stats.AverageRating)

		if len(profile.Stats.Recent) > 0 {
			fmt.Println("\nRecent ratings:")
			for _, r := range profile.Stats.Recent {
				fmt.Printf("  wine %d: %d/5 (%s)\n", r.WineID, r.Rating, r.RatedDate.Format("2006-01-02"))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
}
