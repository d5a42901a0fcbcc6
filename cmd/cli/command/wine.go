package command

// wine.go handles wine catalogue commands: list, search, get, add, delete.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"winecellar/cmd/cli/command/client"
)

var wineCmd = &cobra.Command{
	Use:   "wine",
	Short: "Wine catalogue commands",
	Long:  `Manage wines in the catalogue: list, search, view, add, and delete.`,
}

var wineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wines in the catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient := GetAuthenticatedClient()

		wines, err := httpClient.GetAllWines()
		if err != nil {
			return fmt.Errorf("failed to list wines: %w", err)
		}

		if len(wines) == 0 {
			fmt.Println("No wines in the catalogue yet.")
			return nil
		}

		fmt.Printf("Wines (%d total):\n\n", len(wines))
		for _, w := range wines {
			printWineLine(w)
		}
		return nil
	},
}

var wineSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search wines by name, vineyard, or region",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		httpClient := GetAuthenticatedClient()
		wines, err := httpClient.SearchWines(query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(wines) == 0 {
			fmt.Printf("No wines matching %q.\n", query)
			return nil
		}

		fmt.Printf("Found %d wine(s) matching %q:\n\n", len(wines), query)
		for _, w := range wines {
			printWineLine(w)
		}
		return nil
	},
}

var wineGetCmd = &cobra.Command{
	Use:   "get [wine-id]",
	Short: "Show details for a wine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wineID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid wine ID: %w", err)
		}

		httpClient := GetAuthenticatedClient()
		wine, err := httpClient.GetWine(wineID)
		if err != nil {
			return fmt.Errorf("failed to get wine: %w", err)
		}

		printWineDetail(wine)
		return nil
	},
}

var wineAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a wine to the catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req client.CreateWineRequest
		req.Name, _ = cmd.Flags().GetString("name")
		req.Vineyard, _ = cmd.Flags().GetString("vineyard")
		req.Year, _ = cmd.Flags().GetInt("year")
		req.Type, _ = cmd.Flags().GetString("type")
		req.Region, _ = cmd.Flags().GetString("region")
		req.Barcode, _ = cmd.Flags().GetString("barcode")
		req.Rating, _ = cmd.Flags().GetInt("rating")
		req.Notes, _ = cmd.Flags().GetString("notes")
		req.IsFavorite, _ = cmd.Flags().GetBool("favorite")

		httpClient := GetAuthenticatedClient()
		wine, err := httpClient.CreateWine(&req)
		if err != nil {
			return fmt.Errorf("failed to add wine: %w", err)
		}

		fmt.Println("✓ Wine added successfully!")
		printWineDetail(wine)
		return nil
	},
}

var wineDeleteCmd = &cobra.Command{
	Use:   "delete [wine-id]",
	Short: "Delete a wine from the catalogue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wineID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid wine ID: %w", err)
		}

		httpClient := GetAuthenticatedClient()
		if err := httpClient.DeleteWine(wineID); err != nil {
			return fmt.Errorf("failed to delete wine: %w", err)
		}

		fmt.Printf("✓ Deleted wine %d.\n", wineID)
		return nil
	},
}

func printWineLine(w client.WineResponse) {
	fmt.Printf("  [%d] %s (%d) - %s, %s\n", w.ID, w.Name, w.Year, w.Vineyard, w.Type)
}

func printWineDetail(w *client.WineResponse) {
	fmt.Printf("ID:       %d\n", w.ID)
	fmt.Printf("Name:     %s\n", w.Name)
	fmt.Printf("Vineyard: %s\n", w.Vineyard)
	fmt.Printf("Year:     %d\n", w.Year)
	fmt.Printf("Type:     %s\n", w.Type)
	if w.Region != "" {
		fmt.Printf("Region:   %s\n", w.Region)
	}
	if w.Barcode != "" {
		fmt.Printf("Barcode:  %s\n", w.Barcode)
	}
	fmt.Printf("Average:  %.1f (%d reviews)\n", w.AverageRating, w.ReviewCount)
}

func init() {
	wineCmd.AddCommand(wineListCmd)
	wineCmd.AddCommand(wineSearchCmd)
	wineCmd.AddCommand(wineGetCmd)
	wineCmd.AddCommand(wineAddCmd)
	wineCmd.AddCommand(wineDeleteCmd)

	wineAddCmd.Flags().String("name", "", "Wine name")
	wineAddCmd.Flags().String("vineyard", "", "Vineyard or producer")
	wineAddCmd.Flags().Int("year", 0, "Vintage year")
	wineAddCmd.Flags().String("type", "", "Wine type (red, white, rose, sparkling, dessert, fortified)")
	wineAddCmd.Flags().String("region", "", "Region")
	wineAddCmd.Flags().String("barcode", "", "Barcode")
	wineAddCmd.Flags().Int("rating", 0, "Initial rating (0-5)")
	wineAddCmd.Flags().String("notes", "", "Tasting notes")
	wineAddCmd.Flags().Bool("favorite", false, "Mark as favorite")
	wineAddCmd.MarkFlagRequired("name")
	wineAddCmd.MarkFlagRequired("vineyard")
	wineAddCmd.MarkFlagRequired("year")
	wineAddCmd.MarkFlagRequired("type")

	rootCmd.AddCommand(wineCmd)
}
